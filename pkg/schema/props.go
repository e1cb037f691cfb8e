package schema

import "fmt"

// StringProp returns the string value stored under key. The boolean reports
// presence; a present value of the wrong type is an error.
func (o *Object) StringProp(key string) (string, bool, error) {
	raw, ok := o.Get(key)
	if !ok {
		return "", false, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", true, fmt.Errorf("expected property %q to be a string, got %s", key, TypeOf(raw))
	}
	return value, true, nil
}

// ArrayProp returns the array value stored under key.
func (o *Object) ArrayProp(key string) ([]any, bool, error) {
	raw, ok := o.Get(key)
	if !ok {
		return nil, false, nil
	}
	value, ok := raw.([]any)
	if !ok {
		return nil, true, fmt.Errorf("expected property %q to be an array, got %s", key, TypeOf(raw))
	}
	return value, true, nil
}

// ObjectProp returns the object value stored under key.
func (o *Object) ObjectProp(key string) (*Object, bool, error) {
	raw, ok := o.Get(key)
	if !ok {
		return nil, false, nil
	}
	value, ok := raw.(*Object)
	if !ok {
		return nil, true, fmt.Errorf("expected property %q to be an object, got %s", key, TypeOf(raw))
	}
	return value, true, nil
}
