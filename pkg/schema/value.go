package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Object is a JSON object that preserves key insertion order. Generated field
// order follows schema declaration order, so the parser never flattens
// objects into Go maps directly.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject constructs an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores a value under key, appending the key on first insertion.
func (o *Object) Set(key string, value any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get looks up a value by key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o.values[key]
	return value, ok
}

// Has reports whether the key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// ParseDocument decodes a schema document into the ordered value
// representation. Both JSON and YAML payloads are accepted; decoding goes
// through the yaml.v3 node API because it retains mapping order, which plain
// map decoding discards.
func ParseDocument(doc Document) (*Object, error) {
	value, err := ParseValue(doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", doc.Location(), err)
	}
	obj, ok := value.(*Object)
	if !ok {
		return nil, fmt.Errorf("schema: document %s is not an object", doc.Location())
	}
	return obj, nil
}

// ParseValue decodes a raw JSON or YAML payload into ordered values: objects
// become *Object, arrays []any, and scalars string/bool/int64/float64/nil.
func ParseValue(raw []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return valueFromNode(&root)
}

func valueFromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) != 1 {
			return nil, fmt.Errorf("expected a single document, got %d", len(node.Content))
		}
		return valueFromNode(node.Content[0])
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return nil, fmt.Errorf("line %d: object keys must be strings: %w", keyNode.Line, err)
			}
			value, err := valueFromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := valueFromNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case yaml.ScalarNode:
		return scalarFromNode(node)
	case yaml.AliasNode:
		return valueFromNode(node.Alias)
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind", node.Line)
	}
}

func scalarFromNode(node *yaml.Node) (any, error) {
	switch node.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var value bool
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	case "!!int":
		var value int64
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	case "!!float":
		var value float64
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		var value string
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	}
}

// TypeOf names the JSON type of a parsed value for error messages.
func TypeOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int64:
		return "integer"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case *Object:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
