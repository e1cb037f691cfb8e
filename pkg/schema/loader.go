package schema

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader resolves a Source into a Document carrying the raw schema text.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures the default loader implementation.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS sources.
	FileSystem fs.FS
	// HTTPClient backs SourceKindURL sources; it is cloned before use.
	HTTPClient *http.Client
	// AllowHTTPFallback enables URL sources with a default client when no
	// HTTPClient is supplied.
	AllowHTTPFallback bool
	// RequestTimeout bounds each URL fetch.
	RequestTimeout time.Duration
}
