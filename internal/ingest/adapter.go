package ingest

import "strings"

// Adapter turns a raw submission body into FNOL document text
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter understands the content type
	CanHandle(contentType string) bool

	// Text converts the raw body to plain text with one labeled line per row
	Text(raw []byte) (string, error)
}

// Registry manages content adapters
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the built-in adapters
func NewRegistry() *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	registry.Register(NewHTMLAdapter())

	// Plain text is the fallback for anything unrecognised
	registry.generic = NewPlainAdapter()

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter finds the adapter for the given content type
func (r *Registry) FindAdapter(contentType string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(contentType) {
			return adapter
		}
	}
	return r.generic
}

// mediaType strips parameters from a Content-Type value
func mediaType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
