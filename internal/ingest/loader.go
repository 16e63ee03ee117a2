package ingest

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StdinSource is the path that selects standard input
const StdinSource = "-"

// ErrTooLarge is returned when a document exceeds the configured size limit
var ErrTooLarge = errors.New("document exceeds size limit")

// Document is an FNOL submission reduced to text
type Document struct {
	Source      string // Path, "-" or a caller-supplied label
	Name        string // Base name without extension, used for output files
	ContentType string
	Adapter     string
	Text        string
}

// Loader reads FNOL submissions and converts them to text
type Loader struct {
	maxBytes int64
	registry *Registry
	stdin    io.Reader
}

// NewLoader creates a loader that refuses documents larger than maxBytes
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = 1_000_000
	}
	return &Loader{
		maxBytes: maxBytes,
		registry: NewRegistry(),
		stdin:    os.Stdin,
	}
}

// Load reads a document from a file, or from stdin when path is "-"
func (l *Loader) Load(path string) (*Document, error) {
	if path == StdinSource {
		return l.Read(l.stdin, StdinSource, "")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.Read(f, path, mime.TypeByExtension(strings.ToLower(filepath.Ext(path))))
}

// Read reads a document body. An empty contentType is sniffed from the body.
func (l *Loader) Read(r io.Reader, source string, contentType string) (*Document, error) {
	body, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(body)) > l.maxBytes {
		return nil, fmt.Errorf("%s: %w (%d bytes)", source, ErrTooLarge, l.maxBytes)
	}

	return l.Convert(body, source, contentType)
}

// Convert turns an in-memory body into a document
func (l *Loader) Convert(body []byte, source string, contentType string) (*Document, error) {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	adapter := l.registry.FindAdapter(contentType)
	text, err := adapter.Text(body)
	if err != nil {
		return nil, fmt.Errorf("%s: convert %s content: %w", source, adapter.Name(), err)
	}

	return &Document{
		Source:      source,
		Name:        documentName(source),
		ContentType: contentType,
		Adapter:     adapter.Name(),
		Text:        text,
	}, nil
}

// documentName derives a file-safe name from the source path
func documentName(source string) string {
	if source == StdinSource || source == "" {
		return "stdin"
	}

	name := filepath.Base(source)
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}

	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	name = replacer.Replace(name)

	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" || name == "." {
		return "document"
	}
	return name
}
