package ingest

import (
	"strings"
	"unicode/utf8"
)

// PlainAdapter passes text through with line endings normalised
type PlainAdapter struct{}

// NewPlainAdapter creates a new plain text adapter
func NewPlainAdapter() *PlainAdapter {
	return &PlainAdapter{}
}

// Name returns the adapter name
func (a *PlainAdapter) Name() string {
	return "plain"
}

// CanHandle always returns true (fallback adapter)
func (a *PlainAdapter) CanHandle(contentType string) bool {
	return true
}

// Text strips a UTF-8 byte order mark, converts CRLF and CR to LF and
// replaces invalid UTF-8 sequences
func (a *PlainAdapter) Text(raw []byte) (string, error) {
	text := string(raw)
	text = strings.TrimPrefix(text, "\ufeff")
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text, nil
}
