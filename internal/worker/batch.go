package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/claimroute/internal/ingest"
	"github.com/ppiankov/claimroute/internal/model"
)

// documentExtensions are the file types picked up when batching a directory
var documentExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".fnol": true,
	".htm":  true,
	".html": true,
}

// Router defines the interface for routing one FNOL document from disk
type Router interface {
	ProcessFile(path string) (*ingest.Document, model.ClaimDecision, error)
}

// RouteJob represents one document to route
type RouteJob struct {
	Index  int
	Path   string
	Router Router
}

// Execute loads and routes the document
func (j *RouteJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &RouteResult{Index: j.Index, Path: j.Path, Error: err}
	}

	doc, decision, err := j.Router.ProcessFile(j.Path)
	if err != nil {
		return &RouteResult{Index: j.Index, Path: j.Path, Error: err}
	}
	return &RouteResult{
		Index:    j.Index,
		Path:     j.Path,
		Document: doc,
		Decision: decision,
	}
}

// RouteResult represents the result of a route job
type RouteResult struct {
	Index    int
	Path     string
	Document *ingest.Document
	Decision model.ClaimDecision
	Error    error
}

// GetError returns the error from the route result
func (r *RouteResult) GetError() error {
	return r.Error
}

// BatchProcessor routes many documents concurrently
type BatchProcessor struct {
	router      Router
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(router Router, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		router:      router,
		concurrency: concurrency,
	}
}

// ProcessPaths routes every path and returns results in input order.
// Paths left unprocessed because ctx ended carry the context error.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*RouteResult {
	if len(paths) == 0 {
		return []*RouteResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, path := range paths {
		if !pool.Submit(&RouteJob{Index: i, Path: path, Router: b.router}) {
			break
		}
	}

	results := pool.Wait()

	ordered := make([]*RouteResult, len(paths))
	for _, result := range results {
		r := result.(*RouteResult)
		ordered[r.Index] = r
	}

	for i, r := range ordered {
		if r != nil {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		ordered[i] = &RouteResult{
			Index: i,
			Path:  paths[i],
			Error: fmt.Errorf("not processed: %w", err),
		}
	}

	return ordered
}

// ProcessInput routes every document in a directory, or every path listed
// in a list file
func (b *BatchProcessor) ProcessInput(ctx context.Context, input string) ([]*RouteResult, error) {
	paths, err := ResolveInput(input)
	if err != nil {
		return nil, err
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ResolveInput expands a directory or a list file into document paths
func ResolveInput(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return ListDocuments(input)
	}
	return ReadPathsFromFile(input)
}

// ListDocuments returns FNOL documents directly inside dir, sorted by name
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if documentExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// ReadPathsFromFile reads document paths from a file (one per line).
// Relative paths are resolved against the list file's directory.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(filePath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
