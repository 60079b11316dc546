// Package sampling detects file-source schemas by fetching a bounded sample
// of the file's content through a scheme-selected fetcher and running type
// inference over the decoded records.
package sampling

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// Fetcher retrieves at most maxBytes from the file a URI names. Fetchers are
// safe for concurrent use once constructed.
type Fetcher interface {
	Fetch(ctx context.Context, uri string, maxBytes int64) ([]byte, error)
}

// Registry selects a fetcher by URI scheme. Paths without a scheme (and
// file:// URIs) go to the local fetcher.
type Registry struct {
	byScheme map[string]Fetcher
}

// NewRegistry returns a registry with the local fetcher installed.
func NewRegistry() *Registry {
	r := &Registry{byScheme: make(map[string]Fetcher)}
	local := &LocalFetcher{}
	r.Register("", local)
	r.Register("file", local)
	return r
}

// Register installs a fetcher for a scheme, replacing any previous one.
func (r *Registry) Register(scheme string, f Fetcher) {
	r.byScheme[strings.ToLower(scheme)] = f
}

// ForURI returns the fetcher responsible for the URI's scheme.
func (r *Registry) ForURI(uri string) (Fetcher, error) {
	scheme := ""
	if u, err := url.Parse(uri); err == nil {
		scheme = strings.ToLower(u.Scheme)
	}
	f, ok := r.byScheme[scheme]
	if !ok {
		return nil, fmt.Errorf("no fetcher registered for scheme %q (uri %s)", scheme, uri)
	}
	return f, nil
}

// Fetch resolves the fetcher for the URI and reads the sample through it.
func (r *Registry) Fetch(ctx context.Context, uri string, maxBytes int64) ([]byte, error) {
	f, err := r.ForURI(uri)
	if err != nil {
		return nil, err
	}
	return f.Fetch(ctx, uri, maxBytes)
}

// LocalFetcher reads files from the local filesystem.
type LocalFetcher struct{}

// Fetch reads the first maxBytes of a local file. file:// URIs and bare
// paths are both accepted.
func (LocalFetcher) Fetch(_ context.Context, uri string, maxBytes int64) ([]byte, error) {
	path := uri
	if u, err := url.Parse(uri); err == nil && u.Scheme == "file" {
		path = u.Path
		if u.Host != "" {
			path = u.Host + u.Path
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read sample file %s: %w", path, err)
	}
	return data, nil
}
