package sampling

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSFetcher reads object prefixes from Google Cloud Storage with range
// readers.
type GCSFetcher struct {
	client *storage.Client
}

// NewGCSFetcher builds a fetcher. With a key file it authenticates as that
// service account; without one it falls back to application default
// credentials.
func NewGCSFetcher(ctx context.Context, keyFilePath string) (*GCSFetcher, error) {
	var opts []option.ClientOption
	if keyFilePath != "" {
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, keyFilePath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}
	return &GCSFetcher{client: client}, nil
}

// Fetch reads the first maxBytes of a gs://bucket/key object.
func (f *GCSFetcher) Fetch(ctx context.Context, uri string, maxBytes int64) ([]byte, error) {
	bucket, key, err := ParseGCSPath(uri)
	if err != nil {
		return nil, err
	}

	r, err := f.client.Bucket(bucket).Object(key).NewRangeReader(ctx, 0, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("open object %q: %w", uri, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", uri, err)
	}
	return data, nil
}

// ParseGCSPath extracts bucket and key from a "gs://bucket/path/to/file" URI.
func ParseGCSPath(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse GCS path %q: %w", uri, err)
	}
	if u.Scheme != "gs" {
		return "", "", fmt.Errorf("expected gs:// scheme, got %q in %q", u.Scheme, uri)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("empty key in GCS path %q", uri)
	}
	return bucket, key, nil
}
