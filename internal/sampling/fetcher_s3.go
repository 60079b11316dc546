package sampling

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures the s3:// fetcher. Endpoint is optional and enables
// S3-compatible object stores; those typically need path-style URLs.
type S3Options struct {
	Endpoint     string
	Region       string
	KeyID        string
	Secret       string
	UsePathStyle bool
}

// S3Fetcher reads object prefixes from S3-compatible storage with ranged
// GETs, so a sample never downloads the whole object.
type S3Fetcher struct {
	client *s3.Client
}

// NewS3Fetcher builds a fetcher from static credentials.
func NewS3Fetcher(opts S3Options) *S3Fetcher {
	clientOpts := s3.Options{
		Region: opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			opts.KeyID, opts.Secret, "",
		),
		UsePathStyle: opts.UsePathStyle,
	}
	if opts.Endpoint != "" {
		endpoint := opts.Endpoint
		if !strings.Contains(endpoint, "://") {
			endpoint = "https://" + endpoint
		}
		clientOpts.BaseEndpoint = aws.String(endpoint)
	}
	return &S3Fetcher{client: s3.New(clientOpts)}
}

// Fetch reads the first maxBytes of an s3://bucket/key object.
func (f *S3Fetcher) Fetch(ctx context.Context, uri string, maxBytes int64) ([]byte, error) {
	bucket, key, err := ParseS3Path(uri)
	if err != nil {
		return nil, err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Range:  aws.String(fmt.Sprintf("bytes=0-%d", maxBytes-1)),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", uri, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", uri, err)
	}
	return data, nil
}

// ParseS3Path extracts bucket and key from an "s3://bucket/path/to/file" URI.
func ParseS3Path(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse S3 path %q: %w", uri, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("expected s3:// scheme, got %q in %q", u.Scheme, uri)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("empty key in S3 path %q", uri)
	}
	return bucket, key, nil
}
