package sampling

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// AzureFetcher reads blob prefixes from Azure Blob Storage with ranged
// downloads. Only account-key authentication is supported.
type AzureFetcher struct {
	client *azblob.Client
}

// NewAzureFetcher builds a fetcher from shared-key credentials.
func NewAzureFetcher(accountName, accountKey string) (*AzureFetcher, error) {
	cred, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("create shared key credential: %w", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net", accountName)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure blob client: %w", err)
	}
	return &AzureFetcher{client: client}, nil
}

// Fetch reads the first maxBytes of an az://container/key blob.
func (f *AzureFetcher) Fetch(ctx context.Context, uri string, maxBytes int64) ([]byte, error) {
	container, key, err := ParseAzurePath(uri)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.DownloadStream(ctx, container, key, &azblob.DownloadStreamOptions{
		Range: blob.HTTPRange{Offset: 0, Count: maxBytes},
	})
	if err != nil {
		return nil, fmt.Errorf("download blob %q: %w", uri, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", uri, err)
	}
	return data, nil
}

// ParseAzurePath extracts container and key from an "az://container/path"
// URI.
func ParseAzurePath(uri string) (container, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse Azure path %q: %w", uri, err)
	}
	if u.Scheme != "az" {
		return "", "", fmt.Errorf("expected az:// scheme, got %q in %q", u.Scheme, uri)
	}
	container = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if container == "" {
		return "", "", fmt.Errorf("empty container in Azure path %q", uri)
	}
	if key == "" {
		return "", "", fmt.Errorf("empty key in Azure path %q", uri)
	}
	return container, key, nil
}
