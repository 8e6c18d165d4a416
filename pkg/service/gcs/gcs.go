package gcs

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/utils/safe"
	"google.golang.org/api/option"
)

const scheme = "gs://"

// Client reads and writes whole objects in Google Cloud Storage
type Client struct {
	client *storage.Client
}

// New creates a GCS client using Application Default Credentials unless options say otherwise
func New(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client")
	}
	return &Client{client: client}, nil
}

// Read downloads the whole object
func (c *Client) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	reader, err := c.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open GCS object",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	defer safe.Close(ctx, reader)

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read GCS object",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	return data, nil
}

// Write uploads data as the whole object, replacing any existing content
func (c *Client) Write(ctx context.Context, bucket, object string, data []byte, contentType string) error {
	w := c.client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write GCS object",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize GCS object",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// IsURL reports whether location is a gs:// URL
func IsURL(location string) bool {
	return strings.HasPrefix(location, scheme)
}

// ParseURL splits gs://bucket/path/to/object into bucket and object. The object may be
// empty, which callers treat as a prefix at the bucket root.
func ParseURL(location string) (bucket, object string, err error) {
	if !IsURL(location) {
		return "", "", goerr.New("GCS URL must start with gs://", goerr.V("url", location))
	}

	bucket, object, _ = strings.Cut(strings.TrimPrefix(location, scheme), "/")
	if bucket == "" {
		return "", "", goerr.New("GCS URL has no bucket", goerr.V("url", location))
	}
	return bucket, object, nil
}

// URL builds a gs:// URL
func URL(bucket, object string) string {
	return scheme + bucket + "/" + object
}
