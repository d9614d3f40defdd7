// Package gcs implements blob.Store on Google Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/manojclinton/cricket-analytics-etl/internal/blob"
)

// Client is a blob.Store backed by a single GCS bucket.
type Client struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

// NewClient dials GCS. When credentialsFile is empty, Application Default
// Credentials are used.
func NewClient(ctx context.Context, bucket, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Client{client: client, bucket: client.Bucket(bucket)}, nil
}

func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	_, err := c.bucket.Object(name).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	return true, nil
}

func (c *Client) Download(ctx context.Context, name string) ([]byte, error) {
	r, err := c.bucket.Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%s: %w", name, blob.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (c *Client) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	w := c.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", name, err)
	}
	return nil
}

// Copy is a server-side object copy. Overwriting an object is atomic in GCS:
// readers see either the old or the new generation, never a partial write.
func (c *Client) Copy(ctx context.Context, src, dst string) error {
	copier := c.bucket.Object(dst).CopierFrom(c.bucket.Object(src))
	if _, err := copier.Run(ctx); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, name string) error {
	if err := c.bucket.Object(name).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (c *Client) List(ctx context.Context, prefix string) ([]string, error) {
	it := c.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// Close releases the underlying storage client.
func (c *Client) Close() error {
	return c.client.Close()
}
