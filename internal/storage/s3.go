// Package storage uploads public assets (app and service icons) to an
// S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	// PublicURL overrides the scheme://endpoint base of returned links
	PublicURL string
}

type ObjectStore struct {
	client *minio.Client
	bucket string
	base   string
}

// NewObjectStore connects and checks that the bucket exists
func NewObjectStore(ctx context.Context, opts Options) (*ObjectStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", opts.Bucket)
	}

	return &ObjectStore{
		client: client,
		bucket: opts.Bucket,
		base:   publicBase(opts),
	}, nil
}

func publicBase(opts Options) string {
	if opts.PublicURL != "" {
		return strings.TrimRight(opts.PublicURL, "/")
	}
	scheme := "http"
	if opts.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, opts.Endpoint, opts.Bucket)
}

// PutObject uploads r under key and returns its public URL
func (s *ObjectStore) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"uploaded-at": time.Now().Format(time.RFC3339)},
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return s.PublicURL(key), nil
}

// PublicURL is the link under which key is served
func (s *ObjectStore) PublicURL(key string) string {
	return buildPublicURL(s.base, key)
}

func buildPublicURL(base, key string) string {
	return fmt.Sprintf("%s/%s", base, url.PathEscape(path.Clean(strings.TrimLeft(key, "/"))))
}
