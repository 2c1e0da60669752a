// Package storage moves attachment bytes in and out of MinIO and keeps the
// URLs stored on database rows consistent with what the buckets actually hold.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// Per-entity bucket names. Attachments were historically split across these,
// which is why the download path falls back to searching all buckets.
const (
	BucketSuratMasuk  = "suratmasuk"
	BucketSuratKeluar = "suratkeluar"
	BucketFaktur      = "faktur"
	BucketNotulen     = "notulen"
	BucketAsisten     = "asisten"
)

// ErrNotFound is returned when no bucket holds the requested file.
var ErrNotFound = errors.New("file not found in any bucket")

// Options configures the MinIO connection.
type Options struct {
	Endpoint  string
	Port      int
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Client wraps the MinIO client with the attachment naming and lifecycle
// rules. Construct one in main and inject it; it is safe for concurrent use.
type Client struct {
	mc      *minio.Client
	baseURL string
}

// New connects to MinIO. The client itself does not dial until the first
// operation, so connectivity failures surface per call.
func New(opts Options) (*Client, error) {
	addr := fmt.Sprintf("%s:%d", opts.Endpoint, opts.Port)
	mc, err := minio.New(addr, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	scheme := "http"
	if opts.UseSSL {
		scheme = "https"
	}
	return &Client{mc: mc, baseURL: scheme + "://" + addr}, nil
}

// KeyFromURL extracts the object key from a stored attachment URL (the final
// path segment). Returns "" for an empty URL.
func KeyFromURL(url string) string {
	if url == "" {
		return ""
	}
	if i := strings.LastIndex(url, "/"); i != -1 {
		return url[i+1:]
	}
	return url
}

func (c *Client) objectURL(bucket, key string) string {
	return c.baseURL + "/" + bucket + "/" + key
}

// ensureBucket checks existence before creating; MakeBucket on an existing
// bucket errors, so the check runs on every store.
func (c *Client) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := c.mc.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("bucket check %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := c.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %s: %w", bucket, err)
	}
	log.Info().Str("bucket", bucket).Msg("created storage bucket")
	return nil
}

// Store writes data under a collision-free key derived from the original file
// name and returns the public URL of the object.
func (c *Client) Store(ctx context.Context, bucket string, data []byte, fileName string) (string, error) {
	if err := c.ensureBucket(ctx, bucket); err != nil {
		return "", err
	}
	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), fileName)
	contentType := http.DetectContentType(data)
	_, err := c.mc.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return c.objectURL(bucket, key), nil
}

// Replace deletes the object referenced by oldURL (when set) and stores the
// replacement. A delete failure aborts the replace so the caller never ends up
// pointing a record at a dangling URL.
func (c *Client) Replace(ctx context.Context, bucket, oldURL string, data []byte, fileName string) (string, error) {
	if oldURL != "" {
		key := KeyFromURL(oldURL)
		if err := c.mc.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return "", fmt.Errorf("remove old object %s/%s: %w", bucket, key, err)
		}
	}
	return c.Store(ctx, bucket, data, fileName)
}

// Remove deletes the object referenced by url from bucket. An empty url is a
// no-op and an already-gone object counts as success.
func (c *Client) Remove(ctx context.Context, bucket, url string) error {
	key := KeyFromURL(url)
	if key == "" {
		return nil
	}
	if err := c.mc.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s/%s: %w", bucket, key, err)
	}
	return nil
}

// findBucket stats fileName in the preferred bucket first and falls back to
// scanning every bucket. Needed while old attachments still live in the
// original shared bucket.
func (c *Client) findBucket(ctx context.Context, bucket, fileName string) (string, minio.ObjectInfo, error) {
	if bucket != "" {
		if info, err := c.mc.StatObject(ctx, bucket, fileName, minio.StatObjectOptions{}); err == nil {
			return bucket, info, nil
		}
	}
	buckets, err := c.mc.ListBuckets(ctx)
	if err != nil {
		return "", minio.ObjectInfo{}, fmt.Errorf("list buckets: %w", err)
	}
	for _, b := range buckets {
		if b.Name == bucket {
			continue
		}
		if info, err := c.mc.StatObject(ctx, b.Name, fileName, minio.StatObjectOptions{}); err == nil {
			return b.Name, info, nil
		}
	}
	return "", minio.ObjectInfo{}, ErrNotFound
}

// ResolveStream returns a readable stream for fileName from whichever bucket
// holds it, along with the object info for content headers.
func (c *Client) ResolveStream(ctx context.Context, bucket, fileName string) (io.ReadCloser, minio.ObjectInfo, error) {
	found, info, err := c.findBucket(ctx, bucket, fileName)
	if err != nil {
		return nil, minio.ObjectInfo{}, err
	}
	obj, err := c.mc.GetObject(ctx, found, fileName, minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, fmt.Errorf("get %s/%s: %w", found, fileName, err)
	}
	return obj, info, nil
}

// ResolvePresignedURL returns a time-limited signed GET URL for fileName with
// the same cross-bucket fallback as ResolveStream.
func (c *Client) ResolvePresignedURL(ctx context.Context, bucket, fileName string, ttl time.Duration) (string, error) {
	found, _, err := c.findBucket(ctx, bucket, fileName)
	if err != nil {
		return "", err
	}
	u, err := c.mc.PresignedGetObject(ctx, found, fileName, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", found, fileName, err)
	}
	return u.String(), nil
}
