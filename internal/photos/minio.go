package photos

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioOptions configures the MinIO-backed photo service.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL overrides the endpoint in returned URLs, for setups
	// where clients reach the bucket through a CDN or reverse proxy.
	PublicBaseURL string
}

// MinioService stores photos in a MinIO (or any S3-compatible) bucket.
type MinioService struct {
	client  *minio.Client
	bucket  string
	baseURL string
	log     *slog.Logger
}

// NewMinio connects to object storage and ensures the bucket exists.
func NewMinio(ctx context.Context, opts MinioOptions, log *slog.Logger) (*MinioService, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, opts.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("ensuring bucket %s: %w", opts.Bucket, err)
		}
	}

	baseURL := strings.TrimSuffix(opts.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = client.EndpointURL().String()
	}

	log.Info("photo storage ready", "endpoint", opts.Endpoint, "bucket", opts.Bucket)

	return &MinioService{
		client:  client,
		bucket:  opts.Bucket,
		baseURL: baseURL,
		log:     log,
	}, nil
}

// Upload stores the image under a random object key, keeping the
// original extension, and returns the public URL.
func (s *MinioService) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("photos/%s%s", uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: http.DetectContentType(data)},
	)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	s.log.Debug("photo uploaded", "key", key, "size", len(data))
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key), nil
}

// Delete removes the object a previously returned URL points at. URLs
// that do not reference our bucket are ignored.
func (s *MinioService) Delete(ctx context.Context, url string) error {
	key, ok := s.objectKey(url)
	if !ok {
		s.log.Debug("skipping delete of foreign photo url", "url", url)
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}

	s.log.Debug("photo deleted", "key", key)
	return nil
}

func (s *MinioService) objectKey(url string) (string, bool) {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", false
	}
	key := url[idx+len(marker):]
	return key, key != ""
}
