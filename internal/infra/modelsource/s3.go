package modelsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const maxArtifactBytes = 64 << 20

// S3Source downloads the artifact from S3-compatible object storage.
type S3Source struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// NewS3Source constructs the object storage adapter.
func NewS3Source(endpoint, accessKey, secretKey, bucket, region, key string, logger *slog.Logger) (*S3Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(bucket) == "" || strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("s3 model source requires bucket and key")
	}
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Source{
		client: client,
		bucket: bucket,
		key:    strings.TrimPrefix(key, "/"),
		logger: logger.With("component", "modelsource.s3"),
	}, nil
}

// Read downloads the artifact object.
func (s *S3Source) Read(ctx context.Context) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.Describe(), err)
	}
	if info.Size > maxArtifactBytes {
		return nil, fmt.Errorf("artifact %s is %d bytes, limit is %d", s.Describe(), info.Size, maxArtifactBytes)
	}
	data, err := io.ReadAll(io.LimitReader(obj, maxArtifactBytes))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", s.Describe(), err)
	}
	s.logger.Info("model artifact downloaded", "bucket", s.bucket, "key", s.key, "bytes", len(data), "etag", info.ETag)
	return data, nil
}

// Describe names the source for logs.
func (s *S3Source) Describe() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// sanitizeEndpoint strips schemes and paths to satisfy minio.New.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}
