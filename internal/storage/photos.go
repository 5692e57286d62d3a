package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/pro-scheduler/internal/config"
)

// ObjectPutter is the subset of the S3 client used by PhotoStore.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds a client from static credentials. A custom endpoint
// (MinIO, R2, ...) switches to path-style addressing.
func NewS3Client(cfg *config.Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

type PhotoStore struct {
	client        ObjectPutter
	bucket        string
	region        string
	publicBaseURL string
}

func NewPhotoStore(client ObjectPutter, bucket, region, publicBaseURL string) *PhotoStore {
	return &PhotoStore{
		client:        client,
		bucket:        bucket,
		region:        region,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Enabled is false when no bucket is configured or the store is nil.
func (s *PhotoStore) Enabled() bool {
	return s != nil && s.client != nil && s.bucket != ""
}

// PutProfessionalPhoto uploads a WebP image under a fresh key and returns
// its public URL. Keys are never reused so CDN caches need no purge.
func (s *PhotoStore) PutProfessionalPhoto(
	ctx context.Context,
	professionalID uint,
	webp []byte,
) (string, error) {

	key := fmt.Sprintf("professionals/%d/%s.webp", professionalID, uuid.NewString())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(webp),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	return s.URL(key), nil
}

func (s *PhotoStore) URL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
