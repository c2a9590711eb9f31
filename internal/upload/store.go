package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/reserva-top/internal/config"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
)

// S3API is the subset of the S3 client used by Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds a client from static credentials. S3_ENDPOINT points it
// at an S3-compatible service (MinIO, R2) with path-style addressing.
func NewS3Client(cfg *config.Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

// Store grava as imagens dos profissionais no bucket.
type Store struct {
	client    S3API
	bucket    string
	publicURL string
	logger    *logging.Logger
}

func NewStore(client S3API, bucket, publicURL string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger,
	}
}

func (s *Store) Enabled() bool {
	return s != nil && s.client != nil && s.bucket != ""
}

// Upload converts the image and stores it under a fresh key, returning
// the public URL. Old objects are left in place.
func (s *Store) Upload(ctx context.Context, professionalID uint, kind Kind, r io.Reader) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("upload: storage not configured")
	}

	data, err := ToWebP(r, kind)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("professionals/%d/%s-%s.webp", professionalID, kind, uuid.NewString())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("upload: s3 put %s: %w", key, err)
	}

	s.logger.Info("image uploaded",
		"professional_id", professionalID,
		"kind", kind,
		"key", key,
		"bytes", len(data),
	)

	return s.objectURL(key), nil
}

func (s *Store) objectURL(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
