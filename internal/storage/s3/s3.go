package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNoBucket is returned when no bucket is configured.
var ErrNoBucket = errors.New("s3: bucket not set")

// getObjectAPI is the slice of *s3.Client the word-list reader needs.
type getObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Client struct {
	api    getObjectAPI
	Bucket string
}

// NewClient initializes an S3-compatible client (AWS, R2, MinIO) for bucket.
// AWS_ENDPOINT is optional; credentials are static when AWS_ACCESS_KEY_ID is set.
func NewClient(ctx context.Context, bucket string) (*S3Client, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	endpoint := os.Getenv("AWS_ENDPOINT")

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(envOr("AWS_REGION", "auto")),
	}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, os.Getenv("AWS_SECRET_ACCESS_KEY"), ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = os.Getenv("AWS_S3_PATH_STYLE") == "true"
		}
	})

	return &S3Client{api: client, Bucket: bucket}, nil
}

// Open streams one object. The caller closes the body.
func (s *S3Client) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: get object %s: %w", key, err)
	}
	return out.Body, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
