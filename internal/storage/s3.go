package storage

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/doggr/backend/internal/config"
)

// Uploader is the store-by-key contract profile-picture uploads need.
// Production uses the S3 client below; tests substitute a stub.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
}

// Client stores objects in an S3-compatible bucket (MinIO in development).
type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient builds the S3 client from config. The custom endpoint plus
// path-style addressing is what MinIO expects.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Storage.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &cfg.Storage.Endpoint
		o.UsePathStyle = true
	})

	return &Client{s3: client, bucket: cfg.Storage.Bucket}, nil
}

// Upload writes the object under the given key. Callers treat failure as a
// clean request error, never a crash.
func (c *Client) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %q: %w", key, err)
	}
	return nil
}
