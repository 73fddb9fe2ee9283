package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"council-backend/internal/config"
)

// Client wraps an S3-compatible bucket used for payment slip files.
// A nil *Client is valid and means object storage is not configured;
// payments are then recorded without slip attachments.
type Client struct {
	s3     *s3.Client
	bucket string
}

// New builds the object storage client from config. Returns nil when the
// bucket or credentials are not configured.
func New(cfg *config.Config) *Client {
	if cfg.Storage.Bucket == "" || cfg.Storage.AccessKey == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		log.Printf("[Storage] Failed to configure S3 client: %v", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		}
	})

	return &Client{s3: client, bucket: cfg.Storage.Bucket}
}

// UploadSlip stores a payment slip and returns its object key.
func (c *Client) UploadSlip(ctx context.Context, leaseID int, paidAt time.Time, body []byte, contentType string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("object storage not configured")
	}

	key := fmt.Sprintf("slips/lease-%d/%s-%d", leaseID, paidAt.Format("2006-01-02"), time.Now().UnixNano())
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload slip: %w", err)
	}

	return key, nil
}

// FetchSlip reads a stored payment slip by key.
func (c *Client) FetchSlip(ctx context.Context, key string) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("object storage not configured")
	}

	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slip %s: %w", key, err)
	}
	defer result.Body.Close()

	return io.ReadAll(result.Body)
}
