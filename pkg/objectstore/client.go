package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	apperrors "github.com/csdept/deptsite-api/pkg/errors"
	"github.com/csdept/deptsite-api/pkg/logger"
	"github.com/csdept/deptsite-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	DefaultRegion = "us-east-1"

	// maxObjectSize caps how much of an object is read into memory
	maxObjectSize = 4 * 1024 * 1024
)

// Config describes an S3-compatible bucket
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Endpoint        string // empty means AWS
	Region          string
	MaxAttempts     int
}

// Client reads objects from an S3-compatible bucket
type Client struct {
	s3Client *s3.Client
	bucket   string
	endpoint string
}

// NewClient creates an S3 client for the configured bucket.
// Custom endpoints use path-style addressing so MinIO and similar stores work.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, apperrors.InvalidInputError("bucket", "is required")
	}

	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	opts := s3.Options{
		Region: region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	if cfg.MaxAttempts > 0 {
		opts.RetryMaxAttempts = cfg.MaxAttempts
	}

	logger.Info("Object storage client initialized",
		zap.String("bucket", cfg.Bucket),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("region", region),
	)

	return &Client{
		s3Client: s3.New(opts),
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
	}, nil
}

// Bucket returns the bucket name the client reads from
func (c *Client) Bucket() string {
	return c.bucket
}

// GetObject downloads the object stored under key.
// A missing object is reported as ErrNotFound.
func (c *Client) GetObject(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	operation := "getObject"

	out, err := c.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		c.record(ctx, operation, "error", start, zap.Error(err), zap.String("key", key))

		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, apperrors.NotFoundError(fmt.Sprintf("object %s/%s", c.bucket, key))
		}
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxObjectSize+1))
	if err != nil {
		c.record(ctx, operation, "error", start, zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	if len(data) > maxObjectSize {
		c.record(ctx, operation, "error", start, zap.String("key", key), zap.String("reason", "too_large"))
		return nil, apperrors.InvalidInputError(key, fmt.Sprintf("object exceeds %d bytes", maxObjectSize))
	}

	c.record(ctx, operation, "success", start, zap.String("key", key), zap.Int("size_bytes", len(data)))
	return data, nil
}

func (c *Client) record(ctx context.Context, operation, status string, start time.Time, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	metrics.StorageOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.StorageOperationTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall(ctx, "object_storage", operation, status, duration, fields...)
}
