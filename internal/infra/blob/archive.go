package blob

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pranamithra/scheduler/internal/config"
)

// Archive stores generated documents.
type Archive interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type S3Archive struct {
	client *s3.Client
	bucket string
}

func NewS3Archive(cfg config.S3Config) *S3Archive {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Archive{
		client: s3.New(opts),
		bucket: cfg.Bucket,
	}
}

func (a *S3Archive) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}
	return nil
}

// Noop discards everything; used when no bucket is configured.
type Noop struct{}

func (Noop) Put(context.Context, string, []byte, string) error { return nil }

// ConfirmationKey is where a booking's printable confirmation is archived.
func ConfirmationKey(qrToken string) string {
	return "confirmations/" + qrToken + ".pdf"
}
