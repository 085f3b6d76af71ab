package aws

import (
	"context"
	"fmt"
	"os"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	uploadURLExpiry = 30 * time.Minute
	deleteURLExpiry = 10 * time.Minute
)

// S3 issues presigned credentials for direct client upload/delete of
// product images. The server itself never touches the bytes.
type S3 struct {
	presigner *s3.PresignClient
	bucket    string
	region    string
}

// PresignedUpload is what a client needs to PUT an image and reference it
// afterwards.
type PresignedUpload struct {
	PresignedURL string `json:"presignedUrl"`
	Key          string `json:"key"`
	PublicURL    string `json:"publicUrl"`
}

// NewS3 builds the client from AWS_REGION, AWS_S3_ACCESS_KEY_ID,
// AWS_S3_SECRET_ACCESS_KEY and AWS_S3_BUCKET.
func NewS3(ctx context.Context) (*S3, error) {
	region := os.Getenv("AWS_REGION")
	bucket := os.Getenv("AWS_S3_BUCKET")
	if region == "" || bucket == "" {
		return nil, fmt.Errorf("AWS_REGION and AWS_S3_BUCKET must be set")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_S3_ACCESS_KEY_ID"),
			os.Getenv("AWS_S3_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3{
		presigner: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		bucket:    bucket,
		region:    region,
	}, nil
}

// PresignUpload returns a time-limited PUT URL for a fresh object key
// images/<uuid>.<ext>.
func (s *S3) PresignUpload(ctx context.Context, fileExtension, contentType string) (*PresignedUpload, error) {
	key := fmt.Sprintf("images/%s.%s", uuid.NewString(), fileExtension)

	presigned, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(s.bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}, func(o *s3.PresignOptions) {
		o.Expires = uploadURLExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign put object: %w", err)
	}

	return &PresignedUpload{
		PresignedURL: presigned.URL,
		Key:          key,
		PublicURL:    s.PublicURL(key),
	}, nil
}

// PresignDelete returns a time-limited DELETE URL for an existing key.
func (s *S3) PresignDelete(ctx context.Context, key string) (string, error) {
	presigned, err := s.presigner.PresignDeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: sdkaws.String(s.bucket),
		Key:    sdkaws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = deleteURLExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign delete object: %w", err)
	}
	return presigned.URL, nil
}

func (s *S3) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
