package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/errs"
)

// MaxUploadSize bounds a single image upload.
const MaxUploadSize = 10 << 20

var allowedImageTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores project images and client logos in a bucket and
// returns their public URL.
type S3Uploader struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
	prefix        string
}

// NewS3Uploader returns nil, nil when S3_BUCKET is not set.
func NewS3Uploader(ctx context.Context, cfg map[string]string) (*S3Uploader, error) {
	bucket := config.GetString(cfg, "S3_BUCKET", "")
	if bucket == "" {
		return nil, nil
	}
	region := config.GetString(cfg, "AWS_REGION", "us-east-1")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	baseURL := config.GetString(cfg, "S3_PUBLIC_BASE_URL", fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region))
	return newS3Uploader(s3.NewFromConfig(awsCfg), bucket, baseURL), nil
}

func newS3Uploader(client objectPutter, bucket, publicBaseURL string) *S3Uploader {
	return &S3Uploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		prefix:        "uploads",
	}
}

// Upload stores body under a fresh key and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, contentType string, size int64, body io.Reader) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", errs.NewInvalidFieldError("file", "unsupported content type "+contentType)
	}
	if size > MaxUploadSize {
		return "", errs.NewMaxBodySizeExceededError(MaxUploadSize)
	}

	key := path.Join(u.prefix, time.Now().UTC().Format("2006/01"), uuid.NewString()+ext)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", errs.NewInternalErrorWithCause("failed to store upload", err)
	}
	return u.publicBaseURL + "/" + key, nil
}
