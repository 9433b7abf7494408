package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	AccessKeyID     string `json:"-" envconfig:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `json:"-" envconfig:"AWS_SECRET_ACCESS_KEY"`
	Region          string `envconfig:"AWS_REGION" default:"us-east-1"`
	Bucket          string `envconfig:"S3_BUCKET_NAME"`
}

// Uploader stores book cover images in S3 and hands back public URLs.
type Uploader struct {
	client *s3.Client
	bucket string
	region string
	log    *zap.Logger
}

func NewUploader(ctx context.Context, cfg Config, log *zap.Logger) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return &Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
		log:    log.Named("s3"),
	}, nil
}

// Upload puts the cover under a timestamped key and returns its public URL
// along with the key, so a failed catalog insert can clean the blob up.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, string, error) {
	key := fmt.Sprintf("covers/%d_%s_%s", time.Now().UnixMilli(), uuid.NewString()[:8], filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", errors.Wrap(err, "s3 put object")
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
	return url, key, nil
}

func (u *Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		u.log.Warn("delete object", zap.String("key", key), zap.Error(err))
		return errors.Wrap(err, "s3 delete object")
	}
	return nil
}
