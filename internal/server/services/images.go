package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	sc "github.com/dmitrijs2005/casiec/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3ImageStore uploads images to an S3-compatible bucket (MinIO in
// development) and serves them from the bucket's public path.
type S3ImageStore struct {
	client   *s3.Client
	bucket   string
	endpoint string
	now      func() time.Time
}

// NewS3ImageStore builds a store from the S3 settings in cfg.
func NewS3ImageStore(ctx context.Context, cfg *sc.Config) (*S3ImageStore, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,     // MINIO_ROOT_USER
			cfg.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3ImageStore{
		client:   client,
		bucket:   cfg.S3Bucket,
		endpoint: strings.TrimSuffix(cfg.S3BaseEndpoint, "/"),
		now:      time.Now,
	}, nil
}

// StorageKey returns a fresh object key for fileName, keeping its extension.
func StorageKey(d time.Time, fileName string) string {
	return fmt.Sprintf("images/%d/%02d/%02d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), strings.ToLower(path.Ext(fileName)))
}

func (s *S3ImageStore) Put(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	key := StorageKey(s.now(), fileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", err
	}

	return s.endpoint + "/" + s.bucket + "/" + key, nil
}
