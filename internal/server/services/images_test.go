package services

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/casiec/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s3Config() *sc.Config {
	return &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000/",
		S3Bucket:       "casiec",
	}
}

func stubS3(t *testing.T) *s3.Options {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPut := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}

	captured := &s3.Options{}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(captured)
		}
		return &s3.Client{}
	}
	return captured
}

func TestNewS3ImageStore(t *testing.T) {
	opts := stubS3(t)

	store, err := NewS3ImageStore(context.Background(), s3Config())
	require.NoError(t, err)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000/", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "casiec", store.bucket)
}

func TestNewS3ImageStore_LoadError(t *testing.T) {
	stubS3(t)
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no creds")
	}

	_, err := NewS3ImageStore(context.Background(), s3Config())
	require.ErrorContains(t, err, "load s3 config: no creds")
}

func TestS3ImageStore_Put(t *testing.T) {
	stubS3(t)
	store, err := NewS3ImageStore(context.Background(), s3Config())
	require.NoError(t, err)
	store.now = func() time.Time { return time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC) }

	var in *s3.PutObjectInput
	var body []byte
	putObject = func(_ *s3.Client, _ context.Context, got *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		in = got
		body, _ = io.ReadAll(got.Body)
		return &s3.PutObjectOutput{}, nil
	}

	url, err := store.Put(context.Background(), "Portrait.JPG", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "casiec", aws.ToString(in.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(in.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(in.ContentLength))
	assert.Equal(t, []byte("jpeg"), body)
	assert.Regexp(t, regexp.MustCompile(`^images/2026/10/04/[0-9a-f-]{36}\.jpg$`), aws.ToString(in.Key))
	assert.Equal(t, "http://127.0.0.1:9000/casiec/"+aws.ToString(in.Key), url)

	putObject = func(*s3.Client, context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("denied")
	}
	_, err = store.Put(context.Background(), "x.png", "", nil)
	require.EqualError(t, err, "denied")
}
