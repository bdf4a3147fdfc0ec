package utils

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "vinyasaclub/config"
)

// R2Uploader stores generated reports in a Cloudflare R2 bucket.
type R2Uploader struct {
	cfg appconfig.R2Config

	initOnce sync.Once
	initErr  error
	client   *s3.Client
}

func NewR2Uploader(cfg appconfig.R2Config) *R2Uploader {
	return &R2Uploader{cfg: cfg}
}

// init builds the S3 client once
func (u *R2Uploader) init(ctx context.Context) error {
	u.initOnce.Do(func() {
		if !u.cfg.Enabled() {
			u.initErr = fmt.Errorf("missing required R2 configuration")
			return
		}

		awsCfg, err := config.LoadDefaultConfig(ctx,
			config.WithRegion("auto"), // Important for R2
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				u.cfg.AccessKeyID,
				u.cfg.SecretAccessKey,
				"",
			)),
		)
		if err != nil {
			u.initErr = fmt.Errorf("failed to load R2 config: %w", err)
			return
		}

		endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", u.cfg.AccountID)
		u.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	})
	return u.initErr
}

// Upload puts a file in the bucket and returns its public URL.
func (u *R2Uploader) Upload(ctx context.Context, fileBytes []byte, filename, contentType string) (string, error) {
	if err := u.init(ctx); err != nil {
		return "", err
	}

	key := filepath.Base(filename)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	return PublicObjectURL(u.cfg.PublicURL, key), nil
}

func PublicObjectURL(base, key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), url.PathEscape(key))
}
