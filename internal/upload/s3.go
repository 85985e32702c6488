// Package upload stores document files in S3-compatible object storage.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"govsite/internal/config"
)

// ErrTooLarge is returned when a file exceeds the configured size limit.
var ErrTooLarge = errors.New("file exceeds upload limit")

// Object describes a stored file.
type Object struct {
	Key         string
	URL         string
	ContentType string
	FileType    string // short type shown to visitors, e.g. "pdf"
	Size        int64
}

// Uploader stores a file and returns where it can be downloaded.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*Object, error)
}

// PutObjectAPI is the subset of the S3 client used by S3Uploader.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes documents to one bucket under date-partitioned keys.
type S3Uploader struct {
	client    PutObjectAPI
	bucket    string
	publicURL string
	maxBytes  int64
	now       func() time.Time
}

// NewS3Client builds an S3 client from configuration. A custom endpoint
// (MinIO, Ceph, ...) is used with path-style addressing.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewS3Uploader returns an uploader for bucket. publicURL is the prefix
// under which objects are served; when empty it is derived from endpoint.
func NewS3Uploader(client PutObjectAPI, bucket, endpoint, publicURL string, maxBytes int64) *S3Uploader {
	if publicURL == "" {
		if endpoint != "" {
			publicURL = strings.TrimRight(endpoint, "/") + "/" + bucket
		} else {
			publicURL = "https://" + bucket + ".s3.amazonaws.com"
		}
	}
	return &S3Uploader{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// Upload reads the whole file (up to the size limit), sniffs its type and
// stores it under documents/YYYY/MM/<uuid><ext>.
func (u *S3Uploader) Upload(ctx context.Context, filename string, r io.Reader) (*Object, error) {
	data, err := io.ReadAll(io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > u.maxBytes {
		return nil, ErrTooLarge
	}

	mt := mimetype.Detect(data)
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = mt.Extension()
	}

	d := u.now().UTC()
	key := fmt.Sprintf("documents/%04d/%02d/%s%s", d.Year(), d.Month(), uuid.New(), ext)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(mt.String()),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	return &Object{
		Key:         key,
		URL:         u.publicURL + "/" + key,
		ContentType: mt.String(),
		FileType:    fileType(ext, mt),
		Size:        int64(len(data)),
	}, nil
}

func fileType(ext string, mt *mimetype.MIME) string {
	if t := strings.TrimPrefix(ext, "."); t != "" {
		return t
	}
	if t := strings.TrimPrefix(mt.Extension(), "."); t != "" {
		return t
	}
	return "bin"
}
