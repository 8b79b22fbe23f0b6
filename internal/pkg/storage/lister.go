package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

// Object is a single entry returned by a folder listing
type Object struct {
	Key          string
	Name         string
	Size         int64
	LastModified time.Time
}

// ObjectLister lists the direct children of a folder, ordered by name ascending
type ObjectLister interface {
	ListObjects(ctx context.Context, bucket, folder string, limit int) ([]Object, error)
}

// S3Lister lists objects through the provider's S3-compatible API
type S3Lister struct {
	s3Client *s3.Client
}

// NewS3Lister creates a lister from storage configuration
func NewS3Lister(cfg *Config) (*S3Lister, error) {
	var provider aws.CredentialsProvider = aws.AnonymousCredentials{}
	if cfg.HasCredentials() {
		provider = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(provider),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			// S3-compatible providers need path-style addressing
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	log.Infof("[Storage] S3 lister ready (endpoint: %s)", cfg.S3Endpoint)
	return &S3Lister{s3Client: s3Client}, nil
}

// ListObjects returns the objects directly under folder. Nested folders are not descended.
func (l *S3Lister) ListObjects(ctx context.Context, bucket, folder string, limit int) ([]Object, error) {
	prefix := strings.Trim(folder, "/")
	if prefix != "" {
		prefix += "/"
	}

	out, err := l.s3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
		MaxKeys:   aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list s3://%s/%s: %w", bucket, prefix, err)
	}

	objects := make([]Object, 0, len(out.Contents))
	for _, item := range out.Contents {
		key := aws.ToString(item.Key)
		name := strings.TrimPrefix(key, prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		obj := Object{Key: key, Name: name, Size: aws.ToInt64(item.Size)}
		if item.LastModified != nil {
			obj.LastModified = *item.LastModified
		}
		objects = append(objects, obj)
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })
	return objects, nil
}
