// Package docstore persists generated letters and uploaded templates in
// object storage so recruiters can re-download documents later.
package docstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/talentohq/ats-server/internal/pkg/logger"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Store writes documents to an S3 bucket under a fixed key prefix.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// Config holds the object storage settings.
type Config struct {
	Bucket string
	Region string
	Prefix string // e.g. "letters/"
}

// New creates a store using the default AWS credential chain. Bucket
// access is probed at startup but a failed probe only logs a warning,
// since the bucket may not exist yet in fresh environments.
func New(ctx context.Context, cfg Config) (*Store, error) {
	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
		if region == "" {
			region = "us-east-1"
		}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		logger.Warn("bucket access check failed", "bucket", cfg.Bucket, "error", err.Error())
	}

	logger.Info("document store initialized", "bucket", cfg.Bucket, "prefix", cfg.Prefix, "region", region)
	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// SaveLetter uploads a generated letter for a candidate and returns its
// object key.
func (s *Store) SaveLetter(ctx context.Context, candidateID string, doc []byte) (string, error) {
	key := path.Join(s.prefix, "generated", candidateID,
		fmt.Sprintf("carta-%s.docx", time.Now().UTC().Format("20060102-150405")))
	if err := s.put(ctx, key, doc); err != nil {
		return "", err
	}
	return key, nil
}

// SaveTemplate uploads a reusable letter template and returns its key.
func (s *Store) SaveTemplate(ctx context.Context, name string, doc []byte) (string, error) {
	key := path.Join(s.prefix, "templates", name)
	if err := s.put(ctx, key, doc); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Store) put(ctx context.Context, key string, doc []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(doc),
		ContentType: aws.String(docxContentType),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}
