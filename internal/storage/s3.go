package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectPutter is the slice of the S3 API the store depends on.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes uploads under an uploads/ prefix with collision-resistant
// keys and returns the object's public URL. Credentials come from the
// ambient AWS chain (env, shared config, or instance role).
type S3Store struct {
	client ObjectPutter
	bucket string
	region string
}

func NewS3Store(ctx context.Context, region, bucket string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", err
	}
	if len(body) > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	key := objectKey(originalFilename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if ct := mime.TypeByExtension(filepath.Ext(originalFilename)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// objectKey keeps only the original extension; the name itself is a
// timestamp plus a random suffix so concurrent uploads never collide.
func objectKey(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	return fmt.Sprintf("uploads/%d-%s%s", time.Now().UnixNano(), uuid.New().String()[:8], ext)
}
