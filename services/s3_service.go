package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PetPhotoPrefix is the key prefix under which pet photos are uploaded
const PetPhotoPrefix = "pet-photos/"

// ErrUnsupportedFileType rejects non-image uploads
var ErrUnsupportedFileType = errors.New("only image files are allowed")

// Presigner is the subset of s3.PresignClient used for photo URLs
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Service hands out presigned URLs for pet photos
type S3Service struct {
	Presigner Presigner
	Bucket    string
	TTL       time.Duration
	Now       func() time.Time
}

// NewS3Service builds an S3Service over a presign client for cfg
func NewS3Service(cfg aws.Config, bucket string, ttl time.Duration) *S3Service {
	return &S3Service{
		Presigner: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		Bucket:    bucket,
		TTL:       ttl,
	}
}

func (s *S3Service) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 5 * time.Minute
}

// GenerateUploadURL generates a presigned URL for uploading a pet photo
func (s *S3Service) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	if !strings.HasPrefix(fileType, "image/") {
		return "", "", ErrUnsupportedFileType
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	key := PetPhotoPrefix + now().UTC().Format("20060102150405") + "-" + uuid.NewString() + strings.ToLower(path.Ext(path.Base(fileName)))
	req, err := s.Presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(s.ttl()))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return req.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a pet photo
func (s *S3Service) GenerateReadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: key is required", ErrInvalidInput)
	}
	req, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl()))
	if err != nil {
		return "", fmt.Errorf("failed to presign read: %w", err)
	}
	return req.URL, nil
}
