package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"playdates_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = 5 * time.Minute

// S3Service handles photo storage: direct uploads for check-in batches and
// presigned URLs for client-side profile picture uploads.
type S3Service struct {
	Client *s3.Client
	Bucket string
}

// NewS3Service builds an S3 client from the default AWS config chain.
func NewS3Service(ctx context.Context, region, bucket string) (*S3Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Service{Client: s3.NewFromConfig(cfg), Bucket: bucket}, nil
}

// CheckInPhoto is one photo in a check-in upload batch.
type CheckInPhoto struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UploadImage uploads a single object and returns its key.
func (ss *S3Service) UploadImage(ctx context.Context, prefix, fileName, contentType string, data []byte) (string, error) {
	key := prefix + "/" + time.Now().Format("20060102150405") + "-" + fileName
	_, err := ss.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ss.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fileName, err)
	}
	return key, nil
}

// UploadCheckInPhotos uploads a check-in's photo batch all-or-nothing: if
// any upload fails, the already-uploaded objects are deleted and the
// check-in activity must not be posted.
func (ss *S3Service) UploadCheckInPhotos(ctx context.Context, checkInID string, photos []CheckInPhoto) ([]string, error) {
	if checkInID == "" {
		checkInID = uuid.NewString()
	}
	prefix := "check-ins/" + checkInID

	keys := make([]string, 0, len(photos))
	for _, photo := range photos {
		key, err := ss.UploadImage(ctx, prefix, photo.FileName, photo.ContentType, photo.Data)
		if err != nil {
			ss.deleteKeys(ctx, keys)
			return nil, fmt.Errorf("check-in photo batch aborted: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (ss *S3Service) deleteKeys(ctx context.Context, keys []string) {
	for _, key := range keys {
		_, _ = ss.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(ss.Bucket),
			Key:    aws.String(key),
		})
	}
}

// GenerateUploadURL generates a presigned URL for uploading a file.
func (ss *S3Service) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	key := "profile-pics/" + time.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(ss.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(ss.Client)
	presignedURL, err := presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return presignedURL.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a file.
func (ss *S3Service) GenerateReadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty object key: %w", models.ErrInvalidState)
	}
	params := &s3.GetObjectInput{
		Bucket: aws.String(ss.Bucket),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(ss.Client)
	presignedURL, err := presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign read: %w", err)
	}
	return presignedURL.URL, nil
}
