package data

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"mentorship/lib/apperrors"
	"mentorship/lib/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"
)

// Uploaded keys carry a generated identifier prefix in older revisions;
// listing strips it from the displayed name.
var generatedPrefixRegex = regexp.MustCompile(`^[^_]+_`)

// S3API is the subset of the S3 client the file repository uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// FileRepository defines the interface for object store operations
type FileRepository interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, string, error)
	ListObjects(ctx context.Context, prefix string) ([]models.FileEntry, error)
	DeleteObject(ctx context.Context, key string) error
	ObjectURL(key string) string
}

// FileDao implements FileRepository against a single bucket.
type FileDao struct {
	S3     S3API
	Bucket string
	Logger *logrus.Logger
}

// PutObject stores an object with last-writer-wins semantics.
func (dao *FileDao) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := dao.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(dao.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"key":       key,
			"operation": "PutObject",
		}).Error("Failed to upload object")
		return err
	}
	return nil
}

// GetObject fetches an object's bytes and content type.
func (dao *FileDao) GetObject(ctx context.Context, key string) ([]byte, string, error) {
	output, err := dao.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(dao.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, "", apperrors.Wrap(apperrors.ErrNotFound, "file not found")
		}
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"key":       key,
			"operation": "GetObject",
		}).Error("Failed to fetch object")
		return nil, "", err
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := "application/octet-stream"
	if output.ContentType != nil && *output.ContentType != "" {
		contentType = *output.ContentType
	}
	return data, contentType, nil
}

// ListObjects lists objects under a prefix. Item names are reported without
// the prefix or any generated identifier prefix.
func (dao *FileDao) ListObjects(ctx context.Context, prefix string) ([]models.FileEntry, error) {
	entries := []models.FileEntry{}
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(dao.Bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	for {
		output, err := dao.S3.ListObjectsV2(ctx, input)
		if err != nil {
			dao.Logger.WithError(err).WithFields(logrus.Fields{
				"prefix":    prefix,
				"operation": "ListObjects",
			}).Error("Failed to list objects")
			return nil, err
		}

		for _, item := range output.Contents {
			key := aws.ToString(item.Key)
			name := strings.TrimPrefix(key, prefix)
			name = generatedPrefixRegex.ReplaceAllString(name, "")
			entries = append(entries, models.FileEntry{
				Key:      key,
				ItemName: name,
				Size:     aws.ToInt64(item.Size),
			})
		}

		if output.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = output.NextContinuationToken
	}
	return entries, nil
}

// DeleteObject removes an object.
func (dao *FileDao) DeleteObject(ctx context.Context, key string) error {
	_, err := dao.S3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(dao.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return apperrors.Wrap(apperrors.ErrNotFound, "file not found")
		}
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"key":       key,
			"operation": "DeleteObject",
		}).Error("Failed to delete object")
		return err
	}
	return nil
}

// ObjectURL returns the public URL of a stored object.
func (dao *FileDao) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", dao.Bucket, key)
}
