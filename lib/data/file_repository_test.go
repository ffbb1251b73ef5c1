package data

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"mentorship/lib/apperrors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type mockS3 struct {
	putObject     func(input *s3.PutObjectInput) (*s3.PutObjectOutput, error)
	getObject     func(input *s3.GetObjectInput) (*s3.GetObjectOutput, error)
	listObjectsV2 func(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error)
	deleteObject  func(input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error)
}

func (m *mockS3) PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putObject == nil {
		return nil, errors.New("unexpected PutObject call")
	}
	return m.putObject(input)
}

func (m *mockS3) GetObject(ctx context.Context, input *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getObject == nil {
		return nil, errors.New("unexpected GetObject call")
	}
	return m.getObject(input)
}

func (m *mockS3) ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if m.listObjectsV2 == nil {
		return nil, errors.New("unexpected ListObjectsV2 call")
	}
	return m.listObjectsV2(input)
}

func (m *mockS3) DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if m.deleteObject == nil {
		return nil, errors.New("unexpected DeleteObject call")
	}
	return m.deleteObject(input)
}

func newFileDao(client *mockS3) *FileDao {
	return &FileDao{S3: client, Bucket: "mentorship-files", Logger: logrus.New()}
}

func TestPutObject_DefaultsContentType(t *testing.T) {
	var captured *s3.PutObjectInput
	client := &mockS3{
		putObject: func(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
			captured = input
			return &s3.PutObjectOutput{}, nil
		},
	}
	dao := newFileDao(client)

	err := dao.PutObject(context.Background(), "jane@example.com/resume.pdf", []byte("content"), "")

	assert.NoError(t, err)
	assert.Equal(t, "application/octet-stream", *captured.ContentType)
	assert.Equal(t, "jane@example.com/resume.pdf", *captured.Key)
}

func TestGetObject_Success(t *testing.T) {
	client := &mockS3{
		getObject: func(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
			return &s3.GetObjectOutput{
				Body:        io.NopCloser(strings.NewReader("binary payload")),
				ContentType: aws.String("application/pdf"),
			}, nil
		},
	}
	dao := newFileDao(client)

	data, contentType, err := dao.GetObject(context.Background(), "jane@example.com/resume.pdf")

	assert.NoError(t, err)
	assert.Equal(t, []byte("binary payload"), data)
	assert.Equal(t, "application/pdf", contentType)
}

func TestGetObject_MissingKey(t *testing.T) {
	client := &mockS3{
		getObject: func(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
			return nil, &s3types.NoSuchKey{}
		},
	}
	dao := newFileDao(client)

	data, contentType, err := dao.GetObject(context.Background(), "jane@example.com/missing.pdf")

	assert.Nil(t, data)
	assert.Empty(t, contentType)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListObjects_StripsPrefixes(t *testing.T) {
	client := &mockS3{
		listObjectsV2: func(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
			assert.Equal(t, "jane@example.com/", *input.Prefix)
			return &s3.ListObjectsV2Output{
				Contents: []s3types.Object{
					{Key: aws.String("jane@example.com/resume.pdf"), Size: aws.Int64(1024)},
					{Key: aws.String("jane@example.com/abc123_avatar.png"), Size: aws.Int64(2048)},
				},
			}, nil
		},
	}
	dao := newFileDao(client)

	entries, err := dao.ListObjects(context.Background(), "jane@example.com/")

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "jane@example.com/resume.pdf", entries[0].Key)
	assert.Equal(t, "resume.pdf", entries[0].ItemName)
	assert.Equal(t, int64(1024), entries[0].Size)
	assert.Equal(t, "avatar.png", entries[1].ItemName)
}

func TestListObjects_Paginates(t *testing.T) {
	calls := 0
	client := &mockS3{
		listObjectsV2: func(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
			calls++
			if calls == 1 {
				assert.Nil(t, input.ContinuationToken)
				return &s3.ListObjectsV2Output{
					Contents:              []s3types.Object{{Key: aws.String("a/one.txt"), Size: aws.Int64(1)}},
					NextContinuationToken: aws.String("token-1"),
				}, nil
			}
			assert.Equal(t, "token-1", *input.ContinuationToken)
			return &s3.ListObjectsV2Output{
				Contents: []s3types.Object{{Key: aws.String("a/two.txt"), Size: aws.Int64(2)}},
			}, nil
		},
	}
	dao := newFileDao(client)

	entries, err := dao.ListObjects(context.Background(), "a/")

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, entries, 2)
}

func TestObjectURL(t *testing.T) {
	dao := newFileDao(&mockS3{})

	url := dao.ObjectURL("jane@example.com/resume.pdf")

	assert.Equal(t, "https://mentorship-files.s3.amazonaws.com/jane@example.com/resume.pdf", url)
}
