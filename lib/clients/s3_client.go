package clients

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3Client creates the S3 service client. Path-style addressing is kept
// for LocalStack compatibility.
func NewS3Client(isLocal bool) *s3.Client {
	cfg := loadAWSConfig(isLocal)

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
}
