package clients

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

const localstackEndpoint = "http://docker.for.mac.host.internal:4566"

func awsRegion() string {
	if region := os.Getenv("AWS_REGION"); region != "" {
		return region
	}
	return "us-east-1"
}

func loadAWSConfig(isLocal bool) aws.Config {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion()),
	)
	if err != nil {
		panic("failed to load AWS configuration: " + err.Error())
	}

	if isLocal {
		cfg.BaseEndpoint = aws.String(localstackEndpoint)
	}
	return cfg
}

func NewSSMClient(isLocal bool) *ssm.Client {
	return ssm.NewFromConfig(loadAWSConfig(isLocal))
}
