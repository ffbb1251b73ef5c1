package clients

import (
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// NewSecretsManagerClient creates the Secrets Manager service client.
func NewSecretsManagerClient(isLocal bool) *secretsmanager.Client {
	return secretsmanager.NewFromConfig(loadAWSConfig(isLocal))
}
