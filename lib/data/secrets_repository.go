package data

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/sirupsen/logrus"
)

// SecretsManagerAPI is the subset of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsRepository defines the interface for secret retrieval
type SecretsRepository interface {
	GetSlackToken(ctx context.Context, secretARN string) (string, error)
}

// SecretsDao implements SecretsRepository against Secrets Manager.
type SecretsDao struct {
	Client SecretsManagerAPI
	Logger *logrus.Logger
}

// GetSlackToken fetches the secret and extracts its slack_token field.
func (dao *SecretsDao) GetSlackToken(ctx context.Context, secretARN string) (string, error) {
	output, err := dao.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretARN),
	})
	if err != nil {
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"secret_arn": secretARN,
			"operation":  "GetSlackToken",
		}).Error("Failed to retrieve secret")
		return "", err
	}
	if output.SecretString == nil {
		return "", errors.New("SecretString is missing from Secrets Manager response")
	}

	var secretData map[string]string
	if err := json.Unmarshal([]byte(*output.SecretString), &secretData); err != nil {
		return "", errors.New("failed to parse SecretString as JSON")
	}

	token := secretData["slack_token"]
	if token == "" {
		return "", errors.New("missing slack_token key in secret data")
	}
	return token, nil
}
