package clients

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// NewDynamoDBClient creates the DynamoDB service client.
func NewDynamoDBClient(isLocal bool) *dynamodb.Client {
	return dynamodb.NewFromConfig(loadAWSConfig(isLocal))
}
