package clients

import (
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// NewCognitoIdentityProviderClient creates the Cognito service client.
func NewCognitoIdentityProviderClient(isLocal bool) *cognitoidentityprovider.Client {
	return cognitoidentityprovider.NewFromConfig(loadAWSConfig(isLocal))
}
