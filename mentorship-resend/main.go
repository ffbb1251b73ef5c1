// Package main implements the GET /resend Lambda: confirmation code
// re-delivery. The email arrives as a query parameter.
package main

import (
	"context"
	"net/http"
	"os"

	"mentorship/lib/api"
	"mentorship/lib/clients"
	"mentorship/lib/config"
	"mentorship/lib/data"
	"mentorship/lib/models"
	"mentorship/lib/notify"
	"mentorship/lib/util"
	"mentorship/lib/validators"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger             *logrus.Logger
	cfg                *config.Config
	identityRepository data.IdentityRepository
	secretsRepository  data.SecretsRepository
)

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	email := request.QueryStringParameters["email"]
	if email == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Email is required", logger), nil
	}
	if err := validators.ValidateEmail(email); err != nil {
		return api.ErrorFrom(err, "Email validation failed", logger), nil
	}

	if err := identityRepository.ResendConfirmationCode(ctx, email); err != nil {
		return api.ErrorFrom(err, "Failed to resend confirmation code", logger), nil
	}

	logger.WithFields(logrus.Fields{
		"email":     email,
		"operation": "Handler",
	}).Debug("Confirmation code resent")

	return api.SuccessResponse(http.StatusOK, models.MessageResponse{
		Message: "Confirmation code resent successfully",
	}, logger), nil
}

func setup() {
	logger = util.NewLogger(os.Getenv("LOG_LEVEL"))

	ssmRepository := &data.SSMDao{
		SSM:    clients.NewSSMClient(false),
		Logger: logger,
	}
	ssmParams, err := ssmRepository.GetParameters()
	if err != nil {
		logger.WithError(err).Fatal("Error while getting SSM params from parameter store")
	}

	cfg, err = config.Load(ssmParams)
	if err != nil {
		logger.WithError(err).Fatal("Error loading configuration")
	}

	identityRepository = &data.IdentityDao{
		Cognito:    clients.NewCognitoIdentityProviderClient(cfg.IsLocal),
		ClientID:   cfg.CognitoClientID,
		UserPoolID: cfg.UserPoolID,
		Logger:     logger,
	}
	secretsRepository = &data.SecretsDao{
		Client: clients.NewSecretsManagerClient(cfg.IsLocal),
		Logger: logger,
	}
}

func main() {
	setup()

	notifier := &notify.SlackNotifier{
		HandlerName: "ResendHandler",
		BaseChannel: "auth-cognito",
		Environment: cfg.Environment,
		SecretARN:   cfg.SlackSecretARN,
		Secrets:     secretsRepository,
		Logger:      logger,
	}

	lambda.Start(notify.Apply(Handler, notifier))
}
