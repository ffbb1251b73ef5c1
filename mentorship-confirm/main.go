// Package main implements the POST /confirm Lambda: sign-up confirmation
// code submission against the user pool.
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
	var body models.ConfirmRequest
	if err := api.ParseJSONBody(request.Body, &body); err != nil {
		return api.ErrorFrom(err, "Invalid request body", logger), nil
	}

	if body.Email == "" || body.Code == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Email and confirmation code are required", logger), nil
	}
	if err := validators.ValidateEmail(body.Email); err != nil {
		return api.ErrorFrom(err, "Email validation failed", logger), nil
	}

	if err := identityRepository.ConfirmSignUp(ctx, body.Email, body.Code); err != nil {
		return api.ErrorFrom(err, "Failed to confirm sign-up", logger), nil
	}

	logger.WithFields(logrus.Fields{
		"email":     body.Email,
		"operation": "Handler",
	}).Debug("Email confirmed")

	return api.SuccessResponse(http.StatusOK, models.MessageResponse{
		Message: "Email confirmed successfully",
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
		HandlerName: "ConfirmHandler",
		BaseChannel: "auth-cognito",
		Environment: cfg.Environment,
		SecretARN:   cfg.SlackSecretARN,
		Secrets:     secretsRepository,
		Logger:      logger,
	}

	lambda.Start(notify.Apply(Handler, notifier))
}
