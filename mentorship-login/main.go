// Package main implements the POST /login Lambda. Authentication runs the
// username/password flow against the user pool and reports the token set
// together with the account's email verification status.
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
	var body models.AuthRequest
	if err := api.ParseJSONBody(request.Body, &body); err != nil {
		return api.ErrorFrom(err, "Invalid request body", logger), nil
	}

	if body.Email == "" || body.Password == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Email and password are required", logger), nil
	}
	if err := validators.ValidateEmail(body.Email); err != nil {
		return api.ErrorFrom(err, "Email validation failed", logger), nil
	}

	tokens, err := identityRepository.InitiateAuth(ctx, body.Email, body.Password)
	if err != nil {
		return api.ErrorFrom(err, "Failed to authenticate with identity provider", logger), nil
	}

	// The login already succeeded; a verification lookup failure only
	// degrades the confirmed flag to false.
	isConfirmed, err := identityRepository.IsEmailVerified(ctx, body.Email)
	if err != nil {
		logger.WithError(err).WithField("operation", "Handler").
			Error("Failed to look up verification status")
		isConfirmed = false
	}

	logger.WithFields(logrus.Fields{
		"email":     body.Email,
		"confirmed": isConfirmed,
		"operation": "Handler",
	}).Debug("User authenticated")

	return api.SuccessResponse(http.StatusOK, models.LoginResponse{
		Email:        body.Email,
		IsConfirmed:  isConfirmed,
		AccessToken:  tokens.AccessToken,
		IDToken:      tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
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
		HandlerName: "LoginHandler",
		BaseChannel: "auth-cognito",
		Environment: cfg.Environment,
		SecretARN:   cfg.SlackSecretARN,
		Secrets:     secretsRepository,
		Logger:      logger,
	}

	lambda.Start(notify.Apply(Handler, notifier))
}
