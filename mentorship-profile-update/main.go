// Package main implements the PUT /profile-update Lambda. The request body
// is a typed patch of the mutable profile fields; the row is located through
// the email claim and updated with a partial expression.
package main

import (
	"context"
	"net/http"
	"os"

	"mentorship/lib/api"
	"mentorship/lib/auth"
	"mentorship/lib/clients"
	"mentorship/lib/config"
	"mentorship/lib/data"
	"mentorship/lib/models"
	"mentorship/lib/notify"
	"mentorship/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger            *logrus.Logger
	cfg               *config.Config
	profileRepository data.ProfileRepository
	secretsRepository data.SecretsRepository
)

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	claims, err := auth.ClaimsFromRequest(request)
	if err != nil {
		return api.ErrorFrom(err, "Authentication failed", logger), nil
	}

	var patch models.ProfilePatch
	if err := api.ParseJSONBody(request.Body, &patch); err != nil {
		return api.ErrorFrom(err, "Invalid request body", logger), nil
	}
	if patch.IsEmpty() {
		return api.ErrorResponse(http.StatusBadRequest, "at least one field must be provided", logger), nil
	}

	profile, err := profileRepository.GetProfileByEmail(ctx, claims.Email)
	if err != nil {
		return api.ErrorFrom(err, "Failed to query user profile", logger), nil
	}

	if err := profileRepository.UpdateProfile(ctx, profile.UserID, profile.ProfileType, patch); err != nil {
		return api.ErrorFrom(err, "Failed to update user profile", logger), nil
	}

	logger.WithFields(logrus.Fields{
		"user_id":   profile.UserID,
		"operation": "Handler",
	}).Debug("Profile updated")

	return api.SuccessResponse(http.StatusOK, map[string]string{
		"email": claims.Email,
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

	profileRepository = &data.ProfileDao{
		DB:     clients.NewDynamoDBClient(cfg.IsLocal),
		Table:  cfg.UserProfilesTable,
		Logger: logger,
	}
	secretsRepository = &data.SecretsDao{
		Client: clients.NewSecretsManagerClient(cfg.IsLocal),
		Logger: logger,
	}
}

func main() {
	setup()

	notifier := &notify.SlackNotifier{
		HandlerName: "UpdateProfileHandler",
		BaseChannel: "profile",
		Environment: cfg.Environment,
		SecretARN:   cfg.SlackSecretARN,
		Secrets:     secretsRepository,
		Logger:      logger,
	}

	lambda.Start(notify.Apply(Handler, notifier))
}
