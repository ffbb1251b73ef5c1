// Package main implements the GET /me Lambda: the caller's own profile,
// located by the email claim of the bearer token.
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
	"mentorship/lib/util"
	"mentorship/lib/validators"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger            *logrus.Logger
	cfg               *config.Config
	profileRepository data.ProfileRepository
)

// MeResponse is the GET /me body.
type MeResponse struct {
	Email       string              `json:"email"`
	ProfileType string              `json:"profile_type"`
	IsVerified  bool                `json:"is_verified"`
	Details     *models.UserProfile `json:"details"`
}

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	claims, err := auth.ClaimsFromRequest(request)
	if err != nil {
		return api.ErrorFrom(err, "Authentication failed", logger), nil
	}
	if err := validators.ValidateEmail(claims.Email); err != nil {
		return api.ErrorFrom(err, "Invalid email format", logger), nil
	}

	profile, err := profileRepository.GetProfileByEmail(ctx, claims.Email)
	if err != nil {
		return api.ErrorFrom(err, "Failed to fetch user profile", logger), nil
	}

	logger.WithFields(logrus.Fields{
		"user_id":      profile.UserID,
		"profile_type": profile.ProfileType,
		"operation":    "Handler",
	}).Debug("Fetched own profile")

	return api.SuccessResponse(http.StatusOK, MeResponse{
		Email:       claims.Email,
		ProfileType: profile.ProfileType,
		IsVerified:  claims.EmailVerified,
		Details:     profile,
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
}

func main() {
	setup()
	lambda.Start(Handler)
}
