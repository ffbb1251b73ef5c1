// Package main implements the POST /register Lambda.
//
// Registration is the one multi-step operation in the system:
//  1. Sign the user up with the Cognito user pool
//  2. Upload the profile picture to S3
//  3. Write the profile row to DynamoDB
//
// If step 2 or 3 fails, the completed steps are compensated in reverse
// order (delete the uploaded object, delete the Cognito user). Compensation
// failures are logged and never change the response already determined by
// the primary failure.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"mentorship/lib/api"
	"mentorship/lib/clients"
	"mentorship/lib/config"
	"mentorship/lib/constants"
	"mentorship/lib/data"
	"mentorship/lib/models"
	"mentorship/lib/notify"
	"mentorship/lib/saga"
	"mentorship/lib/util"
	"mentorship/lib/validators"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Globals wired once per cold start.
var (
	logger             *logrus.Logger
	cfg                *config.Config
	identityRepository data.IdentityRepository
	profileRepository  data.ProfileRepository
	fileRepository     data.FileRepository
	secretsRepository  data.SecretsRepository
)

// Handler processes the registration request end to end.
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := uuid.New().String()

	var body models.AuthRequest
	if err := api.ParseJSONBody(request.Body, &body); err != nil {
		return api.ErrorFrom(err, "Invalid request body", logger), nil
	}

	role, err := validators.ValidateRegistration(body.Name, body.Email, body.Password, body.Role)
	if err != nil {
		return api.ErrorFrom(err, "Validation failed", logger), nil
	}

	logger.WithFields(logrus.Fields{
		"correlation_id": correlationID,
		"email":          body.Email,
		"role":           role,
		"operation":      "Handler",
	}).Debug("Processing registration request")

	if err := identityRepository.SignUp(ctx, body.Email, body.Password, body.Name, role); err != nil {
		return api.ErrorFrom(err, "Failed to register user", logger), nil
	}

	sg := saga.New(logger, correlationID)
	sg.AddCompensation("delete identity record", func(ctx context.Context) error {
		return identityRepository.AdminDeleteUser(ctx, body.Email)
	})

	profilePicURL, err := uploadProfilePicture(ctx, request, &body, sg)
	if err != nil {
		sg.Compensate(ctx)
		return api.ErrorFrom(err, "Failed to upload profile picture", logger), nil
	}

	profile := &models.UserProfile{
		UserID:        uuid.New().String(),
		ProfileType:   role,
		Name:          body.Name,
		Email:         body.Email,
		ProfilePicURL: profilePicURL,
	}
	if err := profileRepository.CreateProfile(ctx, profile); err != nil {
		sg.Compensate(ctx)
		return api.ErrorFrom(err, "Failed to save user profile", logger), nil
	}

	logger.WithFields(logrus.Fields{
		"correlation_id": correlationID,
		"user_id":        profile.UserID,
		"profile_type":   profile.ProfileType,
		"operation":      "Handler",
	}).Info("User registered")

	return api.SuccessResponse(http.StatusCreated, models.MessageResponse{
		Message: "User registered and profile created successfully",
	}, logger), nil
}

// uploadProfilePicture stores the picture under the user's email prefix and
// registers the matching compensation. A request without a picture is valid
// and results in an empty URL.
func uploadProfilePicture(ctx context.Context, request events.APIGatewayProxyRequest, body *models.AuthRequest, sg *saga.Saga) (string, error) {
	if body.FileName == "" || body.ProfilePicture == "" {
		return "", nil
	}

	fileData, err := base64.StdEncoding.DecodeString(body.ProfilePicture)
	if err != nil {
		return "", fmt.Errorf("invalid base64-encoded file content: %w", err)
	}

	key := fmt.Sprintf("%s/%s", body.Email, body.FileName)
	contentType := request.Headers[constants.HeaderFileContentType]

	if err := fileRepository.PutObject(ctx, key, fileData, contentType); err != nil {
		return "", err
	}
	sg.AddCompensation("delete profile picture object", func(ctx context.Context) error {
		return fileRepository.DeleteObject(ctx, key)
	})

	return fileRepository.ObjectURL(key), nil
}

// setup wires the cold-start dependencies.
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
	profileRepository = &data.ProfileDao{
		DB:     clients.NewDynamoDBClient(cfg.IsLocal),
		Table:  cfg.UserProfilesTable,
		Logger: logger,
	}
	fileRepository = &data.FileDao{
		S3:     clients.NewS3Client(cfg.IsLocal),
		Bucket: cfg.BucketName,
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
		HandlerName: "RegisterHandler",
		BaseChannel: "auth-cognito",
		Environment: cfg.Environment,
		SecretARN:   cfg.SlackSecretARN,
		Secrets:     secretsRepository,
		Logger:      logger,
	}

	lambda.Start(notify.Apply(Handler, notifier))
}
