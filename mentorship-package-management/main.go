// Package main implements the package management Lambda.
//
// Endpoints:
//
//	POST   /add-package                 - create a package (mentors only)
//	GET    /list-packages               - list the caller's packages
//	GET    /get-package/{packageId}     - fetch one package
//	DELETE /delete-package/{packageId}  - delete an owned package
//
// The owning mentor is always the token's sub claim. An x-user-id header,
// when present, must agree with the claim; it is never trusted on its own.
package main

import (
	"context"
	"net/http"
	"os"

	"mentorship/lib/api"
	"mentorship/lib/auth"
	"mentorship/lib/clients"
	"mentorship/lib/config"
	"mentorship/lib/constants"
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
	packageRepository data.PackageRepository
	secretsRepository data.SecretsRepository
)

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"method":    request.HTTPMethod,
		"resource":  request.Resource,
		"operation": "Handler",
	}).Debug("Processing package management request")

	claims, err := auth.ClaimsFromRequest(request)
	if err != nil {
		return api.ErrorFrom(err, "Authentication failed", logger), nil
	}
	if claims.Subject == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Invalid ID token: missing user id (sub)", logger), nil
	}
	if userIDHeader := request.Headers[constants.HeaderUserID]; userIDHeader != "" && userIDHeader != claims.Subject {
		return api.ErrorResponse(http.StatusBadRequest, "x-user-id header does not match the token", logger), nil
	}

	switch {
	case request.Resource == "/add-package" && request.HTTPMethod == http.MethodPost:
		return handleAddPackage(ctx, request, claims), nil
	case request.Resource == "/list-packages" && request.HTTPMethod == http.MethodGet:
		return handleListPackages(ctx, claims), nil
	case request.Resource == "/get-package/{packageId}" && request.HTTPMethod == http.MethodGet:
		return handleGetPackage(ctx, request, claims), nil
	case request.Resource == "/delete-package/{packageId}" && request.HTTPMethod == http.MethodDelete:
		return handleDeletePackage(ctx, request, claims), nil
	default:
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}
}

// handleAddPackage handles POST /add-package
func handleAddPackage(ctx context.Context, request events.APIGatewayProxyRequest, claims *auth.Claims) events.APIGatewayProxyResponse {
	if claims.Role != constants.RoleMentor {
		return api.ErrorResponse(http.StatusForbidden, "Only mentors can create packages", logger)
	}

	var body models.CreatePackageRequest
	if err := api.ParseJSONBody(request.Body, &body); err != nil {
		return api.ErrorFrom(err, "Invalid request body", logger)
	}
	if body.PackageName == "" || body.Price <= 0 {
		return api.ErrorResponse(http.StatusBadRequest, "PackageName and Price are required", logger)
	}

	pkg, err := packageRepository.CreatePackage(ctx, &models.MentorPackage{
		MentorID:    claims.Subject,
		PackageName: body.PackageName,
		Description: body.Description,
		Price:       body.Price,
	})
	if err != nil {
		return api.ErrorFrom(err, "Failed to create package", logger)
	}

	return api.SuccessResponse(http.StatusCreated, models.CreatePackageResponse{
		Message:   "Package created successfully",
		PackageID: pkg.PackageID,
	}, logger)
}

// handleListPackages handles GET /list-packages
func handleListPackages(ctx context.Context, claims *auth.Claims) events.APIGatewayProxyResponse {
	packages, err := packageRepository.GetPackagesByMentor(ctx, claims.Subject)
	if err != nil {
		return api.ErrorFrom(err, "Failed to fetch packages", logger)
	}

	return api.SuccessResponse(http.StatusOK, models.PackageListResponse{
		Packages: packages,
	}, logger)
}

// handleGetPackage handles GET /get-package/{packageId}
func handleGetPackage(ctx context.Context, request events.APIGatewayProxyRequest, claims *auth.Claims) events.APIGatewayProxyResponse {
	packageID := request.PathParameters["packageId"]
	if packageID == "" {
		return api.ErrorResponse(http.StatusBadRequest, "PackageId is required in the URL", logger)
	}

	pkg, err := packageRepository.GetPackage(ctx, claims.Subject, packageID)
	if err != nil {
		return api.ErrorFrom(err, "Failed to fetch package", logger)
	}

	return api.SuccessResponse(http.StatusOK, pkg, logger)
}

// handleDeletePackage handles DELETE /delete-package/{packageId}
func handleDeletePackage(ctx context.Context, request events.APIGatewayProxyRequest, claims *auth.Claims) events.APIGatewayProxyResponse {
	packageID := request.PathParameters["packageId"]
	if packageID == "" {
		return api.ErrorResponse(http.StatusBadRequest, "PackageId is required in the URL", logger)
	}

	if err := packageRepository.DeletePackage(ctx, claims.Subject, packageID); err != nil {
		return api.ErrorFrom(err, "Failed to delete package", logger)
	}

	return api.SuccessResponse(http.StatusOK, models.MessageResponse{
		Message: "Package deleted successfully",
	}, logger)
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

	packageRepository = &data.PackageDao{
		DB:     clients.NewDynamoDBClient(cfg.IsLocal),
		Table:  cfg.MentorPackagesTable,
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
		HandlerName: "PackageHandler",
		BaseChannel: "packages",
		Environment: cfg.Environment,
		SecretARN:   cfg.SlackSecretARN,
		Secrets:     secretsRepository,
		Logger:      logger,
	}

	lambda.Start(notify.Apply(Handler, notifier))
}
