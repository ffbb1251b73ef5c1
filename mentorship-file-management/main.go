// Package main implements the file management Lambda.
//
// Endpoints:
//
//	POST   /upload    - store a base64-encoded file (no auth; used during registration)
//	GET    /download  - fetch a file owned by the caller
//	GET    /list      - list the caller's files
//	DELETE /delete    - delete a file owned by the caller
//
// Object keys follow the <email>/<fileName> convention; authenticated
// operations are always scoped to the caller's own prefix.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"mentorship/lib/api"
	"mentorship/lib/auth"
	"mentorship/lib/clients"
	"mentorship/lib/config"
	"mentorship/lib/constants"
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
	logger            *logrus.Logger
	cfg               *config.Config
	fileRepository    data.FileRepository
	secretsRepository data.SecretsRepository
)

func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"method":    request.HTTPMethod,
		"path":      request.Path,
		"operation": "Handler",
	}).Debug("Processing file management request")

	switch {
	case request.Path == "/upload" && request.HTTPMethod == http.MethodPost:
		return handleUpload(ctx, request), nil
	case request.Path == "/download" && request.HTTPMethod == http.MethodGet:
		return handleDownload(ctx, request), nil
	case request.Path == "/list" && request.HTTPMethod == http.MethodGet:
		return handleList(ctx, request), nil
	case request.Path == "/delete" && request.HTTPMethod == http.MethodDelete:
		return handleDelete(ctx, request), nil
	default:
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}
}

// handleUpload handles POST /upload
func handleUpload(ctx context.Context, request events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var body models.UploadRequest
	if err := api.ParseJSONBody(request.Body, &body); err != nil {
		return api.ErrorFrom(err, "Invalid request body", logger)
	}

	if body.FileName == "" || body.FileContent == "" {
		return api.ErrorResponse(http.StatusBadRequest, "file_name and file_content are required", logger)
	}
	if err := validators.ValidateEmail(body.Email); err != nil {
		return api.ErrorFrom(err, "Invalid email format", logger)
	}

	fileData, err := base64.StdEncoding.DecodeString(body.FileContent)
	if err != nil {
		return api.ErrorResponse(http.StatusBadRequest, "Invalid base64-encoded file content", logger)
	}

	key := fmt.Sprintf("%s/%s", body.Email, body.FileName)
	contentType := request.Headers[constants.HeaderFileContentType]
	if err := fileRepository.PutObject(ctx, key, fileData, contentType); err != nil {
		return api.ErrorFrom(err, "Failed to upload file", logger)
	}

	return api.SuccessResponse(http.StatusOK, models.UploadResponse{
		FileURL: fileRepository.ObjectURL(key),
	}, logger)
}

// handleDownload handles GET /download
func handleDownload(ctx context.Context, request events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	claims, err := auth.ClaimsFromRequest(request)
	if err != nil {
		return api.ErrorFrom(err, "Authentication failed", logger)
	}

	fileName := request.QueryStringParameters["file_name"]
	if err := validators.ValidateObjectKey(fileName); err != nil {
		return api.ErrorResponse(http.StatusBadRequest, "Invalid or missing file_name parameter", logger)
	}

	key := fmt.Sprintf("%s/%s", claims.Email, fileName)
	fileData, contentType, err := fileRepository.GetObject(ctx, key)
	if err != nil {
		return api.ErrorFrom(err, "Failed to fetch file", logger)
	}

	return api.BinaryResponse(http.StatusOK, base64.StdEncoding.EncodeToString(fileData), contentType)
}

// handleList handles GET /list
func handleList(ctx context.Context, request events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	claims, err := auth.ClaimsFromRequest(request)
	if err != nil {
		return api.ErrorFrom(err, "Authentication failed", logger)
	}

	entries, err := fileRepository.ListObjects(ctx, claims.Email+"/")
	if err != nil {
		return api.ErrorFrom(err, "Error listing files", logger)
	}

	return api.SuccessResponse(http.StatusOK, entries, logger)
}

// handleDelete handles DELETE /delete
func handleDelete(ctx context.Context, request events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	claims, err := auth.ClaimsFromRequest(request)
	if err != nil {
		return api.ErrorFrom(err, "Authentication failed", logger)
	}

	key := request.QueryStringParameters["key"]
	if err := validators.ValidateObjectKey(key); err != nil {
		return api.ErrorResponse(http.StatusBadRequest, "Invalid or missing key parameter", logger)
	}
	if !strings.HasPrefix(key, claims.Email+"/") {
		return api.ErrorResponse(http.StatusForbidden, "You are not authorized to delete this file", logger)
	}

	if err := fileRepository.DeleteObject(ctx, key); err != nil {
		return api.ErrorFrom(err, "Failed to delete file", logger)
	}

	return api.SuccessResponse(http.StatusOK, models.MessageResponse{
		Message: "Object deleted successfully",
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
		HandlerName: "FileHandler",
		BaseChannel: "s3-bucket",
		Environment: cfg.Environment,
		SecretARN:   cfg.SlackSecretARN,
		Secrets:     secretsRepository,
		Logger:      logger,
	}

	lambda.Start(notify.Apply(Handler, notifier))
}
