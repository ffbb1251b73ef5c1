package api

import (
	"encoding/json"
	"net/http"

	"mentorship/lib/apperrors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

func corsHeaders(contentType string) map[string]string {
	return map[string]string{
		"Content-Type":                 contentType,
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization,x-file-content-type,x-user-id",
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
	}
}

// SuccessResponse creates a successful API Gateway response
func SuccessResponse(statusCode int, data interface{}, logger *logrus.Logger) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		logger.WithError(err).Error("Failed to marshal response data")
		return ErrorResponse(http.StatusInternalServerError, "Internal server error", logger)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    corsHeaders("application/json"),
	}
}

// BinaryResponse creates a base64-encoded response for file downloads.
func BinaryResponse(statusCode int, base64Body, contentType string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      statusCode,
		Body:            base64Body,
		IsBase64Encoded: true,
		Headers:         corsHeaders(contentType),
	}
}

// ErrorResponse creates an error API Gateway response
func ErrorResponse(statusCode int, message string, logger *logrus.Logger) events.APIGatewayProxyResponse {
	errorData := map[string]interface{}{
		"error":   true,
		"message": message,
		"status":  statusCode,
	}

	body, err := json.Marshal(errorData)
	if err != nil {
		logger.WithError(err).Error("Failed to marshal error response")
		body = []byte(`{"error":true,"message":"Internal server error","status":500}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    corsHeaders("application/json"),
	}
}

// ErrorFrom maps a classified error to a response. Client-class errors keep
// their own message; anything unclassified gets the fallback message so
// provider details never leak to callers.
func ErrorFrom(err error, fallback string, logger *logrus.Logger) events.APIGatewayProxyResponse {
	statusCode := apperrors.StatusCode(err)
	if apperrors.IsClientError(err) {
		return ErrorResponse(statusCode, err.Error(), logger)
	}
	logger.WithError(err).Error(fallback)
	return ErrorResponse(statusCode, fallback, logger)
}

// ParseJSONBody decodes a request body into the given value.
func ParseJSONBody(body string, v interface{}) error {
	if body == "" {
		return apperrors.Wrap(apperrors.ErrBadRequest, "request body is missing")
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return apperrors.Wrap(apperrors.ErrBadRequest, "invalid request body")
	}
	return nil
}
