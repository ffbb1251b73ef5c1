// Package auth extracts and decodes the identity claims carried by the
// Authorization header. The token's signature has already been verified by
// the gateway against the user pool; this package only decodes the payload
// segment. That trust boundary is deliberate and documented.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"mentorship/lib/apperrors"

	"github.com/aws/aws-lambda-go/events"
)

const bearerPrefix = "Bearer "

// Claims is the decoded payload of a user pool ID token.
type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Subject       string `json:"sub"`
	Role          string `json:"custom:role"`
}

// ExtractBearerToken pulls the raw token out of the Authorization header.
func ExtractBearerToken(request events.APIGatewayProxyRequest) (string, error) {
	header := request.Headers["Authorization"]
	if header == "" {
		header = request.Headers["authorization"]
	}
	if header == "" {
		return "", apperrors.Wrap(apperrors.ErrUnauthorized, "authorization header is missing")
	}
	if !strings.HasPrefix(header, bearerPrefix) || len(header) == len(bearerPrefix) {
		return "", apperrors.Wrap(apperrors.ErrUnauthorized, "invalid authorization token format")
	}
	return header[len(bearerPrefix):], nil
}

// DecodeClaims decodes the payload segment of a three-segment token and
// validates that the identity claims this API depends on are present.
func DecodeClaims(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid ID token format")
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "failed to decode ID token payload")
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "failed to parse ID token payload")
	}
	if claims.Email == "" {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "email not found in ID token")
	}
	if claims.Role == "" {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "role claim (custom:role) is missing in the token")
	}

	return &claims, nil
}

// ClaimsFromRequest combines header extraction and payload decoding.
func ClaimsFromRequest(request events.APIGatewayProxyRequest) (*Claims, error) {
	token, err := ExtractBearerToken(request)
	if err != nil {
		return nil, err
	}
	return DecodeClaims(token)
}
