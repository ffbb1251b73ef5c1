package main

import (
	"context"
	"errors"
	"testing"

	"mentorship/lib/apperrors"
	"mentorship/lib/models"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type mockIdentityRepository struct {
	tokens      *models.AuthTokens
	authErr     error
	verified    bool
	verifiedErr error
}

func (m *mockIdentityRepository) SignUp(ctx context.Context, email, password, name, role string) error {
	return errors.New("unexpected SignUp call")
}

func (m *mockIdentityRepository) ConfirmSignUp(ctx context.Context, email, code string) error {
	return errors.New("unexpected ConfirmSignUp call")
}

func (m *mockIdentityRepository) ResendConfirmationCode(ctx context.Context, email string) error {
	return errors.New("unexpected ResendConfirmationCode call")
}

func (m *mockIdentityRepository) InitiateAuth(ctx context.Context, email, password string) (*models.AuthTokens, error) {
	if m.authErr != nil {
		return nil, m.authErr
	}
	return m.tokens, nil
}

func (m *mockIdentityRepository) IsEmailVerified(ctx context.Context, email string) (bool, error) {
	return m.verified, m.verifiedErr
}

func (m *mockIdentityRepository) AdminDeleteUser(ctx context.Context, email string) error {
	return errors.New("unexpected AdminDeleteUser call")
}

func TestHandler_LoginSuccess(t *testing.T) {
	logger = logrus.New()
	identityRepository = &mockIdentityRepository{
		tokens:   &models.AuthTokens{AccessToken: "access", IDToken: "id", RefreshToken: "refresh"},
		verified: true,
	}

	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"email":"jane@example.com","password":"Secret123"}`,
	})

	assert.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
	assert.Contains(t, response.Body, `"access_token":"access"`)
	assert.Contains(t, response.Body, `"isConfirmed":true`)
}

func TestHandler_LoginBadCredentials(t *testing.T) {
	logger = logrus.New()
	identityRepository = &mockIdentityRepository{
		authErr: apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials"),
	}

	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"email":"jane@example.com","password":"wrong"}`,
	})

	assert.NoError(t, err)
	assert.Equal(t, 401, response.StatusCode)
	assert.Contains(t, response.Body, "invalid credentials")
}

func TestHandler_LoginMissingFields(t *testing.T) {
	logger = logrus.New()
	identityRepository = &mockIdentityRepository{}

	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"email":"jane@example.com"}`,
	})

	assert.NoError(t, err)
	assert.Equal(t, 400, response.StatusCode)
	assert.Contains(t, response.Body, "Email and password are required")
}

func TestHandler_LoginVerificationLookupFailureDegrades(t *testing.T) {
	logger = logrus.New()
	identityRepository = &mockIdentityRepository{
		tokens:      &models.AuthTokens{AccessToken: "access"},
		verifiedErr: errors.New("lookup failed"),
	}

	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"email":"jane@example.com","password":"Secret123"}`,
	})

	assert.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
	assert.Contains(t, response.Body, `"isConfirmed":false`)
}
