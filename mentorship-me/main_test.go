package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"mentorship/lib/apperrors"
	"mentorship/lib/models"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type mockProfileRepository struct {
	profile *models.UserProfile
	err     error
}

func (m *mockProfileRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	return errors.New("unexpected CreateProfile call")
}

func (m *mockProfileRepository) GetProfile(ctx context.Context, userID, profileType string) (*models.UserProfile, error) {
	return nil, errors.New("unexpected GetProfile call")
}

func (m *mockProfileRepository) GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	return m.profile, m.err
}

func (m *mockProfileRepository) UpdateProfile(ctx context.Context, userID, profileType string, patch models.ProfilePatch) error {
	return errors.New("unexpected UpdateProfile call")
}

func (m *mockProfileRepository) SoftDeleteProfile(ctx context.Context, userID, profileType string) error {
	return errors.New("unexpected SoftDeleteProfile call")
}

func meRequest(t *testing.T, claims map[string]interface{}) events.APIGatewayProxyRequest {
	payload, err := json.Marshal(claims)
	assert.NoError(t, err)
	token := base64.RawURLEncoding.EncodeToString(payload)
	return events.APIGatewayProxyRequest{
		Headers: map[string]string{
			"Authorization": fmt.Sprintf("Bearer header.%s.signature", token),
		},
	}
}

func TestHandler_Me(t *testing.T) {
	logger = logrus.New()
	profileRepository = &mockProfileRepository{
		profile: &models.UserProfile{
			UserID:      "user-1",
			ProfileType: "Mentor",
			Name:        "Jane Doe",
			Email:       "jane@example.com",
		},
	}

	request := meRequest(t, map[string]interface{}{
		"email":          "jane@example.com",
		"email_verified": true,
		"sub":            "user-1",
		"custom:role":    "Mentor",
	})

	response, err := Handler(context.Background(), request)

	assert.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
	assert.Contains(t, response.Body, `"profile_type":"Mentor"`)
	assert.Contains(t, response.Body, `"is_verified":true`)
	assert.Contains(t, response.Body, "Jane Doe")
}

func TestHandler_MeUnauthenticated(t *testing.T) {
	logger = logrus.New()
	profileRepository = &mockProfileRepository{}

	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 401, response.StatusCode)
}

func TestHandler_MeDeletedAccount(t *testing.T) {
	logger = logrus.New()
	profileRepository = &mockProfileRepository{
		err: apperrors.Wrap(apperrors.ErrGone, "user profile has been deleted"),
	}

	request := meRequest(t, map[string]interface{}{
		"email":       "jane@example.com",
		"sub":         "user-1",
		"custom:role": "Mentor",
	})

	response, err := Handler(context.Background(), request)

	assert.NoError(t, err)
	assert.Equal(t, 410, response.StatusCode)
}
