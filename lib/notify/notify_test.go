package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
)

type mockPoster struct {
	channels []string
	err      error
}

func (m *mockPoster) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	m.channels = append(m.channels, channelID)
	return "", "", m.err
}

type mockSecrets struct {
	token string
	err   error
	calls int
}

func (m *mockSecrets) GetSlackToken(ctx context.Context, secretARN string) (string, error) {
	m.calls++
	return m.token, m.err
}

func newNotifier(environment string, poster *mockPoster, secrets *mockSecrets) *SlackNotifier {
	return &SlackNotifier{
		HandlerName: "TestHandler",
		BaseChannel: "auth-cognito",
		Environment: environment,
		SecretARN:   "arn",
		Secrets:     secrets,
		Logger:      logrus.New(),
		NewClient:   func(token string) SlackPoster { return poster },
	}
}

func TestApply_PassesResponseThrough(t *testing.T) {
	handler := func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: 201, Body: `{"ok":true}`}, nil
	}
	poster := &mockPoster{}
	wrapped := Apply(handler, newNotifier("production", poster, &mockSecrets{token: "tok"}))

	response, err := wrapped(context.Background(), events.APIGatewayProxyRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 201, response.StatusCode)
	assert.Equal(t, `{"ok":true}`, response.Body)
	assert.Equal(t, []string{"auth-cognito"}, poster.channels)
}

func TestApply_HandlerErrorStillReturned(t *testing.T) {
	handlerErr := errors.New("backend unavailable")
	handler := func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{}, handlerErr
	}
	poster := &mockPoster{}
	wrapped := Apply(handler, newNotifier("production", poster, &mockSecrets{token: "tok"}))

	_, err := wrapped(context.Background(), events.APIGatewayProxyRequest{})

	assert.Equal(t, handlerErr, err)
	assert.Equal(t, []string{"auth-cognito-alerts"}, poster.channels)
}

func TestSlackNotifier_ChannelSelection(t *testing.T) {
	cases := []struct {
		name        string
		environment string
		statusCode  int
		wantChannel string
	}{
		{"production success", "production", 200, "auth-cognito"},
		{"production failure", "production", 500, "auth-cognito-alerts"},
		{"staging success", "staging", 200, "auth-cognito-staging"},
		{"staging failure", "staging", 502, "auth-cognito-staging"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			poster := &mockPoster{}
			notifier := newNotifier(tc.environment, poster, &mockSecrets{token: "tok"})

			notifier.After(context.Background(), events.APIGatewayProxyRequest{},
				events.APIGatewayProxyResponse{StatusCode: tc.statusCode}, nil)

			assert.Equal(t, []string{tc.wantChannel}, poster.channels)
		})
	}
}

func TestSlackNotifier_SecretFailureIsSwallowed(t *testing.T) {
	poster := &mockPoster{}
	notifier := newNotifier("production", poster, &mockSecrets{err: errors.New("access denied")})

	assert.NotPanics(t, func() {
		notifier.After(context.Background(), events.APIGatewayProxyRequest{},
			events.APIGatewayProxyResponse{StatusCode: 200}, nil)
	})
	assert.Empty(t, poster.channels)
}

func TestSlackNotifier_PostFailureIsSwallowed(t *testing.T) {
	poster := &mockPoster{err: errors.New("channel_not_found")}
	handler := func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: 200}, nil
	}
	wrapped := Apply(handler, newNotifier("production", poster, &mockSecrets{token: "tok"}))

	response, err := wrapped(context.Background(), events.APIGatewayProxyRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
}

func TestSlackNotifier_TokenFetchedOnce(t *testing.T) {
	poster := &mockPoster{}
	secrets := &mockSecrets{token: "tok"}
	notifier := newNotifier("production", poster, secrets)

	notifier.After(context.Background(), events.APIGatewayProxyRequest{},
		events.APIGatewayProxyResponse{StatusCode: 200}, nil)
	notifier.After(context.Background(), events.APIGatewayProxyRequest{},
		events.APIGatewayProxyResponse{StatusCode: 200}, nil)

	assert.Equal(t, 1, secrets.calls)
	assert.Len(t, poster.channels, 2)
}
