// Package config builds the explicit configuration struct every Lambda is
// wired with at cold start. Environment variables win over SSM Parameter
// Store values so local runs need no parameter store at all.
package config

import (
	"fmt"
	"os"
	"strconv"

	"mentorship/lib/constants"
)

// Config carries everything a handler needs from the environment. It is
// constructed once during init and passed by reference; nothing mutates it
// afterwards.
type Config struct {
	Environment         string
	UserProfilesTable   string
	MentorPackagesTable string
	BucketName          string
	CognitoClientID     string
	UserPoolID          string
	SlackSecretARN      string
	IsLocal             bool
}

// Load merges environment variables with SSM parameters. ssmParams may be
// nil when every value is provided through the environment.
func Load(ssmParams map[string]string) (*Config, error) {
	isLocal, _ := strconv.ParseBool(os.Getenv("IS_LOCAL"))

	cfg := &Config{
		Environment:         valueOr(os.Getenv("ENVIRONMENT"), "staging"),
		UserProfilesTable:   resolve("USER_PROFILES_TABLE", constants.USER_PROFILES_TABLE, ssmParams),
		MentorPackagesTable: resolve("MENTOR_PACKAGES_TABLE", constants.MENTOR_PACKAGES_TABLE, ssmParams),
		BucketName:          resolve("BUCKET_NAME", constants.BUCKET_NAME, ssmParams),
		CognitoClientID:     resolve("COGNITO_CLIENT_ID", constants.COGNITO_CLIENT_ID, ssmParams),
		UserPoolID:          resolve("COGNITO_USER_POOL_ID", constants.COGNITO_USER_POOL_ID, ssmParams),
		SlackSecretARN:      resolve("SLACK_WEBHOOK_SECRET_ARN", constants.SLACK_WEBHOOK_SECRET_ARN, ssmParams),
		IsLocal:             isLocal,
	}

	for name, value := range map[string]string{
		"USER_PROFILES_TABLE":   cfg.UserProfilesTable,
		"MENTOR_PACKAGES_TABLE": cfg.MentorPackagesTable,
		"BUCKET_NAME":           cfg.BucketName,
		"COGNITO_CLIENT_ID":     cfg.CognitoClientID,
		"COGNITO_USER_POOL_ID":  cfg.UserPoolID,
	} {
		if value == "" {
			return nil, fmt.Errorf("missing required configuration value %s", name)
		}
	}

	return cfg, nil
}

func resolve(envName, ssmPath string, ssmParams map[string]string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return ssmParams[ssmPath]
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
