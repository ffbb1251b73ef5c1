package util

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// SetLogLevel configures the logger level from a LOG_LEVEL-style string.
// Unknown values fall back to error to keep CloudWatch costs down.
func SetLogLevel(logger *logrus.Logger, level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.ErrorLevel)
	}
}

// NewLogger builds the JSON logger every Lambda uses, with the level taken
// from the given LOG_LEVEL value.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	SetLogLevel(logger, level)
	return logger
}
