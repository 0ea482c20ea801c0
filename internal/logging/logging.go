// Package logging configures the structured logger shared by every
// component of the server.
package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logrus.Logger configured with a full-timestamp text
// formatter, parsing level (one of "debug", "info", "warn", "error"),
// defaulting to info on an unrecognised value.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}
