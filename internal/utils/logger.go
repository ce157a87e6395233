// internal/utils/logger.go
package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Production emits JSON, everything
// else the text formatter. Unknown levels fall back to info.
func NewLogger(level string, production bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}
