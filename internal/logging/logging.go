package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the shared application logger. Level comes from LOG_LEVEL
// (default info); output is JSON on stdout so log shippers can ingest it.
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
