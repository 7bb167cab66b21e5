package utils

import (
	"github.com/pkg/errors"      // Error wrapping
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// ConfigureLogger sets the global logrus formatter and level.
// Production logs are JSON, development logs are text with full timestamps.
func ConfigureLogger(isProd bool, level string) error {
	if isProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "parse log level %q", level)
	}
	logrus.SetLevel(lvl)
	return nil
}
