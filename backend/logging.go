package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func setupLogging(level string) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	setLogLevel(level)
}

func setLogLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithError(err).Warnf("unknown log level %q, using info", level)
		parsed = logrus.InfoLevel
	}
	if parsed != logrus.GetLevel() {
		logrus.SetLevel(parsed)
	}
}
