package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus logger. When logFilePath is
// empty or cannot be opened, output goes to stdout.
func InitLogger(logFilePath string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	if logFilePath == "" {
		logrus.SetOutput(os.Stdout)
		return
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logrus.Warnf("Failed to open log file (%s), using stdout: %v", logFilePath, err)
		logrus.SetOutput(os.Stdout)
		return
	}
	logrus.SetOutput(logFile)

	logrus.Info("Logger initialized")
}
