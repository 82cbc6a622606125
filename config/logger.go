package config

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// InitLogger configures the shared logger. format is "json" (default) or
// "text"; an unknown level falls back to info.
func InitLogger(level, format string) *logrus.Logger {
	Log = logrus.New()

	if strings.EqualFold(format, "text") {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}

	Log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		if level != "" {
			defer Log.WithField("log_level", level).Warn("Unknown log level, using info")
		}
	}
	Log.SetLevel(lvl)

	return Log
}
