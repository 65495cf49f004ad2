package config

import (
	"github.com/MonkyMars/gecho"
)

var logger *gecho.Logger

func InitializeLogger() *gecho.Logger {
	logger = gecho.NewLogger(gecho.NewConfig(
		gecho.WithShowCaller(true),
		gecho.WithLogLevel(gecho.ParseLogLevel(GetLogLevel())),
	))
	return logger
}

// GetLogger returns the process logger, creating a default one when InitializeLogger was never called
func GetLogger() *gecho.Logger {
	if logger == nil {
		logger = gecho.NewDefaultLogger()
	}
	return logger
}
