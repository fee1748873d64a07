package logger

import (
	"gitlab.com/thinkfirst.net/internal/adapter/logging"
	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
)

// Logger is the process wide logger used where no logger is injected
var Logger primary.Logger = logging.NewZapLogger(false)

// SetLogger replaces the process wide logger, normally once from main
func SetLogger(l primary.Logger) {
	if l != nil {
		Logger = l
	}
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
