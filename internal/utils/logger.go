package utils

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	loggerOnce sync.Once
	logger     *zap.Logger
)

// Logger returns the process-wide zap logger. ENVIRONMENT=development switches
// to the console encoder.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if strings.EqualFold(strings.TrimSpace(os.Getenv("ENVIRONMENT")), "development") {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			l = zap.NewNop()
		}
		logger = l
	})
	return logger
}

// SetLogger replaces the shared logger (tests use zap.NewNop or an observer).
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	Logger().Info(message,
		zap.String("module", strings.ToUpper(module)),
		zap.String("action", action),
		zap.String("request_id", strings.TrimSpace(requestID)),
	)
}

// LogError is LogEvent at error level with the cause attached.
func LogError(requestID, module, action string, err error) {
	Logger().Error("failed",
		zap.String("module", strings.ToUpper(module)),
		zap.String("action", action),
		zap.String("request_id", strings.TrimSpace(requestID)),
		zap.Error(err),
	)
}
