package retryablehttp

import (
	"context"
	"errors"

	"github.com/Invicton-Labs/go-linkedlist/log"
	"github.com/hashicorp/go-retryablehttp"
)

type retryhttpLeveledLogger struct {
	ddl log.DynamicDefaultLogger
}

func fieldValue(keysAndValues []interface{}, key string) (interface{}, bool) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if keysAndValues[i] == key {
			return keysAndValues[i+1], true
		}
	}
	return nil, false
}

func (l *retryhttpLeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logger := l.ddl.Logger()
	errValue, hasError := fieldValue(keysAndValues, "error")
	if hasError {
		// Cancellation is reported by whoever cancelled the context.
		if err, ok := errValue.(error); ok && errors.Is(err, context.Canceled) {
			logger.Debugw(msg, keysAndValues...)
			return
		}
		// Request errors that carry a URL are retried, so they aren't errors yet.
		if _, hasURL := fieldValue(keysAndValues, "url"); hasURL {
			logger.Debugw(msg, keysAndValues...)
			return
		}
	}
	logger.Errorw(msg, keysAndValues...)
}
func (l *retryhttpLeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.ddl.Logger().Infow(msg, keysAndValues...)
}
func (l *retryhttpLeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.ddl.Logger().Debugw(msg, keysAndValues...)
}
func (l *retryhttpLeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.ddl.Logger().Warnw(msg, keysAndValues...)
}

// GetRetryhttpLeveledLogger returns a LeveledLogger that follows the default
// logger, tagged with a "retryable_http" field.
func GetRetryhttpLeveledLogger(loggerConfigFunc func(log.NewInput) log.NewInput) retryablehttp.LeveledLogger {
	return &retryhttpLeveledLogger{
		ddl: log.NewDynamicDefaultLogger(func(input log.NewInput) log.NewInput {
			input.InitialFields["retryable_http"] = true
			input.SkippedFrames += 1
			if loggerConfigFunc != nil {
				input = loggerConfigFunc(input)
			}
			return input
		}),
	}
}
