package log

import (
	"errors"
	"sort"
	"time"

	"github.com/Invicton-Labs/go-linkedlist/collections"
	"github.com/Invicton-Labs/go-stackerr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Error logs the error message at the Error level, with the fields of the
	// error (if it is a stackerr.Error) added as log fields.
	Error(err error)

	With(args ...interface{}) Logger
	WithOptions(opts ...zap.Option) Logger
	// WithError returns a new logger that carries the error message and the
	// error's fields on every entry.
	WithError(err error) Logger

	// WithAdditionalSkippedFrames will return a new logger that skips additional
	// frames when finding the caller and the stack trace.
	WithAdditionalSkippedFrames(skippedFrames int) Logger

	// Config gets the config values that can be used to re-create this logger
	Config() NewInput

	// Clone returns a copy of the logger
	Clone() Logger

	// Sync flushes any buffered log entries.
	Sync() error
}

type logger struct {
	*zap.SugaredLogger
	config NewInput
}

func (l logger) Clone() Logger {
	return logger{
		SugaredLogger: l.SugaredLogger.With(),
		config:        l.config.Clone(),
	}
}

func (l logger) Config() NewInput {
	return l.config.Clone()
}

// errorFields gets the fields of a stackerr.Error as alternating keys and
// values, sorted by key.
func errorFields(err error) []any {
	var serr stackerr.Error
	if s, ok := err.(stackerr.Error); ok {
		serr = s
	} else if !errors.As(err, &serr) {
		return nil
	}
	fields := serr.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvp := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kvp = append(kvp, k, fields[k])
	}
	return kvp
}

func (l logger) Error(err error) {
	if err == nil {
		return
	}
	l.SugaredLogger.WithOptions(zap.AddCallerSkip(1)).Errorw(err.Error(), errorFields(err)...)
}

func (l logger) With(args ...interface{}) Logger {
	return logger{l.SugaredLogger.With(args...), l.config.Clone()}
}

func (l logger) WithOptions(opts ...zap.Option) Logger {
	return logger{l.SugaredLogger.WithOptions(opts...), l.config.Clone()}
}

func (l logger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return l.With(append([]any{"error", err.Error()}, errorFields(err)...)...)
}

func (l logger) WithAdditionalSkippedFrames(skippedFrames int) Logger {
	return l.WithOptions(zap.AddCallerSkip(skippedFrames))
}

type NewInput struct {
	Name          string
	Level         zapcore.Level
	IsDevelopment bool
	InitialFields map[string]any
	SkippedFrames int
	// Output is a zap sink URL or path ("stdout", "stderr", a file path).
	// Defaults to "stdout".
	Output string
}

func (ni *NewInput) Clone() NewInput {
	return NewInput{
		Name:          ni.Name,
		Level:         ni.Level,
		IsDevelopment: ni.IsDevelopment,
		InitialFields: collections.CopyMap(ni.InitialFields),
		SkippedFrames: ni.SkippedFrames,
		Output:        ni.Output,
	}
}

// New builds a logger from the input. The output sink stays open for the life
// of the process; loggers that get rebuilt use newLogger to release theirs.
func New(input NewInput) (Logger, stackerr.Error) {
	l, _, err := newLogger(input)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// newLogger builds a logger and also returns the function that closes its
// output sink.
func newLogger(input NewInput) (logger, func(), stackerr.Error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktraces",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder

	if input.IsDevelopment {
		// If it's development mode, modify some settings
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	if input.Output == "" {
		input.Output = "stdout"
	}
	sink, closeOut, err := zap.Open(input.Output)
	if err != nil {
		return logger{}, nil, stackerr.Wrap(err).With(map[string]any{
			"output": input.Output,
		})
	}
	errSink, _, err := zap.Open("stderr")
	if err != nil {
		closeOut()
		return logger{}, nil, stackerr.Wrap(err)
	}

	buildOpts := []zap.Option{
		zap.ErrorOutput(errSink),
	}

	if input.IsDevelopment {
		buildOpts = append(buildOpts, zap.Development())
	}

	// Add the caller field
	buildOpts = append(buildOpts, zap.AddCaller())

	// Add the stacktraces
	buildOpts = append(buildOpts, zap.AddStacktrace(zap.ErrorLevel))

	if !input.IsDevelopment {
		buildOpts = append(buildOpts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewSamplerWithOptions(core, time.Second, 100, 100)
		}))
	}

	if input.InitialFields == nil {
		input.InitialFields = map[string]any{}
	}

	// Add any initial field as a build option
	if len(input.InitialFields) > 0 {
		fs := make([]zap.Field, 0, len(input.InitialFields))
		keys := make([]string, 0, len(input.InitialFields))
		for k := range input.InitialFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if f, ok := input.InitialFields[k].(zap.Field); ok {
				f.Key = k
				fs = append(fs, f)
			} else {
				fs = append(fs, zap.Any(k, input.InitialFields[k]))
			}
		}
		buildOpts = append(buildOpts, zap.Fields(fs...))
	}

	if input.SkippedFrames != 0 {
		buildOpts = append(buildOpts, zap.AddCallerSkip(input.SkippedFrames))
	}

	zapLogger := zap.New(
		zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(input.Level)),
		buildOpts...,
	)
	if input.Name != "" {
		zapLogger = zapLogger.Named(input.Name)
	}

	return logger{zapLogger.Sugar(), input}, closeOut, nil
}
