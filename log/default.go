package log

import (
	"sync"

	"github.com/Invicton-Labs/go-linkedlist/collections"
	"github.com/Invicton-Labs/go-stackerr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type defaultLoggerHook func(logger Logger) stackerr.Error

type defaultLoggerHookRegistration struct {
	id string
}

func (dlhr defaultLoggerHookRegistration) Close() {
	defaultLoggerHooksLock.Lock()
	defer defaultLoggerHooksLock.Unlock()
	delete(defaultLoggerHooks, dlhr.id)
}

var defaultLoggerHooks = map[string]defaultLoggerHook{}
var defaultLoggerHooksLock sync.Mutex

// registerDefaultLoggerHook will register a hook function that will be called whenever
// the default logger is updated. This can be used for loggers that wrap the default
// logger in order to update those loggers whenever the default logger gets updated.
func registerDefaultLoggerHook(hook defaultLoggerHook) (defaultLoggerHookRegistration, stackerr.Error) {
	registration := defaultLoggerHookRegistration{
		id: uuid.New().String(),
	}
	// Run it immediately using the existing default logger
	if err := hook(getDefaultLogger()); err != nil {
		return defaultLoggerHookRegistration{}, err
	}
	defaultLoggerHooksLock.Lock()
	defer defaultLoggerHooksLock.Unlock()
	defaultLoggerHooks[registration.id] = hook
	return registration, nil
}

type DynamicDefaultLogger interface {
	Logger() Logger
	IsDevelopment() bool
	Close()
}
type dynamicDefaultLogger struct {
	lock         sync.Mutex
	registration defaultLoggerHookRegistration
	logger       Logger
	closeOut     func()
}

func (ddl *dynamicDefaultLogger) Logger() Logger {
	ddl.lock.Lock()
	defer ddl.lock.Unlock()
	return ddl.logger
}
func (ddl *dynamicDefaultLogger) Close() {
	ddl.lock.Lock()
	defer ddl.lock.Unlock()
	ddl.registration.Close()
}
func (ddl *dynamicDefaultLogger) IsDevelopment() bool {
	ddl.lock.Lock()
	defer ddl.lock.Unlock()
	return ddl.logger.Config().IsDevelopment
}

// NewDynamicDefaultLogger returns a logger that is rebuilt from the default logger's
// config (optionally modified by loggerConfigFunc) every time InitDefault is called.
// If the logger can't be built, it uses the default logger as is.
func NewDynamicDefaultLogger(loggerConfigFunc func(input NewInput) NewInput) DynamicDefaultLogger {
	ddl := &dynamicDefaultLogger{}
	hook := func(base Logger) stackerr.Error {
		input := base.Config()
		if loggerConfigFunc != nil {
			input = loggerConfigFunc(input)
		}
		l, closeOut, err := newLogger(input)
		if err != nil {
			return err
		}
		ddl.lock.Lock()
		previousClose := ddl.closeOut
		ddl.logger, ddl.closeOut = l, closeOut
		ddl.lock.Unlock()
		if previousClose != nil {
			previousClose()
		}
		return nil
	}
	var err stackerr.Error
	ddl.registration, err = registerDefaultLoggerHook(hook)
	if err != nil {
		ddl.logger = getDefaultLogger()
	}
	return ddl
}

var defaultLogger Logger
var defaultLoggerClose func()
var defaultLoggerLock sync.Mutex

func getDefaultLogger() Logger {
	defaultLoggerLock.Lock()
	defer defaultLoggerLock.Unlock()
	return defaultLogger
}

var Debugf func(template string, args ...interface{})
var Infof func(template string, args ...interface{})
var Warnf func(template string, args ...interface{})
var Errorf func(template string, args ...interface{})

var Debugw func(msg string, keysAndValues ...interface{})
var Infow func(msg string, keysAndValues ...interface{})
var Warnw func(msg string, keysAndValues ...interface{})
var Errorw func(msg string, keysAndValues ...interface{})

var Error func(err error)

var With func(args ...interface{}) Logger
var WithOptions func(opts ...zap.Option) Logger
var WithError func(err error) Logger

func init() {
	if err := InitDefault(NewInput{
		Level: zapcore.InfoLevel,
	}); err != nil {
		panic(err)
	}
}

// InitDefault will create a new logger with the given settings
// and will set it as the default global logger. This function
// IS NOT thread-safe and cannot be used while other routines
// are using the existing global default logger. The previous
// default logger's output is flushed and closed. If the new
// logger can't be built, the default logger is left unchanged.
func InitDefault(input NewInput) stackerr.Error {
	l, closeOut, err := newLogger(input)
	if err != nil {
		return err
	}

	defaultLoggerLock.Lock()

	previous, previousClose := defaultLogger, defaultLoggerClose
	defaultLogger, defaultLoggerClose = l, closeOut

	Debugf = defaultLogger.Debugf
	Infof = defaultLogger.Infof
	Warnf = defaultLogger.Warnf
	Errorf = defaultLogger.Errorf

	Debugw = defaultLogger.Debugw
	Infow = defaultLogger.Infow
	Warnw = defaultLogger.Warnw
	Errorw = defaultLogger.Errorw

	Error = defaultLogger.Error

	With = defaultLogger.With
	WithOptions = defaultLogger.WithOptions
	WithError = defaultLogger.WithError

	current := defaultLogger
	defaultLoggerLock.Unlock()

	if previous != nil {
		_ = previous.Sync()
	}
	if previousClose != nil {
		previousClose()
	}

	defaultLoggerHooksLock.Lock()
	hooks := make([]defaultLoggerHook, 0, len(defaultLoggerHooks))
	for _, hook := range defaultLoggerHooks {
		hooks = append(hooks, hook)
	}
	defaultLoggerHooksLock.Unlock()

	// Run all hooks
	for _, hook := range hooks {
		if err := hook(current); err != nil {
			return err
		}
	}
	return nil
}

// SweetenDefaultLogger will add fields to the default logger.
func SweetenDefaultLogger(fields map[string]any) stackerr.Error {
	input := getDefaultLogger().Config()
	input.InitialFields = collections.MergeMaps(input.InitialFields, fields)
	return InitDefault(input)
}

// UnsweetenDefaultLogger will remove fields from the default logger.
func UnsweetenDefaultLogger(fieldKeys []string) stackerr.Error {
	input := getDefaultLogger().Config()
	needsUpdate := false
	for _, key := range fieldKeys {
		if _, ok := input.InitialFields[key]; ok {
			needsUpdate = true
			delete(input.InitialFields, key)
		}
	}
	if needsUpdate {
		return InitDefault(input)
	}
	return nil
}

// Sync flushes the default logger.
func Sync() error {
	return getDefaultLogger().Sync()
}
