package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	verbosityFlagName      = "verbosity"
	verbosityFlagShortName = "v"
)

// Logger wraps a logr.Logger backed by zap. Output goes to stderr by default
// so that stdout carries only the report.
type Logger struct {
	logr.Logger
	atomicLevel zap.AtomicLevel
	flush       func()
}

func New(name string) *Logger {
	return NewWithWriter(name, os.Stderr)
}

func NewWithWriter(name string, w io.Writer) *Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	atomicLevel := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), atomicLevel)
	zapLogger := zap.New(core)

	return &Logger{
		Logger:      zapr.NewLogger(zapLogger).WithName(name),
		atomicLevel: atomicLevel,
		flush: func() {
			_ = zapLogger.Sync()
		},
	}
}

// WithRunID tags every subsequent entry with a fresh run identifier.
func (l *Logger) WithRunID() *Logger {
	l.Logger = l.Logger.WithValues("run", uuid.NewString())
	return l
}

func (l *Logger) SetLevel(level zapcore.Level) {
	l.atomicLevel.SetLevel(level)
}

func (l *Logger) Level() zapcore.Level {
	return l.atomicLevel.Level()
}

func (l *Logger) Flush() {
	l.flush()
}

// AddLevelFlag registers --verbosity/-v on fs.
func (l *Logger) AddLevelFlag(fs *pflag.FlagSet) {
	fs.VarP(&levelFlag{logger: l}, verbosityFlagName, verbosityFlagShortName, "Log level: debug, info, error, or a positive verbosity")
}

// ParseLevel accepts debug, info, error or a positive logr verbosity (1..127).
func ParseLevel(value string) (zapcore.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil || v <= 0 || v > 127 {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", value)
	}
	// logr V(n) is zap level -n
	return zapcore.Level(-v), nil
}

type levelFlag struct {
	logger *Logger
	value  string
}

func (f *levelFlag) Set(value string) error {
	level, err := ParseLevel(value)
	if err != nil {
		return err
	}
	f.logger.SetLevel(level)
	f.value = value
	return nil
}

func (f *levelFlag) String() string { return f.value }

func (*levelFlag) Type() string { return "level" }
