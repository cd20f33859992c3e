package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	loggerTimeFieldConstant              = "time"
	loggerMessageFieldConstant           = "message"
	loggerLevelFieldConstant             = "level"
	loggerNameFieldConstant              = "logger"
	loggerCallerFieldConstant            = "caller"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// SupportedLogLevels lists log levels in increasing severity.
func SupportedLogLevels() []string {
	return []string{logLevelDebugStringConstant, logLevelInfoStringConstant, logLevelWarnStringConstant, logLevelErrorStringConstant}
}

// SupportedLogFormats lists the accepted log encodings.
func SupportedLogFormats() []string {
	return []string{logFormatStructuredStringConstant, logFormatConsoleStringConstant}
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger writing to standard error.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	return factory.CreateLoggerWithWriter(requestedLogLevel, requestedLogFormat, os.Stderr)
}

// CreateLoggerWithWriter produces a zap.Logger honoring the requested log level and format and writing to outputWriter.
func (factory *LoggerFactory) CreateLoggerWithWriter(requestedLogLevel LogLevel, requestedLogFormat LogFormat, outputWriter io.Writer) (*zap.Logger, error) {
	normalizedLevel := LogLevel(strings.ToLower(strings.TrimSpace(string(requestedLogLevel))))
	zapLogLevel, levelExists := logLevelMapping[normalizedLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoder, encoderError := buildEncoder(LogFormat(strings.ToLower(strings.TrimSpace(string(requestedLogFormat)))))
	if encoderError != nil {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	if outputWriter == nil {
		outputWriter = os.Stderr
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(outputWriter)), zap.NewAtomicLevelAt(zapLogLevel))
	return zap.New(core), nil
}

func buildEncoder(format LogFormat) (zapcore.Encoder, error) {
	switch format {
	case LogFormatStructured:
		encoderConfiguration := zap.NewProductionEncoderConfig()
		encoderConfiguration.TimeKey = loggerTimeFieldConstant
		encoderConfiguration.MessageKey = loggerMessageFieldConstant
		encoderConfiguration.LevelKey = loggerLevelFieldConstant
		encoderConfiguration.NameKey = loggerNameFieldConstant
		encoderConfiguration.CallerKey = loggerCallerFieldConstant
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(encoderConfiguration), nil
	case LogFormatConsole:
		encoderConfiguration := zap.NewDevelopmentEncoderConfig()
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewConsoleEncoder(encoderConfiguration), nil
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, format)
	}
}
