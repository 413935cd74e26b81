package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger returns the logger for the command, writing
// JSON to a rotated log file if one was given or
// human-readable lines to STDERR otherwise. Debug
// messages are only written in verbose mode.
func (rc *rootCmdConfig) Logger() *zap.Logger {
	if rc.logger != nil {
		return rc.logger
	}
	level := zapcore.InfoLevel
	if rc.verbose {
		level = zapcore.DebugLevel
	}
	var core zapcore.Core
	if rc.logFile != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   rc.logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
		core = zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), w, level)
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.TimeKey = ""
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level)
	}
	rc.logger = zap.New(core)
	return rc.logger
}

// Logf logs a debug message, that is only written in verbose mode.
func (rc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rc.Logger().Sugar().Debugf(format, a...)
}

// Sync flushes buffered log entries.
func (rc *rootCmdConfig) Sync() {
	if rc.logger != nil {
		rc.logger.Sync()
	}
}
