// Package logging is a process-wide sugared zap logger.
package logging

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a log severity.
type Level zapcore.Level

var (
	DebugLevel = Level(zap.DebugLevel)
	InfoLevel  = Level(zap.InfoLevel)
	WarnLevel  = Level(zap.WarnLevel)
	ErrorLevel = Level(zap.ErrorLevel)

	// Debugf logs a formatted debug message
	Debugf logFormatFunc
	// Infof logs a formatted info message
	Infof logFormatFunc
	// Warnf logs a formatted warning
	Warnf logFormatFunc
	// Errorf logs a formatted error
	Errorf logFormatFunc
)

type logFormatFunc func(format string, args ...interface{})

var (
	cfg    zap.Config
	logger *zap.Logger
)

func init() {
	cfgJSON := []byte(`{
		"level": "info",
		"outputPaths": ["stderr"],
		"errorOutputPaths": ["stderr"],
		"encoding": "console",
		"encoderConfig": {
			"messageKey": "message",
			"levelKey": "level",
			"timeKey": "time",
			"timeEncoder": "iso8601",
			"levelEncoder": "lowercase"
		}
	}`)
	if err := json.Unmarshal(cfgJSON, &cfg); err != nil {
		panic(err)
	}

	var err error
	logger, err = cfg.Build()
	if err != nil {
		panic(err)
	}
	setSugar(logger.Sugar())
}

// SetSource tags every following line with the component name.
func SetSource(name string) {
	logger = logger.With(zap.String("source", name))
	setSugar(logger.Sugar())
}

func setSugar(sugar *zap.SugaredLogger) {
	Debugf = sugar.Debugf
	Infof = sugar.Infof
	Warnf = sugar.Warnf
	Errorf = sugar.Errorf
}

func SetLevel(lv Level) { cfg.Level.SetLevel(zapcore.Level(lv)) }

func GetLevel() Level { return Level(cfg.Level.Level()) }

// ParseLevel converts a level name; unknown names fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	}
	Warnf("unknown log level %q, using info", s)
	return InfoLevel
}

// Sync flushes buffered entries.
func Sync() { _ = logger.Sync() }
