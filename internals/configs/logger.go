package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel accepts debug, info, warn, error (case-insensitive).
func ParseLevel(s string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// NewLogger builds the application logger: one rotating JSON file per level
// plus an optional colored console. The returned AtomicLevel gates every core.
func NewLogger(cfg LoggingConfig) (*zap.Logger, zap.AtomicLevel, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	atom := zap.NewAtomicLevelAt(lvl)

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		TimeKey:      "time",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core
	if cfg.Directory != "" {
		if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
			return nil, atom, fmt.Errorf("could not create log directory: %w", err)
		}
		for _, l := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
			cores = append(cores, newFileCore(cfg, l, atom, encoderConfig))
		}
	}
	if cfg.Console {
		cores = append(cores, newConsoleCore(atom))
	}
	if len(cores) == 0 {
		return zap.NewNop(), atom, nil
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), atom, nil
}

// newFileCore writes one level to <dir>/<date>-<level>.log; the error file
// also takes DPanic, Panic and Fatal entries.
func newFileCore(cfg LoggingConfig, level zapcore.Level, atom zap.AtomicLevel, enc zapcore.EncoderConfig) zapcore.Core {
	fileName := filepath.Join(cfg.Directory, fmt.Sprintf("%s-%s.log", time.Now().Format("2006-01-02"), level.String()))

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})

	enabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return fileAccepts(level, l) && atom.Enabled(l)
	})
	return zapcore.NewCore(zapcore.NewJSONEncoder(enc), writer, enabler)
}

func fileAccepts(fileLevel, l zapcore.Level) bool {
	if fileLevel == zapcore.ErrorLevel {
		return l >= zapcore.ErrorLevel
	}
	return l == fileLevel
}

func newConsoleCore(atom zap.AtomicLevel) zapcore.Core {
	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig),
		zapcore.AddSync(os.Stdout),
		atom,
	)
}
