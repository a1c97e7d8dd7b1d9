package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config - настройки логгера.
type Config struct {
	Level    string    // debug, info, warn, error
	Encoding string    // json или console
	Output   io.Writer // nil - stdout
	Service  string    // добавляется полем "service" к каждой записи
}

// ParseLevel разбирает уровень логирования. Пустая строка - info.
func ParseLevel(raw string) (zapcore.Level, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return zapcore.InfoLevel, true
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		return zapcore.InfoLevel, false
	}
	return lvl, true
}

// New собирает zap.Logger. Неизвестный уровень заменяется на info с предупреждением в самом логе.
func New(cfg Config) *zap.Logger {
	level, levelOK := ParseLevel(cfg.Level)

	var out zapcore.WriteSyncer = zapcore.Lock(os.Stdout)
	if cfg.Output != nil {
		out = zapcore.AddSync(cfg.Output)
	}

	core := zapcore.NewCore(newEncoder(cfg.Encoding), out, zap.NewAtomicLevelAt(level))
	log := zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr)))
	if cfg.Service != "" {
		log = log.With(zap.String("service", cfg.Service))
	}
	if !levelOK {
		log.Warn("Unknown log level, falling back to info", zap.String("level", cfg.Level))
	}
	return log
}

func newEncoder(encoding string) zapcore.Encoder {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	if strings.EqualFold(strings.TrimSpace(encoding), "console") {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encCfg)
}
