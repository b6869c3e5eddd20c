package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configura el logger. Se arma desde config.Config en cmd.
type Config struct {
	Env         string // "dev" (default) o "prod"
	Level       string // debug|info|warn|error, default info
	ServiceName string
	Version     string
	Output      io.Writer // default os.Stderr
}

// build arma el logger: consola con colores en dev, JSON en prod.
func build(cfg Config) *zap.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level := parseLevel(cfg.Level)
	prod := strings.EqualFold(strings.TrimSpace(cfg.Env), "prod")

	var enc zapcore.Encoder
	opts := []zap.Option{zap.AddCaller()}
	if prod {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewJSONEncoder(ec)
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		ec.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), level)
	return zap.New(core, opts...).With(baseFields(cfg)...)
}

// parseLevel convierte un string a zapcore.Level; desconocido → info.
func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func baseFields(cfg Config) []zap.Field {
	var fs []zap.Field
	if cfg.ServiceName != "" {
		fs = append(fs, zap.String("service", cfg.ServiceName))
	}
	if cfg.Version != "" {
		fs = append(fs, zap.String("version", cfg.Version))
	}
	return fs
}
