package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger builds the application logger. Entries go to stdout and, when LogPath
// is set, to a rotating file named after the app.
func InitLogger(cfg AppConfig) (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	if cfg.Debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.CallerKey = "caller"
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	// JSON in production, console in debug
	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if cfg.Debug {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	logLevel := zap.InfoLevel
	if cfg.Debug {
		logLevel = zap.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), logLevel),
	}

	if cfg.LogPath != "" {
		if err := os.MkdirAll(cfg.LogPath, 0755); err != nil {
			return nil, err
		}

		name := cfg.Name
		if name == "" {
			name = "cinema-reservations"
		}

		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogPath, name+".log"),
			MaxSize:    10, // MB
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(encoder, fileWriter, logLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).
		With(zap.String("app", cfg.Name))

	return logger, nil
}
