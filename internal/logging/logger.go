package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New はアプリ共通のzapロガーを作る。
// devは人間向け、それ以外はJSON。
func New(goEnv string) (*zap.Logger, error) {
	if goEnv == "dev" {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "timestamp"

	return cfg.Build()
}
