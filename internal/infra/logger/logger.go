package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LouYuanbo1/browseragent/internal/config"
)

// 日志字段名
const (
	Layer     = "layer"
	Operation = "op"
	URL       = "url"
	Selector  = "selector"
	RunID     = "run_id"
	Driver    = "driver"
)

// InitLogger 按配置创建zap日志: development 使用控制台格式,否则JSON
func InitLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("日志级别无效 %q: %w", cfg.Log.Level, err)
	}

	var zcfg zap.Config
	if cfg.Log.Development {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zcfg.Level = level

	return zcfg.Build()
}
