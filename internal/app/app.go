// Package app 三个命令共用的启动流程: 配置加载、命令行覆盖、日志与信号处理
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LouYuanbo1/browseragent/internal/config"
	"github.com/LouYuanbo1/browseragent/internal/infra/logger"
)

// BrowserFlags 所有命令共有的参数
type BrowserFlags struct {
	ConfigPath string
	Driver     string
	Headless   bool
}

func (f *BrowserFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.ConfigPath, "config", "c", "", "配置文件(.json/.yaml),不指定时使用内嵌的 appconfig.json")
	cmd.Flags().StringVar(&f.Driver, "driver", "", "浏览器驱动: rod | chromedp | playwright")
	cmd.Flags().BoolVar(&f.Headless, "headless", true, "无头模式")
}

// Load 内嵌配置或 --config 文件,再依次应用 .env/环境变量和命令行参数
func (f *BrowserFlags) Load(cmd *cobra.Command, embedded []byte) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.ConfigPath != "" {
		cfg, err = config.LoadFile(f.ConfigPath)
	} else {
		cfg, err = config.ParseConfig(embedded)
	}
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if f.Driver != "" {
		cfg.Browser.Driver = f.Driver
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = f.Headless
	}
	return cfg, nil
}

// NewLogger 初始化日志,每次运行附带独立的 run_id
func NewLogger(cfg *config.Config, command string) (*zap.Logger, error) {
	log, err := logger.InitLogger(cfg)
	if err != nil {
		return nil, err
	}
	return log.With(
		zap.String("cmd", command),
		zap.String(logger.RunID, uuid.NewString()),
		zap.String(logger.Driver, cfg.Browser.Driver),
	), nil
}

// SignalContext Ctrl+C / SIGTERM 取消运行
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// KeepOpen 有界面且配置了 keep_open 时保持浏览器直到被中断
func KeepOpen(ctx context.Context, cfg *config.Config, keepOpen bool, log *zap.Logger) {
	if cfg.Browser.Headless || !keepOpen || ctx.Err() != nil {
		return
	}
	log.Info("浏览器保持打开,按 Ctrl+C 退出")
	<-ctx.Done()
}
