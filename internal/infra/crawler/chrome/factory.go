package chrome

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/LouYuanbo1/browseragent/internal/config"
	"github.com/LouYuanbo1/browseragent/internal/infra/logger"
)

const defaultActionTimeout = 30 * time.Second

// actionTimeout 导航、输入、点击等单次操作的上限
func actionTimeout(cfg *config.Config) time.Duration {
	if d := time.Duration(cfg.Browser.ActionTimeoutSeconds) * time.Second; d > 0 {
		return d
	}
	return defaultActionTimeout
}

// InitChromeCrawler 按 browser.driver 选择驱动,未知驱动在启动浏览器之前返回错误
func InitChromeCrawler(ctx context.Context, cfg *config.Config, log *zap.Logger) (ChromeCrawler, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Browser.Driver))
	log.Debug("初始化浏览器驱动", zap.String(logger.Driver, driver))
	switch driver {
	case "", config.DriverRod:
		return InitRodCrawler(ctx, cfg, log)
	case config.DriverChromedp:
		return InitChromedpCrawler(ctx, cfg, log)
	case config.DriverPlaywright:
		return InitPlaywrightCrawler(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Browser.Driver)
	}
}
