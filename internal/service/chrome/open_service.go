package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/browseragent/internal/infra/logger"
	"github.com/LouYuanbo1/browseragent/param"
)

type openService struct {
	crawler chrome.ChromeCrawler
	logger  *zap.Logger
}

func InitOpenService(crawler chrome.ChromeCrawler, log *zap.Logger) OpenService {
	return &openService{
		crawler: crawler,
		logger:  log.With(zap.String(logger.Layer, "OpenService")),
	}
}

func (s *openService) Open(ctx context.Context, params *param.Open) (*OpenReport, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: open 参数为空", ErrInvalidParams)
	}
	p := params.WithDefaults()
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: open", ErrInvalidParams)
	}
	log := s.logger.With(zap.String(logger.Operation, "open"), zap.String(logger.URL, p.Url))

	log.Info("打开页面")
	if err := s.crawler.Navigate(ctx, p.Url); err != nil {
		return nil, fmt.Errorf("打开页面失败: %w", err)
	}
	if err := s.crawler.WaitIdle(ctx, seconds(p.LoadTimeoutSeconds)); err != nil {
		if !errors.Is(err, chrome.ErrTimeout) {
			return nil, fmt.Errorf("等待页面加载失败: %w", err)
		}
		log.Warn("等待页面加载超时", zap.Error(err))
	}
	title, err := s.crawler.Title(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取标题失败: %w", err)
	}
	report := &OpenReport{Url: p.Url, Title: title}
	log.Info("页面已打开", zap.String("title", title), zap.Int("hold_seconds", p.HoldSeconds))

	if err := hold(ctx, seconds(p.HoldSeconds)); err != nil {
		return report, err
	}
	return report, nil
}
