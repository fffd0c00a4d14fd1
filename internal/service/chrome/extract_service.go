package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/collector"
	"github.com/LouYuanbo1/browseragent/internal/infra/logger"
	"github.com/LouYuanbo1/browseragent/param"
)

type extractService struct {
	crawler   chrome.ChromeCrawler
	collector collector.TextCollector
	logger    *zap.Logger
}

// InitExtractService crawler 与 collector 可以只提供一个,对应引擎缺失时 Extract 返回 ErrEngineUnavailable
func InitExtractService(crawler chrome.ChromeCrawler, textCollector collector.TextCollector, log *zap.Logger) ExtractService {
	return &extractService{
		crawler:   crawler,
		collector: textCollector,
		logger:    log.With(zap.String(logger.Layer, "ExtractService")),
	}
}

func (es *extractService) Extract(ctx context.Context, params *param.Extract) (*ExtractReport, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: extract 参数为空", ErrInvalidParams)
	}
	p := params.WithDefaults()
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: extract", ErrInvalidParams)
	}
	log := es.logger.With(
		zap.String(logger.Operation, "extract"),
		zap.String(logger.URL, p.Url),
		zap.String("engine", string(p.Engine)))

	tctx, cancel := context.WithTimeout(ctx, seconds(p.TimeoutSeconds))
	defer cancel()

	var (
		text string
		err  error
	)
	switch p.Engine {
	case param.EngineColly:
		text, err = es.viaCollector(tctx, p)
	default:
		text, err = es.viaBrowser(tctx, p, log)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		log.Warn("页面没有可见文本,写入空文件")
	}
	if err := writeText(p.Output, text); err != nil {
		return nil, err
	}
	log.Info("文本已保存", zap.String("output", p.Output), zap.Int("bytes", len(text)))
	return &ExtractReport{
		Url:    p.Url,
		Output: p.Output,
		Engine: p.Engine,
		Bytes:  len(text),
	}, nil
}

func (es *extractService) viaBrowser(ctx context.Context, p *param.Extract, log *zap.Logger) (string, error) {
	if es.crawler == nil {
		return "", fmt.Errorf("%w: %s", ErrEngineUnavailable, p.Engine)
	}
	if err := es.crawler.Navigate(ctx, p.Url); err != nil {
		return "", fmt.Errorf("打开页面失败: %w", err)
	}
	if err := es.crawler.WaitIdle(ctx, loadBudget(ctx, seconds(p.LoadTimeoutSeconds))); err != nil {
		if !errors.Is(err, chrome.ErrTimeout) {
			return "", fmt.Errorf("等待页面加载失败: %w", err)
		}
		log.Warn("等待页面加载超时,直接读取文本", zap.Error(err))
	}
	var text string
	if err := es.crawler.Evaluate(ctx, chrome.TextScript(p.Selectors), &text); err != nil {
		return "", fmt.Errorf("读取页面文本失败: %w", err)
	}
	return text, nil
}

func (es *extractService) viaCollector(ctx context.Context, p *param.Extract) (string, error) {
	if es.collector == nil {
		return "", fmt.Errorf("%w: %s", ErrEngineUnavailable, p.Engine)
	}
	text, err := es.collector.ExtractText(ctx, p.Url, p.Selectors)
	if err != nil {
		return "", fmt.Errorf("抓取页面文本失败: %w", err)
	}
	return text, nil
}

// loadBudget 等待页面稳定最多用掉剩余时间的一半,留出读取文本的时间
func loadBudget(ctx context.Context, d time.Duration) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if half := time.Until(dl) / 2; half < d {
			return half
		}
	}
	return d
}

func writeText(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return nil
}
