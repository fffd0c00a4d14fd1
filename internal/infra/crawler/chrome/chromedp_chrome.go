package chrome

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"

	"github.com/LouYuanbo1/browseragent/internal/config"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/types"
	"github.com/LouYuanbo1/browseragent/internal/infra/logger"
)

type chromedpCrawler struct {
	allocCtx      context.Context
	allocCtxFuc   context.CancelFunc
	pageCtx       context.Context
	pageCtxFuc    context.CancelFunc
	timeoutCtxFuc context.CancelFunc
	actionTimeout time.Duration
	logger        *zap.Logger
}

func InitChromedpCrawler(ctx context.Context, cfg *config.Config, log *zap.Logger) (ChromeCrawler, error) {
	log = log.With(zap.String(logger.Layer, "ChromedpCrawler"))

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Browser.Headless),
		chromedp.Flag("incognito", cfg.Browser.Incognito),
		chromedp.Flag("disable-dev-shm-usage", cfg.Browser.DisableDevShmUsage),
		chromedp.Flag("no-sandbox", cfg.Browser.NoSandbox),
	)
	if cfg.Browser.DisableBlinkFeatures != "" {
		opts = append(opts, chromedp.Flag("disable-blink-features", cfg.Browser.DisableBlinkFeatures))
	}
	if cfg.Browser.Bin != "" {
		opts = append(opts, chromedp.ExecPath(cfg.Browser.Bin))
	}
	if cfg.Browser.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.Browser.UserDataDir))
	}
	if cfg.Browser.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.Browser.UserAgent))
	}
	if cfg.Browser.WindowWidth > 0 && cfg.Browser.WindowHeight > 0 {
		opts = append(opts, chromedp.WindowSize(cfg.Browser.WindowWidth, cfg.Browser.WindowHeight))
	}

	// 浏览器最长存活时间
	lifeTime := time.Duration(cfg.Browser.LifeTime) * time.Second
	if lifeTime <= 0 {
		lifeTime = 10 * time.Minute
	}
	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, lifeTime)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(timeoutCtx, opts...)
	pageCtx, cancelPage := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(log.Sugar().Debugf),
		chromedp.WithErrorf(log.Sugar().Warnf),
	)

	cc := &chromedpCrawler{
		allocCtx:      allocCtx,
		allocCtxFuc:   cancelAlloc,
		pageCtx:       pageCtx,
		pageCtxFuc:    cancelPage,
		timeoutCtxFuc: cancelTimeout,
		actionTimeout: actionTimeout(cfg),
		logger:        log,
	}

	// 第一次 Run 启动浏览器并开启网络监听
	if err := chromedp.Run(pageCtx, network.Enable()); err != nil {
		cc.Close()
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}
	log.Info("浏览器已启动",
		zap.Bool("headless", cfg.Browser.Headless),
		zap.Duration("life_time", lifeTime))
	return cc, nil
}

func (cc *chromedpCrawler) Close() error {
	cc.pageCtxFuc()
	cc.allocCtxFuc()
	cc.timeoutCtxFuc()
	return nil
}

// runCtx 基于页面context派生,同时响应调用方ctx的取消; timeout 为0时使用单次操作上限
func (cc *chromedpCrawler) runCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = cc.actionTimeout
	}
	rctx, cancel := context.WithTimeout(cc.pageCtx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return rctx, func() {
		stop()
		cancel()
	}
}

func (cc *chromedpCrawler) Navigate(ctx context.Context, url string) error {
	cc.logger.Debug("导航", zap.String(logger.URL, url))
	rctx, cancel := cc.runCtx(ctx, 0)
	defer cancel()

	err := chromedp.Run(rctx, chromedp.Navigate(url))
	return timeoutErr(ctx, err, "导航 "+url, cc.actionTimeout)
}

func (cc *chromedpCrawler) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	rctx, cancel := cc.runCtx(ctx, timeout)
	defer cancel()

	err := chromedp.Run(rctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
	return timeoutErr(ctx, err, "等待元素可见 "+selector, timeout)
}

func (cc *chromedpCrawler) WaitIdle(ctx context.Context, timeout time.Duration) error {
	start := time.Now()
	rctx, cancel := cc.runCtx(ctx, timeout)
	err := chromedp.Run(rctx, chromedp.WaitReady("body", chromedp.ByQuery))
	cancel()
	if err != nil {
		return timeoutErr(ctx, err, "等待页面加载", timeout)
	}

	// chromedp 没有 networkidle,轮询 readyState
	remaining := timeout - time.Since(start)
	if remaining <= 0 {
		return fmt.Errorf("%w: 等待页面加载 (%s)", ErrTimeout, timeout)
	}
	return PollUntil(ctx, remaining, 250*time.Millisecond, func(pctx context.Context) (bool, error) {
		var state string
		if err := cc.Evaluate(pctx, `() => document.readyState`, &state); err != nil {
			return false, nil
		}
		return state == "complete", nil
	})
}

func (cc *chromedpCrawler) Fill(ctx context.Context, selector, text string) error {
	rctx, cancel := cc.runCtx(ctx, 0)
	defer cancel()

	err := chromedp.Run(rctx,
		chromedp.SetValue(selector, "", chromedp.ByQuery),
		chromedp.SendKeys(selector, text, chromedp.ByQuery),
	)
	return timeoutErr(ctx, err, "输入 "+selector, cc.actionTimeout)
}

func (cc *chromedpCrawler) PressEnter(ctx context.Context) error {
	rctx, cancel := cc.runCtx(ctx, 0)
	defer cancel()

	err := chromedp.Run(rctx, chromedp.KeyEvent(kb.Enter))
	return timeoutErr(ctx, err, "按下回车", cc.actionTimeout)
}

func (cc *chromedpCrawler) Anchors(ctx context.Context, selector string) ([]types.Anchor, error) {
	var anchors []types.Anchor
	if err := cc.Evaluate(ctx, AnchorsScript(selector), &anchors); err != nil {
		return nil, err
	}
	return anchors, nil
}

func (cc *chromedpCrawler) ClickAnchor(ctx context.Context, anchor types.Anchor) error {
	rctx, cancel := cc.runCtx(ctx, 0)
	defer cancel()

	var nodes []*cdp.Node
	if err := chromedp.Run(rctx, chromedp.Nodes(anchor.Selector, &nodes, chromedp.ByQueryAll)); err != nil {
		return timeoutErr(ctx, err, "查找元素 "+anchor.Selector, cc.actionTimeout)
	}
	if anchor.Index < 0 || anchor.Index >= len(nodes) {
		return fmt.Errorf("%w: %s[%d]", ErrNoElement, anchor.Selector, anchor.Index)
	}
	node := nodes[anchor.Index]

	err := chromedp.Run(rctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return dom.ScrollIntoViewIfNeeded().WithNodeID(node.NodeID).Do(ctx)
		}),
		chromedp.MouseClickNode(node),
	)
	return timeoutErr(ctx, err, "点击 "+anchor.Label, cc.actionTimeout)
}

// ClickCenter 在元素中心点直接派发鼠标点击,不等待元素可交互
func (cc *chromedpCrawler) ClickCenter(ctx context.Context, selector string) error {
	var center *point
	if err := cc.Evaluate(ctx, CenterScript(selector), &center); err != nil {
		return err
	}
	if center == nil {
		return fmt.Errorf("%w: %s", ErrNoElement, selector)
	}

	rctx, cancel := cc.runCtx(ctx, 0)
	defer cancel()
	err := chromedp.Run(rctx, chromedp.MouseClickXY(center.X, center.Y))
	return timeoutErr(ctx, err, "点击 "+selector, cc.actionTimeout)
}

func (cc *chromedpCrawler) Evaluate(ctx context.Context, script string, out any) error {
	rctx, cancel := cc.runCtx(ctx, 0)
	defer cancel()

	var raw []byte
	err := chromedp.Run(rctx, chromedp.Evaluate(fmt.Sprintf("(%s)()", script), &raw,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		},
	))
	if err != nil {
		return timeoutErr(ctx, err, "执行脚本", cc.actionTimeout)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("解析脚本结果失败: %w", err)
	}
	return nil
}

func (cc *chromedpCrawler) Title(ctx context.Context) (string, error) {
	rctx, cancel := cc.runCtx(ctx, 0)
	defer cancel()

	var title string
	if err := chromedp.Run(rctx, chromedp.Title(&title)); err != nil {
		return "", timeoutErr(ctx, err, "读取标题", cc.actionTimeout)
	}
	return title, nil
}
