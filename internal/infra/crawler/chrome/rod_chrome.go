package chrome

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"go.uber.org/zap"

	"github.com/LouYuanbo1/browseragent/internal/config"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/options"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/types"
	"github.com/LouYuanbo1/browseragent/internal/infra/logger"
)

const stableWindow = 500 * time.Millisecond

type rodCrawler struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	// 单次操作上限
	actionTimeout time.Duration
	logger        *zap.Logger
}

func InitRodCrawler(ctx context.Context, cfg *config.Config, log *zap.Logger) (ChromeCrawler, error) {
	log = log.With(zap.String(logger.Layer, "RodCrawler"))

	l := options.CreateLauncher(cfg.Browser.UserMode,
		options.WithBin(cfg.Browser.Bin),
		options.WithUserDataDir(cfg.Browser.UserDataDir),
		options.WithHeadless(cfg.Browser.Headless),
		options.WithDisableBlinkFeatures(cfg.Browser.DisableBlinkFeatures),
		options.WithIncognito(cfg.Browser.Incognito),
		options.WithDisableDevShmUsage(cfg.Browser.DisableDevShmUsage),
		options.WithNoSandbox(cfg.Browser.NoSandbox),
		options.WithUserAgent(cfg.Browser.UserAgent),
		options.WithLeakless(cfg.Browser.Leakless),
		options.WithRemoteDebuggingPort(cfg.Browser.RemoteDebuggingPort),
		options.WithWindowSize(cfg.Browser.WindowWidth, cfg.Browser.WindowHeight),
	).Context(ctx)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}
	log.Debug("浏览器可以连接的URL", zap.String(logger.URL, controlURL))

	browser := rod.New().
		ControlURL(controlURL).
		Trace(cfg.Browser.Trace)
	if cfg.Browser.SlowMotionMillis > 0 {
		browser = browser.SlowMotion(time.Duration(cfg.Browser.SlowMotionMillis) * time.Millisecond)
	}
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("连接浏览器失败: %w", err)
	}

	var page *rod.Page
	if cfg.Browser.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("创建页面失败: %w", err)
	}

	log.Info("浏览器已启动",
		zap.Bool("headless", cfg.Browser.Headless),
		zap.Bool("stealth", cfg.Browser.Stealth))
	return &rodCrawler{
		launcher:      l,
		browser:       browser,
		page:          page,
		actionTimeout: actionTimeout(cfg),
		logger:        log,
	}, nil
}

func (rc *rodCrawler) Close() error {
	err := rc.browser.Close()
	rc.launcher.Kill()
	if err != nil {
		return fmt.Errorf("关闭浏览器失败: %w", err)
	}
	return nil
}

// bounded 返回带单次操作上限的页面
func (rc *rodCrawler) bounded(ctx context.Context) (*rod.Page, context.CancelFunc) {
	tctx, cancel := context.WithTimeout(ctx, rc.actionTimeout)
	return rc.page.Context(tctx), cancel
}

func (rc *rodCrawler) Navigate(ctx context.Context, url string) error {
	rc.logger.Debug("导航", zap.String(logger.URL, url))
	p, cancel := rc.bounded(ctx)
	defer cancel()

	err := p.Navigate(url)
	if err == nil {
		err = p.WaitLoad()
	}
	return timeoutErr(ctx, err, "导航 "+url, rc.actionTimeout)
}

func (rc *rodCrawler) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	el, err := rc.page.Context(tctx).Element(selector)
	if err == nil {
		err = el.WaitVisible()
	}
	return timeoutErr(ctx, err, "等待元素可见 "+selector, timeout)
}

func (rc *rodCrawler) WaitIdle(ctx context.Context, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := rc.page.Context(tctx).WaitStable(stableWindow)
	return timeoutErr(ctx, err, "等待页面稳定", timeout)
}

func (rc *rodCrawler) Fill(ctx context.Context, selector, text string) error {
	p, cancel := rc.bounded(ctx)
	defer cancel()

	el, err := p.Element(selector)
	if err == nil {
		err = el.SelectAllText()
	}
	if err == nil {
		err = el.Input(text)
	}
	return timeoutErr(ctx, err, "输入 "+selector, rc.actionTimeout)
}

func (rc *rodCrawler) PressEnter(ctx context.Context) error {
	p, cancel := rc.bounded(ctx)
	defer cancel()

	err := p.KeyActions().Type(input.Enter).Do()
	return timeoutErr(ctx, err, "按下回车", rc.actionTimeout)
}

func (rc *rodCrawler) Anchors(ctx context.Context, selector string) ([]types.Anchor, error) {
	var anchors []types.Anchor
	if err := rc.Evaluate(ctx, AnchorsScript(selector), &anchors); err != nil {
		return nil, err
	}
	return anchors, nil
}

func (rc *rodCrawler) ClickAnchor(ctx context.Context, anchor types.Anchor) error {
	p, cancel := rc.bounded(ctx)
	defer cancel()

	els, err := p.Elements(anchor.Selector)
	if err != nil {
		return timeoutErr(ctx, err, "查找元素 "+anchor.Selector, rc.actionTimeout)
	}
	if anchor.Index < 0 || anchor.Index >= len(els) {
		return fmt.Errorf("%w: %s[%d]", ErrNoElement, anchor.Selector, anchor.Index)
	}
	el := els[anchor.Index]
	err = el.ScrollIntoView()
	if err == nil {
		err = el.Click(proto.InputMouseButtonLeft, 1)
	}
	return timeoutErr(ctx, err, "点击 "+anchor.Label, rc.actionTimeout)
}

// ClickCenter 直接在元素盒子中心点击鼠标,不等待元素可交互(播放器常被浮层覆盖)
func (rc *rodCrawler) ClickCenter(ctx context.Context, selector string) error {
	p, cancel := rc.bounded(ctx)
	defer cancel()

	el, err := p.Element(selector)
	if err != nil {
		return timeoutErr(ctx, err, "查找元素 "+selector, rc.actionTimeout)
	}
	if err := el.ScrollIntoView(); err != nil {
		return timeoutErr(ctx, err, "滚动到元素 "+selector, rc.actionTimeout)
	}
	shape, err := el.Shape()
	if err != nil {
		return timeoutErr(ctx, err, "读取元素位置 "+selector, rc.actionTimeout)
	}
	box := shape.Box()
	if box == nil {
		return fmt.Errorf("%w: %s 没有可见区域", ErrNoElement, selector)
	}
	center := proto.Point{X: box.X + box.Width/2, Y: box.Y + box.Height/2}
	err = p.Mouse.MoveTo(center)
	if err == nil {
		err = p.Mouse.Click(proto.InputMouseButtonLeft, 1)
	}
	return timeoutErr(ctx, err, "点击 "+selector, rc.actionTimeout)
}

func (rc *rodCrawler) Evaluate(ctx context.Context, script string, out any) error {
	p, cancel := rc.bounded(ctx)
	defer cancel()

	res, err := p.Eval(script)
	if err != nil {
		return timeoutErr(ctx, err, "执行脚本", rc.actionTimeout)
	}
	if out == nil {
		return nil
	}
	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return fmt.Errorf("读取脚本结果失败: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("解析脚本结果失败: %w", err)
	}
	return nil
}

func (rc *rodCrawler) Title(ctx context.Context) (string, error) {
	p, cancel := rc.bounded(ctx)
	defer cancel()

	info, err := p.Info()
	if err != nil {
		return "", timeoutErr(ctx, err, "读取标题", rc.actionTimeout)
	}
	return info.Title, nil
}
