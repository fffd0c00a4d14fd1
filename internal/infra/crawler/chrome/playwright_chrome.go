package chrome

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/LouYuanbo1/browseragent/internal/config"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/types"
	"github.com/LouYuanbo1/browseragent/internal/infra/logger"
)

type playwrightCrawler struct {
	pw *playwright.Playwright
	// 使用 user_data_dir 时为持久化上下文,browser 为 nil
	browser playwright.Browser
	bctx    playwright.BrowserContext
	page    playwright.Page
	// 单次操作上限
	actionTimeout time.Duration
	logger        *zap.Logger
}

func InitPlaywrightCrawler(ctx context.Context, cfg *config.Config, log *zap.Logger) (ChromeCrawler, error) {
	log = log.With(zap.String(logger.Layer, "PlaywrightCrawler"))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Browser.InstallPlaywright {
		log.Info("安装 playwright 浏览器")
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("安装playwright失败: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("启动playwright失败: %w", err)
	}

	var args []string
	if cfg.Browser.DisableBlinkFeatures != "" {
		args = append(args, "--disable-blink-features="+cfg.Browser.DisableBlinkFeatures)
	}
	if cfg.Browser.DisableDevShmUsage {
		args = append(args, "--disable-dev-shm-usage")
	}
	var (
		execPath *string
		slowMo   *float64
		ua       *string
		viewport *playwright.Size
	)
	if cfg.Browser.Bin != "" {
		execPath = playwright.String(cfg.Browser.Bin)
	}
	if cfg.Browser.SlowMotionMillis > 0 {
		slowMo = playwright.Float(float64(cfg.Browser.SlowMotionMillis))
	}
	if cfg.Browser.UserAgent != "" {
		ua = playwright.String(cfg.Browser.UserAgent)
	}
	if cfg.Browser.WindowWidth > 0 && cfg.Browser.WindowHeight > 0 {
		viewport = &playwright.Size{Width: cfg.Browser.WindowWidth, Height: cfg.Browser.WindowHeight}
	}

	pc := &playwrightCrawler{pw: pw, actionTimeout: actionTimeout(cfg), logger: log}
	if cfg.Browser.UserDataDir != "" {
		pc.bctx, err = pw.Chromium.LaunchPersistentContext(cfg.Browser.UserDataDir, playwright.BrowserTypeLaunchPersistentContextOptions{
			Headless:        playwright.Bool(cfg.Browser.Headless),
			ExecutablePath:  execPath,
			Args:            args,
			ChromiumSandbox: playwright.Bool(!cfg.Browser.NoSandbox),
			SlowMo:          slowMo,
			UserAgent:       ua,
			Viewport:        viewport,
		})
		if err != nil {
			_ = pw.Stop()
			return nil, fmt.Errorf("启动浏览器失败: %w", err)
		}
	} else {
		pc.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless:        playwright.Bool(cfg.Browser.Headless),
			ExecutablePath:  execPath,
			Args:            args,
			ChromiumSandbox: playwright.Bool(!cfg.Browser.NoSandbox),
			SlowMo:          slowMo,
		})
		if err != nil {
			_ = pw.Stop()
			return nil, fmt.Errorf("启动浏览器失败: %w", err)
		}
		pc.bctx, err = pc.browser.NewContext(playwright.BrowserNewContextOptions{
			UserAgent: ua,
			Viewport:  viewport,
		})
		if err != nil {
			pc.Close()
			return nil, fmt.Errorf("创建浏览器上下文失败: %w", err)
		}
	}

	pc.page, err = pc.bctx.NewPage()
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("创建页面失败: %w", err)
	}
	log.Info("浏览器已启动", zap.Bool("headless", cfg.Browser.Headless))
	return pc, nil
}

func (pc *playwrightCrawler) Close() error {
	var errs []error
	if pc.bctx != nil {
		errs = append(errs, pc.bctx.Close())
	}
	if pc.browser != nil {
		errs = append(errs, pc.browser.Close())
	}
	errs = append(errs, pc.pw.Stop())
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("关闭浏览器失败: %w", err)
	}
	return nil
}

// budget 取 timeout 与 ctx 剩余时间中较小者,单位毫秒;都没有时返回nil使用playwright默认值
func budget(ctx context.Context, timeout time.Duration) *float64 {
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); timeout <= 0 || left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil
	}
	return playwright.Float(float64(timeout.Milliseconds()))
}

func (pc *playwrightCrawler) wrap(ctx context.Context, err error, what string, timeout time.Duration) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %s (%s)", ErrTimeout, what, timeout)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func (pc *playwrightCrawler) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pc.logger.Debug("导航", zap.String(logger.URL, url))
	_, err := pc.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   budget(ctx, pc.actionTimeout),
	})
	return pc.wrap(ctx, err, "导航 "+url, pc.actionTimeout)
}

func (pc *playwrightCrawler) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := pc.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: budget(ctx, timeout),
	})
	return pc.wrap(ctx, err, "等待元素可见 "+selector, timeout)
}

func (pc *playwrightCrawler) WaitIdle(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := pc.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: budget(ctx, timeout),
	})
	return pc.wrap(ctx, err, "等待页面加载", timeout)
}

func (pc *playwrightCrawler) Fill(ctx context.Context, selector, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := pc.page.Locator(selector).First().Fill(text, playwright.LocatorFillOptions{
		Timeout: budget(ctx, pc.actionTimeout),
	})
	return pc.wrap(ctx, err, "输入失败", pc.actionTimeout)
}

func (pc *playwrightCrawler) PressEnter(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return pc.wrap(ctx, pc.page.Keyboard().Press("Enter"), "按下回车失败", pc.actionTimeout)
}

func (pc *playwrightCrawler) Anchors(ctx context.Context, selector string) ([]types.Anchor, error) {
	var anchors []types.Anchor
	if err := pc.Evaluate(ctx, AnchorsScript(selector), &anchors); err != nil {
		return nil, err
	}
	return anchors, nil
}

func (pc *playwrightCrawler) ClickAnchor(ctx context.Context, anchor types.Anchor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	all := pc.page.Locator(anchor.Selector)
	n, err := all.Count()
	if err != nil {
		return pc.wrap(ctx, err, "查找元素失败", pc.actionTimeout)
	}
	if anchor.Index < 0 || anchor.Index >= n {
		return fmt.Errorf("%w: %s[%d]", ErrNoElement, anchor.Selector, anchor.Index)
	}
	el := all.Nth(anchor.Index)
	if err := el.ScrollIntoViewIfNeeded(); err != nil {
		return pc.wrap(ctx, err, "滚动到元素失败", pc.actionTimeout)
	}
	return pc.wrap(ctx, el.Click(playwright.LocatorClickOptions{Timeout: budget(ctx, pc.actionTimeout)}), "点击失败", pc.actionTimeout)
}

// ClickCenter 在元素中心点直接点击鼠标,不做可交互检查
func (pc *playwrightCrawler) ClickCenter(ctx context.Context, selector string) error {
	var center *point
	if err := pc.Evaluate(ctx, CenterScript(selector), &center); err != nil {
		return err
	}
	if center == nil {
		return fmt.Errorf("%w: %s", ErrNoElement, selector)
	}
	return pc.wrap(ctx, pc.page.Mouse().Click(center.X, center.Y), "点击 "+selector, pc.actionTimeout)
}

func (pc *playwrightCrawler) Evaluate(ctx context.Context, script string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v, err := pc.page.Evaluate(script)
	if err != nil {
		return pc.wrap(ctx, err, "执行脚本失败", pc.actionTimeout)
	}
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("读取脚本结果失败: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("解析脚本结果失败: %w", err)
	}
	return nil
}

func (pc *playwrightCrawler) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	title, err := pc.page.Title()
	if err != nil {
		return "", pc.wrap(ctx, err, "读取标题失败", pc.actionTimeout)
	}
	return title, nil
}
