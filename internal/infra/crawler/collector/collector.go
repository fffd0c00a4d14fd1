package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/LouYuanbo1/browseragent/internal/config"
	"github.com/LouYuanbo1/browseragent/internal/infra/logger"
)

// TextCollector 不执行JS的静态页面文本抓取
type TextCollector interface {
	ExtractText(ctx context.Context, url string, selectors []string) (string, error)
}

type collyCollector struct {
	userAgent       string
	allowedDomains  []string
	ignoreRobotsTxt bool
	timeout         time.Duration
	logger          *zap.Logger
}

func InitTextCollector(cfg *config.Config, log *zap.Logger) TextCollector {
	timeout := time.Duration(cfg.Colly.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log = log.With(zap.String(logger.Layer, "CollyCollector"))
	log.Debug("InitTextCollector",
		zap.String("user_agent", cfg.Colly.UserAgent),
		zap.Strings("allowed_domains", cfg.Colly.AllowedDomains),
		zap.Duration("timeout", timeout))
	return &collyCollector{
		userAgent:       cfg.Colly.UserAgent,
		allowedDomains:  cfg.Colly.AllowedDomains,
		ignoreRobotsTxt: cfg.Colly.IgnoreRobotsTxt,
		timeout:         timeout,
		logger:          log,
	}
}

// newCollector 每次抓取使用独立的 Collector,回调互不干扰
func (c *collyCollector) newCollector(ctx context.Context) *colly.Collector {
	opts := []colly.CollectorOption{
		colly.MaxDepth(1),
		colly.StdlibContext(ctx),
	}
	if c.userAgent != "" {
		opts = append(opts, colly.UserAgent(c.userAgent))
	}
	if len(c.allowedDomains) > 0 {
		opts = append(opts, colly.AllowedDomains(c.allowedDomains...))
	}
	if c.ignoreRobotsTxt {
		opts = append(opts, colly.IgnoreRobotsTxt())
	}
	col := colly.NewCollector(opts...)
	col.SetRequestTimeout(c.timeout)
	return col
}

func (c *collyCollector) ExtractText(ctx context.Context, url string, selectors []string) (string, error) {
	col := c.newCollector(ctx)

	var (
		text    string
		matched string
		found   bool
	)
	col.OnHTML("html", func(e *colly.HTMLElement) {
		sel, s := firstMatch(e.DOM, selectors)
		found = true
		matched = sel
		text = normalizeText(s.Text())
	})
	col.OnError(func(r *colly.Response, err error) {
		c.logger.Warn("请求失败",
			zap.String(logger.URL, r.Request.URL.String()),
			zap.Int("status", r.StatusCode),
			zap.Error(err))
	})

	if err := col.Visit(url); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("访问URL失败: %w", err)
	}
	col.Wait()
	if !found {
		return "", fmt.Errorf("页面不是HTML: %s", url)
	}
	c.logger.Debug("已抓取文本",
		zap.String(logger.URL, url),
		zap.String(logger.Selector, matched),
		zap.Int("length", len(text)))
	return text, nil
}

// firstMatch 返回第一个命中的选择器,全部未命中时退回 body
func firstMatch(doc *goquery.Selection, selectors []string) (string, *goquery.Selection) {
	for _, sel := range selectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return sel, s
		}
	}
	return "body", doc.Find("body")
}

// normalizeText 去掉每行首尾空白,连续空行合并为一个
func normalizeText(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
