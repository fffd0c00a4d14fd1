package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LouYuanbo1/browseragent/internal/domain/selection"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/browseragent/internal/infra/logger"
	"github.com/LouYuanbo1/browseragent/param"
)

type playService struct {
	crawler chrome.ChromeCrawler
	logger  *zap.Logger
}

func InitPlayService(crawler chrome.ChromeCrawler, log *zap.Logger) PlayService {
	return &playService{
		crawler: crawler,
		logger:  log.With(zap.String(logger.Layer, "PlayService")),
	}
}

func (ps *playService) Play(ctx context.Context, params *param.Play) (*PlayReport, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: play 参数为空", ErrInvalidParams)
	}
	p := params.WithDefaults()
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: play", ErrInvalidParams)
	}
	log := ps.logger.With(zap.String(logger.Operation, "play"))

	log.Info("打开首页", zap.String(logger.URL, p.HomeURL))
	if err := ps.crawler.Navigate(ctx, p.HomeURL); err != nil {
		return nil, fmt.Errorf("打开首页失败: %w", err)
	}
	ps.acceptConsent(ctx, p.ConsentLabels, log)

	searchTimeout := seconds(p.SearchTimeoutSeconds)
	if err := ps.crawler.WaitVisible(ctx, p.SearchSelector, searchTimeout); err != nil {
		return nil, fmt.Errorf("等待搜索框失败: %w", err)
	}
	if err := ps.crawler.Fill(ctx, p.SearchSelector, p.Query); err != nil {
		return nil, fmt.Errorf("输入搜索词失败: %w", err)
	}
	if err := ps.crawler.PressEnter(ctx); err != nil {
		return nil, fmt.Errorf("提交搜索失败: %w", err)
	}
	log.Info("已提交搜索", zap.String("query", p.Query))

	if err := ps.crawler.WaitVisible(ctx, p.ResultsSelector, searchTimeout); err != nil {
		return nil, fmt.Errorf("等待搜索结果失败: %w", err)
	}
	anchors, err := ps.crawler.Anchors(ctx, p.AnchorSelector)
	if err != nil {
		return nil, fmt.Errorf("读取搜索结果失败: %w", err)
	}
	log.Debug("已收集候选", zap.String(logger.Selector, p.AnchorSelector), zap.Int("count", len(anchors)))

	result := selection.Select(candidates(anchors, p.ValidHrefContains), selection.NewKeywordSet(p.Keywords...))
	report := &PlayReport{Candidates: len(anchors)}
	if !result.Found() {
		log.Info("no video results found")
		return report, nil
	}

	target := result.Candidate
	report.Found = true
	report.Title = target.Label
	report.Href = target.Locator.Href
	report.MatchedByKeyword = result.MatchedByKeyword
	log.Info("选中视频",
		zap.String("title", target.Label),
		zap.String("href", target.Locator.Href),
		zap.Bool("matched_by_keyword", result.MatchedByKeyword))

	if err := ps.crawler.ClickAnchor(ctx, target.Locator); err != nil {
		return report, fmt.Errorf("点击视频失败: %w", err)
	}
	ps.waitForVideo(ctx, p, log)

	state, err := ps.ensurePlayback(ctx, p.VideoSelector, seconds(p.PlaybackTimeoutSeconds), log)
	if err != nil {
		return report, fmt.Errorf("检查播放状态失败: %w", err)
	}
	report.Playback = state
	log.Info("播放状态", zap.String("state", string(state)))

	if p.WatchSeconds > 0 {
		log.Info("观看中", zap.Int("seconds", p.WatchSeconds))
	}
	if err := hold(ctx, seconds(p.WatchSeconds)); err != nil {
		return report, err
	}
	return report, nil
}

// acceptConsent 尝试点击同意按钮,失败不影响后续流程
func (ps *playService) acceptConsent(ctx context.Context, labels []string, log *zap.Logger) {
	if len(labels) == 0 {
		return
	}
	var clicked string
	if err := ps.crawler.Evaluate(ctx, chrome.ClickButtonByTextScript(labels), &clicked); err != nil {
		log.Debug("同意弹窗处理失败,忽略", zap.Error(err))
		return
	}
	if clicked != "" {
		log.Info("已点击同意按钮", zap.String("label", clicked))
	}
}

// waitForVideo 并发等待页面稳定和视频元素出现,超时只记录警告
func (ps *playService) waitForVideo(ctx context.Context, p *param.Play, log *zap.Logger) {
	timeout := seconds(p.LoadTimeoutSeconds)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ps.crawler.WaitIdle(gctx, timeout)
	})
	g.Go(func() error {
		return ps.crawler.WaitVisible(gctx, p.VideoSelector, timeout)
	})
	if err := g.Wait(); err != nil {
		log.Warn("等待视频页面未完成,继续检查播放状态", zap.Error(err))
	}
}
