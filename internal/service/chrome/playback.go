package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/chrome"
)

var pollInterval = 200 * time.Millisecond

// ensurePlayback 暂停时先调用 play(),仍暂停则点击播放器中心
func (ps *playService) ensurePlayback(ctx context.Context, selector string, timeout time.Duration, log *zap.Logger) (PlaybackState, error) {
	state, err := ps.pollState(ctx, selector, timeout, func(s PlaybackState) bool {
		return s != PlaybackMissing
	})
	if err != nil || state != PlaybackPaused {
		return state, err
	}

	log.Info("视频处于暂停状态,调用 play()")
	if err := ps.crawler.Evaluate(ctx, chrome.VideoPlayScript(selector), nil); err != nil {
		log.Warn("调用 play() 失败", zap.Error(err))
	}
	state, err = ps.pollState(ctx, selector, timeout, isPlaying)
	if err != nil || state != PlaybackPaused {
		return state, err
	}

	log.Info("play() 未生效,点击播放器")
	if err := ps.crawler.ClickCenter(ctx, selector); err != nil {
		log.Warn("点击播放器失败", zap.Error(err))
	}
	return ps.pollState(ctx, selector, timeout, isPlaying)
}

func isPlaying(s PlaybackState) bool {
	return s == PlaybackPlaying
}

// pollState 轮询播放状态直到 done 或超时,超时返回最后一次读到的状态
func (ps *playService) pollState(ctx context.Context, selector string, timeout time.Duration, done func(PlaybackState) bool) (PlaybackState, error) {
	last := PlaybackMissing
	err := chrome.PollUntil(ctx, timeout, pollInterval, func(pctx context.Context) (bool, error) {
		s, err := ps.readState(pctx, selector)
		if err != nil {
			// 页面跳转中脚本可能失败,视为未就绪
			return false, nil
		}
		last = s
		return done(s), nil
	})
	if errors.Is(err, chrome.ErrTimeout) {
		return last, nil
	}
	return last, err
}

func (ps *playService) readState(ctx context.Context, selector string) (PlaybackState, error) {
	var paused *bool
	if err := ps.crawler.Evaluate(ctx, chrome.VideoPausedScript(selector), &paused); err != nil {
		return "", err
	}
	switch {
	case paused == nil:
		return PlaybackMissing, nil
	case *paused:
		return PlaybackPaused, nil
	default:
		return PlaybackPlaying, nil
	}
}
