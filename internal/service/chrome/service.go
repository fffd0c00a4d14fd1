package service

import (
	"context"
	"errors"
	"time"

	"github.com/LouYuanbo1/browseragent/param"
)

var (
	ErrInvalidParams     = errors.New("参数无效")
	ErrEngineUnavailable = errors.New("抓取引擎不可用")
)

type PlaybackState string

const (
	PlaybackPlaying PlaybackState = "playing"
	PlaybackPaused  PlaybackState = "paused"
	PlaybackMissing PlaybackState = "missing"
)

type PlayReport struct {
	Found            bool          `json:"found"`
	Candidates       int           `json:"candidates"`
	Title            string        `json:"title,omitempty"`
	Href             string        `json:"href,omitempty"`
	MatchedByKeyword bool          `json:"matched_by_keyword"`
	Playback         PlaybackState `json:"playback,omitempty"`
}

type OpenReport struct {
	Url   string `json:"url"`
	Title string `json:"title"`
}

type ExtractReport struct {
	Url    string       `json:"url"`
	Output string       `json:"output"`
	Engine param.Engine `json:"engine"`
	Bytes  int          `json:"bytes"`
}

// PlayService 搜索视频站,挑选结果并确保开始播放
type PlayService interface {
	Play(ctx context.Context, params *param.Play) (*PlayReport, error)
}

type OpenService interface {
	Open(ctx context.Context, params *param.Open) (*OpenReport, error)
}

type ExtractService interface {
	Extract(ctx context.Context, params *param.Extract) (*ExtractReport, error)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// hold 停留 d,可被ctx取消
func hold(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
