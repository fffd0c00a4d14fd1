package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/types"
	"github.com/LouYuanbo1/browseragent/param"
)

func init() {
	pollInterval = 5 * time.Millisecond
}

func playParams() *param.Play {
	return (&param.Play{
		Query:                  "Ganapathy Tamil devotional songs",
		Keywords:               []string{"Ganesha", "ganapathy"},
		PlaybackTimeoutSeconds: 1,
	}).WithDefaults()
}

func anchor(i int, label, href string) types.Anchor {
	return types.Anchor{Selector: "a#video-title", Index: i, Label: label, Href: href}
}

func pausedKey(p *param.Play) string {
	return chrome.VideoPausedScript(p.VideoSelector)
}

func TestPlay_KeywordMatch(t *testing.T) {
	p := playParams()
	f := newFake()
	f.anchors = []types.Anchor{
		anchor(0, "Top hits 2024", "/watch?v=1"),
		anchor(1, "Lord GANESHA Songs", "/watch?v=2"),
	}
	f.evals[pausedKey(p)] = []string{"false"}

	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, report.Found)
	assert.True(t, report.MatchedByKeyword)
	assert.Equal(t, "Lord GANESHA Songs", report.Title)
	assert.Equal(t, "/watch?v=2", report.Href)
	assert.Equal(t, 2, report.Candidates)
	assert.Equal(t, PlaybackPlaying, report.Playback)

	assert.Equal(t, []string{p.HomeURL}, f.navigated)
	assert.Equal(t, p.Query, f.filled)
	assert.True(t, f.entered)
	require.Len(t, f.clicked, 1)
	assert.Equal(t, 1, f.clicked[0].Index)
	assert.False(t, f.ran(chrome.VideoPlayScript(p.VideoSelector)))
}

func TestPlay_FallbackToFirstValid(t *testing.T) {
	p := playParams()
	f := newFake()
	f.anchors = []types.Anchor{
		anchor(0, "Channel", ""),
		anchor(1, "Morning music", "/watch?v=9"),
		anchor(2, "Evening music", "/watch?v=10"),
	}
	f.evals[pausedKey(p)] = []string{"false"}

	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, report.Found)
	assert.False(t, report.MatchedByKeyword)
	assert.Equal(t, "Morning music", report.Title)
	require.Len(t, f.clicked, 1)
	assert.Equal(t, 1, f.clicked[0].Index)
}

func TestPlay_NotFoundIsNotAnError(t *testing.T) {
	p := playParams()
	f := newFake()
	f.anchors = []types.Anchor{
		anchor(0, "Shorts", "/shorts/1"),
		anchor(1, "Channel", ""),
	}

	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, report.Found)
	assert.Equal(t, 2, report.Candidates)
	assert.Empty(t, f.clicked)
}

func TestPlay_PausedThenPlay(t *testing.T) {
	p := playParams()
	f := newFake()
	f.anchors = []types.Anchor{anchor(0, "ganapathy song", "/watch?v=1")}
	f.evals[pausedKey(p)] = []string{"true", "false"}

	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, PlaybackPlaying, report.Playback)
	assert.True(t, f.ran(chrome.VideoPlayScript(p.VideoSelector)))
	assert.Equal(t, 0, f.centerClick)
}

func TestPlay_ClickCenterWhenPlayIgnored(t *testing.T) {
	p := playParams()
	f := newFake()
	f.anchors = []types.Anchor{anchor(0, "ganapathy song", "/watch?v=1")}
	f.evals[pausedKey(p)] = []string{"true"}
	f.centerPlays = true

	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, PlaybackPlaying, report.Playback)
	assert.Equal(t, 1, f.centerClick)
}

func TestPlay_StillPaused(t *testing.T) {
	p := playParams()
	f := newFake()
	f.anchors = []types.Anchor{anchor(0, "ganapathy song", "/watch?v=1")}
	f.evals[pausedKey(p)] = []string{"true"}

	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, PlaybackPaused, report.Playback)
	assert.Equal(t, 1, f.centerClick)
}

func TestPlay_VideoGoneAfterPlay(t *testing.T) {
	p := playParams()
	f := newFake()
	f.anchors = []types.Anchor{anchor(0, "ganapathy song", "/watch?v=1")}
	f.evals[pausedKey(p)] = []string{"true", "null"}

	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, PlaybackMissing, report.Playback)
	assert.True(t, f.ran(chrome.VideoPlayScript(p.VideoSelector)))
	assert.Equal(t, 0, f.centerClick)
}

func TestPlay_EmptyConsentLabelsSkipsConsent(t *testing.T) {
	p := playParams()
	p.ConsentLabels = []string{}
	f := newFake()
	f.anchors = []types.Anchor{anchor(0, "ganapathy song", "/watch?v=1")}
	f.evals[pausedKey(p)] = []string{"false"}

	_, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, f.ran(chrome.ClickButtonByTextScript(nil)))
	assert.False(t, f.ran(chrome.ClickButtonByTextScript([]string{})))
}

func TestPlay_VideoMissing(t *testing.T) {
	p := playParams()
	f := newFake()
	f.anchors = []types.Anchor{anchor(0, "ganapathy song", "/watch?v=1")}
	f.visibleErr[p.VideoSelector] = fmt.Errorf("%w: video", chrome.ErrTimeout)

	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, report.Found)
	assert.Equal(t, PlaybackMissing, report.Playback)
	assert.Equal(t, 0, f.centerClick)
}

func TestPlay_ConsentFailureIgnored(t *testing.T) {
	p := playParams()
	f := newFake()
	f.anchors = []types.Anchor{anchor(0, "ganapathy song", "/watch?v=1")}
	f.evalErr[chrome.ClickButtonByTextScript(p.ConsentLabels)] = errors.New("detached")
	f.evals[pausedKey(p)] = []string{"false"}

	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, report.Found)
}

func TestPlay_SearchBoxTimeout(t *testing.T) {
	p := playParams()
	f := newFake()
	f.visibleErr[p.SearchSelector] = fmt.Errorf("%w: search", chrome.ErrTimeout)

	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(context.Background(), p)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, chrome.ErrTimeout)
	assert.Empty(t, f.filled)
}

func TestPlay_InvalidParams(t *testing.T) {
	svc := InitPlayService(newFake(), zaptest.NewLogger(t))

	_, err := svc.Play(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = svc.Play(context.Background(), &param.Play{Query: "   "})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestPlay_WatchCancelled(t *testing.T) {
	p := playParams()
	p.WatchSeconds = 30
	f := newFake()
	f.anchors = []types.Anchor{anchor(0, "ganapathy song", "/watch?v=1")}
	f.evals[pausedKey(p)] = []string{"false"}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	report, err := InitPlayService(f, zaptest.NewLogger(t)).Play(ctx, p)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.True(t, report.Found)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCandidates_Validity(t *testing.T) {
	anchors := []types.Anchor{
		anchor(0, "a", "/watch?v=1"),
		anchor(1, "b", ""),
		anchor(2, "c", "/channel/x"),
	}
	var valid []bool
	for c := range candidates(anchors, "/watch") {
		valid = append(valid, c.IsValidTarget)
	}
	assert.Equal(t, []bool{true, false, false}, valid)
}
