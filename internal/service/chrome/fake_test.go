package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/types"
)

// fakeCrawler 按脚本内容返回预设的JSON结果,多个结果依次消费,最后一个重复使用
type fakeCrawler struct {
	mu sync.Mutex

	anchors    []types.Anchor
	title      string
	evals      map[string][]string
	evalErr    map[string]error
	visibleErr map[string]error
	idleErr    error
	// 设置后替代 idleErr,用于模拟一直不稳定的页面
	idleFn func(ctx context.Context, timeout time.Duration) error
	navErr error
	// 点击播放器后视频开始播放
	centerPlays bool

	navigated   []string
	filled      string
	entered     bool
	clicked     []types.Anchor
	centerClick int
	scripts     []string
}

var _ chrome.ChromeCrawler = (*fakeCrawler)(nil)

func newFake() *fakeCrawler {
	return &fakeCrawler{
		evals:      map[string][]string{},
		evalErr:    map[string]error{},
		visibleErr: map[string]error{},
	}
}

func (f *fakeCrawler) Navigate(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.navigated = append(f.navigated, url)
	return f.navErr
}

func (f *fakeCrawler) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visibleErr[selector]
}

func (f *fakeCrawler) WaitIdle(ctx context.Context, timeout time.Duration) error {
	f.mu.Lock()
	fn, err := f.idleFn, f.idleErr
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, timeout)
	}
	return err
}

func (f *fakeCrawler) Fill(ctx context.Context, selector, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filled = text
	return nil
}

func (f *fakeCrawler) PressEnter(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entered = true
	return nil
}

func (f *fakeCrawler) Anchors(ctx context.Context, selector string) ([]types.Anchor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.anchors, nil
}

func (f *fakeCrawler) ClickAnchor(ctx context.Context, anchor types.Anchor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clicked = append(f.clicked, anchor)
	return nil
}

func (f *fakeCrawler) ClickCenter(ctx context.Context, selector string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.centerClick++
	if f.centerPlays {
		f.evals[chrome.VideoPausedScript(selector)] = []string{"false"}
	}
	return nil
}

func (f *fakeCrawler) Evaluate(ctx context.Context, script string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts = append(f.scripts, script)
	if err := f.evalErr[script]; err != nil {
		return err
	}
	resp := "null"
	if queue := f.evals[script]; len(queue) > 0 {
		resp = queue[0]
		if len(queue) > 1 {
			f.evals[script] = queue[1:]
		}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(resp), out)
}

func (f *fakeCrawler) Title(ctx context.Context) (string, error) {
	return f.title, nil
}

func (f *fakeCrawler) Close() error {
	return nil
}

func (f *fakeCrawler) ran(script string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.scripts {
		if s == script {
			return true
		}
	}
	return false
}

type fakeCollector struct {
	text string
	err  error
	url  string
}

func (c *fakeCollector) ExtractText(ctx context.Context, url string, selectors []string) (string, error) {
	c.url = url
	return c.text, c.err
}
