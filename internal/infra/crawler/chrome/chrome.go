package chrome

import (
	"context"
	"errors"
	"time"

	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/types"
)

var (
	ErrTimeout       = errors.New("等待超时")
	ErrNoElement     = errors.New("元素不存在")
	ErrUnknownDriver = errors.New("未知的浏览器驱动")
)

// ChromeCrawler 浏览器自动化驱动,所有等待都带有上限
// script 参数均为JS函数定义,例如 `() => document.title`
type ChromeCrawler interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	WaitIdle(ctx context.Context, timeout time.Duration) error
	Fill(ctx context.Context, selector, text string) error
	PressEnter(ctx context.Context) error
	Anchors(ctx context.Context, selector string) ([]types.Anchor, error)
	ClickAnchor(ctx context.Context, anchor types.Anchor) error
	ClickCenter(ctx context.Context, selector string) error
	Evaluate(ctx context.Context, script string, out any) error
	Title(ctx context.Context) (string, error)
	Close() error
}
