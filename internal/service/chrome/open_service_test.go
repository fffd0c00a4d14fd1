package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/browseragent/param"
)

func TestOpen(t *testing.T) {
	f := newFake()
	f.title = "YouTube"

	report, err := InitOpenService(f, zaptest.NewLogger(t)).Open(context.Background(), &param.Open{Url: "https://youtube.com"})
	require.NoError(t, err)
	assert.Equal(t, "YouTube", report.Title)
	assert.Equal(t, []string{"https://youtube.com"}, f.navigated)
}

func TestOpen_LoadTimeoutIsWarning(t *testing.T) {
	f := newFake()
	f.title = "slow"
	f.idleErr = fmt.Errorf("%w: idle", chrome.ErrTimeout)

	report, err := InitOpenService(f, zaptest.NewLogger(t)).Open(context.Background(), &param.Open{Url: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "slow", report.Title)
}

func TestOpen_NavigateError(t *testing.T) {
	f := newFake()
	f.navErr = errors.New("net::ERR_NAME_NOT_RESOLVED")

	_, err := InitOpenService(f, zaptest.NewLogger(t)).Open(context.Background(), &param.Open{Url: "https://nope.invalid"})
	assert.ErrorIs(t, err, f.navErr)
}

func TestOpen_InvalidParams(t *testing.T) {
	_, err := InitOpenService(newFake(), zaptest.NewLogger(t)).Open(context.Background(), &param.Open{})
	assert.ErrorIs(t, err, ErrInvalidParams)
}
