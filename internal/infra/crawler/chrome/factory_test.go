package chrome

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/LouYuanbo1/browseragent/internal/config"
)

func TestInitChromeCrawler_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Browser.Driver = "selenium"

	c, err := InitChromeCrawler(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrUnknownDriver)
	assert.Contains(t, err.Error(), "selenium")
}

func TestActionTimeout(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 30*time.Second, actionTimeout(cfg))

	cfg.Browser.ActionTimeoutSeconds = 5
	assert.Equal(t, 5*time.Second, actionTimeout(cfg))

	cfg.Browser.ActionTimeoutSeconds = 0
	assert.Equal(t, defaultActionTimeout, actionTimeout(cfg))
}
