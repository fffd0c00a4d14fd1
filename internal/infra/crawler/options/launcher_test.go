package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateLauncher_Flags(t *testing.T) {
	l := CreateLauncher(false,
		WithHeadless(false),
		WithNoSandbox(true),
		WithIncognito(true),
		WithDisableDevShmUsage(true),
		WithDisableBlinkFeatures("AutomationControlled"),
		WithUserAgent("browseragent-test"),
		WithWindowSize(1280, 800),
		WithRemoteDebuggingPort(9333),
	)

	assert.False(t, l.Has("headless"))
	assert.True(t, l.Has("no-sandbox"))
	assert.True(t, l.Has("incognito"))
	assert.True(t, l.Has("disable-dev-shm-usage"))
	assert.Equal(t, "AutomationControlled", l.Get("disable-blink-features"))
	assert.Equal(t, "browseragent-test", l.Get("user-agent"))
	assert.Equal(t, "1280,800", l.Get("window-size"))
	assert.Equal(t, "9333", l.Get("remote-debugging-port"))
}

func TestCreateLauncher_EmptyValuesSkipped(t *testing.T) {
	l := CreateLauncher(false,
		WithUserAgent(""),
		WithDisableBlinkFeatures(""),
		WithWindowSize(0, 0),
		WithIncognito(false),
	)

	assert.False(t, l.Has("user-agent"))
	assert.False(t, l.Has("disable-blink-features"))
	assert.False(t, l.Has("window-size"))
	assert.False(t, l.Has("incognito"))
}
