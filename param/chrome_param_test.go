package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlay_WithDefaults(t *testing.T) {
	p := (&Play{Query: "Ganapathy Tamil devotional songs"}).WithDefaults()

	assert.Equal(t, "https://www.youtube.com", p.HomeURL)
	assert.Equal(t, "a#video-title", p.AnchorSelector)
	assert.Equal(t, "/watch", p.ValidHrefContains)
	assert.Equal(t, 150, p.SearchTimeoutSeconds)
	assert.True(t, p.IsValid())
}

func TestPlay_WithDefaultsKeepsOverrides(t *testing.T) {
	in := &Play{Query: "q", AnchorSelector: "a.result", SearchTimeoutSeconds: 5}
	p := in.WithDefaults()

	assert.Equal(t, "a.result", p.AnchorSelector)
	assert.Equal(t, 5, p.SearchTimeoutSeconds)
	// 原参数不被修改
	assert.Empty(t, in.HomeURL)
}

func TestPlay_IsValid(t *testing.T) {
	assert.False(t, (&Play{}).WithDefaults().IsValid(), "empty query")
	assert.False(t, (&Play{Query: "   "}).WithDefaults().IsValid(), "blank query")

	p := (&Play{Query: "q"}).WithDefaults()
	p.WatchSeconds = -1
	assert.False(t, p.IsValid())
}

func TestOpen_IsValid(t *testing.T) {
	assert.False(t, (&Open{}).WithDefaults().IsValid())
	o := (&Open{Url: "https://youtube.com", HoldSeconds: 15}).WithDefaults()
	assert.True(t, o.IsValid())
	assert.Equal(t, 30, o.LoadTimeoutSeconds)
}

func TestExtract_IsValid(t *testing.T) {
	e := (&Extract{Url: "https://docs.python.org/3.14/", Output: "out.txt"}).WithDefaults()
	assert.True(t, e.IsValid())
	assert.Equal(t, EngineBrowser, e.Engine)
	assert.Equal(t, []string{"main", "body"}, e.Selectors)
	assert.Equal(t, 30, e.LoadTimeoutSeconds)

	e.Engine = "selenium"
	assert.False(t, e.IsValid())

	assert.False(t, (&Extract{Url: "https://x"}).WithDefaults().IsValid(), "missing output")
}

func TestPlay_EmptyConsentLabelsDisablesConsent(t *testing.T) {
	p := (&Play{Query: "q", ConsentLabels: []string{}}).WithDefaults()
	assert.NotNil(t, p.ConsentLabels)
	assert.Empty(t, p.ConsentLabels)

	p = (&Play{Query: "q"}).WithDefaults()
	assert.NotEmpty(t, p.ConsentLabels)
}
