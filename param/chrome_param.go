package param

import "strings"

// Play 搜索视频站并播放匹配结果的参数
type Play struct {
	HomeURL           string   `json:"home_url" yaml:"home_url"`
	Query             string   `json:"query" yaml:"query"`
	Keywords          []string `json:"keywords" yaml:"keywords"`
	ConsentLabels     []string `json:"consent_labels" yaml:"consent_labels"`
	SearchSelector    string   `json:"search_selector" yaml:"search_selector"`
	ResultsSelector   string   `json:"results_selector" yaml:"results_selector"`
	AnchorSelector    string   `json:"anchor_selector" yaml:"anchor_selector"`
	ValidHrefContains string   `json:"valid_href_contains" yaml:"valid_href_contains"`
	VideoSelector     string   `json:"video_selector" yaml:"video_selector"`
	// 等待超时(秒),所有等待都是有上限的条件轮询
	SearchTimeoutSeconds   int `json:"search_timeout_seconds" yaml:"search_timeout_seconds"`
	LoadTimeoutSeconds     int `json:"load_timeout_seconds" yaml:"load_timeout_seconds"`
	PlaybackTimeoutSeconds int `json:"playback_timeout_seconds" yaml:"playback_timeout_seconds"`
	// 开始播放后保持页面的时间(秒)
	WatchSeconds int  `json:"watch_seconds" yaml:"watch_seconds"`
	KeepOpen     bool `json:"keep_open" yaml:"keep_open"`
}

func (p *Play) WithDefaults() *Play {
	out := *p
	if out.HomeURL == "" {
		out.HomeURL = "https://www.youtube.com"
	}
	// 显式配置为空列表时不处理同意弹窗
	if out.ConsentLabels == nil {
		out.ConsentLabels = []string{"I agree", "Accept all", "Accept", "AGREE"}
	}
	if out.SearchSelector == "" {
		out.SearchSelector = "#center yt-searchbox input, input#search"
	}
	if out.ResultsSelector == "" {
		out.ResultsSelector = "ytd-video-renderer, ytd-grid-video-renderer, a#video-title"
	}
	if out.AnchorSelector == "" {
		out.AnchorSelector = "a#video-title"
	}
	if out.ValidHrefContains == "" {
		out.ValidHrefContains = "/watch"
	}
	if out.VideoSelector == "" {
		out.VideoSelector = "video"
	}
	if out.SearchTimeoutSeconds <= 0 {
		out.SearchTimeoutSeconds = 150
	}
	if out.LoadTimeoutSeconds <= 0 {
		out.LoadTimeoutSeconds = 60
	}
	if out.PlaybackTimeoutSeconds <= 0 {
		out.PlaybackTimeoutSeconds = 10
	}
	if out.WatchSeconds < 0 {
		out.WatchSeconds = 0
	}
	return &out
}

func (p *Play) IsValid() bool {
	if p.HomeURL == "" ||
		strings.TrimSpace(p.Query) == "" ||
		p.SearchSelector == "" ||
		p.ResultsSelector == "" ||
		p.AnchorSelector == "" ||
		p.VideoSelector == "" ||
		p.SearchTimeoutSeconds <= 0 ||
		p.LoadTimeoutSeconds <= 0 ||
		p.PlaybackTimeoutSeconds <= 0 ||
		p.WatchSeconds < 0 {
		return false
	}
	return true
}

// Open 打开页面并停留
type Open struct {
	Url                string `json:"url" yaml:"url"`
	LoadTimeoutSeconds int    `json:"load_timeout_seconds" yaml:"load_timeout_seconds"`
	HoldSeconds        int    `json:"hold_seconds" yaml:"hold_seconds"`
}

func (o *Open) WithDefaults() *Open {
	out := *o
	if out.LoadTimeoutSeconds <= 0 {
		out.LoadTimeoutSeconds = 30
	}
	if out.HoldSeconds < 0 {
		out.HoldSeconds = 0
	}
	return &out
}

func (o *Open) IsValid() bool {
	return o.Url != "" && o.LoadTimeoutSeconds > 0 && o.HoldSeconds >= 0
}

type Engine string

const (
	EngineBrowser Engine = "browser"
	EngineColly   Engine = "colly"
)

// Extract 抓取页面可见文本并写入文件
type Extract struct {
	Url       string   `json:"url" yaml:"url"`
	Output    string   `json:"output" yaml:"output"`
	Engine    Engine   `json:"engine" yaml:"engine"`
	Selectors []string `json:"selectors" yaml:"selectors"`
	// 整次抓取的上限
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
	// 等待页面稳定的上限,超时后仍读取文本
	LoadTimeoutSeconds int `json:"load_timeout_seconds" yaml:"load_timeout_seconds"`
}

func (e *Extract) WithDefaults() *Extract {
	out := *e
	if out.Engine == "" {
		out.Engine = EngineBrowser
	}
	if len(out.Selectors) == 0 {
		out.Selectors = []string{"main", "body"}
	}
	if out.TimeoutSeconds <= 0 {
		out.TimeoutSeconds = 60
	}
	if out.LoadTimeoutSeconds <= 0 {
		out.LoadTimeoutSeconds = 30
	}
	return &out
}

func (e *Extract) IsValid() bool {
	if e.Url == "" ||
		e.Output == "" ||
		len(e.Selectors) == 0 ||
		e.TimeoutSeconds <= 0 ||
		e.LoadTimeoutSeconds <= 0 {
		return false
	}
	switch e.Engine {
	case EngineBrowser, EngineColly:
		return true
	default:
		return false
	}
}
