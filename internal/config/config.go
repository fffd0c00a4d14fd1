package config

import "github.com/LouYuanbo1/browseragent/param"

type Config struct {
	Log struct {
		Level       string `json:"level" yaml:"level"`
		Development bool   `json:"development" yaml:"development"`
	} `json:"log" yaml:"log"`

	Browser struct {
		// rod | chromedp | playwright
		Driver               string `json:"driver" yaml:"driver"`
		Headless             bool   `json:"headless" yaml:"headless"`
		Bin                  string `json:"bin" yaml:"bin"`
		UserDataDir          string `json:"user_data_dir" yaml:"user_data_dir"`
		UserMode             bool   `json:"user_mode" yaml:"user_mode"`
		DisableBlinkFeatures string `json:"disable_blink_features" yaml:"disable_blink_features"`
		Incognito            bool   `json:"incognito" yaml:"incognito"`
		DisableDevShmUsage   bool   `json:"disable_dev_shm_usage" yaml:"disable_dev_shm_usage"`
		NoSandbox            bool   `json:"no_sandbox" yaml:"no_sandbox"`
		UserAgent            string `json:"user_agent" yaml:"user_agent"`
		Leakless             bool   `json:"leakless" yaml:"leakless"`
		Stealth              bool   `json:"stealth" yaml:"stealth"`
		Trace                bool   `json:"trace" yaml:"trace"`
		SlowMotionMillis     int    `json:"slow_motion_millis" yaml:"slow_motion_millis"`
		RemoteDebuggingPort  int    `json:"remote_debugging_port" yaml:"remote_debugging_port"`
		WindowWidth          int    `json:"window_width" yaml:"window_width"`
		WindowHeight         int    `json:"window_height" yaml:"window_height"`
		// 单次导航、输入、点击的上限(秒)
		ActionTimeoutSeconds int `json:"action_timeout_seconds" yaml:"action_timeout_seconds"`
		// chromedp 浏览器最长存活时间(秒)
		LifeTime int `json:"life_time" yaml:"life_time"`
		// playwright 启动前是否安装浏览器
		InstallPlaywright bool `json:"install_playwright" yaml:"install_playwright"`
	} `json:"browser" yaml:"browser"`

	Colly struct {
		AllowedDomains  []string `json:"allowed_domains" yaml:"allowed_domains"`
		UserAgent       string   `json:"user_agent" yaml:"user_agent"`
		IgnoreRobotsTxt bool     `json:"ignore_robots_txt" yaml:"ignore_robots_txt"`
		TimeoutSeconds  int      `json:"timeout_seconds" yaml:"timeout_seconds"`
	} `json:"colly" yaml:"colly"`

	Play    param.Play    `json:"play" yaml:"play"`
	Open    param.Open    `json:"open" yaml:"open"`
	Extract param.Extract `json:"extract" yaml:"extract"`
}

const (
	DriverRod        = "rod"
	DriverChromedp   = "chromedp"
	DriverPlaywright = "playwright"
)

// Default 代码内默认值,配置文件只需覆盖需要修改的字段
func Default() *Config {
	var cfg Config
	cfg.Log.Level = "info"

	cfg.Browser.Driver = DriverRod
	cfg.Browser.Headless = true
	cfg.Browser.Leakless = true
	cfg.Browser.Stealth = true
	cfg.Browser.DisableBlinkFeatures = "AutomationControlled"
	cfg.Browser.WindowWidth = 1280
	cfg.Browser.WindowHeight = 800
	cfg.Browser.LifeTime = 600
	cfg.Browser.ActionTimeoutSeconds = 30

	cfg.Colly.IgnoreRobotsTxt = true
	cfg.Colly.TimeoutSeconds = 30

	cfg.Play = param.Play{
		Query:    "Ganapathy Tamil devotional songs",
		Keywords: []string{"ganapathy", "ganesh", "ganesha", "ganapathi", "ganapati"},
		// 播放后再等待 8+45 秒
		WatchSeconds: 53,
	}
	cfg.Play = *cfg.Play.WithDefaults()

	cfg.Open = *(&param.Open{Url: "https://youtube.com", HoldSeconds: 15}).WithDefaults()

	cfg.Extract = *(&param.Extract{
		Url:    "https://docs.python.org/3.14/",
		Output: "python_3_14_docs.txt",
	}).WithDefaults()
	return &cfg
}
