package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDriver   = "BROWSERAGENT_DRIVER"
	EnvHeadless = "BROWSERAGENT_HEADLESS"
	EnvBin      = "BROWSERAGENT_BIN"
	EnvLogLevel = "BROWSERAGENT_LOG_LEVEL"
	EnvQuery    = "BROWSERAGENT_QUERY"
	EnvKeywords = "BROWSERAGENT_KEYWORDS"
	EnvOutput   = "BROWSERAGENT_OUTPUT"
)

// ApplyEnv 读取 .env (存在的话) 和 BROWSERAGENT_* 环境变量覆盖配置
func ApplyEnv(cfg *Config, envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("加载.env失败: %w", err)
	}

	if v, ok := os.LookupEnv(EnvDriver); ok && v != "" {
		cfg.Browser.Driver = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvHeadless); ok && v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s 不是合法的布尔值: %w", EnvHeadless, err)
		}
		cfg.Browser.Headless = headless
	}
	if v, ok := os.LookupEnv(EnvBin); ok && v != "" {
		cfg.Browser.Bin = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvQuery); ok && v != "" {
		cfg.Play.Query = v
	}
	if v, ok := os.LookupEnv(EnvKeywords); ok && v != "" {
		cfg.Play.Keywords = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv(EnvOutput); ok && v != "" {
		cfg.Extract.Output = v
	}
	return nil
}
