package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseConfig 在默认配置之上解析JSON配置
func ParseConfig(byteConfig []byte) (*Config, error) {
	cfg := Default()
	if err := json.Unmarshal(byteConfig, cfg); err != nil {
		return nil, fmt.Errorf("解析JSON配置失败: %w", err)
	}
	return finalize(cfg)
}

// ParseYAMLConfig 在默认配置之上解析YAML配置
func ParseYAMLConfig(byteConfig []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(byteConfig, cfg); err != nil {
		return nil, fmt.Errorf("解析YAML配置失败: %w", err)
	}
	return finalize(cfg)
}

// LoadFile 按扩展名读取 .json / .yaml / .yml 配置文件
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseConfig(data)
	case ".yaml", ".yml":
		return ParseYAMLConfig(data)
	default:
		return nil, fmt.Errorf("不支持的配置文件格式: %s", path)
	}
}

func finalize(cfg *Config) (*Config, error) {
	if cfg.Browser.UserDataDir != "" {
		absPath, err := filepath.Abs(cfg.Browser.UserDataDir)
		if err != nil {
			return nil, err
		}
		cfg.Browser.UserDataDir = absPath
	}
	cfg.Play = *cfg.Play.WithDefaults()
	cfg.Open = *cfg.Open.WithDefaults()
	cfg.Extract = *cfg.Extract.WithDefaults()
	return cfg, nil
}
