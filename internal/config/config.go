package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Zacy-Sokach/DocuChat/internal/utils"
	"gopkg.in/yaml.v3"
)

const (
	defaultLogLevel            = "info"
	defaultNotificationSeconds = 4
)

type Config struct {
	LogLevel            string `yaml:"log_level"`
	LogFile             string `yaml:"log_file"`
	NotificationSeconds int    `yaml:"notification_seconds"`
	ExportDir           string `yaml:"export_dir"`
	StartDir            string `yaml:"start_dir"`
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := &Config{}
		if err := cfg.applyDefaults(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() error {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.NotificationSeconds <= 0 {
		c.NotificationSeconds = defaultNotificationSeconds
	}
	if c.LogFile == "" {
		configDir, err := utils.GetConfigDir()
		if err != nil {
			return fmt.Errorf("获取配置目录失败: %w", err)
		}
		c.LogFile = filepath.Join(configDir, "docuchat.log")
	}
	c.LogFile = utils.ExpandHome(c.LogFile)

	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	c.ExportDir = utils.ExpandHome(c.ExportDir)

	if c.StartDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("获取当前目录失败: %w", err)
		}
		c.StartDir = wd
	}
	c.StartDir = utils.ExpandHome(c.StartDir)
	return nil
}

func SaveConfig(config *Config) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// ConfigPath 返回配置文件的完整路径
func ConfigPath() (string, error) {
	return getConfigPath()
}

func getConfigPath() (string, error) {
	configDir, err := utils.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("获取配置目录失败: %w", err)
	}
	return filepath.Join(configDir, "config.yaml"), nil
}
