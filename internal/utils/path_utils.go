package utils

import (
	"os"
	"path/filepath"
	"strings"
)

const appDirName = "docuchat"

// GetConfigDir 获取跨平台的配置目录
// Windows: %APPDATA%/docuchat
// Linux/macOS: ~/.config/docuchat
func GetConfigDir() (string, error) {
	// 检查是否设置了自定义配置目录
	if configHome := os.Getenv("DOCUCHAT_CONFIG_HOME"); configHome != "" {
		return configHome, nil
	}

	// Windows: 使用 APPDATA
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appDirName), nil
	}

	// Linux/macOS: 使用 XDG_CONFIG_HOME 或 ~/.config
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appDirName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appDirName), nil
}

// GetConfigPathForDisplay 获取用于显示的配置路径字符串
func GetConfigPathForDisplay() string {
	if configHome := os.Getenv("DOCUCHAT_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "config.yaml")
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appDirName, "config.yaml") + " (Windows)"
	}
	return "~/.config/docuchat/config.yaml (Linux/macOS)"
}

// IsPDF 判断路径是否为 PDF 文件（只看扩展名）
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// ExpandHome 展开路径开头的 ~
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
