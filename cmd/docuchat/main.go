package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/Zacy-Sokach/DocuChat/internal/api"
	"github.com/Zacy-Sokach/DocuChat/internal/config"
	"github.com/Zacy-Sokach/DocuChat/internal/tui"
	"github.com/Zacy-Sokach/DocuChat/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
)

var (
	Version = "dev"
)

func main() {
	// 处理命令行参数
	var initialFile string
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Printf("DocuChat %s\n", Version)
			os.Exit(0)
		case "-h", "--help":
			printHelp()
			os.Exit(0)
		default:
			initialFile = os.Args[1]
		}
	}

	// 添加panic恢复
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("程序发生panic: %v\n", r)
			fmt.Println("堆栈跟踪:")
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	// .env 不存在时忽略
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 首次运行时写出默认配置
	if path, err := config.ConfigPath(); err == nil && !utils.FileExists(path) {
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("保存配置失败: %v\n", err)
			os.Exit(1)
		}
	}

	logFile, err := utils.OpenLogFile(cfg.LogFile)
	if err != nil {
		fmt.Printf("打开日志文件失败: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := utils.NewLogger(logFile, cfg.LogLevel)
	client := api.NewClient()
	level.Info(logger).Log("msg", "starting", "version", Version, "backend", client.BaseURL())

	if !isTerminal() {
		fmt.Println("DocuChat 需要在交互式终端中运行")
		fmt.Printf("后端地址: %s\n", client.BaseURL())
		fmt.Printf("配置文件: %s\n", utils.GetConfigPathForDisplay())
		os.Exit(1)
	}

	tui.Version = Version
	model := tui.NewModel(tui.Options{
		Backend:         client,
		Logger:          logger,
		NotificationTTL: time.Duration(cfg.NotificationSeconds) * time.Second,
		StartDir:        cfg.StartDir,
		ExportDir:       cfg.ExportDir,
		InitialFile:     initialFile,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		level.Error(logger).Log("msg", "program exited with error", "err", err)
		fmt.Printf("程序运行错误: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(lipgloss.NewStyle().Bold(true).Render("DocuChat") + " - 上传 PDF，然后就文档内容提问")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  docuchat [file.pdf]      Start the interactive TUI, optionally preselecting a PDF")
	fmt.Println("  docuchat -v, --version   Show version information")
	fmt.Println("  docuchat -h, --help      Show help information")
	fmt.Println()
	fmt.Println("Keys in TUI:")
	fmt.Println("  Ctrl+O                   Browse for a PDF")
	fmt.Println("  Ctrl+U                   Upload the selected PDF")
	fmt.Println("  PgUp/PgDn                Scroll the conversation")
	fmt.Println()
	fmt.Println("Commands in TUI:")
	fmt.Println("  /open <path>             Select a file")
	fmt.Println("  /upload                  Upload the selected file")
	fmt.Println("  /export [path]           Export the conversation as markdown")
	fmt.Println("  /quit                    Exit")
	fmt.Println()
	fmt.Printf("Config: %s\n", utils.GetConfigPathForDisplay())
}

func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
