package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zacy-Sokach/DocuChat/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
)

// FormatTranscriptMarkdown 把对话记录格式化为 Markdown
func FormatTranscriptMarkdown(file string, turns []Turn, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("# DocuChat\n\n")
	if file != "" {
		sb.WriteString(fmt.Sprintf("- 文档: `%s`\n", file))
	}
	sb.WriteString(fmt.Sprintf("- 导出时间: %s\n", now.Format("2006-01-02 15:04:05")))

	for _, turn := range turns {
		switch turn.Role {
		case RoleUser:
			sb.WriteString("\n## 你\n\n")
		case RoleAssistant:
			sb.WriteString("\n## AI\n\n")
		}
		sb.WriteString(strings.TrimRight(turn.Content, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// defaultExportPath 生成默认的导出文件名
func defaultExportPath(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("docuchat-%s.md", now.Format("20060102-150405")))
}

// exportTranscript 把对话记录写入文件
func exportTranscript(path, file string, turns []Turn) tea.Cmd {
	return func() tea.Msg {
		content := FormatTranscriptMarkdown(file, turns, time.Now())
		if err := utils.WriteFileAtomic(path, []byte(content)); err != nil {
			return ExportResultMsg{Path: path, Err: fmt.Errorf("导出对话失败: %w", err)}
		}
		return ExportResultMsg{Path: path}
	}
}
