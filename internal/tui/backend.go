package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Backend 问答后端，*api.Client 实现了它
type Backend interface {
	DocumentCount(ctx context.Context) (int, error)
	UploadPDF(ctx context.Context, path string) error
	Chat(ctx context.Context, question string) (string, error)
}

// probeDocuments 启动时查询后端已有文档数
func probeDocuments(ctx context.Context, backend Backend) tea.Cmd {
	return func() tea.Msg {
		count, err := backend.DocumentCount(ctx)
		return DocumentCountMsg{Count: count, Err: err}
	}
}

// uploadFile 上传选中的 PDF
func uploadFile(ctx context.Context, backend Backend, logger log.Logger, file SelectedFile, notificationID string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		err := backend.UploadPDF(ctx, file.Path)
		level.Debug(logger).Log("msg", "upload finished", "file", file.Name, "duration", time.Since(start), "err", err)
		return UploadResultMsg{File: file, NotificationID: notificationID, Err: err}
	}
}

// askQuestion 把问题发给后端
func askQuestion(ctx context.Context, backend Backend, logger log.Logger, q Question) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		answer, err := backend.Chat(ctx, q.Text)
		level.Debug(logger).Log("msg", "chat finished", "duration", time.Since(start), "err", err)
		return ChatResultMsg{Question: q, Answer: answer, Err: err}
	}
}

// selectFile 把路径包装成选择消息
func selectFile(path string) tea.Cmd {
	return func() tea.Msg {
		return FileSelectedMsg{Path: path}
	}
}
