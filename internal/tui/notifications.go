package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// NotificationKind 通知类型
type NotificationKind int

const (
	NotifyInfo NotificationKind = iota
	NotifyLoading
	NotifySuccess
	NotifyError
)

// Notification 一条短暂显示的通知
// 通知只用于展示，不参与状态机
type Notification struct {
	ID         string
	Kind       NotificationKind
	Text       string
	generation int
}

const maxVisibleNotifications = 3

// Notifier 管理通知列表
// loading 通知会一直显示，直到被同 ID 的通知替换
type Notifier struct {
	items []Notification
	ttl   time.Duration
}

// NewNotifier 创建通知管理器，ttl 为普通通知的显示时长
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	return &Notifier{ttl: ttl}
}

// Loading 显示持续的加载通知，返回其 ID
func (n *Notifier) Loading(text string) string {
	id := uuid.NewString()
	n.set(id, NotifyLoading, text)
	return id
}

// Info 显示一条普通通知
func (n *Notifier) Info(text string) tea.Cmd {
	return n.Replace(uuid.NewString(), NotifyInfo, text)
}

// Success 显示一条成功通知
func (n *Notifier) Success(text string) tea.Cmd {
	return n.Replace(uuid.NewString(), NotifySuccess, text)
}

// Error 显示一条错误通知
func (n *Notifier) Error(text string) tea.Cmd {
	return n.Replace(uuid.NewString(), NotifyError, text)
}

// Replace 替换指定 ID 的通知，不存在时新建，返回到期命令
func (n *Notifier) Replace(id string, kind NotificationKind, text string) tea.Cmd {
	gen := n.set(id, kind, text)
	if kind == NotifyLoading {
		return nil
	}
	return tea.Tick(n.ttl, func(time.Time) tea.Msg {
		return NotificationExpiredMsg{ID: id, Generation: gen}
	})
}

// Expire 处理到期消息；通知在此期间被替换过的话保留
func (n *Notifier) Expire(msg NotificationExpiredMsg) {
	for i, item := range n.items {
		if item.ID == msg.ID && item.generation == msg.Generation {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// Dismiss 立即移除指定 ID 的通知
func (n *Notifier) Dismiss(id string) {
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// Items 返回当前通知，最新的在最后
func (n *Notifier) Items() []Notification {
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

func (n *Notifier) set(id string, kind NotificationKind, text string) int {
	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].Kind = kind
			n.items[i].Text = text
			n.items[i].generation++
			return n.items[i].generation
		}
	}
	n.items = append(n.items, Notification{ID: id, Kind: kind, Text: text, generation: 1})
	return 1
}

// View 渲染最近的几条通知
func (n *Notifier) View(width int) string {
	if len(n.items) == 0 {
		return ""
	}
	start := 0
	if len(n.items) > maxVisibleNotifications {
		start = len(n.items) - maxVisibleNotifications
	}

	lines := make([]string, 0, maxVisibleNotifications)
	for _, item := range n.items[start:] {
		lines = append(lines, notificationStyle(item.Kind).Render(notificationIcon(item.Kind)+" "+item.Text))
	}
	block := strings.Join(lines, "\n")
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}
	return block
}

func notificationIcon(kind NotificationKind) string {
	switch kind {
	case NotifyLoading:
		return "⏳"
	case NotifySuccess:
		return "✅"
	case NotifyError:
		return "❌"
	default:
		return "💡"
	}
}

func notificationStyle(kind NotificationKind) lipgloss.Style {
	switch kind {
	case NotifyLoading:
		return notifyLoadingStyle
	case NotifySuccess:
		return notifySuccessStyle
	case NotifyError:
		return notifyErrorStyle
	default:
		return notifyInfoStyle
	}
}
