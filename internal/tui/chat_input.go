package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// QuestionInput 单行问题输入框
// 回车时把去掉首尾空白的问题通过 QuestionSubmittedMsg 交给上层并清空自己
// 禁用时不接受输入，发送按钮位置显示加载动画
type QuestionInput struct {
	input    textinput.Model
	spinner  spinner.Model
	disabled bool
}

// NewQuestionInput 创建问题输入框
func NewQuestionInput() QuestionInput {
	ti := textinput.New()
	ti.Placeholder = "就文档提出你的问题..."
	ti.Prompt = "❯ "
	ti.CharLimit = 0
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	return QuestionInput{input: ti, spinner: sp}
}

// SetDisabled 切换禁用状态，禁用时返回加载动画的 tick
func (q *QuestionInput) SetDisabled(disabled bool) tea.Cmd {
	q.disabled = disabled
	if disabled {
		q.input.Blur()
		return q.spinner.Tick
	}
	return q.input.Focus()
}

func (q QuestionInput) Disabled() bool {
	return q.disabled
}

// Value 当前输入内容
func (q QuestionInput) Value() string {
	return q.input.Value()
}

// SetValue 设置输入内容
func (q *QuestionInput) SetValue(s string) {
	q.input.SetValue(s)
}

// SetWidth 设置输入框宽度，留出发送按钮的位置
func (q *QuestionInput) SetWidth(width int) {
	w := width - lipgloss.Width(q.input.Prompt) - 6
	if w < 10 {
		w = 10
	}
	q.input.Width = w
}

func (q QuestionInput) Update(msg tea.Msg) (QuestionInput, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !q.disabled {
			return q, nil
		}
		var cmd tea.Cmd
		q.spinner, cmd = q.spinner.Update(msg)
		return q, cmd

	case tea.KeyMsg:
		if q.disabled {
			return q, nil
		}
		if msg.Type == tea.KeyEnter {
			return q.submit()
		}
	}

	if q.disabled {
		return q, nil
	}
	var cmd tea.Cmd
	q.input, cmd = q.input.Update(msg)
	return q, cmd
}

func (q QuestionInput) submit() (QuestionInput, tea.Cmd) {
	text := strings.TrimSpace(q.input.Value())
	if text == "" {
		return q, nil
	}
	q.input.Reset()
	return q, func() tea.Msg {
		return QuestionSubmittedMsg{Text: text}
	}
}

func (q QuestionInput) View() string {
	send := buttonStyle.Render("发送")
	switch {
	case q.disabled:
		send = loadingStyle.Render(q.spinner.View())
	case strings.TrimSpace(q.input.Value()) == "":
		send = buttonDisabledStyle.Render("发送")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, q.input.View(), " ", send)
}

// SetPlaceholder 设置占位提示
func (q *QuestionInput) SetPlaceholder(s string) {
	q.input.Placeholder = s
}
