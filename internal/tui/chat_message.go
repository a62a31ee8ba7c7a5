package tui

import (
	"strings"
)

// RenderMessage 渲染一条对话消息
// 用户消息按纯文本显示，助手消息按 Markdown 渲染
func RenderMessage(role Role, content string, width int) string {
	return renderMessageWith(GetMarkdownRenderer().Render, role, content, width)
}

func renderMessageWith(markdown func(string, int) string, role Role, content string, width int) string {
	var sb strings.Builder
	switch role {
	case RoleUser:
		sb.WriteString(userLabelStyle.Render("你"))
		sb.WriteString("\n")
		sb.WriteString(wrapText(userContentStyle.Render(content), width))
	case RoleAssistant:
		sb.WriteString(assistantLabelStyle.Render("AI"))
		sb.WriteString("\n")
		sb.WriteString(markdown(content, width))
	default:
		sb.WriteString(wrapText(content, width))
	}
	return sb.String()
}
