package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/russross/blackfriday/v2"
)

// 全局Markdown渲染器单例
var (
	globalMarkdownRenderer *MarkdownRenderer
	rendererOnce           sync.Once
)

// GetMarkdownRenderer 获取Markdown渲染器单例
func GetMarkdownRenderer() *MarkdownRenderer {
	rendererOnce.Do(func() {
		globalMarkdownRenderer = NewMarkdownRenderer()
	})
	return globalMarkdownRenderer
}

type markdownStyles struct {
	heading   []lipgloss.Style
	emph      lipgloss.Style
	strong    lipgloss.Style
	del       lipgloss.Style
	code      lipgloss.Style
	codeBlock lipgloss.Style
	link      lipgloss.Style
	quote     lipgloss.Style
	bullet    lipgloss.Style
	rule      lipgloss.Style
}

// MarkdownRenderer 基于 blackfriday 语法树把 Markdown 渲染为 ANSI 文本
type MarkdownRenderer struct {
	styles     markdownStyles
	extensions blackfriday.Extensions
}

// NewMarkdownRenderer 创建新的 Markdown 渲染器
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		styles:     defaultMarkdownStyles(),
		extensions: blackfriday.CommonExtensions,
	}
}

func defaultMarkdownStyles() markdownStyles {
	base := lipgloss.NewStyle()
	return markdownStyles{
		heading: []lipgloss.Style{
			base.Bold(true).Underline(true).Foreground(lipgloss.Color("86")),
			base.Bold(true).Foreground(lipgloss.Color("86")),
			base.Bold(true).Foreground(lipgloss.Color("80")),
		},
		emph:      base.Italic(true),
		strong:    base.Bold(true),
		del:       base.Strikethrough(true),
		code:      base.Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236")),
		codeBlock: base.Foreground(lipgloss.Color("252")).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).PaddingLeft(1),
		link:      base.Underline(true).Foreground(lipgloss.Color("39")),
		quote:     base.Foreground(lipgloss.Color("245")).Italic(true),
		bullet:    base.Foreground(lipgloss.Color("86")),
		rule:      base.Foreground(lipgloss.Color("240")),
	}
}

// Render 渲染 Markdown 文本为 ANSI 格式，width <= 0 表示不折行
func (r *MarkdownRenderer) Render(markdown string, width int) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}

	// blackfriday 的解析器带状态，每次都新建
	parser := blackfriday.New(blackfriday.WithExtensions(r.extensions))
	root := parser.Parse([]byte(markdown))

	return strings.Join(r.renderBlocks(root, width), "\n\n")
}

func (r *MarkdownRenderer) renderBlocks(parent *blackfriday.Node, width int) []string {
	var blocks []string
	for node := parent.FirstChild; node != nil; node = node.Next {
		if block := r.renderBlock(node, width); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func (r *MarkdownRenderer) renderBlock(node *blackfriday.Node, width int) string {
	switch node.Type {
	case blackfriday.Paragraph:
		return wrapText(r.renderInlines(node), width)

	case blackfriday.Heading:
		lvl := node.HeadingData.Level
		if lvl > len(r.styles.heading) {
			lvl = len(r.styles.heading)
		}
		if lvl < 1 {
			lvl = 1
		}
		return wrapText(r.styles.heading[lvl-1].Render(r.renderInlines(node)), width)

	case blackfriday.List:
		return r.renderList(node, width)

	case blackfriday.CodeBlock:
		code := strings.TrimRight(string(node.Literal), "\n")
		return r.styles.codeBlock.Render(code)

	case blackfriday.BlockQuote:
		inner := strings.Join(r.renderBlocks(node, width-2), "\n\n")
		return prefixLines(r.styles.quote.Render(inner), r.styles.rule.Render("│ "))

	case blackfriday.HorizontalRule:
		n := 40
		if width > 0 && width < n {
			n = width
		}
		return r.styles.rule.Render(strings.Repeat("─", n))

	case blackfriday.Table:
		return r.renderTable(node)

	case blackfriday.HTMLBlock:
		return strings.TrimRight(string(node.Literal), "\n")

	default:
		return wrapText(r.renderInlines(node), width)
	}
}

func (r *MarkdownRenderer) renderList(list *blackfriday.Node, width int) string {
	ordered := list.ListFlags&blackfriday.ListTypeOrdered != 0
	var items []string
	index := 1

	for item := list.FirstChild; item != nil; item = item.Next {
		marker := "• "
		if ordered {
			marker = fmt.Sprintf("%d. ", index)
		}
		index++

		indent := strings.Repeat(" ", lipgloss.Width(marker))
		body := strings.Join(r.renderBlocks(item, width-len(indent)), "\n")
		lines := strings.Split(body, "\n")
		for i := range lines {
			if i == 0 {
				lines[i] = r.styles.bullet.Render(marker) + lines[i]
			} else {
				lines[i] = indent + lines[i]
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}

	sep := "\n"
	if !list.Tight {
		sep = "\n\n"
	}
	return strings.Join(items, sep)
}

func (r *MarkdownRenderer) renderTable(table *blackfriday.Node) string {
	var rows []string
	table.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering || node.Type != blackfriday.TableRow {
			return blackfriday.GoToNext
		}
		var cells []string
		for cell := node.FirstChild; cell != nil; cell = cell.Next {
			text := r.renderInlines(cell)
			if cell.IsHeader {
				text = r.styles.strong.Render(text)
			}
			cells = append(cells, text)
		}
		rows = append(rows, strings.Join(cells, " │ "))
		return blackfriday.SkipChildren
	})
	return strings.Join(rows, "\n")
}

// renderInlines 渲染行内节点：强调、加粗、行内代码、链接等
func (r *MarkdownRenderer) renderInlines(parent *blackfriday.Node) string {
	var sb strings.Builder
	for node := parent.FirstChild; node != nil; node = node.Next {
		sb.WriteString(r.renderInline(node))
	}
	return sb.String()
}

func (r *MarkdownRenderer) renderInline(node *blackfriday.Node) string {
	switch node.Type {
	case blackfriday.Text:
		return string(node.Literal)
	case blackfriday.Emph:
		return r.styles.emph.Render(r.renderInlines(node))
	case blackfriday.Strong:
		return r.styles.strong.Render(r.renderInlines(node))
	case blackfriday.Del:
		return r.styles.del.Render(r.renderInlines(node))
	case blackfriday.Code:
		return r.styles.code.Render(string(node.Literal))
	case blackfriday.Link:
		text := r.renderInlines(node)
		dest := string(node.LinkData.Destination)
		if dest == "" || dest == text {
			return r.styles.link.Render(text)
		}
		return r.styles.link.Render(text) + " (" + dest + ")"
	case blackfriday.Image:
		return "[图片: " + r.renderInlines(node) + "]"
	case blackfriday.Hardbreak:
		return "\n"
	case blackfriday.Softbreak:
		return " "
	case blackfriday.HTMLSpan:
		return string(node.Literal)
	default:
		if node.FirstChild != nil {
			return r.renderInlines(node)
		}
		return string(node.Literal)
	}
}

// wrapText 按宽度折行，支持 ANSI 序列
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func prefixLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
