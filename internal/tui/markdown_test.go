package tui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderMarkdownBlocks(t *testing.T) {
	r := NewMarkdownRenderer()
	out := plain(r.Render("# Title\n\nSome **bold** and *em* text with `code`.\n\n- one\n- two\n\n1. first\n2. second\n\n> quoted\n\n```go\nfmt.Println(1)\n```\n", 0))

	assert.Contains(t, out, "Title")
	assert.NotContains(t, out, "# Title")
	assert.Contains(t, out, "Some bold and em text with code.")
	assert.Contains(t, out, "• one\n• two")
	assert.Contains(t, out, "1. first\n2. second")
	assert.Contains(t, out, "│ quoted")
	assert.Contains(t, out, "fmt.Println(1)")
	assert.NotContains(t, out, "```")
}

func TestRenderMarkdownLinks(t *testing.T) {
	r := NewMarkdownRenderer()
	out := plain(r.Render("See [docs](https://example.com).", 0))
	assert.Contains(t, out, "docs (https://example.com)")
}

func TestRenderMarkdownEmpty(t *testing.T) {
	assert.Empty(t, NewMarkdownRenderer().Render("  \n", 80))
}

func TestRenderMarkdownWraps(t *testing.T) {
	r := NewMarkdownRenderer()
	out := plain(r.Render(strings.Repeat("word ", 40), 20))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

func TestRenderMessageRoles(t *testing.T) {
	user := plain(RenderMessage(RoleUser, "**not markdown**", 0))
	assert.True(t, strings.HasPrefix(user, "你\n"))
	assert.Contains(t, user, "**not markdown**")

	assistant := plain(RenderMessage(RoleAssistant, "**markdown**", 0))
	assert.True(t, strings.HasPrefix(assistant, "AI\n"))
	assert.Contains(t, assistant, "markdown")
	assert.NotContains(t, assistant, "**")
}

func TestRenderMessageUsesGivenRenderer(t *testing.T) {
	called := false
	out := renderMessageWith(func(s string, w int) string {
		called = true
		return "rendered:" + s
	}, RoleAssistant, "x", 10)

	assert.True(t, called)
	assert.Contains(t, plain(out), "rendered:x")
}
