package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTranscriptMarkdown(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	out := FormatTranscriptMarkdown("report.pdf", []Turn{
		{Role: RoleUser, Content: "What is the summary?"},
		{Role: RoleAssistant, Content: "It summarizes X.\n"},
	}, now)

	want := "# DocuChat\n\n" +
		"- 文档: `report.pdf`\n" +
		"- 导出时间: 2026-01-02 03:04:05\n" +
		"\n## 你\n\nWhat is the summary?\n" +
		"\n## AI\n\nIt summarizes X.\n"
	assert.Equal(t, want, out)
}

func TestDefaultExportPath(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, filepath.Join("out", "docuchat-20260102-030405.md"), defaultExportPath("out", now))
}

func TestExportTranscriptWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.md")
	msg := exportTranscript(path, "", []Turn{{Role: RoleUser, Content: "hi"}})().(ExportResultMsg)
	require.NoError(t, msg.Err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## 你\n\nhi\n")
	assert.NotContains(t, string(data), "文档:")
}
