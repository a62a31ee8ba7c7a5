package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandParser(t *testing.T) {
	p := NewCommandParser()

	tests := []struct {
		input string
		typ   CommandType
		arg   string
	}{
		{"/open report.pdf", CommandTypeOpen, "report.pdf"},
		{"/OPEN  \"my docs/report.pdf\" ", CommandTypeOpen, "my docs/report.pdf"},
		{"/打开 报告.pdf", CommandTypeOpen, "报告.pdf"},
		{"/upload", CommandTypeUpload, ""},
		{"/上传", CommandTypeUpload, ""},
		{"/export", CommandTypeExport, ""},
		{"/export ~/out.md", CommandTypeExport, "~/out.md"},
		{"/导出", CommandTypeExport, ""},
		{"/quit", CommandTypeQuit, ""},
		{"/q", CommandTypeQuit, ""},
		{"/退出", CommandTypeQuit, ""},
		{"/help", CommandTypeHelp, ""},
		{"/open", CommandTypeUnknown, ""},
		{"/whatever", CommandTypeUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := p.Parse(tt.input)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.typ, cmd.Type, FormatCommandType(cmd.Type))
			assert.Equal(t, tt.arg, cmd.Arg)
		})
	}
}

func TestCommandParserPlainQuestion(t *testing.T) {
	p := NewCommandParser()
	assert.Nil(t, p.Parse("What is the summary?"))
	assert.False(t, p.IsCommand("upload please"))
	assert.True(t, p.IsCommand("/upload"))
	assert.False(t, p.IsCommand("/usr/bin mentioned on page 3: what is it?"))
}
