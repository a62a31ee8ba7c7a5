package tui

import (
	"regexp"
	"strings"
)

// CommandType 命令类型
type CommandType int

const (
	CommandTypeUnknown CommandType = iota
	CommandTypeOpen
	CommandTypeUpload
	CommandTypeExport
	CommandTypeQuit
	CommandTypeHelp
)

// Command 解析后的命令
type Command struct {
	Type CommandType
	Raw  string
	Arg  string
}

// CommandParser 命令解析器，命令以 / 开头，避免和普通问题混淆
type CommandParser struct {
	openPatterns   []*regexp.Regexp
	uploadPatterns []*regexp.Regexp
	exportPatterns []*regexp.Regexp
	quitPatterns   []*regexp.Regexp
	helpPatterns   []*regexp.Regexp
}

// NewCommandParser 创建新的命令解析器
func NewCommandParser() *CommandParser {
	parser := &CommandParser{}
	parser.initializePatterns()
	return parser
}

// initializePatterns 初始化正则表达式模式
func (p *CommandParser) initializePatterns() {
	p.openPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/open\s+(.+)$`),
		regexp.MustCompile(`^/打开\s+(.+)$`),
	}

	p.uploadPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/upload$`),
		regexp.MustCompile(`^/上传$`),
	}

	// 路径可选
	p.exportPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/export(?:\s+(.+))?$`),
		regexp.MustCompile(`^/导出(?:\s+(.+))?$`),
	}

	p.quitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/(quit|exit|q)$`),
		regexp.MustCompile(`^/退出$`),
	}

	p.helpPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^/(help|\?)$`),
		regexp.MustCompile(`^/帮助$`),
	}
}

// Parse 解析命令字符串，不是命令时返回 nil
func (p *CommandParser) Parse(input string) *Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	for _, pattern := range p.openPatterns {
		if matches := pattern.FindStringSubmatch(input); matches != nil {
			return &Command{
				Type: CommandTypeOpen,
				Raw:  input,
				Arg:  unquote(strings.TrimSpace(matches[1])),
			}
		}
	}

	for _, pattern := range p.uploadPatterns {
		if pattern.MatchString(input) {
			return &Command{Type: CommandTypeUpload, Raw: input}
		}
	}

	for _, pattern := range p.exportPatterns {
		if matches := pattern.FindStringSubmatch(input); matches != nil {
			cmd := &Command{Type: CommandTypeExport, Raw: input}
			if len(matches) >= 2 {
				cmd.Arg = unquote(strings.TrimSpace(matches[1]))
			}
			return cmd
		}
	}

	for _, pattern := range p.quitPatterns {
		if pattern.MatchString(input) {
			return &Command{Type: CommandTypeQuit, Raw: input}
		}
	}

	for _, pattern := range p.helpPatterns {
		if pattern.MatchString(input) {
			return &Command{Type: CommandTypeHelp, Raw: input}
		}
	}

	return &Command{Type: CommandTypeUnknown, Raw: input}
}

// IsCommand 检查字符串是否为已知命令
func (p *CommandParser) IsCommand(input string) bool {
	cmd := p.Parse(input)
	return cmd != nil && cmd.Type != CommandTypeUnknown
}

// unquote 去掉路径两侧的引号
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// FormatCommandType 格式化命令类型为字符串
func FormatCommandType(cmdType CommandType) string {
	switch cmdType {
	case CommandTypeOpen:
		return "OPEN"
	case CommandTypeUpload:
		return "UPLOAD"
	case CommandTypeExport:
		return "EXPORT"
	case CommandTypeQuit:
		return "QUIT"
	case CommandTypeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

const commandHelp = "命令: /open <路径> 选择文件 • /upload 上传 • /export [路径] 导出对话 • /quit 退出"
