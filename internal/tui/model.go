package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Zacy-Sokach/DocuChat/internal/api"
	"github.com/Zacy-Sokach/DocuChat/internal/utils"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Version 是当前的 DocuChat 版本，由 main 包设置
var Version string

const (
	tagline = "上传 PDF，然后就文档内容提问"

	notifyExistingDocuments = "检测到已有文档，已开启对话！"
	notifyUploading         = "正在分析文档..."
	notifyUploadSuccess     = "文档分析成功！"
	notifyUploadFailed      = "上传失败，请重试。"
	notifyChatFailed        = "出现了一个错误。"
	notifyUploadFirst       = "请先上传文档，再开始提问。"
	notifyNoFile            = "请先选择一个 PDF 文件。"

	pickerMarginBottom = 5

	placeholderQuestion = "就文档提出你的问题..."
	placeholderCommand  = "输入 /open <路径> 选择文件，或按 Ctrl+O 浏览"
)

// Options 创建 Model 所需的依赖
type Options struct {
	Backend Backend
	Logger  log.Logger
	// NotificationTTL 普通通知的显示时长
	NotificationTTL time.Duration
	// StartDir 文件选择器的初始目录
	StartDir string
	// ExportDir 对话导出的默认目录
	ExportDir string
	// InitialFile 启动时预选的文件，可为空
	InitialFile string
}

// Model 根组件，持有会话状态并驱动所有网络交互
type Model struct {
	session  *Session
	backend  Backend
	logger   log.Logger
	notifier *Notifier

	input         QuestionInput
	viewport      viewport.Model
	picker        filepicker.Model
	picking       bool
	uploadSpinner spinner.Model

	renderCache   *renderCache
	commandParser *CommandParser

	ctx         context.Context
	width       int
	height      int
	ready       bool
	exportDir   string
	initialFile string
}

// NewModel 创建根组件
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf"}
	fp.ShowHidden = false
	if opts.StartDir != "" {
		fp.CurrentDirectory = opts.StartDir
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	input := NewQuestionInput()
	input.SetPlaceholder(placeholderCommand)

	return Model{
		session:       NewSession(),
		backend:       opts.Backend,
		logger:        logger,
		notifier:      NewNotifier(opts.NotificationTTL),
		input:         input,
		viewport:      viewport.New(80, 10),
		picker:        fp,
		uploadSpinner: sp,
		renderCache:   newRenderCache(nil, 0),
		commandParser: NewCommandParser(),
		ctx:           context.Background(),
		width:         80,
		height:        24,
		exportDir:     exportDir,
		initialFile:   opts.InitialFile,
	}
}

// Session 返回会话状态，只读使用
func (m Model) Session() *Session {
	return m.session
}

// Notifications 返回当前显示的通知
func (m Model) Notifications() []Notification {
	return m.notifier.Items()
}

// Picking 文件选择器是否打开
func (m Model) Picking() bool {
	return m.picking
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.backend != nil {
		cmds = append(cmds, probeDocuments(m.ctx, m.backend))
	}
	if m.initialFile != "" {
		cmds = append(cmds, selectFile(utils.ExpandHome(m.initialFile)))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.SetWidth(msg.Width - 4)
		m.resizePicker()
		m.layout()
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case DocumentCountMsg:
		if msg.Err != nil {
			level.Error(m.logger).Log("msg", "document count probe failed", "err", msg.Err)
			return m, nil
		}
		level.Info(m.logger).Log("msg", "document count probe", "count", msg.Count)
		if m.session.ApplyDocumentCount(msg.Count) {
			m.syncInput()
			m.layout()
			return m, m.notifier.Success(notifyExistingDocuments)
		}
		return m, nil

	case FileSelectedMsg:
		m.session.SelectFile(msg.Path)
		m.picking = false
		m.syncInput()
		m.layout()
		m.refreshTranscript()
		level.Info(m.logger).Log("msg", "file selected", "path", msg.Path)
		return m, nil

	case UploadResultMsg:
		if !m.session.FinishUpload(msg.Err) {
			level.Info(m.logger).Log("msg", "stale upload result ignored", "file", msg.File.Name, "err", msg.Err)
			m.notifier.Dismiss(msg.NotificationID)
			m.layout()
			return m, nil
		}
		m.syncInput()
		m.layout()
		if msg.Err != nil {
			level.Error(m.logger).Log("msg", "upload failed", "file", msg.File.Name, "err", msg.Err)
			return m, m.notifier.Replace(msg.NotificationID, NotifyError, notifyUploadFailed)
		}
		level.Info(m.logger).Log("msg", "upload succeeded", "file", msg.File.Name)
		return m, m.notifier.Replace(msg.NotificationID, NotifySuccess, notifyUploadSuccess)

	case QuestionSubmittedMsg:
		return m.handleSubmission(msg.Text)

	case ChatResultMsg:
		m.session.FinishChat(msg.Question, msg.Answer, msg.Err)
		cmd := m.input.SetDisabled(false)
		m.refreshTranscript()
		if msg.Err != nil {
			level.Error(m.logger).Log("msg", "chat failed", "err", msg.Err)
			return m, tea.Batch(cmd, m.notifier.Error(chatErrorMessage(msg.Err)))
		}
		return m, cmd

	case NotificationExpiredMsg:
		m.notifier.Expire(msg)
		m.layout()
		return m, nil

	case ExportResultMsg:
		if msg.Err != nil {
			level.Error(m.logger).Log("msg", "export failed", "path", msg.Path, "err", msg.Err)
			return m, m.notifier.Error(msg.Err.Error())
		}
		level.Info(m.logger).Log("msg", "transcript exported", "path", msg.Path)
		return m, m.notifier.Success("对话已导出到 " + msg.Path)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.session.Status() == StatusUploading {
			var cmd tea.Cmd
			m.uploadSpinner, cmd = m.uploadSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	var cmds []tea.Cmd
	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlO:
		return m.openPicker()
	case tea.KeyCtrlU:
		return m.startUpload()
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.picking {
		// filepicker 把 Esc 当作返回上级目录，这里用来关闭选择器
		if msg.Type == tea.KeyEsc {
			m.picking = false
			m.layout()
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			return m, tea.Batch(cmd, selectFile(path))
		}
		if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
			return m, tea.Batch(cmd, m.notifier.Error("只能选择 PDF 文件: "+path))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) openPicker() (tea.Model, tea.Cmd) {
	if m.picking {
		return m, nil
	}
	m.picking = true
	m.resizePicker()
	m.layout()
	return m, m.picker.Init()
}

// resizePicker 让选择器只占屏幕的一部分
func (m *Model) resizePicker() {
	h := m.height / 2
	if h > 15 {
		h = 15
	}
	if h < 3 {
		h = 3
	}
	// filepicker 会从窗口高度中减去底部留白
	m.picker, _ = m.picker.Update(tea.WindowSizeMsg{Width: m.width, Height: h + pickerMarginBottom})
}

// startUpload 上传当前选中的文件，没有文件或正在上传时什么也不做
func (m Model) startUpload() (tea.Model, tea.Cmd) {
	file, ok := m.session.BeginUpload()
	if !ok {
		if _, selected := m.session.File(); !selected {
			return m, m.notifier.Info(notifyNoFile)
		}
		return m, nil
	}
	m.syncInput()
	id := m.notifier.Loading(notifyUploading)
	m.layout()
	level.Info(m.logger).Log("msg", "upload started", "file", file.Name)
	return m, tea.Batch(
		m.uploadSpinner.Tick,
		uploadFile(m.ctx, m.backend, m.logger, file, id),
	)
}

// handleSubmission 处理输入框提交的内容
// 对话面板可见时，只有已知命令会被拦截，其余内容都作为问题发送
func (m Model) handleSubmission(text string) (tea.Model, tea.Cmd) {
	if !m.session.ChatVisible() || m.commandParser.IsCommand(text) {
		if command := m.commandParser.Parse(text); command != nil {
			return m.handleCommand(command)
		}
		return m, m.notifier.Info(notifyUploadFirst)
	}

	q, ok := m.session.BeginChat(text)
	if !ok {
		return m, nil
	}
	m.refreshTranscript()
	return m, tea.Batch(
		m.input.SetDisabled(true),
		askQuestion(m.ctx, m.backend, m.logger, q),
	)
}

func (m Model) handleCommand(command *Command) (tea.Model, tea.Cmd) {
	level.Debug(m.logger).Log("msg", "command", "type", FormatCommandType(command.Type), "arg", command.Arg)

	switch command.Type {
	case CommandTypeOpen:
		path := utils.ExpandHome(command.Arg)
		cmds := []tea.Cmd{selectFile(path)}
		if !utils.FileExists(path) {
			cmds = append(cmds, m.notifier.Info("文件不存在: "+path))
		} else if !utils.IsPDF(path) {
			cmds = append(cmds, m.notifier.Info("所选文件不是 PDF: "+path))
		}
		return m, tea.Batch(cmds...)

	case CommandTypeUpload:
		return m.startUpload()

	case CommandTypeExport:
		turns := m.session.Transcript()
		if len(turns) == 0 {
			return m, m.notifier.Info("暂无对话可导出。")
		}
		path := utils.ExpandHome(command.Arg)
		if path == "" {
			path = defaultExportPath(m.exportDir, time.Now())
		}
		name := ""
		if file, ok := m.session.File(); ok {
			name = file.Name
		}
		return m, exportTranscript(path, name, turns)

	case CommandTypeQuit:
		return m, tea.Quit

	case CommandTypeHelp:
		return m, m.notifier.Info(commandHelp)

	default:
		return m, m.notifier.Error("未知命令: " + command.Raw)
	}
}

// chatErrorMessage 优先使用服务端返回的 error 字段
func chatErrorMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return notifyChatFailed
}

// syncInput 根据对话面板是否可见切换输入框用途
func (m *Model) syncInput() {
	if m.session.ChatVisible() {
		m.input.SetPlaceholder(placeholderQuestion)
	} else {
		m.input.SetPlaceholder(placeholderCommand)
	}
}

// layout 根据当前各区域的高度调整对话视口
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.width - 4
	fixed := lipgloss.Height(m.headerView()) +
		lipgloss.Height(m.uploadPanelView()) +
		lipgloss.Height(m.helpView()) + 4
	if n := m.notifier.View(m.width); n != "" {
		fixed += lipgloss.Height(n)
	}
	if m.picking {
		fixed += lipgloss.Height(m.pickerView())
	}
	h := m.height - fixed - 2
	if h < 3 {
		h = 3
	}
	m.viewport.Height = h
}

// refreshTranscript 重新渲染对话并滚动到底部
func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.formatTranscript())
	m.viewport.GotoBottom()
}

func (m Model) formatTranscript() string {
	turns := m.session.Transcript()
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if len(turns) == 0 && !m.session.ChatLoading() {
		return emptyStateStyle.Render("提出第一个问题开始对话。")
	}

	parts := make([]string, 0, len(turns)+1)
	for _, turn := range turns {
		parts = append(parts, renderMessageWith(m.renderCache.Render, turn.Role, turn.Content, width))
	}
	if m.session.ChatLoading() {
		parts = append(parts, assistantLabelStyle.Render("AI")+"\n"+loadingStyle.Render("思考中..."))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) View() string {
	if !m.ready {
		return "初始化中..."
	}

	sections := []string{m.headerView()}
	if n := m.notifier.View(m.width); n != "" {
		sections = append(sections, n)
	}
	sections = append(sections, m.uploadPanelView())
	if m.picking {
		sections = append(sections, m.pickerView())
	}
	if m.session.ChatVisible() {
		sections = append(sections, m.chatPanelView())
	} else if !m.picking {
		sections = append(sections, m.input.View())
	}
	sections = append(sections, m.helpView())
	return strings.Join(sections, "\n")
}

func (m Model) headerView() string {
	title := titleStyle.Render("DocuChat")
	if Version != "" {
		title += subtitleStyle.Render(" v" + Version)
	}
	return title + "\n" + subtitleStyle.Render(tagline)
}

func (m Model) uploadPanelView() string {
	var sb strings.Builder
	sb.WriteString(panelTitleStyle.Render("上传文档"))
	sb.WriteString("  ")
	sb.WriteString(hintStyle.Render("PDF (max 10MB)"))
	sb.WriteString("\n")

	if file, ok := m.session.File(); ok {
		sb.WriteString(fileBadgeStyle.Render("📄 " + file.Name))
	} else {
		sb.WriteString(hintStyle.Render("未选择文件，按 Ctrl+O 浏览"))
	}
	sb.WriteString("  ")

	switch {
	case m.session.Status() == StatusUploading:
		sb.WriteString(m.uploadSpinner.View() + " " + loadingStyle.Render("处理中..."))
	case m.session.CanUpload():
		sb.WriteString(buttonStyle.Render("上传 (Ctrl+U)"))
	default:
		sb.WriteString(buttonDisabledStyle.Render("上传 (Ctrl+U)"))
	}

	if m.session.Status() == StatusError {
		sb.WriteString("\n")
		sb.WriteString(notifyErrorStyle.Render("上传失败，可以再试一次。"))
	}
	return panelStyle.Width(m.panelWidth()).Render(sb.String())
}

func (m Model) pickerView() string {
	header := panelTitleStyle.Render("选择 PDF") + "  " + hintStyle.Render(m.picker.CurrentDirectory)
	return panelStyle.Width(m.panelWidth()).Render(header + "\n" + m.picker.View())
}

func (m Model) chatPanelView() string {
	body := panelTitleStyle.Render("对话") + "\n" + m.viewport.View() + "\n" + m.input.View()
	return panelStyle.Width(m.panelWidth()).Render(body)
}

func (m Model) helpView() string {
	if m.picking {
		return helpStyle.Render("↑/↓ 移动 • Enter 选择 • Esc 关闭 • Ctrl+C 退出")
	}
	return helpStyle.Render("Ctrl+O 选择文件 • Ctrl+U 上传 • PgUp/PgDn 滚动 • /help 命令 • Ctrl+C 退出")
}

func (m Model) panelWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}
