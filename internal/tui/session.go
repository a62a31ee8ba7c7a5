package tui

import (
	"path/filepath"
	"strings"
)

// UploadStatus 文档上传的生命周期状态
type UploadStatus int

const (
	StatusIdle UploadStatus = iota
	StatusUploading
	StatusSuccess
	StatusError
)

func (s UploadStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusUploading:
		return "uploading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Role 对话中的发言方
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn 对话记录中的一条消息
type Turn struct {
	Role    Role
	Content string
}

// SelectedFile 用户选中的 PDF
type SelectedFile struct {
	Path string
	Name string
}

// Session 持有全部应用状态，只由 Model.Update 修改
//
// 不变式：
//   - 只有 status == StatusSuccess 时显示对话面板
//   - 每次选择文件都会清空对话记录
type Session struct {
	file        *SelectedFile
	status      UploadStatus
	transcript  []Turn
	chatLoading bool
	// epoch 每次选择文件时递增，用来丢弃旧对话的迟到回答
	epoch int
}

// Question 已经发出的问题
type Question struct {
	Text  string
	Epoch int
}

// NewSession 创建初始状态为 idle 的会话
func NewSession() *Session {
	return &Session{status: StatusIdle}
}

func (s *Session) Status() UploadStatus {
	return s.status
}

// File 返回当前选中的文件
func (s *Session) File() (SelectedFile, bool) {
	if s.file == nil {
		return SelectedFile{}, false
	}
	return *s.file, true
}

// Transcript 返回对话记录的副本
func (s *Session) Transcript() []Turn {
	out := make([]Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) ChatLoading() bool {
	return s.chatLoading
}

// ChatVisible 对话面板是否可见
func (s *Session) ChatVisible() bool {
	return s.status == StatusSuccess
}

// CanUpload 上传按钮是否可用
func (s *Session) CanUpload() bool {
	return s.file != nil && s.status != StatusUploading
}

// ApplyDocumentCount 处理启动探测的结果
// 后端已有文档时直接进入 success，返回是否发生了升级
func (s *Session) ApplyDocumentCount(count int) bool {
	if count <= 0 || s.status != StatusIdle {
		return false
	}
	s.status = StatusSuccess
	return true
}

// SelectFile 记录新文件，状态回到 idle 并清空对话
func (s *Session) SelectFile(path string) {
	s.file = &SelectedFile{Path: path, Name: filepath.Base(path)}
	s.status = StatusIdle
	s.transcript = nil
	s.epoch++
}

// BeginUpload 进入 uploading 状态并返回要上传的文件
// 没有选中文件或已在上传时什么也不做
func (s *Session) BeginUpload() (SelectedFile, bool) {
	if !s.CanUpload() {
		return SelectedFile{}, false
	}
	s.status = StatusUploading
	return *s.file, true
}

// FinishUpload 根据上传结果进入 success 或 error，返回结果是否被采用
// 失败时保留已选文件和对话记录，方便重试
// 上传期间又选了新文件的话，结果被忽略
func (s *Session) FinishUpload(err error) bool {
	if s.status != StatusUploading {
		return false
	}
	if err != nil {
		s.status = StatusError
		return true
	}
	s.status = StatusSuccess
	return true
}

// BeginChat 乐观地追加用户消息并进入加载状态
// 空白问题或上一个问题尚未返回时返回 false
func (s *Session) BeginChat(text string) (Question, bool) {
	text = strings.TrimSpace(text)
	if text == "" || s.chatLoading {
		return Question{}, false
	}
	s.transcript = append(s.transcript, Turn{Role: RoleUser, Content: text})
	s.chatLoading = true
	return Question{Text: text, Epoch: s.epoch}, true
}

// FinishChat 结束一次对话请求，加载状态总是被清除
// 成功时追加回答；失败时用户消息保留，不回滚
// 提问之后又选了新文件的话，回答被丢弃
func (s *Session) FinishChat(q Question, answer string, err error) {
	s.chatLoading = false
	if err != nil || q.Epoch != s.epoch {
		return
	}
	s.transcript = append(s.transcript, Turn{Role: RoleAssistant, Content: answer})
}
