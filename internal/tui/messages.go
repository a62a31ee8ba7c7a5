package tui

// Message types for tea.Model

// DocumentCountMsg 启动探测的结果
type DocumentCountMsg struct {
	Count int
	Err   error
}

// FileSelectedMsg 用户选中了一个文件
type FileSelectedMsg struct {
	Path string
}

// UploadResultMsg 上传请求结束
type UploadResultMsg struct {
	File           SelectedFile
	NotificationID string
	Err            error
}

// QuestionSubmittedMsg 输入框提交了一条非空问题
type QuestionSubmittedMsg struct {
	Text string
}

// ChatResultMsg 对话请求结束
type ChatResultMsg struct {
	Question Question
	Answer   string
	Err      error
}

// NotificationExpiredMsg 通知到期
type NotificationExpiredMsg struct {
	ID         string
	Generation int
}

// ExportResultMsg 导出对话记录结束
type ExportResultMsg struct {
	Path string
	Err  error
}
