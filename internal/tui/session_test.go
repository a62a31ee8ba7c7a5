package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsIdle(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StatusIdle, s.Status())
	assert.False(t, s.ChatVisible())
	assert.False(t, s.CanUpload())
	assert.Empty(t, s.Transcript())
	_, ok := s.File()
	assert.False(t, ok)
}

func TestSelectFileResetsState(t *testing.T) {
	for _, status := range []UploadStatus{StatusIdle, StatusUploading, StatusSuccess, StatusError} {
		t.Run(status.String(), func(t *testing.T) {
			s := NewSession()
			s.status = status
			s.transcript = []Turn{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}}

			s.SelectFile("/docs/report.pdf")

			assert.Equal(t, StatusIdle, s.Status())
			assert.Empty(t, s.Transcript())
			file, ok := s.File()
			require.True(t, ok)
			assert.Equal(t, "/docs/report.pdf", file.Path)
			assert.Equal(t, "report.pdf", file.Name)
		})
	}
}

func TestBeginUploadWithoutFile(t *testing.T) {
	s := NewSession()
	_, ok := s.BeginUpload()
	assert.False(t, ok)
	assert.Equal(t, StatusIdle, s.Status())
}

func TestBeginUploadWhileUploading(t *testing.T) {
	s := NewSession()
	s.SelectFile("a.pdf")
	_, ok := s.BeginUpload()
	require.True(t, ok)

	_, ok = s.BeginUpload()
	assert.False(t, ok)
	assert.Equal(t, StatusUploading, s.Status())
}

func TestUploadSuccessPassesThroughUploading(t *testing.T) {
	for _, from := range []UploadStatus{StatusIdle, StatusError} {
		t.Run(from.String(), func(t *testing.T) {
			s := NewSession()
			s.SelectFile("a.pdf")
			s.status = from

			file, ok := s.BeginUpload()
			require.True(t, ok)
			assert.Equal(t, "a.pdf", file.Name)
			assert.Equal(t, StatusUploading, s.Status())

			s.FinishUpload(nil)
			assert.Equal(t, StatusSuccess, s.Status())
			assert.True(t, s.ChatVisible())
		})
	}
}

func TestUploadFailureKeepsFile(t *testing.T) {
	s := NewSession()
	s.SelectFile("/tmp/a.pdf")
	_, ok := s.BeginUpload()
	require.True(t, ok)

	s.FinishUpload(errors.New("500"))

	assert.Equal(t, StatusError, s.Status())
	assert.False(t, s.ChatVisible())
	assert.True(t, s.CanUpload())
	file, ok := s.File()
	require.True(t, ok)
	assert.Equal(t, "/tmp/a.pdf", file.Path)
}

func TestFinishUploadIgnoredWhenNotUploading(t *testing.T) {
	s := NewSession()
	s.SelectFile("a.pdf")
	assert.False(t, s.FinishUpload(nil))
	assert.Equal(t, StatusIdle, s.Status())

	// 上传途中换了文件
	s.BeginUpload()
	s.SelectFile("b.pdf")
	assert.False(t, s.FinishUpload(errors.New("late")))
	assert.Equal(t, StatusIdle, s.Status())
}

func TestBeginChatIgnoresBlank(t *testing.T) {
	s := NewSession()
	for _, text := range []string{"", "   ", "\t\n"} {
		_, ok := s.BeginChat(text)
		assert.False(t, ok)
	}
	assert.Empty(t, s.Transcript())
	assert.False(t, s.ChatLoading())
}

func TestChatSuccessAppendsTwoTurns(t *testing.T) {
	s := NewSession()
	s.transcript = []Turn{{Role: RoleUser, Content: "earlier"}, {Role: RoleAssistant, Content: "reply"}}

	q, ok := s.BeginChat("  next?  ")
	require.True(t, ok)
	assert.Equal(t, "next?", q.Text)
	assert.True(t, s.ChatLoading())

	s.FinishChat(q, "answer", nil)

	turns := s.Transcript()
	require.Len(t, turns, 4)
	assert.Equal(t, Turn{Role: RoleUser, Content: "next?"}, turns[2])
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "answer"}, turns[3])
	assert.False(t, s.ChatLoading())
}

func TestChatFailureKeepsUserTurn(t *testing.T) {
	s := NewSession()
	q, ok := s.BeginChat("question")
	require.True(t, ok)

	s.FinishChat(q, "", errors.New("boom"))

	assert.Equal(t, []Turn{{Role: RoleUser, Content: "question"}}, s.Transcript())
	assert.False(t, s.ChatLoading())
}

func TestBeginChatWhileLoading(t *testing.T) {
	s := NewSession()
	_, ok := s.BeginChat("first")
	require.True(t, ok)

	_, ok = s.BeginChat("second")
	assert.False(t, ok)
	assert.Len(t, s.Transcript(), 1)
}

func TestLateAnswerDroppedAfterNewFile(t *testing.T) {
	s := NewSession()
	q, ok := s.BeginChat("question")
	require.True(t, ok)

	s.SelectFile("other.pdf")
	s.FinishChat(q, "stale", nil)

	assert.Empty(t, s.Transcript())
	assert.False(t, s.ChatLoading())
}

func TestApplyDocumentCount(t *testing.T) {
	s := NewSession()
	assert.True(t, s.ApplyDocumentCount(5))
	assert.Equal(t, StatusSuccess, s.Status())
	assert.True(t, s.ChatVisible())

	s = NewSession()
	assert.False(t, s.ApplyDocumentCount(0))
	assert.Equal(t, StatusIdle, s.Status())

	// 探测返回前已经开始上传
	s = NewSession()
	s.SelectFile("a.pdf")
	s.BeginUpload()
	assert.False(t, s.ApplyDocumentCount(3))
	assert.Equal(t, StatusUploading, s.Status())
}

func TestTranscriptReturnsCopy(t *testing.T) {
	s := NewSession()
	q, _ := s.BeginChat("hi")
	s.FinishChat(q, "hello", nil)

	turns := s.Transcript()
	turns[0].Content = "changed"
	assert.Equal(t, "hi", s.Transcript()[0].Content)
}

func TestReportWalkthrough(t *testing.T) {
	s := NewSession()
	s.SelectFile("report.pdf")

	_, ok := s.BeginUpload()
	require.True(t, ok)
	s.FinishUpload(nil)
	require.Equal(t, StatusSuccess, s.Status())
	require.True(t, s.ChatVisible())

	q, ok := s.BeginChat("What is the summary?")
	require.True(t, ok)
	assert.Equal(t, []Turn{{Role: RoleUser, Content: "What is the summary?"}}, s.Transcript())
	assert.True(t, s.ChatLoading())

	s.FinishChat(q, "It summarizes X.", nil)
	assert.Equal(t, []Turn{
		{Role: RoleUser, Content: "What is the summary?"},
		{Role: RoleAssistant, Content: "It summarizes X."},
	}, s.Transcript())
	assert.False(t, s.ChatLoading())
}
