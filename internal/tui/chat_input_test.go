package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(q QuestionInput, text string) QuestionInput {
	for _, r := range text {
		q, _ = q.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return q
}

func TestQuestionInputSubmitsTrimmedText(t *testing.T) {
	q := NewQuestionInput()
	q = typeText(q, "  What is the summary?  ")

	q, cmd := q.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, QuestionSubmittedMsg{Text: "What is the summary?"}, cmd())
	assert.Empty(t, q.Value())
}

func TestQuestionInputIgnoresBlank(t *testing.T) {
	q := NewQuestionInput()
	q = typeText(q, "   ")

	q, cmd := q.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "   ", q.Value())
}

func TestQuestionInputDisabled(t *testing.T) {
	q := NewQuestionInput()
	q.SetValue("hello")
	require.NotNil(t, q.SetDisabled(true))
	assert.True(t, q.Disabled())

	q, cmd := q.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "hello", q.Value())

	q = typeText(q, "x")
	assert.Equal(t, "hello", q.Value())
	assert.NotContains(t, q.View(), "发送")

	q.SetDisabled(false)
	assert.False(t, q.Disabled())
	assert.Contains(t, q.View(), "发送")
}
