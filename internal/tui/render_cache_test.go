package tui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCacheHit(t *testing.T) {
	c := newRenderCache(nil, 10)
	first := c.Render("**hi**", 40)
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, first, c.Render("**hi**", 40))
	assert.Equal(t, 1, c.Len())

	c.Render("**hi**", 60)
	assert.Equal(t, 2, c.Len())
}

func TestRenderCacheEvicts(t *testing.T) {
	c := newRenderCache(nil, 5)
	for i := 0; i < 12; i++ {
		c.Render(fmt.Sprintf("item %d", i), 40)
	}
	assert.LessOrEqual(t, c.Len(), 5)
}

func TestRenderCacheEmpty(t *testing.T) {
	c := newRenderCache(nil, 5)
	assert.Empty(t, c.Render("", 40))
	assert.Equal(t, 0, c.Len())
}

func TestReplaceUnicodeSymbols(t *testing.T) {
	assert.Equal(t, "* item | x -> y", replaceUnicodeSymbols("• item │ x → y"))
}
