package tui

import (
	"fmt"
	"hash/fnv"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// 终端能力检测结果
type terminalCapabilities struct {
	supportsUnicode bool
}

// 全局终端能力缓存
var (
	terminalCaps *terminalCapabilities
	terminalOnce sync.Once
)

// detectTerminalCapabilities 检测终端能力，颜色由 lipgloss 自己处理
func detectTerminalCapabilities() *terminalCapabilities {
	caps := &terminalCapabilities{supportsUnicode: true}
	if term := os.Getenv("TERM"); strings.Contains(term, "vt100") || term == "dumb" {
		caps.supportsUnicode = false
	}
	return caps
}

func getTerminalCapabilities() *terminalCapabilities {
	terminalOnce.Do(func() {
		terminalCaps = detectTerminalCapabilities()
	})
	return terminalCaps
}

type renderCacheItem struct {
	content   string
	timestamp time.Time
}

// renderCache 缓存助手消息的渲染结果，键为内容哈希加宽度
// 每次窗口重绘都会重新格式化整个对话，缓存避免重复解析
type renderCache struct {
	renderer *MarkdownRenderer
	items    map[string]renderCacheItem
	maxSize  int
	mu       sync.RWMutex
}

func newRenderCache(renderer *MarkdownRenderer, maxSize int) *renderCache {
	if renderer == nil {
		renderer = GetMarkdownRenderer()
	}
	if maxSize <= 0 {
		maxSize = 256
	}
	return &renderCache{
		renderer: renderer,
		items:    make(map[string]renderCacheItem),
		maxSize:  maxSize,
	}
}

func cacheKey(markdown string, width int) string {
	h := fnv.New64a()
	h.Write([]byte(markdown))
	return fmt.Sprintf("%x_%d_%d", h.Sum64(), len(markdown), width)
}

// Render 返回缓存的渲染结果，未命中时渲染并写入缓存
func (c *renderCache) Render(markdown string, width int) string {
	if markdown == "" {
		return ""
	}
	key := cacheKey(markdown, width)

	c.mu.RLock()
	if item, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return item.content
	}
	c.mu.RUnlock()

	result := c.renderer.Render(markdown, width)
	if !getTerminalCapabilities().supportsUnicode {
		result = replaceUnicodeSymbols(result)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// 缓存满了就清理最旧的20%条目
	if len(c.items) >= c.maxSize {
		c.evictOldest(c.maxSize / 5)
	}
	c.items[key] = renderCacheItem{content: result, timestamp: time.Now()}
	return result
}

func (c *renderCache) evictOldest(n int) {
	if n < 1 {
		n = 1
	}
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return c.items[keys[i]].timestamp.Before(c.items[keys[j]].timestamp)
	})
	for i := 0; i < n && i < len(keys); i++ {
		delete(c.items, keys[i])
	}
}

// Len 当前缓存条目数
func (c *renderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// replaceUnicodeSymbols 替换Unicode符号为ASCII替代
func replaceUnicodeSymbols(text string) string {
	replacer := strings.NewReplacer(
		"•", "*",
		"│", "|",
		"─", "-",
		"→", "->",
		"…", "...",
		"“", "\"",
		"”", "\"",
		"‘", "'",
		"’", "'",
	)
	return replacer.Replace(text)
}
