// ABOUTME: Terminal markdown renderer backed by glamour with an LRU cache.
// ABOUTME: Cache keys are derived from the sha256 hash of the markdown combined with the wrap width.
package render

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
)

const markdownCacheSize = 128

// MarkdownRenderer converts markdown to styled terminal output.
// Rendering the same content at the same width returns a cached result.
type MarkdownRenderer struct {
	mu    sync.Mutex
	cache *lru.Cache[string, string]
}

// NewMarkdownRenderer creates a MarkdownRenderer with an empty cache.
func NewMarkdownRenderer() (*MarkdownRenderer, error) {
	cache, err := lru.New[string, string](markdownCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating markdown cache: %w", err)
	}
	return &MarkdownRenderer{cache: cache}, nil
}

// Render converts markdown to terminal output wrapped at the given width.
// Errors fall back to the raw input so report text is never lost.
func (r *MarkdownRenderer) Render(markdown string, width int) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	key := cacheKey(markdown, width)

	r.mu.Lock()
	defer r.mu.Unlock()
	if out, ok := r.cache.Get(key); ok {
		return out
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return markdown
	}
	out = strings.TrimRight(out, "\n")
	r.cache.Add(key, out)
	return out
}

// Len returns the number of entries currently in the cache.
func (r *MarkdownRenderer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Len()
}

func cacheKey(markdown string, width int) string {
	hash := sha256.Sum256([]byte(markdown))
	return fmt.Sprintf("%x:%d", hash, width)
}
