// Package contextgen turns a route result into the injected
// <skill_context> block: it loads each skill's documentation and assembles
// annotated sections in execution order.
package contextgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SkillFileName is the documentation artifact inside each skill directory.
const SkillFileName = "SKILL.md"

// ContentLoader resolves and reads per-skill documentation under a
// configurable skills root. Reads are cached; the cache is invalidated on
// catalog reload.
type ContentLoader struct {
	root string

	mu    sync.RWMutex
	cache map[string]loaded
}

type loaded struct {
	content string
	warning string
}

// NewContentLoader creates a loader rooted at the given directory.
func NewContentLoader(root string) *ContentLoader {
	return &ContentLoader{
		root:  root,
		cache: map[string]loaded{},
	}
}

// Root returns the configured skills root.
func (l *ContentLoader) Root() string {
	return l.root
}

// Load resolves <root>/<skillPath>/SKILL.md and returns its content. A
// missing or unreadable file yields a human-readable placeholder naming
// the expected path, plus a warning; the assembled block stays
// intelligible in degraded cases.
func (l *ContentLoader) Load(skillName, skillPath string) (content string, warning string) {
	fullPath := filepath.Join(l.root, skillPath, SkillFileName)

	l.mu.RLock()
	if cached, ok := l.cache[fullPath]; ok {
		l.mu.RUnlock()
		return cached.content, cached.warning
	}
	l.mu.RUnlock()

	data, err := os.ReadFile(fullPath)
	if err != nil {
		content = fmt.Sprintf("(Skill file not found: %s)", fullPath)
		warning = fmt.Sprintf("SKILL.md not found for '%s' at %s", skillName, fullPath)
	} else {
		content = string(data)
	}

	l.mu.Lock()
	l.cache[fullPath] = loaded{content: content, warning: warning}
	l.mu.Unlock()

	return content, warning
}

// Invalidate drops every cached read. Wired to catalog snapshot swaps.
func (l *ContentLoader) Invalidate() {
	l.mu.Lock()
	l.cache = map[string]loaded{}
	l.mu.Unlock()
}
