package gatherer

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// pattern is one parsed .gitignore line. Matching is delegated to
// doublestar rather than a hand-rolled regex compiler: `**` already
// expresses "match at any depth", and a non-anchored pattern is tried
// both as-is and prefixed with `**/`.
type pattern struct {
	glob     string
	negate   bool
	dirOnly  bool
	anchored bool
}

// loadPatterns reads dir/.gitignore, returning nil (not an error) if the
// file does not exist.
func loadPatterns(dir string) []pattern {
	f, err := os.Open(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " ")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, parsePattern(line))
	}
	return patterns
}

func parsePattern(line string) pattern {
	p := pattern{}
	if strings.HasPrefix(line, "!") {
		p.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if strings.Contains(line, "/") {
		p.anchored = true
	}
	p.glob = line
	return p
}

// matcher evaluates a merged pattern set against repo-relative paths.
type matcher struct {
	patterns []pattern
}

func newMatcher(patterns []pattern) *matcher {
	always := []pattern{{glob: ".git", dirOnly: true, anchored: false}}
	return &matcher{patterns: append(always, patterns...)}
}

// ignored reports whether relPath (slash-separated, relative to the walk
// root) should be skipped. Later patterns override earlier ones, and a
// negated match un-ignores a path, matching .gitignore precedence.
func (m *matcher) ignored(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	result := false
	for _, p := range m.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if !p.matches(relPath) {
			continue
		}
		result = !p.negate
	}
	return result
}

func (p pattern) matches(relPath string) bool {
	if ok, _ := doublestar.Match(p.glob, relPath); ok {
		return true
	}
	if p.anchored {
		return false
	}
	ok, _ := doublestar.Match("**/"+p.glob, relPath)
	if ok {
		return true
	}
	base := relPath
	if idx := strings.LastIndex(relPath, "/"); idx >= 0 {
		base = relPath[idx+1:]
	}
	matchedBase, _ := doublestar.Match(p.glob, base)
	return matchedBase
}
