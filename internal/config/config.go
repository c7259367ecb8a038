// Package config loads the optional .cruxlines.kdl file that overrides a
// handful of pipeline defaults: cache directory, PageRank iteration cap,
// and ecosystems excluded by default. Absence of the file is not an
// error — every field falls back to its documented default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/cruxlines/cruxlines/internal/rank"
)

// Config holds every user-overridable pipeline setting.
type Config struct {
	CacheDir         string
	Iterations       int
	ExcludeEcosystem []string
}

// Default returns the built-in configuration, used when no
// .cruxlines.kdl file is present or it fails to parse. CacheDir defaults
// to the platform user-cache root joined with "cruxlines"; cache.Open
// further namespaces it per repository root. If the platform has no
// usable cache root, caching is left disabled (empty CacheDir).
func Default() Config {
	cfg := Config{
		Iterations: rank.MaxIterations,
	}
	if dir, err := os.UserCacheDir(); err == nil {
		cfg.CacheDir = filepath.Join(dir, "cruxlines")
	}
	return cfg
}

// Load reads <repoRoot>/.cruxlines.kdl. A missing file returns Default()
// with no error; a malformed file returns Default() and the parse error,
// so callers can warn and continue rather than fail the whole run.
func Load(repoRoot string) (Config, error) {
	cfg := Default()

	path := filepath.Join(repoRoot, ".cruxlines.kdl")
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil
	}

	doc, err := kdl.Parse(strings.NewReader(string(content)))
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "cache_dir":
			if s, ok := firstStringArg(n); ok {
				cfg.CacheDir = s
			}
		case "iterations":
			if v, ok := firstIntArg(n); ok && v > 0 {
				cfg.Iterations = v
			}
		case "exclude":
			cfg.ExcludeEcosystem = append(cfg.ExcludeEcosystem, collectStringArgs(n)...)
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	s, ok := n.Arguments[0].Value.(string)
	return s, ok
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func collectStringArgs(n *document.Node) []string {
	out := make([]string, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		if s, ok := arg.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
