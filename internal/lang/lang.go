// Package lang maps file extensions to languages, languages to ecosystems,
// and languages to ready-to-use tree-sitter parsers.
package lang

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/cruxlines/cruxlines/internal/model"
)

// Language identifies the grammar used to parse a file. Each Language maps
// to exactly one Ecosystem.
type Language uint8

const (
	LangC Language = iota
	LangCpp
	LangCSharp
	LangGo
	LangJava
	LangKotlin
	LangPhp
	LangPython
	LangJavaScript
	LangTypeScript
	LangTypeScriptReact
	LangRust
)

func (l Language) String() string {
	switch l {
	case LangC:
		return "c"
	case LangCpp:
		return "c++"
	case LangCSharp:
		return "c#"
	case LangGo:
		return "go"
	case LangJava:
		return "java"
	case LangKotlin:
		return "kotlin"
	case LangPhp:
		return "php"
	case LangPython:
		return "python"
	case LangJavaScript:
		return "javascript"
	case LangTypeScript:
		return "typescript"
	case LangTypeScriptReact:
		return "typescript-react"
	case LangRust:
		return "rust"
	default:
		return "unknown"
	}
}

// extensionTable is consulted in order; the first match wins. Extensions
// are compared lower-cased and without the leading dot.
var extensionTable = []struct {
	exts []string
	lang Language
}{
	{[]string{"c", "h"}, LangC},
	{[]string{"cpp", "cc", "cxx", "hpp", "hh", "hxx"}, LangCpp},
	{[]string{"cs"}, LangCSharp},
	{[]string{"go"}, LangGo},
	{[]string{"java"}, LangJava},
	{[]string{"kt", "kts"}, LangKotlin},
	{[]string{"php"}, LangPhp},
	{[]string{"py"}, LangPython},
	{[]string{"js", "jsx"}, LangJavaScript},
	{[]string{"ts"}, LangTypeScript},
	{[]string{"tsx"}, LangTypeScriptReact},
	{[]string{"rs"}, LangRust},
}

// ForPath returns the Language for path's extension, or false if the
// extension is unrecognized.
func ForPath(path string) (Language, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return 0, false
	}
	for _, row := range extensionTable {
		for _, candidate := range row.exts {
			if candidate == ext {
				return row.lang, true
			}
		}
	}
	return 0, false
}

// Ecosystem returns the matching universe a Language belongs to.
func Ecosystem(l Language) model.Ecosystem {
	switch l {
	case LangC, LangCpp:
		return model.EcosystemC
	case LangCSharp:
		return model.EcosystemDotnet
	case LangGo:
		return model.EcosystemGo
	case LangJava, LangKotlin:
		return model.EcosystemJava
	case LangPhp:
		return model.EcosystemPhp
	case LangPython:
		return model.EcosystemPython
	case LangJavaScript, LangTypeScript, LangTypeScriptReact:
		return model.EcosystemJavaScript
	case LangRust:
		return model.EcosystemRust
	default:
		return model.EcosystemC
	}
}

// Registry lazily builds one *tree_sitter.Language per Language tag and
// hands out fresh *tree_sitter.Parser instances (tree-sitter parsers are
// not safe for concurrent Parse calls on the same instance, so callers get
// a new one per use rather than sharing a package-level parser).
type Registry struct {
	mu        sync.Mutex
	languages map[Language]*tree_sitter.Language
}

// NewRegistry creates an empty registry; grammars are built on first use.
func NewRegistry() *Registry {
	return &Registry{languages: make(map[Language]*tree_sitter.Language)}
}

// ParserFor returns a new parser bound to l's grammar.
func (r *Registry) ParserFor(l Language) (*tree_sitter.Parser, error) {
	ts, err := r.languageFor(l)
	if err != nil {
		return nil, err
	}
	p := tree_sitter.NewParser()
	if err := p.SetLanguage(ts); err != nil {
		return nil, fmt.Errorf("lang: set language %s: %w", l, err)
	}
	return p, nil
}

func (r *Registry) languageFor(l Language) (*tree_sitter.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ts, ok := r.languages[l]; ok {
		return ts, nil
	}
	var ts *tree_sitter.Language
	switch l {
	case LangC:
		ts = tree_sitter.NewLanguage(tree_sitter_c.Language())
	case LangCpp:
		ts = tree_sitter.NewLanguage(tree_sitter_cpp.Language())
	case LangCSharp:
		ts = tree_sitter.NewLanguage(tree_sitter_csharp.Language())
	case LangGo:
		ts = tree_sitter.NewLanguage(tree_sitter_go.Language())
	case LangJava:
		ts = tree_sitter.NewLanguage(tree_sitter_java.Language())
	case LangKotlin:
		ts = tree_sitter.NewLanguage(tree_sitter_kotlin.Language())
	case LangPhp:
		ts = tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP())
	case LangPython:
		ts = tree_sitter.NewLanguage(tree_sitter_python.Language())
	case LangJavaScript:
		ts = tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	case LangTypeScript:
		ts = tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	case LangTypeScriptReact:
		ts = tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	case LangRust:
		ts = tree_sitter.NewLanguage(tree_sitter_rust.Language())
	default:
		return nil, fmt.Errorf("lang: no grammar registered for %v", l)
	}
	r.languages[l] = ts
	return ts, nil
}
