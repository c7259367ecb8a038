package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
	"github.com/cruxlines/cruxlines/internal/lang"
)

// EmitDefinitions walks tree and reports every top-level definition for l's
// language through emit.
func EmitDefinitions(l lang.Language, path intern.Handle, source []byte, tree *sitter.Tree, interner *intern.Pool, emit Emit) {
	root := tree.RootNode()
	switch l {
	case lang.LangC:
		emitDefinitionsC(path, source, root, interner, emit)
	case lang.LangCpp:
		emitDefinitionsCpp(path, source, root, interner, emit)
	case lang.LangCSharp:
		emitDefinitionsCSharp(path, source, root, interner, emit)
	case lang.LangGo:
		emitDefinitionsGo(path, source, root, interner, emit)
	case lang.LangJava:
		emitDefinitionsJava(path, source, root, interner, emit)
	case lang.LangKotlin:
		emitDefinitionsKotlin(path, source, root, interner, emit)
	case lang.LangPhp:
		emitDefinitionsPhp(path, source, root, interner, emit)
	case lang.LangPython:
		emitDefinitionsPython(path, source, root, interner, emit)
	case lang.LangJavaScript, lang.LangTypeScript, lang.LangTypeScriptReact:
		emitDefinitionsJavaScript(path, source, root, interner, emit)
	case lang.LangRust:
		emitDefinitionsRust(path, source, root, interner, emit)
	}
}

// EmitReferences walks tree and reports every identifier-like usage node
// for l's language through emit, including ones that sit on a definition
// (the caller is responsible for self-reference suppression).
func EmitReferences(l lang.Language, path intern.Handle, source []byte, tree *sitter.Tree, interner *intern.Pool, emit Emit) {
	root := tree.RootNode()
	kinds := referenceKinds(l)
	walkTree(root, func(node *sitter.Node) {
		if !kinds[node.Kind()] {
			return
		}
		if loc, ok := locationFromNode(path, node, source, interner); ok {
			emit(loc)
		}
	})
}

func referenceKinds(l lang.Language) map[string]bool {
	set := func(kinds ...string) map[string]bool {
		m := make(map[string]bool, len(kinds))
		for _, k := range kinds {
			m[k] = true
		}
		return m
	}
	switch l {
	case lang.LangC:
		return set("identifier", "type_identifier", "field_identifier")
	case lang.LangCpp:
		return set("identifier", "type_identifier", "field_identifier", "qualified_identifier")
	case lang.LangCSharp:
		return set("identifier", "generic_name")
	case lang.LangGo:
		return set("identifier", "type_identifier", "field_identifier")
	case lang.LangJava:
		return set("identifier", "type_identifier")
	case lang.LangKotlin:
		return set("simple_identifier", "identifier", "type_identifier")
	case lang.LangPhp:
		return set("name", "qualified_name")
	case lang.LangPython:
		return set("identifier")
	case lang.LangJavaScript, lang.LangTypeScript, lang.LangTypeScriptReact:
		return set("identifier", "jsx_identifier", "type_identifier")
	case lang.LangRust:
		return set("identifier", "type_identifier")
	default:
		return map[string]bool{}
	}
}
