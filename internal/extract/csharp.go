package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
)

func emitDefinitionsCSharp(path intern.Handle, source []byte, root *sitter.Node, interner *intern.Pool, emit Emit) {
	walkTree(root, func(node *sitter.Node) {
		switch node.Kind() {
		case "class_declaration", "interface_declaration", "struct_declaration",
			"enum_declaration", "record_declaration", "record_struct_declaration",
			"delegate_declaration":
			if !csharpIsTopLevel(node) {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		}
	})
}

func csharpIsTopLevel(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "compilation_unit", "namespace_declaration", "file_scoped_namespace_declaration":
		return true
	case "declaration_list":
		grandparent := parent.Parent()
		if grandparent == nil {
			return false
		}
		switch grandparent.Kind() {
		case "namespace_declaration", "file_scoped_namespace_declaration":
			return true
		}
	}
	return false
}
