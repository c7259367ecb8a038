package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
)

func emitDefinitionsGo(path intern.Handle, source []byte, root *sitter.Node, interner *intern.Pool, emit Emit) {
	walkTree(root, func(node *sitter.Node) {
		switch node.Kind() {
		case "function_declaration", "method_declaration":
			if !goIsTopLevel(node) {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		case "type_spec", "const_spec", "var_spec":
			if !goIsTopLevelSpec(node) {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		}
	})
}

func emitNamedChild(path intern.Handle, source []byte, node *sitter.Node, interner *intern.Pool, emit Emit) {
	name := node.ChildByFieldName("name")
	if loc, ok := locationFromNode(path, name, source, interner); ok {
		emit(loc)
	}
}

func goIsTopLevel(node *sitter.Node) bool {
	return isParentKind(node, "source_file")
}

func goIsTopLevelSpec(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "type_declaration", "const_declaration", "var_declaration":
		return goIsTopLevel(parent)
	case "type_spec_list", "const_spec_list", "var_spec_list":
		grandparent := parent.Parent()
		if grandparent == nil {
			return false
		}
		switch grandparent.Kind() {
		case "type_declaration", "const_declaration", "var_declaration":
			return goIsTopLevel(grandparent)
		}
	}
	return false
}
