package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
)

func emitDefinitionsPython(path intern.Handle, source []byte, root *sitter.Node, interner *intern.Pool, emit Emit) {
	walkTree(root, func(node *sitter.Node) {
		switch node.Kind() {
		case "function_definition", "class_definition":
			if !pythonIsTopLevel(node) {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		case "assignment":
			// The grammar wraps every assignment statement in an
			// expression_statement, so a module-level assignment sits one
			// level below module.
			parent := node.Parent()
			if parent == nil || parent.Kind() != "expression_statement" || !isParentKind(parent, "module") {
				return
			}
			left := node.ChildByFieldName("left")
			collectIdentifierNodes(left, func(ident *sitter.Node) {
				if loc, ok := locationFromNode(path, ident, source, interner); ok {
					emit(loc)
				}
			})
		}
	})
}

func pythonIsTopLevel(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	if parent.Kind() == "module" {
		return true
	}
	if parent.Kind() == "decorated_definition" {
		return isParentKind(parent, "module")
	}
	return false
}
