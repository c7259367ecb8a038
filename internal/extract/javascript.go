package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
)

func emitDefinitionsJavaScript(path intern.Handle, source []byte, root *sitter.Node, interner *intern.Pool, emit Emit) {
	walkTree(root, func(node *sitter.Node) {
		switch node.Kind() {
		case "function_declaration", "class_declaration", "interface_declaration",
			"type_alias_declaration", "enum_declaration":
			if !jsIsExported(node) {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		case "variable_declarator":
			if !jsIsExported(node) {
				return
			}
			name := node.ChildByFieldName("name")
			collectIdentifierNodes(name, func(ident *sitter.Node) {
				if loc, ok := locationFromNode(path, ident, source, interner); ok {
					emit(loc)
				}
			})
		}
	})
}

// jsIsExported reports whether node sits under an export statement,
// walking up toward the top of the file without crossing it.
func jsIsExported(node *sitter.Node) bool {
	current := node
	for {
		parent := current.Parent()
		if parent == nil {
			return false
		}
		switch parent.Kind() {
		case "export_statement", "export_default_declaration":
			return true
		case "program":
			return false
		}
		current = parent
	}
}
