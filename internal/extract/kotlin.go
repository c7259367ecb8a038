package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
)

func emitDefinitionsKotlin(path intern.Handle, source []byte, root *sitter.Node, interner *intern.Pool, emit Emit) {
	walkTree(root, func(node *sitter.Node) {
		switch node.Kind() {
		case "class_declaration", "object_declaration", "function_declaration",
			"property_declaration", "type_alias":
			if !isParentKind(node, "source_file") {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		}
	})
}
