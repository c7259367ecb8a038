package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
)

func emitDefinitionsRust(path intern.Handle, source []byte, root *sitter.Node, interner *intern.Pool, emit Emit) {
	walkTree(root, func(node *sitter.Node) {
		switch node.Kind() {
		case "function_item", "struct_item", "enum_item", "const_item",
			"static_item", "type_item", "trait_item":
			if !isParentKind(node, "source_file") {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		}
	})
}
