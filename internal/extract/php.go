package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
)

func emitDefinitionsPhp(path intern.Handle, source []byte, root *sitter.Node, interner *intern.Pool, emit Emit) {
	walkTree(root, func(node *sitter.Node) {
		switch node.Kind() {
		case "class_declaration", "interface_declaration", "trait_declaration", "enum_declaration":
			if !phpIsTopLevel(node) {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		case "function_definition":
			if !phpIsTopLevel(node) {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		case "const_declaration":
			if !phpIsTopLevel(node) {
				return
			}
			emitConstElements(path, source, node, interner, emit)
		}
	})
}

// emitConstElements walks the const_element children of a const_declaration
// and emits each one's bare "name" child, which PHP's grammar does not
// expose as a named field.
func emitConstElements(path intern.Handle, source []byte, node *sitter.Node, interner *intern.Pool, emit Emit) {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil || child.Kind() != "const_element" {
			continue
		}
		innerCount := int(child.ChildCount())
		for j := 0; j < innerCount; j++ {
			nameNode := child.Child(uint(j))
			if nameNode == nil || nameNode.Kind() != "name" {
				continue
			}
			if loc, ok := locationFromNode(path, nameNode, source, interner); ok {
				emit(loc)
			}
			break
		}
	}
}

func phpIsTopLevel(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "program", "namespace_definition":
		return true
	case "declaration_list", "compound_statement":
		return isParentKind(parent, "namespace_definition")
	}
	return false
}
