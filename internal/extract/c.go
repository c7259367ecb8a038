package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
)

func emitDefinitionsC(path intern.Handle, source []byte, root *sitter.Node, interner *intern.Pool, emit Emit) {
	walkTree(root, func(node *sitter.Node) {
		switch node.Kind() {
		case "function_definition":
			if !cIsTopLevel(node) {
				return
			}
			emitFromDeclarator(path, source, node, interner, emit, findIdentifierInCDeclarator)
		case "struct_specifier", "enum_specifier", "union_specifier":
			if !cIsTopLevelTypeSpecifier(node) {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		case "type_definition":
			if !cIsTopLevel(node) {
				return
			}
			emitFromDeclarator(path, source, node, interner, emit, findIdentifierInCDeclarator)
		case "declaration":
			if !cIsTopLevel(node) || cIsFunctionDeclaration(node) {
				return
			}
			for _, declarator := range childrenByFieldName(node, "declarator") {
				if name := findIdentifierInCDeclarator(declarator); name != nil {
					if loc, ok := locationFromNode(path, name, source, interner); ok {
						emit(loc)
					}
				}
			}
		}
	})
}

func emitFromDeclarator(path intern.Handle, source []byte, node *sitter.Node, interner *intern.Pool, emit Emit, find func(*sitter.Node) *sitter.Node) {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return
	}
	name := find(declarator)
	if loc, ok := locationFromNode(path, name, source, interner); ok {
		emit(loc)
	}
}

// childrenByFieldName returns every child of node exposed under field,
// needed for C's `int a, b, c;` multi-declarator globals.
func childrenByFieldName(node *sitter.Node, field string) []*sitter.Node {
	var out []*sitter.Node
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		if node.FieldNameForChild(uint32(i)) == field {
			out = append(out, child)
		}
	}
	return out
}

func cIsTopLevel(node *sitter.Node) bool {
	return isParentKind(node, "translation_unit")
}

func cIsTopLevelTypeSpecifier(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	if parent.Kind() == "translation_unit" {
		return true
	}
	if parent.Kind() == "type_definition" || parent.Kind() == "declaration" {
		return cIsTopLevel(parent)
	}
	return false
}

func cIsFunctionDeclaration(node *sitter.Node) bool {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return false
	}
	return hasDeclaratorOfKind(declarator, "function_declarator")
}

func hasDeclaratorOfKind(node *sitter.Node, kind string) bool {
	if node.Kind() == kind {
		return true
	}
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		if child := node.Child(uint(i)); child != nil && hasDeclaratorOfKind(child, kind) {
			return true
		}
	}
	return false
}

// findIdentifierInCDeclarator unwraps pointer/array/function/parenthesized
// declarators to the identifier they ultimately name.
func findIdentifierInCDeclarator(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "identifier", "type_identifier":
		return node
	case "pointer_declarator", "array_declarator", "function_declarator",
		"parenthesized_declarator", "init_declarator":
		if inner := node.ChildByFieldName("declarator"); inner != nil {
			return findIdentifierInCDeclarator(inner)
		}
		count := int(node.ChildCount())
		for i := 0; i < count; i++ {
			if child := node.Child(uint(i)); child != nil {
				if found := findIdentifierInCDeclarator(child); found != nil {
					return found
				}
			}
		}
		return nil
	default:
		return nil
	}
}
