package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
)

func emitDefinitionsCpp(path intern.Handle, source []byte, root *sitter.Node, interner *intern.Pool, emit Emit) {
	walkTree(root, func(node *sitter.Node) {
		switch node.Kind() {
		case "function_definition":
			if !cppIsTopLevel(node) {
				return
			}
			emitFromDeclarator(path, source, node, interner, emit, findIdentifierInCppDeclarator)
		case "class_specifier", "struct_specifier", "enum_specifier", "union_specifier":
			if !cppIsTopLevelTypeSpecifier(node) {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		case "type_definition":
			if !cppIsTopLevel(node) {
				return
			}
			emitFromDeclarator(path, source, node, interner, emit, findIdentifierInCppDeclarator)
		case "namespace_definition":
			if !cppIsTopLevel(node) {
				return
			}
			emitNamedChild(path, source, node, interner, emit)
		case "declaration":
			if !cppIsTopLevel(node) || cppIsFunctionDeclaration(node) {
				return
			}
			emitFromDeclarator(path, source, node, interner, emit, findIdentifierInCppDeclarator)
		case "template_declaration":
			if !cppIsTopLevel(node) {
				return
			}
			emitTemplateMembers(path, source, node, interner, emit)
		}
	})
}

func emitTemplateMembers(path intern.Handle, source []byte, node *sitter.Node, interner *intern.Pool, emit Emit) {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "class_specifier", "struct_specifier":
			emitNamedChild(path, source, child, interner, emit)
		case "function_definition", "declaration":
			emitFromDeclarator(path, source, child, interner, emit, findIdentifierInCppDeclarator)
		}
	}
}

func cppIsTopLevel(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "translation_unit", "namespace_definition":
		return true
	case "declaration_list":
		return isParentKind(parent, "namespace_definition")
	}
	return false
}

func cppIsTopLevelTypeSpecifier(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "translation_unit", "namespace_definition":
		return true
	case "declaration_list":
		return isParentKind(parent, "namespace_definition")
	case "type_definition", "declaration":
		return cppIsTopLevel(parent)
	}
	return false
}

func cppIsFunctionDeclaration(node *sitter.Node) bool {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return false
	}
	return hasDeclaratorOfKind(declarator, "function_declarator")
}

// findIdentifierInCppDeclarator extends the C lookup with qualified names
// like MyClass::method, where the interesting part is the "name" field.
func findIdentifierInCppDeclarator(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "identifier", "type_identifier", "field_identifier":
		return node
	case "pointer_declarator", "reference_declarator", "array_declarator", "function_declarator", "init_declarator":
		if inner := node.ChildByFieldName("declarator"); inner != nil {
			return findIdentifierInCppDeclarator(inner)
		}
		return nil
	case "qualified_identifier":
		return node.ChildByFieldName("name")
	default:
		return nil
	}
}
