// Package extract turns a parsed tree-sitter tree into definition and
// reference locations. Each language file below matches a narrow, explicit
// set of syntax node kinds — there is no symbol-table resolution, no type
// checking, and no cross-file knowledge. Two nodes are "the same symbol"
// only because they carry the same text.
package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cruxlines/cruxlines/internal/intern"
	"github.com/cruxlines/cruxlines/internal/model"
)

// Emit receives one Location as it is discovered. Definition and reference
// emitters both use this shape so every language file reads the same way.
type Emit func(model.Location)

// walkTree visits every node in tree reachable from root, in an
// unspecified but complete order.
func walkTree(root *sitter.Node, visit func(*sitter.Node)) {
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(node)
		count := int(node.ChildCount())
		for i := 0; i < count; i++ {
			if child := node.Child(uint(i)); child != nil {
				stack = append(stack, child)
			}
		}
	}
}

// collectIdentifierNodes finds every "identifier" node at or below node,
// used for destructuring/multi-name binding sites (Go: none; JS and Python
// variable declarators can name more than one symbol per statement).
func collectIdentifierNodes(node *sitter.Node, onIdent func(*sitter.Node)) {
	if node == nil {
		return
	}
	if node.Kind() == "identifier" {
		onIdent(node)
	}
	stack := []*sitter.Node{node}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count := int(current.ChildCount())
		for i := 0; i < count; i++ {
			child := current.Child(uint(i))
			if child == nil {
				continue
			}
			if child.Kind() == "identifier" {
				onIdent(child)
			} else {
				stack = append(stack, child)
			}
		}
	}
}

// nodeText returns node's source text via a byte-range slice rather than
// a tree-sitter text accessor.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start > uint(len(source)) || end > uint(len(source)) || start > end {
		return ""
	}
	return string(source[start:end])
}

// locationFromNode builds a Location for node, interning its path and text.
// It reports false if node is nil or empty.
func locationFromNode(path intern.Handle, node *sitter.Node, source []byte, interner *intern.Pool) (model.Location, bool) {
	if node == nil {
		return model.Location{}, false
	}
	name := nodeText(node, source)
	if name == "" {
		return model.Location{}, false
	}
	pos := node.StartPosition()
	return model.Location{
		Path:   path,
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
		Name:   interner.Intern(name),
	}, true
}

func isParentKind(node *sitter.Node, kind string) bool {
	parent := node.Parent()
	return parent != nil && parent.Kind() == kind
}
