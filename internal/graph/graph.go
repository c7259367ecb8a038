// Package graph builds the per-ecosystem file-to-file reference graph that
// feeds the ranker: one node per file that participates in a cross-file
// reference, edges pointing from the file doing the using to the file
// being used.
package graph

import "github.com/cruxlines/cruxlines/internal/intern"

// FileGraph is a directed simple graph (no self-loops, no duplicate
// edges) over interned file-path handles.
type FileGraph struct {
	Nodes []intern.Handle
	index map[intern.Handle]int
	// Out[i] lists the node indices that node i points at.
	Out [][]int
	// seen deduplicates edges during construction.
	seen map[[2]int]bool
}

// New returns an empty FileGraph ready for AddEdge calls.
func New() *FileGraph {
	return &FileGraph{
		index: make(map[intern.Handle]int),
		seen:  make(map[[2]int]bool),
	}
}

// NodeIndex returns the index for path, allocating one if path has not
// been seen before.
func (g *FileGraph) NodeIndex(path intern.Handle) int {
	if idx, ok := g.index[path]; ok {
		return idx
	}
	idx := len(g.Nodes)
	g.Nodes = append(g.Nodes, path)
	g.Out = append(g.Out, nil)
	g.index[path] = idx
	return idx
}

// AddEdge records a usage-path → definition-path edge. Self-loops and
// repeat edges are silently dropped.
func (g *FileGraph) AddEdge(usagePath, definitionPath intern.Handle) {
	if usagePath == definitionPath {
		return
	}
	u := g.NodeIndex(usagePath)
	d := g.NodeIndex(definitionPath)
	if u == d {
		return
	}
	key := [2]int{u, d}
	if g.seen[key] {
		return
	}
	g.seen[key] = true
	g.Out[u] = append(g.Out[u], d)
}

// Len reports the number of distinct file nodes.
func (g *FileGraph) Len() int { return len(g.Nodes) }
