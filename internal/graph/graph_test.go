package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cruxlines/cruxlines/internal/intern"
)

func TestAddEdgeDropsSelfLoops(t *testing.T) {
	pool := intern.New()
	a := pool.Intern("a.go")

	g := New()
	g.AddEdge(a, a)

	assert.Equal(t, 0, g.Len())
}

func TestAddEdgeDedupsRepeats(t *testing.T) {
	pool := intern.New()
	a := pool.Intern("a.go")
	b := pool.Intern("b.go")

	g := New()
	g.AddEdge(a, b)
	g.AddEdge(a, b)
	g.AddEdge(a, b)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 1, len(g.Out[g.NodeIndex(a)]))
}

func TestAddEdgeOrientsUsageToDefinition(t *testing.T) {
	pool := intern.New()
	user := pool.Intern("user.go")
	used := pool.Intern("used.go")

	g := New()
	g.AddEdge(user, used)

	userIdx := g.NodeIndex(user)
	usedIdx := g.NodeIndex(used)
	assert.Equal(t, []int{usedIdx}, g.Out[userIdx])
	assert.Empty(t, g.Out[usedIdx])
}
