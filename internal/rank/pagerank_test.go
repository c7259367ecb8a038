package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cruxlines/cruxlines/internal/graph"
	"github.com/cruxlines/cruxlines/internal/intern"
)

func TestPageRankOfEmptyGraphIsEmpty(t *testing.T) {
	assert.Nil(t, PageRank(graph.New()))
}

func TestPageRankFavorsTheMoreReferencedFile(t *testing.T) {
	pool := intern.New()
	a := pool.Intern("a.go")
	b := pool.Intern("b.go")
	c := pool.Intern("c.go")

	g := graph.New()
	g.AddEdge(a, c)
	g.AddEdge(b, c)

	scores := PageRank(g)
	cIdx := g.NodeIndex(c)
	aIdx := g.NodeIndex(a)
	assert.Greater(t, scores[cIdx], scores[aIdx])
}

func TestPageRankNClampsBelowOneToOneIteration(t *testing.T) {
	pool := intern.New()
	a := pool.Intern("a.go")
	b := pool.Intern("b.go")

	g := graph.New()
	g.AddEdge(a, b)

	assert.Equal(t, PageRankN(g, 1), PageRankN(g, 0))
}

func TestPageRankScoresAreFinite(t *testing.T) {
	pool := intern.New()
	a := pool.Intern("a.go")
	b := pool.Intern("b.go")

	g := graph.New()
	g.AddEdge(a, b)

	scores := PageRank(g)
	for _, s := range scores {
		assert.False(t, math.IsNaN(s))
		assert.False(t, math.IsInf(s, 0))
	}
}
