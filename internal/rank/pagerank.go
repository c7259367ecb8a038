// Package rank computes per-file PageRank over a graph.FileGraph and
// combines it with frecency and name-ambiguity to produce sorted
// model.OutputRow values.
//
// No example in this codebase's dependency graph exposes an
// iteration-capped PageRank (the one PageRank call found elsewhere runs to
// a convergence tolerance), and the ranking contract here requires a hard
// iteration ceiling rather than convergence, so the textbook power
// iteration is written out directly instead of reaching for a graph
// library.
package rank

import "github.com/cruxlines/cruxlines/internal/graph"

const (
	// Damping is the PageRank damping factor fixed by the ranking contract.
	Damping = 0.85
	// MaxIterations is the hard upper bound on power-iteration rounds.
	MaxIterations = 5
)

// PageRank runs MaxIterations rounds of power iteration over g. It is a
// thin wrapper around PageRankN for the common, unconfigured case.
func PageRank(g *graph.FileGraph) []float64 {
	return PageRankN(g, MaxIterations)
}

// PageRankN runs iterations rounds of power iteration over g and returns
// one score per node index in g.Nodes, starting from a uniform 1/N
// distribution. Dangling nodes (no outgoing edges) redistribute their
// mass uniformly across every node, as the textbook algorithm does.
// iterations below 1 is treated as 1, and above MaxIterations as
// MaxIterations.
func PageRankN(g *graph.FileGraph, iterations int) []float64 {
	if iterations < 1 {
		iterations = 1
	}
	if iterations > MaxIterations {
		iterations = MaxIterations
	}
	n := g.Len()
	if n == 0 {
		return nil
	}

	in := make([][]int, n)
	outDegree := make([]int, n)
	for u, targets := range g.Out {
		outDegree[u] = len(targets)
		for _, d := range targets {
			in[d] = append(in[d], u)
		}
	}

	scores := make([]float64, n)
	uniform := 1.0 / float64(n)
	for i := range scores {
		scores[i] = uniform
	}

	base := (1 - Damping) / float64(n)
	for iter := 0; iter < iterations; iter++ {
		var danglingMass float64
		for i, s := range scores {
			if outDegree[i] == 0 {
				danglingMass += s
			}
		}
		danglingShare := danglingMass / float64(n)

		next := make([]float64, n)
		for i := range next {
			var sum float64
			for _, j := range in[i] {
				sum += scores[j] / float64(outDegree[j])
			}
			next[i] = base + Damping*(sum+danglingShare)
		}
		scores = next
	}
	return scores
}
