// Package orchestrator wires the gatherer, scanner, frecency adapter,
// graph builder, and ranker into the one entry point the CLI calls. It
// owns no state itself: every call takes a fresh string interner so
// library callers can run repeated, isolated passes.
package orchestrator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cruxlines/cruxlines/internal/cache"
	"github.com/cruxlines/cruxlines/internal/debugx"
	"github.com/cruxlines/cruxlines/internal/errorsx"
	"github.com/cruxlines/cruxlines/internal/frecency"
	"github.com/cruxlines/cruxlines/internal/gatherer"
	"github.com/cruxlines/cruxlines/internal/graph"
	"github.com/cruxlines/cruxlines/internal/intern"
	"github.com/cruxlines/cruxlines/internal/model"
	"github.com/cruxlines/cruxlines/internal/rank"
	"github.com/cruxlines/cruxlines/internal/scanner"
)

// Options configures one orchestrator run. Ecosystems nil or empty means
// every supported ecosystem. Iterations zero uses rank.MaxIterations.
type Options struct {
	Ecosystems map[model.Ecosystem]bool
	CacheDir   string
	Iterations int
}

// Run discovers repoRoot's files via the gatherer, scans and ranks them,
// and returns rows sorted per rank.SortRows, along with the interner that
// resolves every handle referenced by those rows. It is the CLI's main
// entry point; RunFromInputs is the test-only variant that skips disk
// discovery.
func Run(ctx context.Context, repoRoot string, opts Options) ([]model.OutputRow, *intern.Pool, error) {
	inputs, err := gatherer.Gather([]string{repoRoot})
	if err != nil {
		if _, ok := err.(*errorsx.Error); ok {
			return nil, nil, err
		}
		return nil, nil, errorsx.New("gather", repoRoot, err)
	}
	return runPipeline(ctx, inputs, repoRoot, opts)
}

// RunFromInputs runs the scan/rank pipeline directly over inputs,
// bypassing filesystem discovery. repoRoot is used for frecency lookup and,
// when opts.CacheDir is set, to namespace the cache; pass "" to disable
// frecency weighting.
func RunFromInputs(ctx context.Context, inputs []gatherer.FileInput, repoRoot string, opts Options) ([]model.OutputRow, *intern.Pool, error) {
	return runPipeline(ctx, inputs, repoRoot, opts)
}

func runPipeline(ctx context.Context, inputs []gatherer.FileInput, repoRoot string, opts Options) ([]model.OutputRow, *intern.Pool, error) {
	defer debugx.Guard("orchestrator.run")()

	interner := intern.New()

	var store *cache.Store
	if opts.CacheDir != "" {
		store = cache.Open(opts.CacheDir, repoRoot)
	}

	var scans map[model.Ecosystem]model.ReferenceScan
	var weights map[string]float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		// The frecency worker never fails the run: a panic degrades to
		// an empty mapping exactly like a reported failure would.
		defer func() {
			if r := recover(); r != nil {
				weights = map[string]float64{}
			}
		}()
		if repoRoot == "" {
			weights = map[string]float64{}
			return nil
		}
		adapter := frecency.GitAdapter{}
		weights = adapter.Weights(gctx, repoRoot)
		return nil
	})
	g.Go(func() error {
		s, err := scanner.Scan(gctx, inputs, store, interner)
		if err != nil {
			return err
		}
		scans = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, errorsx.New("scan", repoRoot, err)
	}

	frecencyByHandle := make(rank.Frecency, len(weights))
	for path, w := range weights {
		frecencyByHandle[interner.Intern(path)] = w
	}

	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = rank.MaxIterations
	}

	var rows []model.OutputRow
	for eco, scan := range scans {
		if len(opts.Ecosystems) > 0 && !opts.Ecosystems[eco] {
			continue
		}
		rows = append(rows, rankEcosystem(scan, frecencyByHandle, interner, iterations)...)
	}

	rank.SortRows(rows, interner)
	return rows, interner, nil
}

func rankEcosystem(scan model.ReferenceScan, frecencyByHandle rank.Frecency, interner *intern.Pool, iterations int) []model.OutputRow {
	g := graph.New()
	grouped := make(rank.Grouped)
	for _, e := range scan.Edges {
		g.AddEdge(e.Usage.Path, e.Definition.Path)
		grouped[e.Definition] = append(grouped[e.Definition], e.Usage)
	}

	scores := rank.PageRankN(g, iterations)
	fileRank := make(rank.FileRank, len(g.Nodes))
	for i, path := range g.Nodes {
		fileRank[path] = scores[i]
	}

	return rank.Rows(grouped, scan.DefinitionLines, fileRank, frecencyByHandle, interner)
}
