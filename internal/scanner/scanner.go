// Package scanner turns a set of gathered source files into the reference
// edges and definition lines the ranker consumes. Parsing and extraction
// are parallel, data-independent work; merging results into the shared
// per-ecosystem symbol tables is done sequentially afterward, mirroring a
// parallel-parse-then-sequential-merge pipeline shape.
package scanner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cruxlines/cruxlines/internal/cache"
	"github.com/cruxlines/cruxlines/internal/debugx"
	"github.com/cruxlines/cruxlines/internal/errorsx"
	"github.com/cruxlines/cruxlines/internal/extract"
	"github.com/cruxlines/cruxlines/internal/gatherer"
	"github.com/cruxlines/cruxlines/internal/intern"
	"github.com/cruxlines/cruxlines/internal/lang"
	"github.com/cruxlines/cruxlines/internal/model"
)

// fileResult is one file's raw extraction: every definition and every
// reference it contains, plus the trimmed source line at each definition.
type fileResult struct {
	path            string
	ecosystem       model.Ecosystem
	definitions     []model.Location
	references      []model.Location
	definitionLines map[model.Location]string
	err             error
}

// Scan parses every input file and produces the reference edges and
// definition lines feeding the ranker, split by ecosystem since names
// never resolve across ecosystem boundaries. store may be nil to disable
// caching entirely.
func Scan(ctx context.Context, inputs []gatherer.FileInput, store *cache.Store, interner *intern.Pool) (map[model.Ecosystem]model.ReferenceScan, error) {
	defer debugx.Guard("scanner.scan")()

	registry := lang.NewRegistry()
	results := make([]*fileResult, len(inputs))

	numWorkers := runtime.NumCPU()
	if numWorkers > len(inputs) {
		numWorkers = len(inputs)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = scanOne(registry, store, in, interner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scans := make(map[model.Ecosystem]model.ReferenceScan)
	definitionsByEcosystem := make(map[model.Ecosystem]map[intern.Handle][]model.Location)
	definitionSitesByEcosystem := make(map[model.Ecosystem]map[model.Location]bool)

	for _, r := range results {
		if r == nil {
			continue
		}
		if r.err != nil {
			continue
		}
		scan := scans[r.ecosystem]
		if scan.DefinitionLines == nil {
			scan.DefinitionLines = make(map[model.Location]string)
		}
		for loc, line := range r.definitionLines {
			scan.DefinitionLines[loc] = line
		}
		scans[r.ecosystem] = scan

		byName := definitionsByEcosystem[r.ecosystem]
		if byName == nil {
			byName = make(map[intern.Handle][]model.Location)
			definitionsByEcosystem[r.ecosystem] = byName
		}
		sites := definitionSitesByEcosystem[r.ecosystem]
		if sites == nil {
			sites = make(map[model.Location]bool)
			definitionSitesByEcosystem[r.ecosystem] = sites
		}
		for _, d := range r.definitions {
			byName[d.Name] = append(byName[d.Name], d)
			sites[d] = true
		}
	}

	for _, r := range results {
		if r == nil || r.err != nil {
			continue
		}
		byName := definitionsByEcosystem[r.ecosystem]
		sites := definitionSitesByEcosystem[r.ecosystem]
		scan := scans[r.ecosystem]
		for _, ref := range r.references {
			if sites[ref] {
				// A reference node sitting exactly on a definition site is
				// the definition naming itself; it contributes no edge.
				continue
			}
			for _, def := range byName[ref.Name] {
				scan.Edges = append(scan.Edges, model.ReferenceEdge{
					Definition: def,
					Usage:      ref,
					Ecosystem:  r.ecosystem,
				})
			}
		}
		scans[r.ecosystem] = scan
	}

	return scans, nil
}

func scanOne(registry *lang.Registry, store *cache.Store, in gatherer.FileInput, interner *intern.Pool) *fileResult {
	l, ok := lang.ForPath(in.Path)
	if !ok {
		return nil
	}
	ecosystem := lang.Ecosystem(l)

	if store != nil {
		if info, err := os.Stat(in.Path); err == nil {
			mtime := info.ModTime()
			if rec, hit := store.Get(in.Path, mtime.Unix(), int64(mtime.Nanosecond()), info.Size()); hit {
				return fromCacheRecord(in.Path, ecosystem, rec, interner)
			}
		}
	}

	parser, err := registry.ParserFor(l)
	if err != nil {
		return &fileResult{path: in.Path, err: errorsx.New("parse", in.Path, err)}
	}
	defer parser.Close()

	tree := parser.Parse(in.Source, nil)
	if tree == nil {
		return &fileResult{path: in.Path, err: errorsx.New("parse", in.Path, errParseFailed)}
	}
	defer tree.Close()

	path := interner.Intern(in.Path)

	var definitions, references []model.Location
	definitionLines := make(map[model.Location]string)

	extract.EmitDefinitions(l, path, in.Source, tree, interner, func(loc model.Location) {
		definitions = append(definitions, loc)
		definitionLines[loc] = sourceLine(in.Source, loc.Line)
	})
	extract.EmitReferences(l, path, in.Source, tree, interner, func(loc model.Location) {
		references = append(references, loc)
	})

	if store != nil {
		if info, err := os.Stat(in.Path); err == nil {
			mtime := info.ModTime()
			rec := toCacheRecord(ecosystem, mtime.Unix(), int64(mtime.Nanosecond()), info.Size(), definitions, references, definitionLines, interner)
			_ = store.Set(in.Path, rec)
		}
	}

	return &fileResult{
		path:            in.Path,
		ecosystem:       ecosystem,
		definitions:     definitions,
		references:      references,
		definitionLines: definitionLines,
	}
}

var errParseFailed = errors.New("tree-sitter returned no tree")

// sourceLine returns the 1-indexed line from source with trailing
// whitespace trimmed, or "" if out of range. Leading whitespace is kept:
// indented top-level definitions (C++/C#/PHP members inside a namespace or
// declaration_list) must keep their indentation in the printed row.
func sourceLine(source []byte, line int) string {
	lines := bytes.Split(source, []byte("\n"))
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimRight(string(lines[line-1]), " \t\r")
}

func toCacheRecord(ecosystem model.Ecosystem, mtimeSecs, mtimeNanos, size int64, definitions, references []model.Location, definitionLines map[model.Location]string, interner *intern.Pool) cache.Record {
	rec := cache.Record{
		Version:     1,
		MtimeSecs:   mtimeSecs,
		MtimeNanos:  mtimeNanos,
		Size:        size,
		Ecosystem:   ecosystem,
		Definitions: make([]cache.SerializedLocation, 0, len(definitions)),
		References:  make([]cache.SerializedLocation, 0, len(references)),
	}
	for _, d := range definitions {
		rec.Definitions = append(rec.Definitions, serialize(d, interner))
	}
	for _, r := range references {
		rec.References = append(rec.References, serialize(r, interner))
	}
	for loc, line := range definitionLines {
		rec.DefinitionLines = append(rec.DefinitionLines, cache.DefinitionLine{
			Location: serialize(loc, interner),
			Line:     line,
		})
	}
	return rec
}

func serialize(loc model.Location, interner *intern.Pool) cache.SerializedLocation {
	return cache.SerializedLocation{
		Path:   interner.Resolve(loc.Path),
		Line:   loc.Line,
		Column: loc.Column,
		Name:   interner.Resolve(loc.Name),
	}
}

func fromCacheRecord(path string, ecosystem model.Ecosystem, rec cache.Record, interner *intern.Pool) *fileResult {
	definitionLines := make(map[model.Location]string, len(rec.DefinitionLines))
	deserialize := func(s cache.SerializedLocation) model.Location {
		return model.Location{
			Path:   interner.Intern(s.Path),
			Line:   s.Line,
			Column: s.Column,
			Name:   interner.Intern(s.Name),
		}
	}

	definitions := make([]model.Location, 0, len(rec.Definitions))
	for _, s := range rec.Definitions {
		definitions = append(definitions, deserialize(s))
	}
	references := make([]model.Location, 0, len(rec.References))
	for _, s := range rec.References {
		references = append(references, deserialize(s))
	}
	for _, dl := range rec.DefinitionLines {
		definitionLines[deserialize(dl.Location)] = dl.Line
	}

	return &fileResult{
		path:            path,
		ecosystem:       ecosystem,
		definitions:     definitions,
		references:      references,
		definitionLines: definitionLines,
	}
}
