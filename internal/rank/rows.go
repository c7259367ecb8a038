package rank

import (
	"math"
	"sort"

	"github.com/cruxlines/cruxlines/internal/intern"
	"github.com/cruxlines/cruxlines/internal/model"
)

// FileRank maps an interned path to its PageRank score.
type FileRank map[intern.Handle]float64

// Frecency maps an interned path to its external weight. A missing key
// means 1.0 to every caller.
type Frecency map[intern.Handle]float64

func (f Frecency) get(path intern.Handle) float64 {
	if w, ok := f[path]; ok {
		return w
	}
	return 1.0
}

// Grouped is one ecosystem's definition → references map, the input to
// Rows.
type Grouped map[model.Location][]model.Location

// Rows computes one OutputRow per definition in grouped, using fileRank
// and frecency as the composite-score inputs. definitionLines supplies
// the source line text captured at scan time; a definition missing from
// it gets an empty line.
func Rows(grouped Grouped, definitionLines map[model.Location]string, fileRank FileRank, frecency Frecency, interner *intern.Pool) []model.OutputRow {
	nameCounts := make(map[intern.Handle]int)
	for def := range grouped {
		nameCounts[def.Name]++
	}

	rows := make([]model.OutputRow, 0, len(grouped))
	for def, refs := range grouped {
		nameCount := nameCounts[def.Name]
		if nameCount < 1 {
			nameCount = 1
		}

		var weightedRefs float64
		for _, r := range refs {
			weightedRefs += fileRank[r.Path] * frecency.get(r.Path)
		}
		localScore := weightedRefs / float64(nameCount)
		fileRankOfDef := fileRank[def.Path]

		sorted := append([]model.Location(nil), refs...)
		sortLocations(sorted, interner)

		rows = append(rows, model.OutputRow{
			Rank:           localScore * fileRankOfDef,
			LocalScore:     localScore,
			FileRank:       fileRankOfDef,
			Definition:     def,
			DefinitionLine: definitionLines[def],
			References:     sorted,
		})
	}
	return rows
}

// SortRows orders rows by rank descending, breaking ties by ascending
// definition location. Comparisons involving NaN report equal rather
// than panicking or producing an inconsistent order, matching a
// partial_cmp(...).unwrap_or(Equal) style comparator.
func SortRows(rows []model.OutputRow, interner *intern.Pool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rankCmp(rows[i].Rank, rows[j].Rank) != 0 {
			return rankCmp(rows[i].Rank, rows[j].Rank) < 0
		}
		return locationLess(rows[i].Definition, rows[j].Definition, interner)
	})
}

// rankCmp orders a, b for descending rank: -1 if a sorts before b, 1 if
// after, 0 if equal or incomparable (either is NaN).
func rankCmp(a, b float64) int {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0
	}
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func sortLocations(locs []model.Location, interner *intern.Pool) {
	sort.Slice(locs, func(i, j int) bool {
		return locationLess(locs[i], locs[j], interner)
	})
}

func locationLess(a, b model.Location, interner *intern.Pool) bool {
	pa, pb := interner.Resolve(a.Path), interner.Resolve(b.Path)
	if pa != pb {
		return pa < pb
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	if a.Column != b.Column {
		return a.Column < b.Column
	}
	return interner.Resolve(a.Name) < interner.Resolve(b.Name)
}
