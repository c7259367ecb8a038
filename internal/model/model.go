// Package model holds the value types shared across the ranking pipeline:
// interned locations, reference edges, and the final output rows.
package model

import "github.com/cruxlines/cruxlines/internal/intern"

// Ecosystem groups languages that share one name-matching universe.
// References never cross ecosystems.
type Ecosystem uint8

const (
	EcosystemC Ecosystem = iota
	EcosystemDotnet
	EcosystemGo
	EcosystemJava
	EcosystemPython
	EcosystemJavaScript
	EcosystemRust
	EcosystemPhp
)

// String returns the canonical lower-case name of the ecosystem, used for
// CLI flag values and diagnostic output.
func (e Ecosystem) String() string {
	switch e {
	case EcosystemC:
		return "c"
	case EcosystemDotnet:
		return "dotnet"
	case EcosystemGo:
		return "go"
	case EcosystemJava:
		return "java"
	case EcosystemPython:
		return "python"
	case EcosystemJavaScript:
		return "javascript"
	case EcosystemRust:
		return "rust"
	case EcosystemPhp:
		return "php"
	default:
		return "unknown"
	}
}

// Location is a 1-based (path, line, column, name) tuple. Two locations
// are equal iff all four fields are equal. Locations are values and are
// never mutated after creation.
type Location struct {
	Path   intern.Handle
	Line   int
	Column int
	Name   intern.Handle
}

// ReferenceEdge connects a usage site to one definition of the same name
// within one ecosystem.
type ReferenceEdge struct {
	Definition Location
	Usage      Location
	Ecosystem  Ecosystem
}

// ReferenceScan is the output of one full scan pass: every reference edge
// discovered, plus the trimmed source line captured for each definition at
// scan time.
type ReferenceScan struct {
	Edges           []ReferenceEdge
	DefinitionLines map[Location]string
}

// OutputRow is one ranked definition, ready for sorting and printing.
type OutputRow struct {
	Rank           float64
	LocalScore     float64
	FileRank       float64
	Definition     Location
	DefinitionLine string
	References     []Location
}
