// Package cache stores per-file extraction results on disk, keyed by path
// hash and invalidated on mtime/size change. A miss or any I/O error is
// always treated as "nothing cached" — the cache is an optimization, never
// a source of truth.
package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/cruxlines/cruxlines/internal/model"
)

// formatVersion must be bumped whenever the on-disk record shape changes;
// a mismatch is treated as a cache miss.
const formatVersion = 1

// SerializedLocation mirrors model.Location but spells out the path and
// name as plain strings, since interned handles are only valid within a
// single process run.
type SerializedLocation struct {
	Path   string
	Line   int
	Column int
	Name   string
}

// Record is one file's raw extraction result: definitions and references
// named by plain strings, not yet merged into cross-file edges.
type Record struct {
	Version         int
	MtimeSecs       int64
	MtimeNanos      int64
	Size            int64
	Ecosystem       model.Ecosystem
	Definitions     []SerializedLocation
	References      []SerializedLocation
	DefinitionLines []DefinitionLine
}

// DefinitionLine pairs a definition location with its trimmed source line.
type DefinitionLine struct {
	Location SerializedLocation
	Line     string
}

// Store reads and writes Records under a directory scoped to one repo root.
type Store struct {
	dir string
}

// Open returns a Store rooted at baseDir/<hash of repoRoot>. baseDir is
// typically os.UserCacheDir()/cruxlines.
func Open(baseDir, repoRoot string) *Store {
	repoHash := xxhash.Sum64String(repoRoot)
	return &Store{dir: filepath.Join(baseDir, fmt.Sprintf("%016x", repoHash))}
}

// Get loads the cached Record for path if present and still fresh relative
// to mtimeSecs/mtimeNanos/size. Any failure is reported as a plain miss.
func (s *Store) Get(path string, mtimeSecs, mtimeNanos, size int64) (Record, bool) {
	bytesRead, err := os.ReadFile(s.entryPath(path))
	if err != nil {
		return Record{}, false
	}
	var rec Record
	if err := gob.NewDecoder(bytes.NewReader(bytesRead)).Decode(&rec); err != nil {
		return Record{}, false
	}
	if rec.Version != formatVersion {
		return Record{}, false
	}
	if rec.MtimeSecs != mtimeSecs || rec.MtimeNanos != mtimeNanos || rec.Size != size {
		return Record{}, false
	}
	return rec, true
}

// Set stores rec for path, overwriting any prior entry. Errors are
// returned to the caller but are expected to be logged and ignored —
// a failed write just means the next run re-parses this file.
func (s *Store) Set(path string, rec Record) error {
	rec.Version = formatVersion
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("cache: create dir: %w", err)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}
	tmp := s.entryPath(path) + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cache: write: %w", err)
	}
	if err := os.Rename(tmp, s.entryPath(path)); err != nil {
		return fmt.Errorf("cache: rename: %w", err)
	}
	return nil
}

func (s *Store) entryPath(path string) string {
	hash := xxhash.Sum64String(path)
	return filepath.Join(s.dir, fmt.Sprintf("%016x.bin", hash))
}
