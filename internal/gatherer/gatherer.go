// Package gatherer turns a set of requested file/directory paths into the
// list of readable, recognized-language source files that feed the
// scanner — the repository-walking counterpart of an ignore-aware file
// discovery step, restricted to what this tool needs: no build-tag
// awareness, no symlink following, and only the .gitignore file at the top
// of each walked directory.
package gatherer

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/cruxlines/cruxlines/internal/errorsx"
	"github.com/cruxlines/cruxlines/internal/lang"
)

// FileInput is one file ready for parsing: its path and validated UTF-8
// source bytes.
type FileInput struct {
	Path   string
	Source []byte
}

// Gather resolves roots (files or directories, absolute or relative to
// the current working directory) into a deterministic, deduplicated list
// of FileInput values. Directories are walked respecting the .gitignore
// file at the root of each walked directory; .gitignore files in its
// subdirectories are not read. Explicitly named files are always included
// regardless of ignore rules, matching how a user passing a path
// expresses clear intent. Files with an unrecognized extension or
// invalid UTF-8 content are silently skipped, never errored; a read
// failure on a path the caller named directly is the one error Gather
// surfaces, since that reflects a request the caller cannot silently
// have partially honored. The same failure met while walking a
// directory is swallowed — a file vanishing or losing permissions mid-
// walk is routine, not a caller-visible failure.
func Gather(roots []string) ([]FileInput, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	var explicitFiles, dirs []string
	for _, r := range roots {
		abs := r
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cwd, abs)
		}
		info, err := os.Stat(abs)
		if err != nil {
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, abs)
		} else {
			explicitFiles = append(explicitFiles, abs)
		}
	}

	seen := make(map[string]bool)
	var inputs []FileInput

	for _, f := range explicitFiles {
		in, ok, err := readSupported(f)
		if err != nil {
			return nil, errorsx.New("read", f, err)
		}
		if ok {
			inputs = append(inputs, in)
			seen[f] = true
		}
	}

	for _, dir := range dirs {
		walkDir(dir, seen, &inputs)
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Path < inputs[j].Path })
	return inputs, nil
}

func walkDir(root string, seen map[string]bool, inputs *[]FileInput) {
	m := newMatcher(loadPatterns(root))
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if m.ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if m.ignored(rel, false) || seen[path] {
			return nil
		}
		if in, ok, err := readSupported(path); err == nil && ok {
			*inputs = append(*inputs, in)
			seen[path] = true
		}
		return nil
	})
}

// readSupported reads path if its extension is recognized and its
// content is valid UTF-8. ok is false (with a nil error) for an
// unrecognized extension or non-UTF-8 content — both are "not a source
// file", not a failure. err is non-nil only when the read itself fails.
func readSupported(path string) (FileInput, bool, error) {
	if _, ok := lang.ForPath(path); !ok {
		return FileInput{}, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FileInput{}, false, err
	}
	if !utf8.Valid(data) {
		return FileInput{}, false, nil
	}
	return FileInput{Path: path, Source: data}, true, nil
}
