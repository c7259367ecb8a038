package gatherer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGatherSkipsUnrecognizedExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "package main\n")
	writeFile(t, filepath.Join(dir, "README.md"), "# hi\n")

	inputs, err := Gather([]string{dir})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, filepath.Join(dir, "main.go"), inputs[0].Path)
}

func TestGatherHonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "vendor/\n*.gen.go\n")
	writeFile(t, filepath.Join(dir, "main.go"), "package main\n")
	writeFile(t, filepath.Join(dir, "generated.gen.go"), "package main\n")
	writeFile(t, filepath.Join(dir, "vendor", "dep.go"), "package vendor\n")

	inputs, err := Gather([]string{dir})
	require.NoError(t, err)
	var paths []string
	for _, in := range inputs {
		paths = append(paths, in.Path)
	}
	assert.Contains(t, paths, filepath.Join(dir, "main.go"))
	assert.NotContains(t, paths, filepath.Join(dir, "generated.gen.go"))
	assert.NotContains(t, paths, filepath.Join(dir, "vendor", "dep.go"))
}

func TestGatherSkipsGitDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "package main\n")
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main\n")

	inputs, err := Gather([]string{dir})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
}

func TestGatherIncludesExplicitFileEvenIfIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "secret.go\n")
	path := filepath.Join(dir, "secret.go")
	writeFile(t, path, "package main\n")

	inputs, err := Gather([]string{path})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, path, inputs[0].Path)
}

func TestGatherSurfacesReadFailureOnExplicitFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root ignores file permissions")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.go")
	writeFile(t, path, "package main\n")
	require.NoError(t, os.Chmod(path, 0o000))
	defer os.Chmod(path, 0o644)

	_, err := Gather([]string{path})
	assert.Error(t, err)
}

func TestGatherSkipsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.go")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0o644))

	inputs, err := Gather([]string{dir})
	require.NoError(t, err)
	assert.Empty(t, inputs)
}
