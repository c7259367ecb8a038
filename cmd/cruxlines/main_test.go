package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBinaryPath string

func TestMain(m *testing.M) {
	tempBinary := filepath.Join(os.TempDir(), "cruxlines-test-"+fmt.Sprintf("%d", time.Now().UnixNano()))

	buildCmd := exec.Command("go", "build", "-o", tempBinary, ".")
	var buildOut bytes.Buffer
	buildCmd.Stdout = &buildOut
	buildCmd.Stderr = &buildOut
	if err := buildCmd.Run(); err != nil {
		fmt.Printf("failed to build cruxlines for testing: %v\n%s\n", err, buildOut.String())
		os.Exit(1)
	}
	testBinaryPath = tempBinary

	code := m.Run()
	os.Remove(testBinaryPath)
	os.Exit(code)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fakeGitRepo gives dir a bare .git directory, enough for findRepoRoot's
// directory-presence check without shelling out to a real git init.
func fakeGitRepo(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
}

func runCLI(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(testBinaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

func TestCLIRanksCrossFileGoReferences(t *testing.T) {
	dir := t.TempDir()
	fakeGitRepo(t, dir)
	writeFile(t, filepath.Join(dir, "a.go"), "package a\n\nfunc Helper() int {\n\treturn 1\n}\n")
	writeFile(t, filepath.Join(dir, "b.go"), "package a\n\nfunc UseHelper() int {\n\treturn Helper()\n}\n")

	out, err := runCLI(t, dir, nil)
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "a.go:3:6: func Helper() int {")
}

func TestCLIRejectsDirectoryOutsideGitRepo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), "package a\n")

	out, err := runCLI(t, dir, nil)
	assert.Error(t, err)
	assert.Contains(t, out, "not inside a git repository")
}

func TestCLIEcosystemFlagRestrictsOutput(t *testing.T) {
	dir := t.TempDir()
	fakeGitRepo(t, dir)
	writeFile(t, filepath.Join(dir, "a.go"), "package a\n\nfunc Helper() int {\n\treturn 1\n}\n")
	writeFile(t, filepath.Join(dir, "b.go"), "package a\n\nfunc UseHelper() int {\n\treturn Helper()\n}\n")
	writeFile(t, filepath.Join(dir, "a.py"), "def helper():\n    return 1\n")
	writeFile(t, filepath.Join(dir, "b.py"), "def use_helper():\n    return helper()\n")

	out, err := runCLI(t, dir, nil, "--ecosystem", "py")
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "a.py")
	assert.NotContains(t, out, "a.go")
}

func TestCLIMetadataFlagIncludesScoreFields(t *testing.T) {
	dir := t.TempDir()
	fakeGitRepo(t, dir)
	writeFile(t, filepath.Join(dir, "a.go"), "package a\n\nfunc Helper() int {\n\treturn 1\n}\n")
	writeFile(t, filepath.Join(dir, "b.go"), "package a\n\nfunc UseHelper() int {\n\treturn Helper()\n}\n")

	out, err := runCLI(t, dir, nil, "--metadata")
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "rank=")
	assert.Contains(t, out, "local=")
	assert.Contains(t, out, "name=Helper")
}

// TestCLISnapshotsDefinitionLineDuringConcurrentEdit exercises S5: a file
// edited after rows are computed but before they're printed must not
// affect the already-captured definition_line text.
func TestCLISnapshotsDefinitionLineDuringConcurrentEdit(t *testing.T) {
	dir := t.TempDir()
	fakeGitRepo(t, dir)
	defsPath := filepath.Join(dir, "defs.py")
	writeFile(t, defsPath, "def add():\n    return 1\n")
	writeFile(t, filepath.Join(dir, "main.py"), "from defs import add\n\nadd()\n")

	readyFile := filepath.Join(t.TempDir(), "ready")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if _, err := os.Stat(readyFile); err == nil {
				_ = os.WriteFile(defsPath, []byte("def add():\n    return 999\n"), 0o644)
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()

	out, err := runCLI(t, dir, []string{
		"CRUXLINES_TEST_READY_FILE=" + readyFile,
		"CRUXLINES_TEST_PAUSE_MS=" + strconv.Itoa(500),
	})
	wg.Wait()
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "def add():")
	assert.NotContains(t, out, "return 999")
}

func TestCLIRejectsOutOfRangeIterations(t *testing.T) {
	dir := t.TempDir()
	fakeGitRepo(t, dir)
	writeFile(t, filepath.Join(dir, "a.go"), "package a\n")

	out, err := runCLI(t, dir, nil, "--iterations", "100")
	assert.Error(t, err)
	assert.True(t, strings.Contains(out, "--iterations must be between"))
}
