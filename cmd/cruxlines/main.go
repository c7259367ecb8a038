package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/cruxlines/cruxlines/internal/config"
	"github.com/cruxlines/cruxlines/internal/debugx"
	"github.com/cruxlines/cruxlines/internal/errorsx"
	"github.com/cruxlines/cruxlines/internal/intern"
	"github.com/cruxlines/cruxlines/internal/model"
	"github.com/cruxlines/cruxlines/internal/orchestrator"
	"github.com/cruxlines/cruxlines/internal/rank"
	"github.com/cruxlines/cruxlines/internal/version"
)

// ecosystemAliases lists every short spelling a caller might use for one
// matching universe.
var ecosystemAliases = map[string]model.Ecosystem{
	"c":          model.EcosystemC,
	"cpp":        model.EcosystemC,
	"c++":        model.EcosystemC,
	"dotnet":     model.EcosystemDotnet,
	"cs":         model.EcosystemDotnet,
	"c#":         model.EcosystemDotnet,
	"go":         model.EcosystemGo,
	"golang":     model.EcosystemGo,
	"java":       model.EcosystemJava,
	"jvm":        model.EcosystemJava,
	"kotlin":     model.EcosystemJava,
	"python":     model.EcosystemPython,
	"py":         model.EcosystemPython,
	"javascript": model.EcosystemJavaScript,
	"js":         model.EcosystemJavaScript,
	"ts":         model.EcosystemJavaScript,
	"tsx":        model.EcosystemJavaScript,
	"rust":       model.EcosystemRust,
	"rs":         model.EcosystemRust,
	"php":        model.EcosystemPhp,
}

func main() {
	debugx.Init()

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Println(version.FullInfo())
	}

	app := &cli.App{
		Name:                   "cruxlines",
		Usage:                  "rank source-code definitions by cross-file reference importance",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "ecosystem",
				Aliases: []string{"e"},
				Usage:   "restrict to the listed ecosystems (repeatable); default is all supported ecosystems",
			},
			&cli.BoolFlag{
				Name:    "metadata",
				Aliases: []string{"m"},
				Usage:   "emit rank/local/file/name metadata alongside each row",
			},
			&cli.StringFlag{
				Name:   "cache-dir",
				Usage:  "override the on-disk cache directory",
				Hidden: true,
			},
			&cli.IntFlag{
				Name:   "iterations",
				Usage:  "override the PageRank iteration count (max 5)",
				Hidden: true,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cruxlines: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	overallStart := time.Now()

	cwd, err := os.Getwd()
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read current dir: %v", err), 1)
	}

	repoRoot, ok := findRepoRoot(cwd)
	if !ok {
		return cli.Exit("current dir is not inside a git repository", 1)
	}

	cfg, cfgErr := config.Load(repoRoot)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "cruxlines: %v (using defaults)\n", cfgErr)
	}

	opts, err := buildOptions(c, cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	start := time.Now()
	rows, interner, err := orchestrator.Run(c.Context, repoRoot, opts)
	if err != nil {
		return reportRunError(err)
	}
	debugx.LogWithCount("cruxlines() total", time.Since(start), len(rows))

	awaitTestHooks()

	start = time.Now()
	metadata := c.Bool("metadata")
	for _, row := range rows {
		printRow(row, interner, repoRoot, metadata)
	}
	debugx.LogWithCount("print_rows", time.Since(start), len(rows))

	debugx.Log("TOTAL (including output)", time.Since(overallStart))
	return nil
}

func buildOptions(c *cli.Context, cfg config.Config) (orchestrator.Options, error) {
	opts := orchestrator.Options{
		CacheDir:   cfg.CacheDir,
		Iterations: cfg.Iterations,
	}

	if dir := c.String("cache-dir"); dir != "" {
		opts.CacheDir = dir
	}

	if n := c.Int("iterations"); n != 0 {
		if n < 1 || n > rank.MaxIterations {
			return opts, fmt.Errorf("--iterations must be between 1 and %d", rank.MaxIterations)
		}
		opts.Iterations = n
	}

	requested := c.StringSlice("ecosystem")
	if len(requested) == 0 {
		requested = cfgDefaultEcosystems(cfg)
	}
	if len(requested) > 0 {
		opts.Ecosystems = make(map[model.Ecosystem]bool, len(requested))
		for _, name := range requested {
			eco, ok := ecosystemAliases[strings.ToLower(name)]
			if !ok {
				return opts, fmt.Errorf("unrecognized ecosystem %q", name)
			}
			opts.Ecosystems[eco] = true
		}
	}

	return opts, nil
}

func cfgDefaultEcosystems(cfg config.Config) []string {
	if len(cfg.ExcludeEcosystem) == 0 {
		return nil
	}
	excluded := make(map[string]bool, len(cfg.ExcludeEcosystem))
	for _, name := range cfg.ExcludeEcosystem {
		excluded[strings.ToLower(name)] = true
	}
	var included []string
	for name, eco := range ecosystemAliases {
		if !excluded[name] && canonicalAlias(name, eco) {
			included = append(included, name)
		}
	}
	return included
}

// canonicalAlias keeps exactly one alias per ecosystem so a config
// exclusion list doesn't silently leave other aliases of the same
// ecosystem selected.
func canonicalAlias(name string, eco model.Ecosystem) bool {
	return name == eco.String()
}

func reportRunError(err error) error {
	var tagged *errorsx.Error
	if e, ok := err.(*errorsx.Error); ok {
		tagged = e
	}
	if tagged != nil && tagged.Path != "" {
		return cli.Exit(fmt.Sprintf("failed to read %s: %v", tagged.Path, tagged.Err), 1)
	}
	return cli.Exit(err.Error(), 1)
}

func printRow(row model.OutputRow, interner *intern.Pool, repoRoot string, metadata bool) {
	path := displayPath(interner.Resolve(row.Definition.Path), repoRoot)
	if metadata {
		fmt.Printf("%s:%d:%d: rank=%.6f local=%.6f file=%.6f name=%s | %s\n",
			path, row.Definition.Line, row.Definition.Column,
			row.Rank, row.LocalScore, row.FileRank, interner.Resolve(row.Definition.Name),
			row.DefinitionLine)
		return
	}
	fmt.Printf("%s:%d:%d: %s\n", path, row.Definition.Line, row.Definition.Column, row.DefinitionLine)
}

func displayPath(path, repoRoot string) string {
	rel, err := filepath.Rel(repoRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// awaitTestHooks implements the CRUXLINES_TEST_READY_FILE /
// CRUXLINES_TEST_PAUSE_MS snapshot-testing seam: once rows are computed
// but before they are printed, a marker file signals an integration test
// that output is about to start, then the process pauses so the test can
// mutate source files on disk and confirm already-computed rows don't
// change.
func awaitTestHooks() {
	readyFile := os.Getenv("CRUXLINES_TEST_READY_FILE")
	if readyFile == "" {
		return
	}
	_ = os.WriteFile(readyFile, []byte("ready\n"), 0o644)

	pauseMs := os.Getenv("CRUXLINES_TEST_PAUSE_MS")
	if pauseMs == "" {
		return
	}
	if ms, err := strconv.Atoi(pauseMs); err == nil && ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}

func findRepoRoot(start string) (string, bool) {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
