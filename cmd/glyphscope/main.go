// Package main provides the CLI entrypoint for glyphscope.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	jj "github.com/cloudfoundry/jibber_jabber"
	"github.com/kballard/go-shellquote"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/verte-zerg/glyphscope/internal/assets"
	"github.com/verte-zerg/glyphscope/internal/config"
	"github.com/verte-zerg/glyphscope/internal/dataset"
	"github.com/verte-zerg/glyphscope/internal/explorer"
	"github.com/verte-zerg/glyphscope/internal/model"
	"github.com/verte-zerg/glyphscope/internal/store"
)

const (
	defaultDataDir    = "data"
	defaultRetries    = assets.DefaultAttempts
	defaultMinElapsed = 2 * time.Second
)

var tracerKeys = []string{"glyphscope.assets", "glyphscope.dataset"}

var (
	dataDir string
	baseURL string
	verbose bool
	noCache bool
	refresh bool
	retries int
	locale  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "glyphscope",
		Short:         "Explore the history of character encoding",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runExplorerCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataDir, "data", defaultDataDir, "directory holding the data files")
	flags.StringVar(&baseURL, "base-url", "", "download data files from this URL instead of --data")
	flags.BoolVar(&verbose, "verbose", false, "print debug traces to stderr")
	flags.BoolVar(&noCache, "no-cache", false, "do not use the local asset cache for downloads")
	flags.BoolVar(&refresh, "refresh", false, "download again even when an asset is cached")
	flags.IntVar(&retries, "retries", defaultRetries, "download attempts per asset")
	flags.StringVar(&locale, "locale", "", "locale for number formatting (default: detected)")

	rootCmd.AddCommand(newASCIICmd())
	rootCmd.AddCommand(newEmojiCmd())
	rootCmd.AddCommand(newScriptsCmd())
	rootCmd.AddCommand(newSankeyCmd())
	rootCmd.AddCommand(newBreakdownCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newGrowthCmd())
	rootCmd.AddCommand(newQuizCmd())
	rootCmd.AddCommand(newPersonalityCmd())
	rootCmd.AddCommand(newFilterCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runExplorerCmd(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	load := func(ctx context.Context) (*dataset.Dataset, error) {
		return e.load(ctx, defaultMinElapsed)
	}
	m := explorer.NewModel(load, e.state, e.tag)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run explorer: %w", err)
	}
	return nil
}

// env is what every data command shares: the merged configuration, the
// asset source chain and the cache it may hold open.
type env struct {
	cfg   config.FileConfig
	state model.ViewState
	tag   language.Tag
	src   assets.Source
	atlas assets.Source
	st    *store.Store
}

func setup(cmd *cobra.Command) (*env, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	useCache := true
	applyStringConfig(cmd, "data", &dataDir, fileCfg.Data.Dir)
	applyStringConfig(cmd, "base-url", &baseURL, fileCfg.Data.BaseURL)
	applyIntConfig(cmd, "retries", &retries, fileCfg.Data.Retries)
	applyStringConfig(cmd, "locale", &locale, fileCfg.Data.Locale)
	applyBoolConfig(cmd, "no-cache", &useCache, fileCfg.Data.Cache)
	if cmd.Flags().Changed("no-cache") {
		useCache = !noCache
	}
	if retries <= 0 {
		return nil, fmt.Errorf("--retries must be > 0")
	}
	if verbose {
		for _, key := range tracerKeys {
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		}
	}

	e := &env{cfg: fileCfg, state: model.DefaultViewState(), tag: resolveLocale(locale)}
	applyViewDefaults(&e.state, fileCfg.View)

	if baseURL == "" {
		e.src = assets.DirSource{Root: dataDir}
	} else {
		e.src = assets.HTTPSource{BaseURL: baseURL}
	}
	e.atlas = assets.HTTPSource{BaseURL: assets.WorldAtlasBase}
	e.src = assets.RetrySource{Source: e.src, Attempts: retries, Backoff: assets.DefaultBackoff}
	e.atlas = assets.RetrySource{Source: e.atlas, Attempts: retries, Backoff: assets.DefaultBackoff}

	if useCache && baseURL != "" {
		st, err := store.Open(config.DefaultCachePath())
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		e.st = st
		e.src = assets.CachedSource{Source: e.src, Store: st, Refresh: refresh}
		e.atlas = assets.CachedSource{Source: e.atlas, Store: st, Refresh: refresh}
	}
	return e, nil
}

func (e *env) load(ctx context.Context, minElapsed time.Duration) (*dataset.Dataset, error) {
	return dataset.Load(ctx, e.src, dataset.Options{MinElapsed: minElapsed})
}

// loadWithAtlas also resolves country names, which only the script detail
// needs. A missing atlas degrades to the plain country list.
func (e *env) loadWithAtlas(ctx context.Context) (*dataset.Dataset, error) {
	return dataset.Load(ctx, e.src, dataset.Options{WithAtlas: true, AtlasSource: e.atlas})
}

func (e *env) close() {
	if e.st == nil {
		return
	}
	if cerr := e.st.Close(); cerr != nil {
		logErrf("failed to close cache: %v\n", cerr)
	}
}

func warnMissing(ds *dataset.Dataset) {
	if ds.Degraded() {
		logErrf("warning: some data could not be loaded: %s\n", strings.Join(ds.Missing, ", "))
	}
}

func resolveLocale(value string) language.Tag {
	if value == "" {
		detected, err := jj.DetectIETF()
		if err != nil {
			return language.English
		}
		value = detected
	}
	tag, err := language.Parse(value)
	if err != nil {
		logErrf("unknown locale %q, using en\n", value)
		return language.English
	}
	return tag
}

// applyViewDefaults copies config values into the initial control state.
// Subcommands apply their own flags on top.
func applyViewDefaults(state *model.ViewState, view config.ViewConfig) {
	if view.Sort != nil {
		state.Sort = model.SortMode(*view.Sort)
	}
	if view.RemoveOutlier != nil {
		state.RemoveOutlier = *view.RemoveOutlier
	}
	if view.Region != nil {
		state.EmojiRegion = model.EmojiRegion(*view.Region)
	}
	if view.Version != nil {
		state.EmojiVersion = *view.Version
	}
	if view.ScriptRegion != nil {
		state.ScriptRegion = *view.ScriptRegion
	}
	if view.Year != nil {
		state.SankeyYear = *view.Year
	}
	if view.View != nil {
		state.Breakdown = model.BreakdownView(*view.View)
	}
	if view.MinChars != nil {
		state.MinChars = *view.MinChars
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts, err := shellquote.Split(editor)
	if err != nil {
		return fmt.Errorf("failed to parse $EDITOR: %w", err)
	}
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	defaults := model.DefaultViewState()
	return fmt.Sprintf(`# glyphscope configuration
# Uncomment a value to enable it. CLI flags override config values.

[data]
# dir = %q              # Directory holding the data files
# base-url = ""             # Download data files from this URL instead
# cache = true              # Keep downloads in the local cache
# retries = %d               # Download attempts per asset
# locale = "en-US"          # Number formatting locale (default: detected)

[view]
# sort = %q             # ASCII bar order: code or frequency
# remove-outlier = false    # Hide the space bar
# region = %q             # Emoji usage table: all, us or uk
# version = %.1f            # Newest emoji version shown
# script-region = %q      # Script region filter
# year = %d               # Sankey year
# view = %q          # Breakdown view: treemap, bar or sunburst
# min-chars = %d            # Breakdown minimum characters per script
`,
		defaultDataDir,
		defaultRetries,
		defaults.Sort,
		defaults.EmojiRegion,
		defaults.EmojiVersion,
		defaults.ScriptRegion,
		defaults.SankeyYear,
		defaults.Breakdown,
		defaults.MinChars,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
