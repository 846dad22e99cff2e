package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/glyphscope/internal/assets"
	"github.com/verte-zerg/glyphscope/internal/charindex"
	"github.com/verte-zerg/glyphscope/internal/classify"
	"github.com/verte-zerg/glyphscope/internal/config"
	"github.com/verte-zerg/glyphscope/internal/dataset"
	"github.com/verte-zerg/glyphscope/internal/export"
	"github.com/verte-zerg/glyphscope/internal/geo"
	"github.com/verte-zerg/glyphscope/internal/layout"
	"github.com/verte-zerg/glyphscope/internal/model"
	"github.com/verte-zerg/glyphscope/internal/quiz"
	"github.com/verte-zerg/glyphscope/internal/stats"
	"github.com/verte-zerg/glyphscope/internal/store"
)

const (
	defaultEmojiLimit = stats.BarLimit
	sampleCount       = 3
)

var (
	asciiSort          string
	asciiLatin         bool
	asciiDigits        bool
	asciiPunct         bool
	asciiRemoveOutlier bool

	emojiRegion     string
	emojiVersion    float64
	emojiCategories []string
	emojiLimit      int
	emojiRank       string

	scriptsRegion string
	scriptsSearch string
	scriptsSelect string

	sankeyYear int

	breakdownView     string
	breakdownMinChars int

	exportOut string

	cacheClear bool
)

// loadData runs setup and loads the dataset for a one-shot command.
func loadData(cmd *cobra.Command) (*env, *dataset.Dataset, error) {
	e, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	ds, err := e.load(cmd.Context(), 0)
	if err != nil {
		e.close()
		return nil, nil, fmt.Errorf("failed to load data: %w", err)
	}
	warnMissing(ds)
	return e, ds, nil
}

func newASCIICmd() *cobra.Command {
	defaults := model.DefaultViewState()
	cmd := &cobra.Command{
		Use:   "ascii",
		Short: "Show character frequencies of the 1963 ASCII range",
		Args:  cobra.NoArgs,
		RunE:  runASCIICmd,
	}
	cmd.Flags().StringVar(&asciiSort, "sort", string(defaults.Sort), "order: code or frequency")
	cmd.Flags().BoolVar(&asciiLatin, "latin", defaults.ShowLatin, "show Latin letters")
	cmd.Flags().BoolVar(&asciiDigits, "digits", defaults.ShowDigits, "show digits")
	cmd.Flags().BoolVar(&asciiPunct, "punctuation", defaults.ShowPunct, "show punctuation")
	cmd.Flags().BoolVar(&asciiRemoveOutlier, "remove-outlier", defaults.RemoveOutlier, "hide the space character")
	return cmd
}

func runASCIICmd(cmd *cobra.Command, _ []string) error {
	e, ds, err := loadData(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	applyStringConfig(cmd, "sort", &asciiSort, e.cfg.View.Sort)
	applyBoolConfig(cmd, "remove-outlier", &asciiRemoveOutlier, e.cfg.View.RemoveOutlier)
	order := model.SortMode(asciiSort)
	if order != model.SortByCode && order != model.SortByFrequency {
		return fmt.Errorf("--sort must be code or frequency")
	}
	filter := stats.ASCIIFilter{
		Latin:         asciiLatin,
		Digits:        asciiDigits,
		Punctuation:   asciiPunct,
		RemoveOutlier: asciiRemoveOutlier,
	}
	return stats.RenderASCII(cmd.OutOrStdout(), stats.ASCIIView(ds.Frequencies, filter, order))
}

func newEmojiCmd() *cobra.Command {
	defaults := model.DefaultViewState()
	cmd := &cobra.Command{
		Use:   "emoji",
		Short: "Show the most used emoji",
		Args:  cobra.NoArgs,
		RunE:  runEmojiCmd,
	}
	cmd.Flags().StringVar(&emojiRegion, "region", string(defaults.EmojiRegion), "usage table: all, us or uk")
	cmd.Flags().Float64Var(&emojiVersion, "version", defaults.EmojiVersion, "newest emoji version to include")
	cmd.Flags().StringSliceVar(&emojiCategories, "category", nil, "categories to include (default: all)")
	cmd.Flags().IntVar(&emojiLimit, "limit", defaultEmojiLimit, "rows to print, 0 for every bubble")
	cmd.Flags().StringVar(&emojiRank, "rank", "", "print the usage rank of this emoji")
	return cmd
}

func runEmojiCmd(cmd *cobra.Command, _ []string) error {
	e, ds, err := loadData(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	applyStringConfig(cmd, "region", &emojiRegion, e.cfg.View.Region)
	applyFloatConfig(cmd, "version", &emojiVersion, e.cfg.View.Version)
	region := model.EmojiRegion(emojiRegion)
	if region != model.EmojiAll && region != model.EmojiUS && region != model.EmojiUK {
		return fmt.Errorf("--region must be all, us or uk")
	}
	if emojiLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	filter := stats.EmojiFilter{Categories: e.state.EmojiCategories, MaxVersion: emojiVersion}
	if len(emojiCategories) > 0 {
		filter.Categories, err = categorySet(emojiCategories)
		if err != nil {
			return err
		}
	}

	table := ds.EmojiTable(region)
	out := cmd.OutOrStdout()
	if emojiRank != "" {
		rank := stats.EmojiRank(table, emojiRank)
		if rank == 0 {
			_, err := fmt.Fprintf(out, "%s is not in the %s usage table\n", emojiRank, region)
			return err
		}
		_, err := fmt.Fprintf(out, "%s is the #%d most used emoji\n", emojiRank, rank)
		return err
	}
	return stats.RenderEmoji(out, stats.EmojiView(table, filter, e.tag), emojiLimit, e.tag)
}

func categorySet(names []string) (map[string]bool, error) {
	known := make(map[string]string, len(model.EmojiCategories))
	for _, c := range model.EmojiCategories {
		known[strings.ToLower(c)] = c
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		c, ok := known[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown emoji category %q (want one of %s)", name, strings.Join(model.EmojiCategories, ", "))
		}
		set[c] = true
	}
	return set, nil
}

func newScriptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scripts",
		Short: "List writing systems encoded in Unicode",
		Args:  cobra.NoArgs,
		RunE:  runScriptsCmd,
	}
	cmd.Flags().StringVar(&scriptsRegion, "region", "all", "region filter")
	cmd.Flags().StringVar(&scriptsSearch, "search", "", "match script names and languages")
	cmd.Flags().StringVar(&scriptsSelect, "select", "", "show details of one script")
	return cmd
}

func runScriptsCmd(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	applyStringConfig(cmd, "region", &scriptsRegion, e.cfg.View.ScriptRegion)
	if !validScriptRegion(scriptsRegion) {
		return fmt.Errorf("--region must be all or one of %s", strings.Join(scriptRegionNames(), ", "))
	}

	var ds *dataset.Dataset
	if scriptsSelect != "" {
		ds, err = e.loadWithAtlas(cmd.Context())
	} else {
		ds, err = e.load(cmd.Context(), 0)
	}
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	warnMissing(ds)

	out := cmd.OutOrStdout()
	if scriptsSelect == "" {
		rows := stats.ScriptView(ds.Scripts, stats.ScriptFilter{Region: scriptsRegion, Search: scriptsSearch})
		return stats.RenderScripts(out, rows, e.tag)
	}

	script, ok := stats.FindScript(ds.Scripts, scriptsSelect)
	if !ok {
		return fmt.Errorf("script %q not found", scriptsSelect)
	}
	highlight := classify.Countries(script.Geography)
	if !highlight.All && len(ds.Countries) > 0 {
		for _, name := range geo.Unmatched(highlight.Countries, ds.Countries) {
			logErrf("no map shape for %s\n", name)
		}
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	samples := charindex.Samples(rnd, ds.Index, script.Name, sampleCount)
	return stats.RenderScriptDetail(out, script, highlight, samples, e.tag)
}

func scriptRegionNames() []string {
	names := make([]string, 0, len(model.Regions))
	for _, r := range model.Regions {
		names = append(names, string(r))
	}
	return names
}

func validScriptRegion(value string) bool {
	if value == "all" {
		return true
	}
	for _, r := range model.Regions {
		if string(r) == value {
			return true
		}
	}
	return false
}

func newSankeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sankey",
		Short: "Show how Unicode grew release by release",
		Args:  cobra.NoArgs,
		RunE:  runSankeyCmd,
	}
	cmd.Flags().IntVar(&sankeyYear, "year", model.DefaultViewState().SankeyYear, "last year to include")
	return cmd
}

func runSankeyCmd(cmd *cobra.Command, _ []string) error {
	e, ds, err := loadData(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	applyIntConfig(cmd, "year", &sankeyYear, e.cfg.View.Year)
	summary := stats.SankeyStats(ds.Versions, ds.Scripts, sankeyYear)
	canvas := stats.DefaultCanvas
	g := layout.SankeyLayout(layout.SankeyGraph(ds.Versions, sankeyYear), canvas.Width, canvas.Height)
	return stats.RenderSankey(cmd.OutOrStdout(), summary, g, sankeyYear, e.tag)
}

func newBreakdownCmd() *cobra.Command {
	defaults := model.DefaultViewState()
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Break the encoded characters down by script family",
		Args:  cobra.NoArgs,
		RunE:  runBreakdownCmd,
	}
	cmd.Flags().StringVar(&breakdownView, "view", string(defaults.Breakdown), "treemap, bar or sunburst")
	cmd.Flags().IntVar(&breakdownMinChars, "min-chars", defaults.MinChars, "minimum characters per script")
	return cmd
}

func runBreakdownCmd(cmd *cobra.Command, _ []string) error {
	e, ds, err := loadData(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	applyStringConfig(cmd, "view", &breakdownView, e.cfg.View.View)
	applyIntConfig(cmd, "min-chars", &breakdownMinChars, e.cfg.View.MinChars)
	if breakdownMinChars < 0 {
		return fmt.Errorf("--min-chars must be >= 0")
	}

	view := model.BreakdownView(breakdownView)
	canvas := stats.DefaultCanvas
	var root *layout.Node
	switch view {
	case model.ViewTreemap:
		root = layout.Group(ds.Scripts, breakdownMinChars, 0)
		layout.Treemap(root, canvas.Width, canvas.Height)
	case model.ViewSunburst:
		root = layout.Group(ds.Scripts, breakdownMinChars, stats.SunburstChildLimit)
		layout.Partition(root, 2*math.Pi, math.Min(canvas.Width, canvas.Height)/2)
	case model.ViewBar:
	default:
		return fmt.Errorf("--view must be treemap, bar or sunburst")
	}
	bars := stats.BreakdownBars(ds.Scripts, breakdownMinChars)
	return stats.RenderBreakdown(cmd.OutOrStdout(), view, root, bars, e.tag)
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup HEX...",
		Short: "Look up character names by code point",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLookupCmd,
	}
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	e, ds, err := loadData(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	for _, arg := range args {
		hex := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(arg), "U+"), "u+")
		info, ok := ds.Index.Lookup(hex)
		if err := stats.RenderLookup(cmd.OutOrStdout(), charindex.NormalizeKey(hex), info, ok); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newGrowthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "growth",
		Short: "Plot Unicode growth and the road that led to it",
		Args:  cobra.NoArgs,
		RunE:  runGrowthCmd,
	}
}

func runGrowthCmd(cmd *cobra.Command, _ []string) error {
	e, ds, err := loadData(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	out := cmd.OutOrStdout()
	if err := stats.RenderTimeline(out, ds.Timeline); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return stats.RenderGrowth(out, stats.GrowthSeries(ds.Versions), stats.PlotOptions{})
}

func newQuizCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Guess which characters were in 1963 ASCII",
		Args:  cobra.NoArgs,
		RunE:  runQuizCmd,
	}
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	e, ds, err := loadData(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	q := quiz.New().ASCIIQuiz(ds.Chars)
	out := cmd.OutOrStdout()
	for i, item := range q.Items {
		if _, err := fmt.Fprintf(out, "%d) %s  U+%s\n", i+1, stats.Glyph(item.CodePoint), charindex.HexKey(item.CodePoint)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprint(out, "Which were in 1963 ASCII? Enter numbers separated by spaces: "); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read answer: %w", err)
	}
	selected, err := parseSelection(line, len(q.Items))
	if err != nil {
		return err
	}
	return writeQuizResult(out, q, q.Score(selected))
}

func parseSelection(line string, n int) (map[int]bool, error) {
	selected := make(map[int]bool)
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r' })
	for _, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil || v < 1 || v > n {
			return nil, fmt.Errorf("invalid choice %q: enter numbers from 1 to %d", field, n)
		}
		selected[v-1] = true
	}
	return selected, nil
}

func writeQuizResult(w io.Writer, q quiz.Quiz, result quiz.Result) error {
	for i, item := range q.Items {
		verdict := "later"
		switch result.Outcomes[i] {
		case quiz.OutcomeCorrect:
			verdict = "correct"
		case quiz.OutcomeIncorrect:
			verdict = "wrong, added later"
		case quiz.OutcomeMissed:
			verdict = "missed, it was in 1963"
		}
		if _, err := fmt.Fprintf(w, "%d) %s  %s\n", i+1, stats.Glyph(item.CodePoint), verdict); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	summary := fmt.Sprintf("%d correct, %d wrong, %d missed", result.Correct, result.Incorrect, result.Missed)
	if result.Perfect() {
		summary = "Perfect! " + summary
	}
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newPersonalityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personality",
		Short: "Find the emoji that matches your mood",
		Args:  cobra.NoArgs,
		RunE:  runPersonalityCmd,
	}
	for _, q := range quiz.Questions {
		cmd.Flags().String(q.Key, "", fmt.Sprintf("%s: %s", q.Prompt, strings.Join(q.Options, ", ")))
	}
	return cmd
}

func runPersonalityCmd(cmd *cobra.Command, _ []string) error {
	answers := make(quiz.Answers, len(quiz.Questions))
	for _, q := range quiz.Questions {
		value, err := cmd.Flags().GetString(q.Key)
		if err != nil {
			return err
		}
		answers[q.Key] = value
	}
	archetype, err := quiz.Personality(answers)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n%s\n", archetype.Emoji, archetype.Title, archetype.Text)
	return err
}

func newFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter1963 [TEXT...]",
		Short: "Rewrite text the way a 1963 terminal would accept it",
		RunE:  runFilterCmd,
	}
}

func runFilterCmd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}
	filtered, removed := quiz.Filter1963(text)
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), filtered); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if removed > 0 {
		logErrf("%d characters did not exist in 1963\n", removed)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every view as JSON",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", "", "output directory")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	if exportOut == "" {
		return fmt.Errorf("--out is required")
	}
	e, ds, err := loadData(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	report := stats.BuildReport(ds, e.state, e.tag, stats.DefaultCanvas)
	paths, err := export.Write(exportOut, report, e.state)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download every data file into the local cache",
		Args:  cobra.NoArgs,
		RunE:  runFetchCmd,
	}
}

func runFetchCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "base-url", &baseURL, fileCfg.Data.BaseURL)
	applyIntConfig(cmd, "retries", &retries, fileCfg.Data.Retries)
	if baseURL == "" {
		return fmt.Errorf("--base-url is required to fetch")
	}

	st, err := store.Open(config.DefaultCachePath())
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close cache: %v\n", cerr)
		}
	}()

	var bar *progressbar.ProgressBar
	progress := func(name string, size int64) io.Writer {
		bar = progressbar.DefaultBytes(size, name)
		return bar
	}
	dataSrc := assets.HTTPSource{BaseURL: baseURL, Progress: progress}
	atlas := assets.HTTPSource{BaseURL: assets.WorldAtlasBase, Progress: progress}

	names := append(append([]string{}, assets.Names...), assets.WorldAtlas)
	bodies := make(map[string][]byte, len(names))
	for _, name := range names {
		var src assets.Source = dataSrc
		if name == assets.WorldAtlas {
			src = atlas
		}
		bar = nil
		data, err := fetchOne(cmd.Context(), src, name)
		if bar != nil {
			if ferr := bar.Finish(); ferr != nil {
				// Best-effort bar cleanup.
				_ = ferr
			}
		}
		if err != nil {
			if dataset.Required[name] {
				return err
			}
			logErrf("skipping %s: %v\n", name, err)
			continue
		}
		bodies[name] = data
	}
	if err := st.PutAssets(cmd.Context(), bodies); err != nil {
		return fmt.Errorf("failed to store assets: %w", err)
	}
	logErrf("cached %d of %d files in %s\n", len(bodies), len(names), config.DefaultCachePath())
	return nil
}

func fetchOne(ctx context.Context, src assets.Source, name string) ([]byte, error) {
	retry := assets.RetrySource{Source: src, Attempts: retries, Backoff: assets.DefaultBackoff}
	data, err := retry.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	return data, nil
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "List cached data files",
		Args:  cobra.NoArgs,
		RunE:  runCacheCmd,
	}
	cmd.Flags().BoolVar(&cacheClear, "clear", false, "remove every cached file")
	return cmd
}

func runCacheCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultCachePath())
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close cache: %v\n", cerr)
		}
	}()

	if cacheClear {
		n, err := st.DeleteAssets(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		logErrf("removed %d cached files\n", n)
		return nil
	}

	entries, err := st.ListAssets(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list cache: %w", err)
	}
	if len(entries) == 0 {
		logErrln("Cache is empty. Download with: glyphscope fetch --base-url <url>")
		return nil
	}
	rows := make([][]string, 0, len(entries))
	var total int64
	for _, entry := range entries {
		total += entry.Size
		rows = append(rows, []string{entry.Name, humanize.Bytes(uint64(entry.Size)), humanize.Time(entry.FetchedAt)})
	}
	rows = append(rows, []string{"total", humanize.Bytes(uint64(total)), ""})
	return stats.WriteTable(cmd.OutOrStdout(), []string{"File", "Size", "Fetched"}, rows, map[int]bool{1: true})
}
