// Package explorer provides the Bubble Tea interface for browsing the views.
package explorer

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/verte-zerg/glyphscope/internal/charindex"
	"github.com/verte-zerg/glyphscope/internal/classify"
	"github.com/verte-zerg/glyphscope/internal/dataset"
	"github.com/verte-zerg/glyphscope/internal/model"
	"github.com/verte-zerg/glyphscope/internal/stats"
)

const (
	tabASCII = iota
	tabEmoji
	tabScripts
	tabFlow
	tabBreakdown
	tabGrowth
)

const (
	plotHeight    = 10
	emojiRows     = 50
	sampleCount   = 3
	firstYear     = 1991
	lastYear      = 2025
	loadingText   = "Loading Unicode data..."
	loadFailedMsg = "Failed to load data."
)

// Emoji version stops for the +/- keys.
var emojiVersions = []float64{0.6, 1, 2, 3, 4, 5, 11, 12, 13, 14, 15, 16, 17, 18}

// Minimum script sizes for the +/- keys on the breakdown tab.
var minCharSteps = []int{0, 10, 50, 100, 250, 500, 1000, 5000}

var emojiRegions = []model.EmojiRegion{model.EmojiAll, model.EmojiUS, model.EmojiUK}

var breakdownViews = []model.BreakdownView{model.ViewTreemap, model.ViewBar, model.ViewSunburst}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#72C9CD"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#72C9CD")).
			Padding(1, 2)
)

// LoadFunc loads the dataset. It runs in a tea.Cmd.
type LoadFunc func(ctx context.Context) (*dataset.Dataset, error)

type loadedMsg struct {
	ds  *dataset.Dataset
	err error
}

// Model implements the Bubble Tea explorer.
type Model struct {
	load LoadFunc
	tag  language.Tag
	rnd  *rand.Rand

	loading bool
	spinner spinner.Model
	ds      *dataset.Dataset
	report  stats.Report
	state   model.ViewState
	errMsg  string

	tabs      []string
	activeTab int
	viewports []viewport.Model

	scriptTable table.Model
	searchMode  bool
	searchInput textinput.Model

	detail     *model.Script
	detailText string

	width  int
	height int
}

// NewModel constructs an explorer that loads its data with load.
func NewModel(load LoadFunc, state model.ViewState, tag language.Tag) *Model {
	m := &Model{
		load:    load,
		tag:     tag,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		loading: true,
		state:   state,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		tabs:    []string{"ASCII 1963", "Emoji", "Scripts", "Flow", "Breakdown", "Growth"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.searchInput = textinput.New()
	m.searchInput.Prompt = "Search: "
	m.searchInput.Placeholder = "script or language"
	m.searchInput.Cursor.SetMode(cursor.CursorBlink)
	m.scriptTable = table.New(
		table.WithColumns(scriptColumns(0)),
		table.WithHeight(1),
	)
	m.scriptTable.SetStyles(scriptTableStyles())
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	load := m.load
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ds, err := load(context.Background())
		return loadedMsg{ds: ds, err: err}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.ds = msg.ds
		m.refreshReport()
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		if m.detail != nil {
			if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
				m.detail = nil
			}
			return m, nil
		}
		if m.ds == nil {
			return m, nil
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "l":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "g", "home":
		if m.activeTab == tabScripts {
			m.scriptTable.GotoTop()
		} else {
			m.viewports[m.activeTab].GotoTop()
		}
		return m, nil
	case "G", "end":
		if m.activeTab == tabScripts {
			m.scriptTable.GotoBottom()
		} else {
			m.viewports[m.activeTab].GotoBottom()
		}
		return m, nil
	}
	if m.applyControl(msg.String()) {
		m.refreshReport()
		return m, nil
	}
	if m.activeTab == tabScripts {
		switch msg.String() {
		case "/":
			m.searchMode = true
			m.searchInput.SetValue(m.state.ScriptSearch)
			return m, m.searchInput.Focus()
		case "enter":
			m.openDetail()
			return m, nil
		}
		var cmd tea.Cmd
		m.scriptTable, cmd = m.scriptTable.Update(msg)
		return m, cmd
	}
	vp := m.viewports[m.activeTab]
	var cmd tea.Cmd
	vp, cmd = vp.Update(msg)
	m.viewports[m.activeTab] = vp
	return m, cmd
}

// applyControl changes the view state for a tab-specific key and reports
// whether anything changed.
func (m *Model) applyControl(key string) bool {
	s := &m.state
	switch m.activeTab {
	case tabASCII:
		switch key {
		case "s":
			if s.Sort == model.SortByFrequency {
				s.Sort = model.SortByCode
			} else {
				s.Sort = model.SortByFrequency
			}
		case "L":
			s.ShowLatin = !s.ShowLatin
		case "d":
			s.ShowDigits = !s.ShowDigits
		case "p":
			s.ShowPunct = !s.ShowPunct
		case "o":
			s.RemoveOutlier = !s.RemoveOutlier
		default:
			return false
		}
	case tabEmoji:
		switch key {
		case "r":
			s.EmojiRegion = cycle(emojiRegions, s.EmojiRegion, 1)
		case "+", "=":
			s.EmojiVersion = step(emojiVersions, s.EmojiVersion, 1)
		case "-":
			s.EmojiVersion = step(emojiVersions, s.EmojiVersion, -1)
		default:
			if len(key) != 1 || key[0] < '1' || key[0] > '9' {
				return false
			}
			cat := model.EmojiCategories[key[0]-'1']
			cats := make(map[string]bool, len(s.EmojiCategories))
			for k, v := range s.EmojiCategories {
				cats[k] = v
			}
			cats[cat] = !cats[cat]
			s.EmojiCategories = cats
		}
	case tabScripts:
		if key != "r" {
			return false
		}
		regions := append([]string{"all"}, regionNames()...)
		s.ScriptRegion = cycle(regions, s.ScriptRegion, 1)
	case tabFlow:
		switch key {
		case "+", "=":
			s.SankeyYear = minInt(lastYear, s.SankeyYear+1)
		case "-":
			s.SankeyYear = maxInt(firstYear, s.SankeyYear-1)
		default:
			return false
		}
	case tabBreakdown:
		switch key {
		case "v":
			s.Breakdown = cycle(breakdownViews, s.Breakdown, 1)
		case "+", "=":
			s.MinChars = step(minCharSteps, s.MinChars, 1)
		case "-":
			s.MinChars = step(minCharSteps, s.MinChars, -1)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func regionNames() []string {
	out := make([]string, len(model.Regions))
	for i, r := range model.Regions {
		out[i] = string(r)
	}
	return out
}

// cycle moves to the next value, starting over at the ends. Unknown values
// restart at the first entry.
func cycle[T comparable](values []T, cur T, delta int) T {
	for i, v := range values {
		if v == cur {
			return values[(i+delta+len(values))%len(values)]
		}
	}
	return values[0]
}

// step moves to the next stop above or below cur, stopping at the ends.
func step[T int | float64](stops []T, cur T, delta int) T {
	if delta > 0 {
		for _, v := range stops {
			if v > cur {
				return v
			}
		}
		return stops[len(stops)-1]
	}
	for i := len(stops) - 1; i >= 0; i-- {
		if stops[i] < cur {
			return stops[i]
		}
	}
	return stops[0]
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searchMode = false
		m.searchInput.Blur()
		m.state.ScriptSearch = strings.TrimSpace(m.searchInput.Value())
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) openDetail() {
	rows := m.report.Scripts
	idx := m.scriptTable.Cursor()
	if idx < 0 || idx >= len(rows) {
		return
	}
	s := rows[idx].Script
	m.detail = &s
	samples := charindex.Samples(m.rnd, m.ds.Index, s.Name, sampleCount)
	var buf bytes.Buffer
	if err := stats.RenderScriptDetail(&buf, s, classify.Countries(s.Geography), samples, m.tag); err != nil {
		m.detailText = fmt.Sprintf("Failed to render %s: %v", s.Name, err)
		return
	}
	m.detailText = strings.TrimRight(buf.String(), "\n")
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" "+loadingText)
	}
	if m.ds == nil {
		msg := errorStyle.Render(loadFailedMsg) + "\n" + m.errMsg + "\n\n" + headerStyle.Render("Quit: q")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}
	if m.detail != nil {
		return fitLines(m.renderDetailModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.ds != nil && m.ds.Degraded() {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	listHeight := bodyHeight
	if m.searchMode {
		listHeight--
	}
	m.scriptTable.SetColumns(scriptColumns(m.width))
	m.scriptTable.SetWidth(m.width)
	m.scriptTable.SetHeight(maxInt(1, listHeight-1))
	m.searchInput.Width = maxInt(10, m.width-lipgloss.Width(m.searchInput.Prompt)-2)
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	if m.activeTab == tabScripts {
		m.scriptTable.Focus()
	} else {
		m.scriptTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	controls := padLines(headerStyle.Render(truncateLine(m.controlSummary(), m.width)), m.width)
	return tabs + "\n" + controls
}

func (m *Model) controlSummary() string {
	s := m.state
	switch m.activeTab {
	case tabASCII:
		return fmt.Sprintf("sort=%s  latin=%t  digits=%t  punctuation=%t  remove-outlier=%t",
			s.Sort, s.ShowLatin, s.ShowDigits, s.ShowPunct, s.RemoveOutlier)
	case tabEmoji:
		var off []string
		for i, c := range model.EmojiCategories {
			if !s.EmojiCategories[c] {
				off = append(off, fmt.Sprintf("%d", i+1))
			}
		}
		hidden := "none"
		if len(off) > 0 {
			hidden = strings.Join(off, ",")
		}
		return fmt.Sprintf("region=%s  version<=%g  hidden categories=%s", s.EmojiRegion, s.EmojiVersion, hidden)
	case tabScripts:
		search := s.ScriptSearch
		if search == "" {
			search = "any"
		}
		return fmt.Sprintf("region=%s  search=%s", s.ScriptRegion, search)
	case tabFlow:
		return fmt.Sprintf("year=%d", s.SankeyYear)
	case tabBreakdown:
		return fmt.Sprintf("view=%s  min-chars=%d", s.Breakdown, s.MinChars)
	}
	return fmt.Sprintf("%d releases", len(m.report.Growth))
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Quit: q"
	switch m.activeTab {
	case tabASCII:
		help = "Nav: left/right  Sort: s  Toggle: L/d/p  Outlier: o  Quit: q"
	case tabEmoji:
		help = "Nav: left/right  Region: r  Version: -/+  Category: 1-9  Quit: q"
	case tabScripts:
		help = "Nav: left/right  Region: r  Search: /  Details: enter  Quit: q"
	case tabFlow:
		help = "Nav: left/right  Year: -/+  Quit: q"
	case tabBreakdown:
		help = "Nav: left/right  View: v  Min chars: -/+  Quit: q"
	}
	if m.searchMode {
		help = "enter: apply  esc: cancel"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFooter() string {
	if m.ds != nil && m.ds.Degraded() {
		notice := fmt.Sprintf("Some data could not be loaded: %s", strings.Join(m.ds.Missing, ", "))
		return m.renderHelp() + "\n" + warningStyle.Render(truncateLine(notice, m.width))
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.activeTab != tabScripts {
		return fitLines(m.viewports[m.activeTab].View(), m.width, height)
	}
	if len(m.report.Scripts) == 0 && !m.searchMode {
		return fitLines("No scripts match the current filters.", m.width, height)
	}
	view := m.scriptTable.View()
	if m.searchMode {
		view = m.searchInput.View() + "\n" + view
	}
	return fitLines(view, m.width, height)
}

func (m *Model) renderDetailModal() string {
	body := []string{
		m.detailText,
		"",
		headerStyle.Render("Enter/Esc to close"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) refreshReport() {
	if m.ds == nil {
		return
	}
	m.report = stats.BuildReport(m.ds, m.state, m.tag, stats.DefaultCanvas)
	rows := make([]table.Row, 0, len(m.report.Scripts))
	for _, s := range m.report.Scripts {
		rows = append(rows, table.Row{
			s.Name,
			stats.FormatCount(s.CharCount, m.tag),
			string(s.Region),
			string(s.Category),
			stats.Bar(s.BarWidth/100, 16),
		})
	}
	m.scriptTable.SetRows(rows)
	if m.scriptTable.Cursor() >= len(rows) {
		m.scriptTable.GotoTop()
	}
	if m.activeTab == tabScripts {
		m.scriptTable.Focus()
	}
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.ds == nil || len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	r := m.report
	m.viewports[tabASCII].SetContent(render(func(buf *bytes.Buffer) error {
		return stats.RenderASCII(buf, r.ASCII)
	}))
	m.viewports[tabEmoji].SetContent(render(func(buf *bytes.Buffer) error {
		return stats.RenderEmoji(buf, r.Emoji, emojiRows, m.tag)
	}))
	m.viewports[tabFlow].SetContent(render(func(buf *bytes.Buffer) error {
		return stats.RenderSankey(buf, r.Sankey, r.Flow, m.state.SankeyYear, m.tag)
	}))
	m.viewports[tabBreakdown].SetContent(render(func(buf *bytes.Buffer) error {
		root := r.Treemap
		if m.state.Breakdown == model.ViewSunburst {
			root = r.Sunburst
		}
		return stats.RenderBreakdown(buf, m.state.Breakdown, root, r.Breakdown, m.tag)
	}))
	m.viewports[tabGrowth].SetContent(render(func(buf *bytes.Buffer) error {
		opts := stats.PlotOptions{Width: stats.PlotWidthFor(width), Height: plotHeight, Color: true}
		if err := stats.RenderGrowth(buf, r.Growth, opts); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(buf, titleStyle.Render("The road to Unicode")); err != nil {
			return err
		}
		return stats.RenderTimeline(buf, r.Timeline)
	}))
}

func render(fn func(buf *bytes.Buffer) error) string {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return fmt.Sprintf("Failed to render view: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func scriptColumns(width int) []table.Column {
	fixed := 12 + 10 + 18 + 16
	name := maxInt(16, width-fixed-5)
	return []table.Column{
		{Title: "Script", Width: name},
		{Title: "Characters", Width: 12},
		{Title: "Region", Width: 10},
		{Title: "Category", Width: 18},
		{Title: "", Width: 16},
	}
}

func scriptTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 90))
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
