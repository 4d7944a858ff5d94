// cog-tui is a terminal workbench for browsing a COG analysis: dashboard,
// prioritized vulnerability table, and derived-network centrality view.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/engine"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/logging"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/ranking"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/scoring"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/templates"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#005FAF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	severityStyles = map[scoring.Severity]lipgloss.Style{
		scoring.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
		scoring.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8700")),
		scoring.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")),
		scoring.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
	}

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	dashboardView view = iota
	rankingsView
	networkView
	viewCount
)

var viewNames = [viewCount]string{"Dashboard", "Rankings", "Network"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Toggle   key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle tie-break"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type model struct {
	analysis *cog.COGAnalysis
	engine   *engine.Engine

	active    view
	tieBreak  ranking.TieBreak
	rankTable table.Model
	ranked    []ranking.RankedVulnerability
	graph     *engine.GraphResult
	rankErr   error
	width     int
	height    int
}

func newModel(a *cog.COGAnalysis) model {
	m := model{
		analysis: a,
		engine:   engine.New(logging.NopLogger{}, nil),
		tieBreak: ranking.TieBreakImpact,
	}
	m.recompute()
	return m
}

// recompute re-derives rankings and the network from the current document.
// Both derivations are pure and cheap enough to run on every change.
func (m *model) recompute() {
	m.ranked, m.rankErr = m.engine.Rank(m.analysis, ranking.WithTieBreak(m.tieBreak))
	m.graph = m.engine.BuildGraph(m.analysis, 10)
	m.rankTable = m.buildRankTable()
}

func (m *model) buildRankTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Vulnerability", Width: 44},
		{Title: "Severity", Width: 9},
		{Title: "I/A/F", Width: 6},
		{Title: "Score", Width: 6},
	}

	rows := make([]table.Row, len(m.ranked))
	for i, rv := range m.ranked {
		v := rv.Vulnerability
		rows[i] = table.Row{
			strconv.Itoa(rv.PriorityRank),
			v.Vulnerability,
			string(rv.Severity),
			fmt.Sprintf("%d/%d/%d", v.Scoring.ImpactOnCOG, v.Scoring.Attainability, v.Scoring.FollowUpPotential),
			strconv.Itoa(rv.CompositeScore),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#005FAF"))
	t.SetStyles(s)
	return t
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Tab):
			m.active = (m.active + 1) % viewCount
			return m, nil
		case key.Matches(msg, keys.ShiftTab):
			m.active = (m.active + viewCount - 1) % viewCount
			return m, nil
		case key.Matches(msg, keys.Toggle):
			if m.tieBreak == ranking.TieBreakImpact {
				m.tieBreak = ranking.TieBreakInputOrder
			} else {
				m.tieBreak = ranking.TieBreakImpact
			}
			m.recompute()
			return m, nil
		}
	}

	if m.active == rankingsView {
		var cmd tea.Cmd
		m.rankTable, cmd = m.rankTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("COG Analysis Workbench: " + m.analysis.Title))
	b.WriteString("\n\n")

	tabs := make([]string, viewCount)
	for i := view(0); i < viewCount; i++ {
		if i == m.active {
			tabs[i] = activeTabStyle.Render(viewNames[i])
		} else {
			tabs[i] = inactiveTabStyle.Render(viewNames[i])
		}
	}
	b.WriteString(contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
	b.WriteString("\n")

	switch m.active {
	case dashboardView:
		b.WriteString(m.dashboardContent())
	case rankingsView:
		b.WriteString(m.rankingsContent())
	case networkView:
		b.WriteString(m.networkContent())
	}

	b.WriteString(helpStyle.Render("tab: next view • t: toggle tie-break • q: quit"))
	return b.String()
}

func (m model) dashboardContent() string {
	ceiling, _ := scoring.MaxComposite(m.analysis.ScoringSystem)

	doc := fmt.Sprintf("Scoring: %s (ceiling %d)\nCOGs: %d\nCapabilities: %d\nRequirements: %d\nVulnerabilities: %d",
		m.analysis.ScoringSystem, ceiling,
		len(m.analysis.CentersOfGravity),
		len(m.analysis.Capabilities),
		len(m.analysis.Requirements),
		len(m.analysis.Vulnerabilities))

	net := fmt.Sprintf("Network nodes: %d\nStructural edges: %d\nOrphans excluded: %d",
		m.graph.Stats.NodeCount, m.graph.Stats.EdgeCount, m.graph.Orphans)

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(doc),
		statsBoxStyle.Render(net))

	ctx := m.analysis.OperationalContext
	var lines []string
	if ctx.Objective != "" {
		lines = append(lines, "Objective: "+ctx.Objective)
	}
	if ctx.DesiredImpact != "" {
		lines = append(lines, "Desired impact: "+ctx.DesiredImpact)
	}
	if ctx.StrategicLevel != "" {
		lines = append(lines, "Level: "+string(ctx.StrategicLevel))
	}

	out := contentStyle.Render(boxes) + "\n"
	if len(lines) > 0 {
		out += contentStyle.Render(strings.Join(lines, "\n")) + "\n"
	}
	return out
}

func (m model) rankingsContent() string {
	if m.rankErr != nil {
		return contentStyle.Render(errorStyle.Render("Ranking unavailable: "+m.rankErr.Error())) + "\n"
	}

	label := "impact"
	if m.tieBreak == ranking.TieBreakInputOrder {
		label = "input order"
	}
	header := fmt.Sprintf("Tie-break: %s", label)

	return contentStyle.Render(header) + "\n" + contentStyle.Render(m.rankTable.View()) + "\n"
}

func (m model) networkContent() string {
	names := make(map[string]string)
	for _, c := range m.analysis.CentersOfGravity {
		names[c.ID] = c.Description
	}
	for _, c := range m.analysis.Capabilities {
		names[c.ID] = c.Capability
	}
	for _, r := range m.analysis.Requirements {
		names[r.ID] = r.Requirement
	}
	for _, v := range m.analysis.Vulnerabilities {
		names[v.ID] = v.Vulnerability
	}

	var b strings.Builder
	b.WriteString("Top nodes by degree centrality\n\n")
	for _, n := range m.graph.TopNodes {
		name := names[n.NodeID]
		if name == "" {
			name = n.NodeID
		}
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		b.WriteString(fmt.Sprintf("%2d. %-50s degree %d\n", n.Rank, name, n.Degree))
	}
	if len(m.graph.TopNodes) == 0 {
		b.WriteString("No edges derived (empty or fully orphaned document)\n")
	}
	return contentStyle.Render(b.String()) + "\n"
}

func loadOrTemplate(path string) (*cog.COGAnalysis, error) {
	if path == "" {
		return templates.Instantiate("adversary-cyber")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}
	var a cog.COGAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &a, nil
}

func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	a, err := loadOrTemplate(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cog-tui: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "cog-tui: %v\n", err)
		os.Exit(1)
	}
}
