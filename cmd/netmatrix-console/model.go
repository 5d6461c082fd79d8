package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/netmatrix/pkg/audit"
	"github.com/dd0wney/netmatrix/pkg/command"
)

type view int

const (
	consoleView view = iota
	networkView
	journalView
	viewCount
)

var viewNames = []string{"Console", "Network", "Journal"}

// maxScrollback is the number of output lines kept on screen.
const maxScrollback = 200

type entry struct {
	input  string
	output string
	failed bool
}

type model struct {
	dispatcher *command.Dispatcher
	journal    *audit.Journal

	currentView view
	input       textinput.Model
	journalTbl  table.Model
	help        help.Model
	keys        keyMap

	entries  []entry
	recalled int
	width    int
	height   int
}

func newModel(d *command.Dispatcher, journal *audit.Journal) model {
	ti := textinput.New()
	ti.Placeholder = "spawn_host ALPHA 3"
	ti.Prompt = "netmatrix> "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	columns := []table.Column{
		{Title: "Time", Width: 10},
		{Title: "Action", Width: 14},
		{Title: "Resource", Width: 16},
		{Title: "Status", Width: 8},
		{Title: "Error", Width: 40},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FF41")).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(s)

	return model{
		dispatcher: d,
		journal:    journal,
		input:      ti,
		journalTbl: t,
		help:       help.New(),
		keys:       keys,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Tab):
			m.switchView((m.currentView + 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.switchView((m.currentView + viewCount - 1) % viewCount)
			return m, nil

		case m.currentView == consoleView && key.Matches(msg, m.keys.Enter):
			m.execute(m.input.Value())
			m.input.Reset()
			return m, nil

		case m.currentView == consoleView && key.Matches(msg, m.keys.History):
			m.recall()
			return m, nil
		}
	}

	switch m.currentView {
	case consoleView:
		m.input, cmd = m.input.Update(msg)
	case journalView:
		m.journalTbl, cmd = m.journalTbl.Update(msg)
	}
	return m, cmd
}

func (m *model) switchView(v view) {
	m.currentView = v
	if v == consoleView {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	if v == journalView {
		m.refreshJournal()
	}
}

// execute runs one line. "clear" empties the scrollback instead of reaching
// the dispatcher.
func (m *model) execute(line string) {
	line = strings.TrimSpace(line)
	m.recalled = 0
	if line == "" {
		return
	}
	if line == "clear" {
		m.entries = nil
		return
	}

	out := m.dispatcher.Execute(line)
	m.entries = append(m.entries, entry{input: line, output: out, failed: isFailure(out)})
	if len(m.entries) > maxScrollback {
		m.entries = m.entries[len(m.entries)-maxScrollback:]
	}
}

// recall steps back through previously entered commands.
func (m *model) recall() {
	if m.recalled >= len(m.entries) {
		return
	}
	m.recalled++
	m.input.SetValue(m.entries[len(m.entries)-m.recalled].input)
	m.input.CursorEnd()
}

func isFailure(out string) bool {
	return strings.HasPrefix(out, "Some error occurred") ||
		strings.HasPrefix(out, "Error processing command") ||
		strings.HasPrefix(out, "Unknown command")
}

func (m *model) refreshJournal() {
	if m.journal == nil {
		return
	}
	events := m.journal.GetRecentEvents(50)
	rows := make([]table.Row, 0, len(events))
	for _, e := range events {
		rows = append(rows, table.Row{
			e.Timestamp.Format("15:04:05"),
			string(e.Action),
			e.ResourceID,
			string(e.Status),
			e.ErrorMessage,
		})
	}
	m.journalTbl.SetRows(rows)
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("NETMATRIX :: network console"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case consoleView:
		s.WriteString(contentStyle.Render(m.renderConsole()))
	case networkView:
		s.WriteString(contentStyle.Render(m.renderNetwork()))
	case journalView:
		s.WriteString(contentStyle.Render(m.renderJournal()))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m model) renderTabs() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		if view(i) == m.currentView {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderConsole() string {
	var lines []string
	for _, e := range m.entries {
		lines = append(lines, promptStyle.Render("> ")+e.input)
		style := outputStyle
		if e.failed {
			style = errorStyle
		}
		lines = append(lines, style.Render(e.output))
	}

	// Keep the prompt on screen: show only the newest lines that fit.
	if room := m.height - 12; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	lines = append(lines, "", m.input.View())
	return strings.Join(lines, "\n")
}

func (m model) renderNetwork() string {
	eng := m.dispatcher.Engine()
	stats := eng.Statistics()
	report := eng.Report()

	connectivity := "Disconnected"
	if report.Connected {
		connectivity = "Connected"
	}
	statsBox := statsBoxStyle.Render(fmt.Sprintf(
		"Hosts:        %d\nBackdoors:    %d\nUnsealed:     %d\nComponents:   %d\nConnectivity: %s\nAvg bandwidth: %.1fMbps\nAvg clearance: %.1f",
		stats.NodeCount, stats.EdgeCount, stats.UnsealedEdges, report.Components, connectivity,
		report.AvgBandwidth, report.AvgClearance,
	))

	v := eng.Vulnerabilities()
	var vb strings.Builder
	vb.WriteString("Articulation points:\n")
	if len(v.ArticulationPoints) == 0 {
		vb.WriteString("  none\n")
	}
	for _, id := range v.ArticulationPoints {
		fmt.Fprintf(&vb, "  %s\n", id)
	}
	vb.WriteString("\nBridges:\n")
	if len(v.Bridges) == 0 {
		vb.WriteString("  none")
	}
	for i, b := range v.Bridges {
		if i > 0 {
			vb.WriteString("\n")
		}
		fmt.Fprintf(&vb, "  %s <-> %s", b[0], b[1])
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, statsBox, statsBoxStyle.Render(vb.String()))
}

func (m model) renderJournal() string {
	if m.journal == nil {
		return outputStyle.Render("Audit journal is disabled.")
	}
	return fmt.Sprintf("%s\n%d events recorded", m.journalTbl.View(), m.journal.Recorded())
}
