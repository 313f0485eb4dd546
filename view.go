package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/trio/internal/browser"
	"github.com/LFroesch/trio/internal/classify"
	"github.com/LFroesch/trio/internal/columns"
	"github.com/LFroesch/trio/internal/listing"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)

	branchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("105")).Background(lipgloss.Color("235"))
	selectedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230"))
	normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dirStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	taggedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	markedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	modifiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	modeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("99")).Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.width < minTerminalWidth || m.height < minTerminalHeight {
		return fmt.Sprintf("Terminal too small (%dx%d)", m.width, m.height)
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	helpView := m.help.View(m.engine.Keys())

	// pane borders take two rows
	rows := m.height - uiOverhead - lipgloss.Height(helpView) - 2
	if rows < 1 {
		rows = 1
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.renderColumns(rows),
		statusBar,
		helpView,
	)
}

func (m *model) renderHeader() string {
	left := "trio - " + m.engine.Pwd()
	right := ""
	if m.git.Branch != "" {
		right = branchStyle.Render(" " + m.git.Branch)
	}

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = truncate(left, m.width-4-lipgloss.Width(right))
		gap = 1
	}
	return titleStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderColumns lays the parent, current and child panes out at 1:2:2.
func (m *model) renderColumns(rows int) string {
	cols := m.engine.Columns()
	unit := m.width / 5
	widths := [3]int{unit, 2 * unit, m.width - 3*unit}

	left := m.renderPane(cols.Left, widths[0], rows)
	middle := m.renderPane(cols.Middle, widths[1], rows)

	var right string
	if sel, ok := cols.Selected(); ok && !sel.Dir {
		right = m.renderFileInfo(sel, widths[2], rows)
	} else {
		right = m.renderPane(cols.Right, widths[2], rows)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, middle, right)
}

func (m *model) renderPane(col *columns.Column, width, rows int) string {
	inner := width - 2
	entries := col.Entries()
	cursor, hasCursor := col.Cursor()

	start, end := window(len(entries), cursor, rows)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderEntry(entries[i], inner, hasCursor && i == cursor))
	}
	if len(entries) == 0 {
		lines = append(lines, dimStyle.Render("empty"))
	}

	return paneStyle.Width(inner).Height(rows).Render(strings.Join(lines, "\n"))
}

// window returns the visible range of n rows that keeps cursor centered
// where possible.
func window(n, cursor, rows int) (int, int) {
	if n <= rows {
		return 0, n
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

func (m *model) renderEntry(entry listing.Entry, width int, selected bool) string {
	name := entry.Name()

	var flags string
	if m.engine.Marked(entry.Path) {
		flags += " " + markedStyle.Render("[x]")
	}
	if m.git.IsModified(entry.Path) {
		flags += " " + modifiedStyle.Render("[M]")
	}

	// icon, space and padding
	maxName := width - 3 - lipgloss.Width(flags)
	if maxName < 4 {
		maxName = 4
	}
	display := truncate(name, maxName)
	if display == name {
		display = highlightMatches(name, m.engine.Highlight(entry.Path))
	}

	line := classify.Icon(name, entry.Dir) + " " + display + flags
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}

	switch {
	case selected:
		return selectedStyle.Render(line)
	case entry.Tagged:
		return taggedStyle.Render(line)
	case entry.Dir:
		return dirStyle.Render(line)
	}
	return normalStyle.Render(line)
}

// renderFileInfo fills the child pane when the highlighted entry is a file.
func (m *model) renderFileInfo(entry listing.Entry, width, rows int) string {
	inner := width - 2
	lines := []string{
		truncate(entry.Name(), inner),
		dimStyle.Render(classify.Classify(entry.Path).String()),
	}
	if entry.Preview != "" {
		lines = append(lines, "", entry.Preview)
	}
	return paneStyle.Width(inner).Height(rows).Render(strings.Join(lines, "\n"))
}

func (m *model) renderStatusBar() string {
	var left string
	switch mode := m.engine.Mode().(type) {
	case browser.Command:
		left = mode.Buffer
	case browser.Input:
		left = mode.Buffer + "█"
	default:
		left = m.engine.Message()
	}

	right := m.engine.Metadata()
	if n, op := m.engine.Register(); n > 0 {
		right = fmt.Sprintf("%d to %s  %s", n, op, right)
	}
	right += " " + modeStyle.Render(m.engine.Mode().String())

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = truncate(left, m.width-4-lipgloss.Width(right))
		gap = 1
	}
	return statusStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// highlightMatches styles the runes of text at the given positions.
func highlightMatches(text string, matches []int) string {
	if len(matches) == 0 {
		return text
	}

	runes := []rune(text)
	matchMap := make(map[int]bool, len(matches))
	for _, idx := range matches {
		if idx < len(runes) {
			matchMap[idx] = true
		}
	}

	var result strings.Builder
	for i, r := range runes {
		if matchMap[i] {
			result.WriteString(highlightStyle.Render(string(r)))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// truncate shortens s to at most width cells, ending in "...".
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", max(width, 0))
	}

	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > width-3 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "..."
}
