package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tasktray-quicklaunch/internal/icon"
	"github.com/atomicstack/tasktray-quicklaunch/internal/menu"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	"github.com/atomicstack/tasktray-quicklaunch/internal/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	mainHeader   = "Shortcuts"
	subHeader    = "Manage"
	filterPrompt = "» "
	footerText   = "tab menu  shift+tab manage  ↑/↓ select  enter open  esc close  ctrl+c quit"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text already carries ANSI escapes
}

type rowKind int

const (
	rowBlank rowKind = iota
	rowTray
	rowHeader
	rowFilter
	rowEntry
	rowCommand
	rowStatus
	rowFooter
)

// row is one rendered line plus what the mouse hits there.
type row struct {
	kind rowKind
	id   string
	item menu.Item
	line styledLine
}

// View implements tea.Model.
func (m *Model) View() string {
	rows := m.layout()
	lines := make([]styledLine, len(rows))
	for i, r := range rows {
		lines[i] = r.line
	}
	return renderLines(applyWidth(lines, m.width))
}

// layout builds the rows top to bottom. Mouse hit testing uses the same
// rows, so row index equals screen line.
func (m *Model) layout() []row {
	rows := make([]row, 0, 16)
	rows = append(rows, m.trayRow())
	if m.mainOpen() {
		rows = append(rows,
			row{kind: rowHeader, line: styledLine{text: mainHeader, style: styles.Header}},
			m.filterRow(),
		)
		rows = append(rows, m.entryRows()...)
	}
	if m.subOpen() {
		rows = append(rows,
			row{kind: rowBlank},
			row{kind: rowHeader, line: styledLine{text: subHeader, style: styles.Header}},
		)
		for idx, item := range m.sub.Items {
			rows = append(rows, row{kind: rowCommand, id: item.ID, item: item, line: m.commandLine(item, idx)})
		}
	}
	if status, ok := m.statusLine(); ok {
		rows = append(rows, row{kind: rowStatus, line: status})
	}
	if m.showFooter {
		rows = append(rows,
			row{kind: rowBlank},
			row{kind: rowFooter, line: styledLine{text: footerText, style: styles.Footer}},
		)
	}
	return rows
}

func trayLabel() string {
	return fmt.Sprintf("[%s %s]", icon.TrayGlyph.Get(), state.AppName)
}

func (m *Model) trayRow() row {
	style := styles.TrayIcon
	if m.snapshot.State != presentation.Closed {
		style = styles.TrayIconActive
	}
	return row{kind: rowTray, line: styledLine{text: trayLabel(), style: style}}
}

func (m *Model) filterRow() row {
	if m.main.Filter == "" {
		return row{kind: rowFilter, line: styledLine{
			text:          filterPrompt + "(type to filter)",
			style:         styles.FilterPlaceholder,
			prefixStyle:   styles.FilterPrompt,
			highlightFrom: len([]rune(filterPrompt)),
		}}
	}
	return row{kind: rowFilter, line: styledLine{
		text:          filterPrompt + m.main.Filter,
		style:         styles.Filter,
		prefixStyle:   styles.FilterPrompt,
		highlightFrom: len([]rune(filterPrompt)),
	}}
}

func (m *Model) entryRows() []row {
	if len(m.main.Items) == 0 {
		text := "(no shortcuts)"
		if m.main.Filter != "" {
			text = fmt.Sprintf("No matches for %q", m.main.Filter)
		}
		return []row{{kind: rowBlank, line: styledLine{text: text, style: styles.Info}}}
	}
	m.syncViewport()
	visible := m.main.Visible(m.maxVisibleItems())
	rows := make([]row, 0, len(visible))
	for _, idx := range visible {
		item := m.main.Items[idx]
		entry, _ := m.entryView(item.ID)
		rows = append(rows, row{kind: rowEntry, id: item.ID, item: item, line: m.entryLine(entry, idx)})
	}
	return rows
}

func (m *Model) entryLine(entry dispatcher.EntryView, idx int) styledLine {
	const indicator = "▌"
	if entry.Editing {
		return styledLine{
			text: styles.SelectedItemIndicator.Render(indicator) + " " +
				icon.EditGlyph.Get() + " " + m.input.View(),
			raw: true,
		}
	}
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.main.Cursor {
		lineStyle = styles.SelectedItem
		indicatorStyle = styles.SelectedItemIndicator
	}
	text := indicator + " " + icon.GlyphFor(entry.Kind).Get() + " " + entry.Name
	if entry.Target != "" && entry.Target != entry.Name {
		text += "  " + entry.Target
	}
	return styledLine{
		text:          padRight(text, m.width),
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) commandLine(item menu.Item, idx int) styledLine {
	const indicator = "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	switch {
	case item.Disabled:
		lineStyle = styles.DisabledItem
	case idx == m.sub.Cursor:
		lineStyle = styles.SelectedItem
		indicatorStyle = styles.SelectedItemIndicator
	}
	return styledLine{
		text:          padRight(indicator+" "+item.Label, m.width),
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) statusLine() (styledLine, bool) {
	switch {
	case m.errMsg != "":
		return styledLine{text: "Error: " + m.errMsg, style: styles.Error}, true
	case m.backendLastErr != "":
		return styledLine{text: "Watcher: " + m.backendLastErr, style: styles.Error}, true
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}, true
	}
	return styledLine{}, false
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func padRight(text string, width int) string {
	if width <= 0 {
		return text
	}
	if pad := width - ansi.StringWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = line
		result[i].text = truncateText(line.text, width)
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText clips to width cells, escape sequences included.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
