package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mindsgn-studio/torrentmeta/metainfo"
)

// View types
type viewType int

const (
	viewFiles viewType = iota
	viewTrackers
	viewPieces
)

// Model shows one parsed torrent: a header with the top-level fields and a
// table that can be switched between files, trackers and piece hashes.
type Model struct {
	metaInfo *metainfo.MetaInfo

	currentView viewType

	// Components
	filesTable    table.Model
	trackersTable table.Model
	piecesTable   table.Model

	// Window size
	width  int
	height int

	// Styles
	styles Styles
}

// Styles contains all lipgloss styles
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Table    lipgloss.Style
	Help     lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")),
		Label: lipgloss.NewStyle().
			Bold(true).
			Width(14),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1),
		TabOn: lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),
		Table: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1),
	}
}

// NewModel creates a viewer for mi.
func NewModel(mi *metainfo.MetaInfo) Model {
	return Model{
		metaInfo:      mi,
		currentView:   viewFiles,
		filesTable:    newTable([]table.Column{{Title: "Path", Width: 48}, {Title: "Size", Width: 12}, {Title: "MD5", Width: 34}}, fileRows(mi)),
		trackersTable: newTable([]table.Column{{Title: "Tier", Width: 6}, {Title: "URL", Width: 70}}, trackerRows(mi)),
		piecesTable:   newTable([]table.Column{{Title: "#", Width: 8}, {Title: "SHA-1", Width: 42}}, pieceRows(mi)),
		styles:        defaultStyles(),
	}
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	// Style the table
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7D56F4")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func fileRows(mi *metainfo.MetaInfo) []table.Row {
	switch info := mi.Info.(type) {
	case *metainfo.SingleFileInfo:
		return []table.Row{{info.Name, FormatBytes(info.Length), optional(info.MD5Sum)}}
	case *metainfo.MultipleFileInfo:
		rows := make([]table.Row, len(info.Files))
		for i, f := range info.Files {
			rows[i] = table.Row{
				strings.Join(append([]string{info.Name}, f.Path...), "/"),
				FormatBytes(f.Length),
				optional(f.MD5Sum),
			}
		}
		return rows
	}
	return nil
}

// trackerRows lists the announce-list tiers. The announce URL gets a "-" row
// of its own unless some tier already lists it.
func trackerRows(mi *metainfo.MetaInfo) []table.Row {
	var rows []table.Row
	listed := false
	for i, tier := range mi.AnnounceList {
		for _, url := range tier {
			listed = listed || url == mi.Announce
			rows = append(rows, table.Row{strconv.Itoa(i), url})
		}
	}
	if !listed {
		rows = append([]table.Row{{"-", mi.Announce}}, rows...)
	}
	return rows
}

func pieceRows(mi *metainfo.MetaInfo) []table.Row {
	pieces := mi.Info.Common().Pieces
	rows := make([]table.Row, len(pieces))
	for i, p := range pieces {
		rows[i] = table.Row{strconv.Itoa(i), fmt.Sprintf("%x", p)}
	}
	return rows
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 16; h > 3 {
			m.filesTable.SetHeight(h)
			m.trackersTable.SetHeight(h)
			m.piecesTable.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.currentView = (m.currentView + 1) % 3
			return m, nil
		case "f":
			m.currentView = viewFiles
			return m, nil
		case "t":
			m.currentView = viewTrackers
			return m, nil
		case "p":
			m.currentView = viewPieces
			return m, nil
		}
	}

	// Update active component
	var cmd tea.Cmd
	switch m.currentView {
	case viewFiles:
		m.filesTable, cmd = m.filesTable.Update(msg)
	case viewTrackers:
		m.trackersTable, cmd = m.trackersTable.Update(msg)
	case viewPieces:
		m.piecesTable, cmd = m.piecesTable.Update(msg)
	}
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	var body string
	switch m.currentView {
	case viewFiles:
		body = m.filesTable.View()
	case viewTrackers:
		body = m.trackersTable.View()
	case viewPieces:
		body = m.piecesTable.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.Title.Render(m.metaInfo.Info.DisplayName()),
		m.renderHeader(),
		"",
		m.renderTabs(),
		m.styles.Table.Render(body),
		m.styles.Help.Render("[tab] Next view  [f] Files  [t] Trackers  [p] Pieces  [q] Quit"),
	)
}

func (m Model) renderHeader() string {
	mi := m.metaInfo
	common := mi.Info.Common()

	layout := "single file"
	if multi, ok := mi.Info.(*metainfo.MultipleFileInfo); ok {
		layout = fmt.Sprintf("%d files", len(multi.Files))
	}
	created := "-"
	if ts, ok := mi.CreationTime(); ok {
		created = ts.Format("2006-01-02 15:04:05 MST")
	}

	lines := [][2]string{
		{"Announce", mi.Announce},
		{"Layout", layout},
		{"Total size", FormatBytes(mi.TotalLength())},
		{"Pieces", fmt.Sprintf("%d x %s", mi.NumPieces(), FormatBytes(common.PieceLength))},
		{"Private", strconv.FormatBool(common.Private)},
		{"Created", created},
		{"Created by", optional(mi.CreatedBy)},
		{"Comment", optional(mi.Comment)},
		{"Encoding", optional(mi.Encoding)},
	}
	rendered := make([]string, len(lines))
	for i, l := range lines {
		rendered[i] = lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Label.Render(l[0]), m.styles.Subtitle.Render(l[1]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func (m Model) renderTabs() string {
	names := []string{"Files", "Trackers", "Pieces"}
	tabs := make([]string, len(names))
	for i, name := range names {
		style := m.styles.Tab
		if viewType(i) == m.currentView {
			style = m.styles.TabOn
		}
		tabs[i] = style.Render(name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// FormatBytes renders a byte count with binary units.
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
