package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	HeaderStyle lipgloss.Style
	CellStyle   lipgloss.Style
}

// DefaultTableStyle returns the default table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.Color("240"),
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		CellStyle:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// Table is a styled table.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle

	// cellStyle overrides the style of individual body cells.
	cellStyle func(row, col int, value string) (lipgloss.Style, bool)
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		style:   DefaultTableStyle(),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// SetStyle sets the table style.
func (t *Table) SetStyle(style TableStyle) *Table {
	t.style = style
	return t
}

// String renders the table as a string.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle.Padding(0, 1)
			}
			if t.cellStyle != nil && row >= 0 && row < len(t.rows) && col < len(t.rows[row]) {
				if s, ok := t.cellStyle(row, col, t.rows[row][col]); ok {
					return s.Padding(0, 1)
				}
			}
			return t.style.CellStyle
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}

// ReleaseRow is one line of a release status table.
type ReleaseRow struct {
	Application string
	Current     string
	Latest      string
	Status      string
}

// RenderReleaseTable renders release rows with color-coded status.
func RenderReleaseTable(rows []ReleaseRow) string {
	t := NewTable("APPLICATION", "CURRENT", "LATEST", "STATUS")
	for _, r := range rows {
		latest := r.Latest
		if latest == "" {
			latest = "-"
		}
		t.Row(r.Application, r.Current, latest, r.Status)
	}
	t.cellStyle = func(_, col int, value string) (lipgloss.Style, bool) {
		if col == 3 {
			return StatusStyle(value), true
		}
		return lipgloss.Style{}, false
	}
	return t.String()
}
