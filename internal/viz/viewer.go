package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadpig70/PAT-System/internal/sim"
	"github.com/sadpig70/PAT-System/internal/stats"
)

const (
	minBins = 4
	maxBins = 60
	binStep = 2
)

// Viewer is a bubbletea model that pages through the columns of a table,
// showing statistics and a histogram for the selected one.
type Viewer struct {
	table         *sim.Table
	columns       []sim.Column
	cursor        int
	bins          int
	width, height int
}

func NewViewer(t *sim.Table) Viewer {
	return Viewer{
		table:   t,
		columns: sim.Columns(),
		bins:    DefaultBins,
		width:   80,
		height:  24,
	}
}

// Selected returns the column currently shown.
func (v Viewer) Selected() sim.Column { return v.columns[v.cursor] }

func (v Viewer) Bins() int { return v.bins }

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case "right", "l", "tab", "down", "j":
			v.cursor = (v.cursor + 1) % len(v.columns)
		case "left", "h", "shift+tab", "up", "k":
			v.cursor = (v.cursor - 1 + len(v.columns)) % len(v.columns)
		case "+", "=":
			v.bins = min(v.bins+binStep, maxBins)
		case "-", "_":
			v.bins = max(v.bins-binStep, minBins)
		}
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	}
	return v, nil
}

func (v Viewer) View() string {
	c := v.Selected()
	s := stats.Summarize(v.table.Column(c))

	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("hBN samples  %d/%d  %s", v.cursor+1, len(v.columns), c)))
	b.WriteString("\n")
	b.WriteString(Separator(v.width - 2))
	b.WriteString("\n")

	for _, kv := range []struct {
		label string
		value float64
	}{
		{"count", float64(s.Count)},
		{"mean", s.Mean},
		{"std", s.StdDev},
		{"min", s.Min},
		{"max", s.Max},
	} {
		fmt.Fprintf(&b, "%s %s  ", MetricLabel.Render(kv.label), MetricValue.Render(formatValue(kv.value)))
	}
	b.WriteString("\n\n")

	plotWidth := max(v.width-12, 20)
	plotHeight := max(v.height-10, 5)
	b.WriteString(ColumnHistogram(v.table, c, v.bins, plotWidth, plotHeight))
	b.WriteString("\n\n")
	b.WriteString(KeyHint.Render(fmt.Sprintf("←/→ column  +/- bins (%d)  q quit", v.bins)))
	return b.String()
}

// RunViewer starts the interactive viewer and blocks until it exits.
func RunViewer(t *sim.Table) error {
	_, err := tea.NewProgram(NewViewer(t), tea.WithAltScreen()).Run()
	return err
}
