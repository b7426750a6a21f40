package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadpig70/PAT-System/internal/sim"
)

func sampleTable(t *testing.T) *sim.Table {
	t.Helper()
	table, err := sim.New(sim.DefaultConfig()).Generate(200)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestRenderReport(t *testing.T) {
	report := sim.AgreementReport{
		{Property: sim.CrystalliteSize, SimMean: 1010, ExpMean: 1000, RelativeError: 0.01, Within2Percent: true},
		{Property: sim.Bandgap, SimMean: 5.85, ExpMean: 6.0, RelativeError: 0.025, Within2Percent: false},
	}

	out := RenderReport(report)

	for _, want := range []string{"crystallite_size", "PASS", "1.00%", "bandgap", "FAIL", "2.50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(sampleTable(t))

	if !strings.Contains(out, "200 samples") {
		t.Errorf("summary missing sample count:\n%s", out)
	}
	for _, name := range sim.ColumnNames() {
		if !strings.Contains(out, name) {
			t.Errorf("summary missing column %s", name)
		}
	}
}

func TestSparkline(t *testing.T) {
	if Sparkline(nil) != "" {
		t.Error("expected empty sparkline for no values")
	}

	out := Sparkline([]float64{0, 1, 2, 3})
	if !strings.ContainsRune(out, '▁') || !strings.ContainsRune(out, '█') {
		t.Errorf("expected lowest and highest bars, got %q", out)
	}

	flat := Sparkline([]float64{5, 5})
	if strings.Count(flat, "▁") != 2 {
		t.Errorf("expected flat sparkline, got %q", flat)
	}
}

func TestHistogramCaption(t *testing.T) {
	table := sampleTable(t)
	out := ColumnHistogram(table, sim.Temperature, 10, 40, 8)

	if !strings.Contains(out, "temperature") {
		t.Errorf("histogram missing caption:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines < 8 {
		t.Errorf("expected at least 8 plot lines, got %d", lines)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(v Viewer, msgs ...tea.Msg) (Viewer, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var m tea.Model
		m, cmd = v.Update(msg)
		v = m.(Viewer)
	}
	return v, cmd
}

func TestViewerNavigation(t *testing.T) {
	v := NewViewer(sampleTable(t))

	if v.Selected() != sim.Temperature {
		t.Fatalf("expected temperature first, got %s", v.Selected())
	}

	v, _ = update(v, key("right"), key("right"))
	if v.Selected() != sim.GrowthTime {
		t.Errorf("expected growth_time, got %s", v.Selected())
	}

	v, _ = update(v, key("left"), key("left"), key("left"))
	if v.Selected() != sim.Bandgap {
		t.Errorf("expected wrap to bandgap, got %s", v.Selected())
	}

	v, _ = update(v, key("l"))
	if v.Selected() != sim.Temperature {
		t.Errorf("expected wrap to temperature, got %s", v.Selected())
	}
}

func TestViewerBins(t *testing.T) {
	v := NewViewer(sampleTable(t))

	v, _ = update(v, key("+"))
	if v.Bins() != DefaultBins+binStep {
		t.Errorf("expected %d bins, got %d", DefaultBins+binStep, v.Bins())
	}

	for i := 0; i < 50; i++ {
		v, _ = update(v, key("-"))
	}
	if v.Bins() != minBins {
		t.Errorf("expected bins clamped to %d, got %d", minBins, v.Bins())
	}

	for i := 0; i < 50; i++ {
		v, _ = update(v, key("+"))
	}
	if v.Bins() != maxBins {
		t.Errorf("expected bins clamped to %d, got %d", maxBins, v.Bins())
	}
}

func TestViewerQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := update(NewViewer(sampleTable(t)), key(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected QuitMsg", k)
		}
	}
}

func TestViewerView(t *testing.T) {
	v, _ := update(NewViewer(sampleTable(t)), tea.WindowSizeMsg{Width: 100, Height: 30}, key("right"))
	out := v.View()

	for _, want := range []string{"pressure", "mean", "2/8"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
