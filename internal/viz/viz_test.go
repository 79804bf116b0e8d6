package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gasbox/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)
	c.Set(-1, 3)
	c.Set(8, 0)

	if !c.IsSet(0, 0) || !c.IsSet(7, 7) {
		t.Error("expected dots to be set")
	}
	if c.IsSet(1, 0) {
		t.Error("unexpected dot at (1,0)")
	}
	if c.Grid[0][0] != blank|0x1 {
		t.Errorf("cell (0,0) = %U", c.Grid[0][0])
	}
	if c.Grid[1][3] != blank|0x80 {
		t.Errorf("cell (1,3) = %U", c.Grid[1][3])
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("clear left a dot")
	}
	if got := strings.Count(c.String(), "\n"); got != 1 {
		t.Errorf("expected 1 newline, got %d", got)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)
	for i := 0; i < 20; i++ {
		if !c.IsSet(i, i) {
			t.Fatalf("diagonal dot (%d,%d) not set", i, i)
		}
	}
}

func TestCameraProjectCentre(t *testing.T) {
	cam := NewCamera()
	x, y, _, ok := cam.Project(r3.Vec{}, 120, 96)
	if !ok || x != 60 || y != 48 {
		t.Errorf("origin projected to (%d,%d,%v)", x, y, ok)
	}
}

func TestChamberFitsCanvas(t *testing.T) {
	cam := NewCamera()
	c := NewCanvas(width, height)
	for _, e := range ChamberWireframe().Edges {
		for _, p := range []r3.Vec{e.Start, e.End} {
			if _, _, _, ok := cam.Project(p, c.PixelWidth(), c.PixelHeight()); !ok {
				t.Fatalf("chamber corner %v off screen", p)
			}
		}
	}
}

func TestToChamber(t *testing.T) {
	got := ToChamber(r3.Vec{X: 0, Y: 2, Z: 4}, 4)
	want := r3.Vec{X: -0.5, Y: 0, Z: 0.5}
	if got != want {
		t.Errorf("ToChamber = %v, want %v", got, want)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if got != "▁▂▃▄▅▆▇█" {
		t.Errorf("sparkline = %q", got)
	}
	if n := len([]rune(Sparkline(make([]float64, 100), 10))); n != 10 {
		t.Errorf("expected 10 runes, got %d", n)
	}
}

func TestNextTheme(t *testing.T) {
	th := Themes[len(Themes)-1]
	if NextTheme(th).Name != Themes[0].Name {
		t.Error("theme cycle should wrap")
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to first")
	}
}

func testModel(t *testing.T, maxSteps int) Model {
	t.Helper()
	p := physics.DefaultParams()
	p.ParticleCount = 27
	m, err := NewModel(Options{Params: p, Seed: 42, Dt: 2e-9, StepsPerTick: 3, MaxSteps: maxSteps})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func TestModelTickAndKeys(t *testing.T) {
	m := testModel(t, 0)

	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule another tick")
	}
	m = next.(Model)
	if m.sim.Gas().Steps() != 3 {
		t.Errorf("expected 3 steps after one tick, got %d", m.sim.Gas().Steps())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	if m.running {
		t.Error("space should pause")
	}
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if m.sim.Gas().Steps() != 3 {
		t.Error("paused model should not step on tick")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'.'}})
	m = next.(Model)
	if m.sim.Gas().Steps() != 4 {
		t.Errorf("single step should advance one step, got %d", m.sim.Gas().Steps())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if m.sim.Gas().Steps() != 0 || !m.running {
		t.Error("reset should rebuild the gas and resume")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should return quit command")
	}
}

func TestModelMaxSteps(t *testing.T) {
	m := testModel(t, 5)
	for i := 0; i < 4; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	if got := m.sim.Gas().Steps(); got != 5 {
		t.Errorf("expected to stop at 5 steps, got %d", got)
	}
	if m.running {
		t.Error("model should pause at MaxSteps")
	}
}

func TestModelView(t *testing.T) {
	m := testModel(t, 0)
	next, _ := m.Update(TickMsg{})
	view := next.(Model).View()

	for _, want := range []string{"GAS", "RUNNING", "Temperature", "Particles"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
