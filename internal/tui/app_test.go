package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piwi3910/GridCalc/internal/binding"
	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
)

func testModel(t *testing.T) Model {
	t.Helper()
	d, err := data.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return New(binding.NewForm(d, grid.NewCalculator()))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func apply(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// typeText feeds one rune message per character, the way a terminal does.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func findRow(t *testing.T, m Model, tab int, label string) int {
	t.Helper()
	for i, r := range m.rows[tab] {
		if strings.Contains(r.label, label) {
			return i
		}
	}
	t.Fatalf("no row on tab %d with label containing %q", tab, label)
	return -1
}

func TestNewModelPopulatesScalarFields(t *testing.T) {
	m := testModel(t)

	if len(m.rows[tabOptions]) != len(grid.Scalars) {
		t.Fatalf("expected %d option rows, got %d", len(grid.Scalars), len(m.rows[tabOptions]))
	}
	for i, r := range m.rows[tabOptions] {
		if r.field.Text() == "" {
			t.Errorf("option row %d (%s) not populated", i, r.label)
		}
	}
}

func TestTabSwitching(t *testing.T) {
	m := testModel(t)

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != tabBlocks {
		t.Errorf("expected Blocks tab after tab key, got %d", m.tab)
	}
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != tabOptions {
		t.Errorf("expected Options tab after shift+tab, got %d", m.tab)
	}
	m = apply(t, m, keyRunes("4"))
	if m.tab != tabResults {
		t.Errorf("expected Results tab after 4, got %d", m.tab)
	}
}

func TestCursorSkipsSectionHeaders(t *testing.T) {
	m := testModel(t)
	m = apply(t, m, keyRunes("2"))

	if m.rows[tabBlocks][m.cursor[tabBlocks]].header {
		t.Fatal("cursor starts on a header row")
	}
	for i := 0; i < len(m.rows[tabBlocks]); i++ {
		m = apply(t, m, keyRunes("j"))
		if m.rows[tabBlocks][m.cursor[tabBlocks]].header {
			t.Fatalf("cursor landed on header row %d", m.cursor[tabBlocks])
		}
	}
}

func TestEditCommitReachesCalculator(t *testing.T) {
	m := testModel(t)
	b, ok := m.form.Data().Block("container-large-lg")
	if !ok {
		t.Fatal("missing catalog block")
	}

	m = apply(t, m, keyRunes("2"))
	m.cursor[tabBlocks] = findRow(t, m, tabBlocks, b.Name)
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompt != promptEdit {
		t.Fatal("enter should open the edit prompt")
	}
	m = typeText(t, m, "3")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.form.Calculator().Count(data.GroupContainers, "container-large-lg"); got != 3 {
		t.Errorf("expected count 3 after commit, got %d", got)
	}
	if m.prompt != promptNone {
		t.Error("prompt should close after commit")
	}
}

func TestEditEscCancels(t *testing.T) {
	m := testModel(t)
	m = apply(t, m, keyRunes("2"))
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "9")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.prompt != promptNone {
		t.Error("esc should close the prompt")
	}
	r := m.rows[tabBlocks][m.cursor[tabBlocks]]
	if r.field.Text() != "" {
		t.Errorf("cancelled edit must not touch the field, got %q", r.field.Text())
	}
}

func TestThrusterColumnEdit(t *testing.T) {
	m := testModel(t)
	m = apply(t, m, keyRunes("3"))

	// Directions run Up, Down, Front, ... so two steps right is Front.
	m = apply(t, m, keyRunes("l"), keyRunes("l"))
	row := m.rows[tabThrusters][m.cursor[tabThrusters]]
	id := row.label

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "2")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if row.cells[2].Text() != "2" {
		t.Errorf("edited cell for %s should read 2, got %q", id, row.cells[2].Text())
	}
	for i, cell := range row.cells {
		if i != 2 && cell.Text() != "" {
			t.Errorf("direction %s should stay blank, got %q", data.Directions[i], cell.Text())
		}
	}

	var total uint64
	for _, n := range m.form.Calculator().Thrusters[data.Front] {
		total += n
	}
	if total != 2 {
		t.Errorf("expected 2 thrusters facing front in the model, got %d", total)
	}
}

func TestResultRowsTrackEdits(t *testing.T) {
	m := testModel(t)

	spec, ok := grid.OutputByKey("volume.any")
	if !ok {
		t.Fatal("missing output key")
	}
	i := findRow(t, m, tabResults, spec.Label)
	before := m.rows[tabResults][i].sink.text

	m = apply(t, m, keyRunes("2"))
	m.cursor[tabBlocks] = findRow(t, m, tabBlocks, "Large Cargo Container")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "4")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	after := m.rows[tabResults][i].sink.text
	if after == before {
		t.Errorf("volume output should change after adding containers, still %q", after)
	}
}

func TestNewGridResetsEverything(t *testing.T) {
	m := testModel(t)
	m = apply(t, m, keyRunes("2"))
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "5")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = apply(t, m, keyRunes("n"))
	r := m.rows[tabBlocks][m.cursor[tabBlocks]]
	if r.field.Text() != "" {
		t.Errorf("count field should be blank after new grid, got %q", r.field.Text())
	}
	if m.form.CurrentFile() != "" {
		t.Errorf("new grid should forget the file path, got %q", m.form.CurrentFile())
	}
}

func TestQuitKey(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestViewRendersCurrentTab(t *testing.T) {
	m := testModel(t)
	m.termHeight = 40

	view := m.View()
	if !strings.Contains(view, "Options") {
		t.Error("view should contain the tab bar")
	}
	if !strings.Contains(view, "(unsaved)") {
		t.Error("view should show the unsaved marker in the status line")
	}

	m = apply(t, m, keyRunes("4"))
	spec := grid.Outputs[0]
	if !strings.Contains(m.View(), spec.Label) {
		t.Errorf("results view should contain %q", spec.Label)
	}
}
