package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/GridCalc/internal/binding"
	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
)

// Tabs in display order.
const (
	tabOptions = iota
	tabBlocks
	tabThrusters
	tabResults
	tabCount
)

var tabNames = [tabCount]string{"Options", "Blocks", "Thrusters", "Results"}

var groupTitles = map[data.Group]string{
	data.GroupContainers:      "Containers",
	data.GroupCockpits:        "Cockpits",
	data.GroupHydrogenEngines: "Hydrogen Engines",
	data.GroupReactors:        "Reactors",
	data.GroupBatteries:       "Batteries",
	data.GroupGenerators:      "O2/H2 Generators",
	data.GroupHydrogenTanks:   "Hydrogen Tanks",
	data.GroupJumpDrives:      "Jump Drives",
}

// row is one line in a tab. Exactly one of field, cells, or sink is set
// unless the row is a section header.
type row struct {
	label  string
	unit   string
	header bool
	field  *inputField
	cells  []*inputField
	sink   *valueSink
}

func (r row) editable() bool { return r.field != nil || len(r.cells) > 0 }

// prompt states for the shared text input.
const (
	promptNone = iota
	promptEdit
	promptOpen
	promptSaveAs
)

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	cursorStyle      = lipgloss.NewStyle().Reverse(true)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model contains the TUI state. All document state lives in the form; the
// model only holds cursors and the edit prompt.
type Model struct {
	form *binding.Form

	tab    int
	rows   [tabCount][]row
	cursor [tabCount]int
	col    int // thruster column

	prompt int
	input  textinput.Model
	status string

	termHeight int
}

// New builds the model and binds every cell onto the form.
func New(form *binding.Form) Model {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.CharLimit = 128
	ti.Prompt = ""

	m := Model{
		form:   form,
		input:  ti,
		status: "tab/shift+tab switch tabs, j/k move, enter edit, o open, s save, n new, q quit",
	}
	m.buildOptionRows()
	m.buildBlockRows()
	m.buildThrusterRows()
	m.buildResultRows()

	// Populate all cells and outputs from the initial state.
	form.Batch(func(*grid.Calculator) {})

	for t := range m.rows {
		m.cursor[t] = m.firstEditable(t)
	}
	return m
}

func (m *Model) buildOptionRows() {
	for _, spec := range grid.Scalars {
		f := &inputField{}
		m.form.BindScalar(spec, f)
		m.rows[tabOptions] = append(m.rows[tabOptions], row{label: spec.Label, unit: spec.Unit, field: f})
	}
}

func (m *Model) buildBlockRows() {
	for _, g := range data.UndirectedGroups {
		m.rows[tabBlocks] = append(m.rows[tabBlocks], row{label: groupTitles[g], header: true})
		small, large := m.form.Data().SmallAndLarge(g)
		for _, b := range append(small, large...) {
			f := &inputField{}
			m.form.BindCount(g, b.ID, f)
			m.rows[tabBlocks] = append(m.rows[tabBlocks], row{
				label: fmt.Sprintf("%s (%s)", b.Name, b.Size),
				field: f,
			})
		}
	}
}

func (m *Model) buildThrusterRows() {
	small, large := m.form.Data().SmallAndLarge(data.GroupThrusters)
	for _, b := range append(small, large...) {
		cells := make([]*inputField, len(data.Directions))
		for i, dir := range data.Directions {
			cells[i] = &inputField{}
			m.form.BindThruster(dir, b.ID, cells[i])
		}
		m.rows[tabThrusters] = append(m.rows[tabThrusters], row{
			label: fmt.Sprintf("%s (%s)", b.Name, b.Size),
			cells: cells,
		})
	}
}

func (m *Model) buildResultRows() {
	var section string
	for _, spec := range grid.Outputs {
		if s := strings.SplitN(spec.Key, ".", 2)[0]; s != section {
			section = s
			m.rows[tabResults] = append(m.rows[tabResults], row{label: strings.ToUpper(section), header: true})
		}
		sink := &valueSink{}
		m.form.BindOutput(spec.Key, sink)
		m.rows[tabResults] = append(m.rows[tabResults], row{label: spec.Label, unit: spec.Unit, sink: sink})
	}
}

func (m *Model) firstEditable(tab int) int {
	for i, r := range m.rows[tab] {
		if !r.header {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termHeight = msg.Height
	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.tab = (m.tab + 1) % tabCount
		case "shift+tab":
			m.tab = (m.tab + tabCount - 1) % tabCount
		case "1", "2", "3", "4":
			m.tab = int(msg.String()[0] - '1')
		case "j", "down":
			m.moveCursor(1)
		case "k", "up":
			m.moveCursor(-1)
		case "h", "left":
			if m.tab == tabThrusters && m.col > 0 {
				m.col--
			}
		case "l", "right":
			if m.tab == tabThrusters && m.col < len(data.Directions)-1 {
				m.col++
			}
		case "enter":
			if f := m.currentField(); f != nil {
				m.prompt = promptEdit
				m.input.SetValue(f.Text())
				m.input.CursorEnd()
				m.input.Focus()
				cmds = append(cmds, textinput.Blink)
			}
		case "n":
			m.form.Reset()
			m.status = "New grid"
		case "o":
			m.enterPathPrompt(promptOpen, "path to open", &cmds)
		case "s":
			prompted, err := m.form.SaveCurrent()
			switch {
			case err != nil:
				m.status = err.Error()
			case prompted:
				m.enterPathPrompt(promptSaveAs, "path to save", &cmds)
			default:
				m.status = "Saved " + m.form.CurrentFile()
			}
		case "S":
			m.enterPathPrompt(promptSaveAs, "path to save", &cmds)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) enterPathPrompt(kind int, placeholder string, cmds *[]tea.Cmd) {
	m.prompt = kind
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
	*cmds = append(*cmds, textinput.Blink)
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		switch m.prompt {
		case promptEdit:
			if f := m.currentField(); f != nil {
				f.SetText(value)
				m.status = "Updated"
			}
		case promptOpen:
			if value != "" {
				if err := m.form.Load(value); err != nil {
					m.status = err.Error()
				} else {
					m.status = "Loaded " + value
				}
			}
		case promptSaveAs:
			if value != "" {
				if err := m.form.Save(value); err != nil {
					m.status = err.Error()
				} else {
					m.status = "Saved " + value
				}
			}
		}
		m.closePrompt()
		return m, nil
	case "esc":
		m.closePrompt()
		m.status = "Cancelled"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Reset()
	m.input.Blur()
}

// moveCursor advances the cursor over editable and result rows, skipping
// section headers.
func (m *Model) moveCursor(delta int) {
	rows := m.rows[m.tab]
	i := m.cursor[m.tab]
	for {
		i += delta
		if i < 0 || i >= len(rows) {
			return
		}
		if !rows[i].header {
			m.cursor[m.tab] = i
			return
		}
	}
}

// currentField returns the editable cell under the cursor, nil on the
// results tab.
func (m *Model) currentField() *inputField {
	rows := m.rows[m.tab]
	if len(rows) == 0 {
		return nil
	}
	r := rows[m.cursor[m.tab]]
	switch {
	case r.field != nil:
		return r.field
	case len(r.cells) > 0:
		return r.cells[m.col]
	default:
		return nil
	}
}

// View renders the tab bar, the visible slice of the current tab, the edit
// prompt when open, and the status line.
func (m Model) View() string {
	var b strings.Builder

	var tabs []string
	for i, name := range tabNames {
		if i == m.tab {
			tabs = append(tabs, tabActiveStyle.Render(name))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(name))
		}
	}
	b.WriteString(strings.Join(tabs, "  |  "))
	b.WriteString("\n\n")

	if m.tab == tabThrusters {
		b.WriteString(m.renderThrusterHeader())
	}

	rows := m.rows[m.tab]
	start, end := m.visibleRange(len(rows))
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.cursor[m.tab]))
		b.WriteString("\n")
	}

	if m.prompt != promptNone {
		label := map[int]string{promptEdit: "Edit", promptOpen: "Open", promptSaveAs: "Save as"}[m.prompt]
		b.WriteString("\n" + label + ": " + m.input.View() + "\n")
	}

	file := m.form.CurrentFile()
	if file == "" {
		file = "(unsaved)"
	}
	b.WriteString("\n" + statusStyle.Render(fmt.Sprintf("%s | %s", file, m.status)))
	return b.String()
}

// visibleRange windows the row list around the cursor when the terminal is
// too short to show everything.
func (m Model) visibleRange(total int) (int, int) {
	limit := m.termHeight - 8
	if limit <= 0 {
		limit = 30
	}
	if total <= limit {
		return 0, total
	}
	start := m.cursor[m.tab] - limit/2
	if start < 0 {
		start = 0
	}
	end := start + limit
	if end > total {
		end = total
		start = end - limit
	}
	return start, end
}

func (m Model) renderThrusterHeader() string {
	cells := make([]string, 0, len(data.Directions)+1)
	cells = append(cells, fmt.Sprintf("%-34s", ""))
	for _, dir := range data.Directions {
		cells = append(cells, fmt.Sprintf("%8s", dir.String()))
	}
	return headerStyle.Render(strings.Join(cells, " ")) + "\n"
}

func (m Model) renderRow(r row, selected bool) string {
	if r.header {
		return headerStyle.Render(r.label)
	}

	switch {
	case r.field != nil:
		value := r.field.Text()
		if value == "" {
			value = "-"
		}
		line := fmt.Sprintf("%-34s %10s %-5s", r.label, value, r.unit)
		if selected {
			return cursorStyle.Render(line)
		}
		return line
	case len(r.cells) > 0:
		cells := make([]string, 0, len(r.cells)+1)
		cells = append(cells, fmt.Sprintf("%-34s", r.label))
		for i, f := range r.cells {
			value := f.Text()
			if value == "" {
				value = "-"
			}
			cell := fmt.Sprintf("%8s", value)
			if selected && i == m.col {
				cell = cursorStyle.Render(cell)
			}
			cells = append(cells, cell)
		}
		return strings.Join(cells, " ")
	default:
		line := fmt.Sprintf("%-40s %14s %-5s", r.label, r.sink.text, r.unit)
		if selected {
			return cursorStyle.Render(line)
		}
		return line
	}
}

// Run starts the program over the given form.
func Run(form *binding.Form) error {
	p := tea.NewProgram(New(form), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
