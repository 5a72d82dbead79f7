package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qsim/quantum"
)

// maxTUIQubits keeps the basis listing readable.
const maxTUIQubits = 8

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusState focus = iota
	focusScript
	focusMenu
	focusSelectTarget
	focusInputParam
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Undo   key.Binding
	Reset  key.Binding
	Script key.Binding
	Grow   key.Binding
	Shrink key.Binding
	Save   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "qubit up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "qubit down")),
		Add:    key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "apply gate")),
		Undo:   key.NewBinding(key.WithKeys("u", "backspace"), key.WithHelp("u", "undo")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Script: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "edit script")),
		Grow:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "qubits")),
		Shrink: key.NewBinding(key.WithKeys("-")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Undo, k.Reset, k.Script, k.Grow, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Grow},
		{k.Add, k.Undo, k.Reset},
		{k.Script, k.Save, k.Quit},
	}
}

// Model is the interactive stepper. The program is the source of truth:
// the register is always initial with every accepted step replayed on it.
type Model struct {
	program  *Program
	initial  *quantum.Register
	register *quantum.Register
	opts     renderOptions
	savePath string

	cursorQubit int
	width       int
	height      int
	editor      textarea.Model
	keys        keyMap
	help        help.Model
	focus       focus
	lastScript  string
	statusMsg   string
	statusErr   bool

	// Menu state
	menuCat  int
	menuItem int

	// Pending gate: chosen item, typed angle, and target for two-qubit gates
	pending     menuItem
	paramInput  string
	params      []float64
	targetQubit int
}

// newModel builds the stepper for p. Steps of p that are rejected are
// reported in the status line and skipped.
func newModel(p *Program, opts renderOptions, savePath string) (Model, error) {
	if err := checkTUISize(p); err != nil {
		return Model{}, err
	}
	initial, err := p.NewRegister()
	if err != nil {
		return Model{}, err
	}

	ta := textarea.New()
	ta.Placeholder = "Edit the step script here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true

	m := Model{
		program:  p,
		initial:  initial,
		opts:     opts,
		savePath: savePath,
		editor:   ta,
		keys:     newKeyMap(),
		help:     help.New(),
		focus:    focusState,
	}
	m.replay()
	return m, nil
}

// checkTUISize runs before any register is allocated.
func checkTUISize(p *Program) error {
	if p.NumQubits > maxTUIQubits {
		return fmt.Errorf("%d qubits: interactive mode supports at most %d", p.NumQubits, maxTUIQubits)
	}
	return nil
}

// replay rebuilds the register from the initial state and the program.
func (m *Model) replay() {
	m.register = m.initial.Clone()
	if err := m.program.Run(m.register, nil); err != nil {
		m.setError(err)
	}
	m.syncEditor()
}

func (m *Model) syncEditor() {
	script := m.program.String()
	m.editor.SetValue(script)
	m.lastScript = script
}

func (m *Model) setError(err error) {
	m.statusMsg = strings.ReplaceAll(err.Error(), "\n", "; ")
	m.statusErr = true
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
}

// applyStep applies s and records it in the program. A rejected step
// leaves both untouched.
func (m *Model) applyStep(s Step) bool {
	if err := s.Apply(m.register); err != nil {
		m.setError(err)
		return false
	}
	m.program.Steps = append(m.program.Steps, s)
	m.syncEditor()
	m.setStatus("Applied " + s.Symbol() + "  " + s.String())
	return true
}

// commitPending turns the pending menu item into a step on the cursor qubit.
func (m *Model) commitPending() {
	qubits := []int{m.cursorQubit}
	if m.pending.needsTarget {
		qubits = append(qubits, m.targetQubit)
	}
	s, err := NewStep(m.pending.script, m.params, qubits...)
	if err != nil {
		m.setError(err)
	} else {
		m.applyStep(s)
	}
	m.pending = menuItem{}
	m.params = nil
	m.paramInput = ""
	m.focus = focusState
}

func (m *Model) undo() {
	if len(m.program.Steps) == 0 {
		m.setStatus("Nothing to undo")
		return
	}
	last := m.program.Steps[len(m.program.Steps)-1]
	m.program.Steps = m.program.Steps[:len(m.program.Steps)-1]
	m.replay()
	m.setStatus("Undid " + last.String())
}

func (m *Model) reset() {
	m.program.Steps = nil
	m.replay()
	m.setStatus("Reset to the initial register")
}

// resize changes the qubit count. The register restarts from the ground
// state and steps touching removed qubits are dropped.
func (m *Model) resize(n int) {
	if n < 1 || n > maxTUIQubits {
		return
	}
	initial, err := quantum.NewGroundState(n)
	if err != nil {
		m.setError(err)
		return
	}
	kept := m.program.Steps[:0]
	for _, s := range m.program.Steps {
		if maxQubit(s) < n {
			kept = append(kept, s)
		}
	}
	m.program.Steps = kept
	m.program.NumQubits = n
	m.program.Init = nil
	m.initial = initial
	m.cursorQubit = min(m.cursorQubit, n-1)
	m.replay()
}

func maxQubit(s Step) int {
	hi := -1
	for _, q := range s.Qubits {
		hi = max(hi, q)
	}
	return hi
}

// loadScript re-parses the editor contents. On a parse error the previous
// program is kept.
func (m *Model) loadScript() {
	src := m.editor.Value()
	if src == m.lastScript {
		return
	}
	p, err := ParseProgram(src)
	if err != nil {
		m.setError(err)
		return
	}
	if err := checkTUISize(p); err != nil {
		m.setError(err)
		return
	}
	initial, err := p.NewRegister()
	if err != nil {
		m.setError(err)
		return
	}
	m.program = p
	m.initial = initial
	m.cursorQubit = min(m.cursorQubit, p.NumQubits-1)
	m.setStatus("Script loaded")
	m.replay()
}

func (m *Model) save() {
	if err := os.WriteFile(m.savePath, []byte(m.program.String()), 0o644); err != nil {
		m.setError(fmt.Errorf("save: %w", err))
		return
	}
	m.setStatus("Saved " + m.savePath)
}

// firstTarget picks the qubit nearest the cursor that is not the cursor.
func (m *Model) firstTarget() int {
	if m.cursorQubit+1 < m.register.NumQubits() {
		return m.cursorQubit + 1
	}
	return m.cursorQubit - 1
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - panelGapW
		m.editor.SetWidth(max(msg.Width/3-6, 20))
		m.editor.SetHeight(max(msg.Height-controlsH-8, minEditorH))

	case tea.KeyMsg:
		keyStr := msg.String()
		if keyStr == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusState:
			m.updateState(msg)
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}

		case focusMenu:
			m.updateMenu(keyStr)

		case focusInputParam:
			m.updateParam(keyStr)

		case focusSelectTarget:
			m.updateTarget(keyStr)

		case focusScript:
			if keyStr == "tab" || keyStr == "esc" {
				m.focus = focusState
				m.editor.Blur()
				m.loadScript()
				break
			}
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateState(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursorQubit < m.register.NumQubits()-1 {
			m.cursorQubit++
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursorQubit > 0 {
			m.cursorQubit--
		}
	case key.Matches(msg, m.keys.Add):
		m.focus = focusMenu
		m.menuCat = 0
		m.menuItem = 0
	case key.Matches(msg, m.keys.Undo):
		m.undo()
	case key.Matches(msg, m.keys.Reset):
		m.reset()
	case key.Matches(msg, m.keys.Script):
		m.focus = focusScript
		m.editor.Focus()
	case key.Matches(msg, m.keys.Grow):
		m.resize(m.register.NumQubits() + 1)
	case key.Matches(msg, m.keys.Shrink):
		m.resize(m.register.NumQubits() - 1)
	case key.Matches(msg, m.keys.Save):
		m.save()
	}
}

func (m *Model) updateMenu(keyStr string) {
	switch keyStr {
	case "esc":
		m.focus = focusState
	case "up", "k":
		if m.menuItem > 0 {
			m.menuItem--
		}
	case "down", "j":
		if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
			m.menuItem++
		}
	case "left", "h":
		if m.menuCat > 0 {
			m.menuCat--
			m.menuItem = 0
		}
	case "right", "l":
		if m.menuCat < len(gateMenu)-1 {
			m.menuCat++
			m.menuItem = 0
		}
	case "enter":
		m.pending = gateMenu[m.menuCat].items[m.menuItem]
		m.params = nil
		switch {
		case m.pending.needsParams:
			m.paramInput = ""
			m.focus = focusInputParam
		case m.pending.needsTarget:
			m.startTarget()
		default:
			m.commitPending()
		}
	}
}

func (m *Model) startTarget() {
	if m.register.NumQubits() < 2 {
		m.setError(fmt.Errorf("%s needs two qubits", m.pending.name))
		m.pending = menuItem{}
		m.focus = focusState
		return
	}
	m.targetQubit = m.firstTarget()
	m.focus = focusSelectTarget
}

func (m *Model) updateParam(keyStr string) {
	switch keyStr {
	case "esc":
		m.focus = focusState
		m.paramInput = ""
		m.pending = menuItem{}
	case "backspace":
		if len(m.paramInput) > 0 {
			m.paramInput = m.paramInput[:len(m.paramInput)-1]
		}
	case "enter":
		params, err := parseAngles(m.paramInput)
		if err != nil || len(params) == 0 {
			m.setError(fmt.Errorf("invalid angle %q: use numbers or pi expressions (pi/2, 3*pi/4)", m.paramInput))
			break
		}
		m.params = params
		if m.pending.needsTarget {
			m.startTarget()
		} else {
			m.commitPending()
		}
	default:
		if len(keyStr) == 1 && strings.ContainsAny(keyStr, "0123456789.,-+eEpi*/") {
			m.paramInput += keyStr
		}
	}
}

func (m *Model) updateTarget(keyStr string) {
	n := m.register.NumQubits()
	switch keyStr {
	case "esc":
		m.focus = focusState
		m.pending = menuItem{}
		m.params = nil
	case "up", "k":
		for next := m.targetQubit + 1; next < n; next++ {
			if next != m.cursorQubit {
				m.targetQubit = next
				break
			}
		}
	case "down", "j":
		for next := m.targetQubit - 1; next >= 0; next-- {
			if next != m.cursorQubit {
				m.targetQubit = next
				break
			}
		}
	case "enter":
		m.commitPending()
	}
}

// ──────────────────────────── View ────────────────────────────

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	scriptW := m.width / 3
	stateW := m.width - scriptW - panelGapW
	topH := max(m.height-controlsH-2, 6)

	statePanel := m.renderStatePanel(stateW, topH)
	scriptPanel := m.renderScriptPanel(scriptW, topH)
	controlsPanel := m.renderControlsPanel(m.width - panelGapW)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, statePanel, scriptPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusInputParam:
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}
	return frame
}

func (m Model) renderStatePanel(w, h int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Register · %d qubits · %d steps",
		m.register.NumQubits(), len(m.program.Steps))))
	sb.WriteString("\n\n")

	selected := -1
	if m.focus == focusSelectTarget {
		selected = m.targetQubit
		sb.WriteString(targetSelectStyle.Render(fmt.Sprintf("Select target for %s (control q[%d])", m.pending.name, m.cursorQubit)))
		sb.WriteString("\n")
	}
	sb.WriteString(renderMarginals(m.register, m.cursorQubit, selected))
	sb.WriteString("\n")
	sb.WriteString(renderState(m.register, m.opts))

	return stateStyle.Width(w).Height(h).Render(sb.String())
}

func (m Model) renderScriptPanel(w, h int) string {
	title := "Script"
	if m.focus == focusScript {
		title = "Script (editing, tab to apply)"
	}
	content := titleStyle.Render(title) + "\n\n" + m.editor.View()
	return scriptStyle.Width(w).Height(h).Render(content)
}

func (m Model) renderControlsPanel(w int) string {
	status := dimStyle.Render(fmt.Sprintf("|ψ⟩ norm %.6f", m.register.Norm()))
	if m.statusMsg != "" {
		if m.statusErr {
			status = errorStyle.Render(m.statusMsg)
		} else {
			status = noteStyle.Render(m.statusMsg)
		}
	}
	return controlsStyle.Width(w).Render(m.help.View(m.keys) + "\n" + status)
}

// renderParamInput renders the angle input overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Angle for " + m.pending.name))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Value: %s_", m.paramInput)
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57"))
	return menuBorderStyle.Render(sb.String())
}
