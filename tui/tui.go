package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/questline/engine"
	"github.com/nathoo/questline/engine/effects"
	"github.com/nathoo/questline/engine/quest"
	"github.com/nathoo/questline/types"
)

const (
	hintExplore = "type a number or a command, /help for more"
	hintCombat  = "1 attack, 2 use item, 3 quest, 4 flee"
	hintOver    = "/quit to leave"
)

// entry is one unstyled transcript line. The transcript is re-rendered
// on resize so wrapping always matches the terminal width.
type entry struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model for the questline TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	transcript []entry

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// turnMsg carries the lines produced by one submission.
type turnMsg struct {
	echo  string // player input, empty for the intro
	lines []string
	meta  bool // meta-command output is shown as system text
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = hintExplore
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(New(eng), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init blinks the cursor and queues the title and intro.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		lines := []string{titleLine(m.engine), ""}
		return turnMsg{lines: append(lines, m.engine.Intro()...)}
	}
}

// titleLine renders "Title vX by Author", dropping the parts the game
// does not declare.
func titleLine(eng *engine.Engine) string {
	g := eng.Catalog.Game
	line := g.Title
	if g.Version != "" {
		line += " v" + g.Version
	}
	if g.Author != "" {
		line += " by " + g.Author
	}
	return line
}

// Update handles key presses, resizes and turn output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyEsc:
			m.input.SetValue("")
			m.history.Reset()
			return m, nil
		case tea.KeyUp:
			if prev, ok := m.history.Prev(); ok {
				m.recall(prev)
			}
			return m, nil
		case tea.KeyDown:
			next, _ := m.history.Next()
			m.recall(next)
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case turnMsg:
		m = m.record(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	// One row each for the status bar and the input line.
	vpHeight := max(height-2, 1)
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.render()
}

func (m *Model) recall(cmd string) {
	m.input.SetValue(cmd)
	m.input.CursorEnd()
}

// submit runs the typed line as a meta-command or a game command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}
	m.history.Push(input)

	if lower := strings.ToLower(input); lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			return m.record(turnMsg{echo: input, lines: []string{"Nothing to repeat."}, meta: true}), nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	if strings.HasPrefix(input, "/") {
		lines, quit := m.handleMeta(input)
		m = m.record(turnMsg{echo: input, lines: lines, meta: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	result := m.engine.Step(input)
	lines := result.Output
	if m.trace {
		lines = append(lines, formatTrace(result)...)
	}
	if m.engine.World.GameOver {
		lines = append(lines, "[Your adventure has ended. Type /quit to exit.]")
	}
	return m.record(turnMsg{echo: input, lines: lines}), nil
}

// record appends a turn to the transcript and refreshes the view.
func (m Model) record(msg turnMsg) Model {
	if msg.echo != "" {
		m.transcript = append(m.transcript, entry{text: "> " + msg.echo, kind: kindInput})
	}
	for _, line := range msg.lines {
		kind := kindSystem
		if !msg.meta {
			kind = classifyLine(line)
		}
		m.transcript = append(m.transcript, entry{text: line, kind: kind})
	}
	// Blank separator between turns.
	m.transcript = append(m.transcript, entry{})

	switch {
	case m.engine.World.GameOver:
		m.input.Placeholder = hintOver
	case m.engine.InCombat():
		m.input.Placeholder = hintCombat
	default:
		m.input.Placeholder = hintExplore
	}
	m.render()
	return m
}

// render wraps and styles the transcript at the current width.
func (m *Model) render() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)
	styled := make([]string, 0, len(m.transcript))
	for _, e := range m.transcript {
		if e.text == "" {
			styled = append(styled, "")
			continue
		}
		styled = append(styled, renderEntry(e, width))
	}
	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the transcript, status bar and input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta runs a slash command and reports whether to quit.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]
	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true
	case "/help":
		return helpLines, false
	case "/state":
		return m.stateLines(), false
	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false
	}
	return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
}

var helpLines = []string{
	"System:",
	"  /quit         Exit game",
	"  /help         Show this help",
	"  /state        Debug: dump current state",
	"  /trace        Toggle effect and event trace output",
	"",
	"Game commands:",
	"  <number>              Pick a numbered choice",
	"  look (l)              Show where you are and what you can do",
	"  go <place>            Move to the village, quest hall, home...",
	"  explore <area>        Head into an unlocked area",
	"  talk <npc>            Talk to someone nearby",
	"  accept <quest>        Take a quest in the quest hall",
	"  abandon               Give up your active quest",
	"  shop, buy/sell <item> Trade at a shop in the village",
	"  use/equip/unequip     Manage your gear",
	"  status, inventory (i), quest",
	"  attack, flee          In combat (or 1-4)",
	"  again (g)             Repeat your last command",
	"",
	"Keys: PgUp/PgDn scroll, Up/Down recall commands, Esc clears the line",
}

func (m *Model) stateLines() []string {
	e := m.engine
	p := e.World.Player
	out := []string{
		fmt.Sprintf("Turn: %d", e.TurnCount),
		fmt.Sprintf("Location: %s", e.World.Location),
		fmt.Sprintf("Health: %d/%d  Gold: %d  Level: %d  XP: %d", p.Health, p.MaxHealth, p.Gold, p.Level, p.XP),
	}
	if len(p.Inventory) > 0 {
		out = append(out, "Inventory: "+strings.Join(slices.Sorted(maps.Keys(p.Inventory)), ", "))
	}
	if q := quest.ActiveStory(p); q != nil {
		out = append(out, fmt.Sprintf("Quest: %s (step %d/%d)", q.ID, q.Story.CurrentStep+1, len(q.Story.Steps)))
	} else if q := quest.ActiveCombat(p); q != nil {
		out = append(out, fmt.Sprintf("Quest: %s (%d/%d)", q.ID, p.QuestProgress, q.Combat.Count))
	}
	if enc := e.Encounter(); enc != nil {
		out = append(out, fmt.Sprintf("Fighting: %s (%d/%d)", enc.Creature.Name, enc.Creature.Health, enc.Creature.MaxHealth))
	}
	return out
}

func formatTrace(result types.Result) []string {
	var lines []string
	if len(result.Effects) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			lines = append(lines, fmt.Sprintf("[trace]   %s %s", e.Type, effects.Operand(e)))
		}
	}
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	return lines
}

// viewportKeyMap leaves Up/Down to command recall.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
