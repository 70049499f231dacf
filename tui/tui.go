package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/nathoo/tuberoulette/engine"
	"github.com/nathoo/tuberoulette/engine/items"
	"github.com/nathoo/tuberoulette/engine/parser"
	"github.com/nathoo/tuberoulette/engine/resolve"
	"github.com/nathoo/tuberoulette/types"
)

// ErrQuit is returned by Run when the player leaves before the game ends.
var ErrQuit = errors.New("player left the table")

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Tube Roulette TUI.
type Model struct {
	bridge *Bridge
	cancel context.CancelFunc

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	board   engine.Board
	prompt  *promptMsg
	aimed   *types.Target // target typed at the item prompt
	outcome types.Outcome
	err     error

	width    int
	height   int
	ready    bool
	trace    bool
	over     bool
	quitting bool
}

// New creates a TUI model answering prompts for b.
func New(b *Bridge, cancel context.CancelFunc) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 64
	ti.PromptStyle = styleInputPrompt

	if cancel == nil {
		cancel = func() {}
	}
	m := Model{
		bridge:  b,
		cancel:  cancel,
		input:   ti,
		history: NewHistory(100),
		trace:   b.Trace,
	}
	if b.eng != nil {
		m.board = b.eng.Board()
	}
	m.rawLines = append(m.rawLines,
		rawLine{text: "TUBE ROULETTE. Two seats, one shotgun. Type /help at any prompt.", isSystem: true},
		rawLine{})
	return m
}

// Run plays eng in the terminal until the game ends or the player quits.
// eng must have been created with b as its Controller and b.Narrate as
// its narrator.
func Run(ctx context.Context, eng *engine.Engine, b *Bridge) (types.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b.eng = eng
	m := New(b, cancel)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go b.play(ctx, p.Send)

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return types.OutcomeNone, err
	}
	fm, ok := final.(Model)
	if !ok {
		return types.OutcomeNone, ErrQuit
	}
	if fm.err != nil {
		return types.OutcomeNone, fm.err
	}
	if fm.outcome == types.OutcomeNone {
		return types.OutcomeNone, ErrQuit
	}
	return fm.outcome, nil
}

// Init starts the cursor blinking; the engine goroutine drives the rest.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages (key presses, window resize, engine traffic).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.leave()

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(m.recallKind()); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(m.recallKind()); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case narrationMsg:
		m = m.appendLines(msg.lines, false)

	case stepMsg:
		m.board = msg.board
		if m.trace {
			m = m.appendLines(formatTrace(msg.result), true)
		}

	case promptMsg:
		m.board = msg.board
		m = m.openPrompt(msg)

	case gameOverMsg:
		m.board = msg.board
		m.over = true
		m.prompt = nil
		if msg.err != nil {
			m.err = msg.err
			m = m.appendLines([]string{fmt.Sprintf("Fatal: %v", msg.err)}, true)
		} else {
			m.outcome = msg.outcome
			m = m.appendLines(summary(msg.outcome, msg.board), false)
		}
		m = m.appendLines([]string{"Press Enter to leave the table."}, true)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// openPrompt shows a question from the engine. A target already typed at
// the item prompt answers the aim prompt at once.
func (m Model) openPrompt(p promptMsg) Model {
	if p.kind == promptTarget && m.aimed != nil {
		m.bridge.reply(answer{target: *m.aimed})
		m.aimed = nil
		return m
	}
	m.prompt = &p

	var lines []string
	if p.kind == promptItem {
		lines = append(lines, boardLines(p.board)...)
	}
	if p.kind == promptSteal {
		lines = append(lines, p.owner+"'s items:")
	}
	if p.kind != promptTarget {
		lines = append(lines, inventoryLines(p.options)...)
	}
	lines = append(lines, p.text+hint(p.kind))
	return m.appendLines(lines, false)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if m.over {
		m.quitting = true
		return m, tea.Quit
	}

	if m.prompt != nil {
		m.history.Push(input, m.prompt.kind)
	}
	m.history.ResetCursor()
	m.rawLines = append(m.rawLines, rawLine{text: "> " + input, isInput: true})

	in, err := parser.Parse(input)
	if err != nil {
		m = m.appendLines([]string{fmt.Sprintf("%v. Type /help for available commands.", err)}, true)
		return m, nil
	}

	switch in.Verb {
	case parser.VerbQuit:
		m = m.appendLines([]string{"Goodbye."}, true)
		return m.leave()
	case parser.VerbHelp:
		m = m.appendLines(helpLines(), true)
		return m, nil
	case parser.VerbState:
		m = m.appendLines(boardLines(m.board), false)
		m = m.appendLines([]string{fmt.Sprintf("Seed: %d | Step: %d | RNG draws: %d", m.board.Seed, m.board.Step, m.board.Draws)}, true)
		return m, nil
	case parser.VerbTrace:
		m.trace = !m.trace
		if m.trace {
			m = m.appendLines([]string{"Trace output enabled."}, true)
		} else {
			m = m.appendLines([]string{"Trace output disabled."}, true)
		}
		return m, nil
	}

	if m.prompt == nil {
		if input != "" {
			m = m.appendLines([]string{"The Dealer is still playing. Wait for your prompt."}, true)
		}
		return m, nil
	}
	return m.answerPrompt(in)
}

// recallKind is the prompt kind Up/Down recall answers for.
func (m Model) recallKind() promptKind {
	if m.prompt != nil {
		return m.prompt.kind
	}
	return promptItem
}

// answerPrompt turns an intent into a reply for the open prompt.
func (m Model) answerPrompt(in types.Intent) (tea.Model, tea.Cmd) {
	p := m.prompt
	switch p.kind {
	case promptItem, promptSteal:
		switch in.Verb {
		case "", parser.VerbDone:
			return m.send(answer{})
		case parser.VerbShoot:
			if p.kind == promptItem {
				if t, ok := parser.Target(in.Object); ok {
					m.aimed = &t
				}
				return m.send(answer{})
			}
		case parser.VerbUse:
			id, err := resolve.Item(p.options, in.Object)
			if err != nil {
				m = m.appendLines([]string{err.Error()}, true)
				return m, nil
			}
			return m.send(answer{item: id, ok: true})
		}
	case promptTarget:
		if in.Verb == parser.VerbShoot {
			if t, ok := parser.Target(in.Object); ok {
				return m.send(answer{target: t, ok: true})
			}
		}
		m = m.appendLines([]string{"Please type S or D."}, true)
		return m, nil
	}
	m = m.appendLines([]string{"Invalid choice."}, true)
	return m, nil
}

func (m Model) send(a answer) (tea.Model, tea.Cmd) {
	m.prompt = nil
	m.bridge.reply(a)
	return m, nil
}

// leave cancels the engine goroutine and stops the program.
func (m Model) leave() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

// appendLines adds lines to the narrative and refreshes the viewport.
func (m Model) appendLines(lines []string, system bool) Model {
	for _, line := range lines {
		rl := rawLine{text: line, isSystem: system}
		if !system {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

func hint(kind promptKind) string {
	switch kind {
	case promptItem:
		return " (number or name, ENTER to skip)"
	case promptSteal:
		return " (number or name, ENTER to cancel)"
	}
	return ""
}

func helpLines() []string {
	lines := []string{
		"At a prompt:",
		"  2, saw, use hand saw   Use an item by number, name or alias",
		"  ENTER, done            Stop using items (or cancel a steal)",
		"  s, self, shoot me      Shoot yourself: a blank keeps your turn",
		"  d, dealer              Shoot the dealer",
		"",
		"System:",
		"  /state   Show the table",
		"  /trace   Toggle event trace output",
		"  /help    Show this help",
		"  /quit    Leave the table",
		"",
		"Items:",
	}
	for _, it := range items.Catalog() {
		lines = append(lines, fmt.Sprintf("  %-16s %s", it.Name, it.Desc))
	}
	return append(lines, "", "Navigation: PgUp/PgDn to scroll, Up/Down for input history")
}

func boardLines(b engine.Board) []string {
	lines := []string{
		fmt.Sprintf("Round %d | Shells left: %d (L:%d / B:%d)", b.Round, b.Remaining, b.Live, b.Blank),
		fmt.Sprintf("HP: %s %d/%d | %s %d/%d", b.Player.Name, b.Player.HP, b.Player.MaxHP, b.Dealer.Name, b.Dealer.HP, b.Dealer.MaxHP),
		fmt.Sprintf("Dealer's items: %s", listOrNone(b.Dealer.Items)),
	}
	if len(b.Known) > 0 {
		parts := make([]string, 0, len(b.Known))
		for _, k := range b.Known {
			parts = append(parts, fmt.Sprintf("shell %d is %s", k.Offset, k.Shell))
		}
		lines = append(lines, "You know: "+strings.Join(parts, ", ")+".")
	}
	return lines
}

func inventoryLines(ids []types.ItemID) []string {
	if len(ids) == 0 {
		return []string{"  (none)"}
	}
	lines := make([]string, 0, len(ids))
	for i, id := range ids {
		it, _ := items.Lookup(id)
		lines = append(lines, fmt.Sprintf("  [%d] %s: %s", i+1, it.Name, it.Desc))
	}
	return lines
}

func summary(outcome types.Outcome, b engine.Board) []string {
	headline := "YOU LOSE."
	if outcome == types.OutcomePlayerWin {
		headline = "YOU WIN!"
	}
	return []string{
		"",
		headline,
		fmt.Sprintf("Outcome: %s | Rounds: %d | Steps: %d | Seed: %d", outcome, b.Round, b.Step, b.Seed),
	}
}

func formatTrace(result types.Result) []string {
	if len(result.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(result.Events))}
	for _, e := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
	return lines
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
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
