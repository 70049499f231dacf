package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/tuberoulette/engine"
	"github.com/nathoo/tuberoulette/engine/state"
	"github.com/nathoo/tuberoulette/types"
)

// promptKind says which question the engine is waiting on.
type promptKind int

const (
	promptItem promptKind = iota
	promptTarget
	promptSteal
)

// promptMsg carries a question from the engine goroutine to the UI.
// The engine blocks until the UI replies.
type promptMsg struct {
	kind    promptKind
	text    string
	options []types.ItemID // items to pick from, for item and steal prompts
	owner   string         // whose items the options are
	board   engine.Board
}

// answer is the UI's reply to a promptMsg.
type answer struct {
	item   types.ItemID
	target types.Target
	ok     bool
}

// narrationMsg carries narrated lines into the Update loop.
type narrationMsg struct {
	lines []string
}

// stepMsg follows every engine step with its events and a fresh snapshot.
type stepMsg struct {
	result types.Result
	board  engine.Board
}

// gameOverMsg ends play: either an outcome or a fatal error.
type gameOverMsg struct {
	outcome types.Outcome
	board   engine.Board
	err     error
}

// Bridge is the engine's Controller when playing in the TUI. The engine
// runs on its own goroutine; each Controller call sends one prompt to the
// program and blocks for the single reply. Snapshots are taken on the
// engine goroutine, so the UI never reads live state.
type Bridge struct {
	Trace bool // start with event trace output shown

	eng     *engine.Engine
	replies chan answer

	mu      sync.Mutex
	send    func(tea.Msg)
	pending []string // narration produced before the program attached
	ctx     context.Context
}

// NewBridge creates an unattached bridge.
func NewBridge() *Bridge {
	return &Bridge{
		replies: make(chan answer, 1),
		ctx:     context.Background(),
	}
}

// Narrate forwards a narrated line to the program, or holds it until
// the program attaches.
func (b *Bridge) Narrate(line string) {
	b.mu.Lock()
	send := b.send
	if send == nil {
		b.pending = append(b.pending, line)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	send(narrationMsg{lines: []string{line}})
}

// attach connects the bridge to a program and flushes held narration.
func (b *Bridge) attach(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	held := b.pending
	b.pending = nil
	b.mu.Unlock()
	if len(held) > 0 {
		send(narrationMsg{lines: held})
	}
}

// play steps the engine until the game ends or ctx is cancelled.
// It runs on its own goroutine.
func (b *Bridge) play(ctx context.Context, send func(tea.Msg)) {
	b.ctx = ctx
	b.attach(send)

	s := b.eng.State
	for s.Outcome == types.OutcomeNone {
		res, err := b.eng.Step(ctx)
		if ctx.Err() != nil {
			return
		}
		send(stepMsg{result: res, board: b.eng.Board()})
		if err != nil {
			send(gameOverMsg{board: b.eng.Board(), err: err})
			return
		}
	}
	send(gameOverMsg{outcome: s.Outcome, board: b.eng.Board()})
}

// ask sends p and waits for the reply. A cancelled context yields a
// zero answer; the engine abandons the step right after.
func (b *Bridge) ask(p promptMsg) answer {
	p.board = b.eng.Board()
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send == nil {
		return answer{}
	}
	send(p)
	select {
	case a := <-b.replies:
		return a
	case <-b.ctx.Done():
		return answer{}
	}
}

// reply delivers the UI's answer. It never blocks the Update loop.
func (b *Bridge) reply(a answer) {
	select {
	case b.replies <- a:
	default:
	}
}

// ChooseItem implements engine.Controller.
func (b *Bridge) ChooseItem(actor *state.Actor, prompt string) (types.ItemID, bool) {
	a := b.ask(promptMsg{kind: promptItem, text: prompt, options: copyItems(actor.Inventory), owner: actor.Name})
	return a.item, a.ok
}

// ChooseTarget implements engine.Controller.
func (b *Bridge) ChooseTarget(actor *state.Actor) types.Target {
	a := b.ask(promptMsg{kind: promptTarget, text: "Shoot (S)elf or (D)ealer?"})
	return a.target
}

// ChooseSteal implements engine.Controller.
func (b *Bridge) ChooseSteal(victim *state.Actor, prompt string) (types.ItemID, bool) {
	a := b.ask(promptMsg{kind: promptSteal, text: prompt, options: copyItems(victim.Inventory), owner: victim.Name})
	return a.item, a.ok
}

func copyItems(ids []types.ItemID) []types.ItemID {
	out := make([]types.ItemID, len(ids))
	copy(out, ids)
	return out
}
