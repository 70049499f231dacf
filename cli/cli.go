// Package cli provides line-based terminal play: it answers the engine's
// prompts from an io.Reader, prints narration, and handles meta-commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"

	"github.com/nathoo/tuberoulette/engine"
	"github.com/nathoo/tuberoulette/engine/items"
	"github.com/nathoo/tuberoulette/engine/parser"
	"github.com/nathoo/tuberoulette/engine/resolve"
	"github.com/nathoo/tuberoulette/engine/state"
	"github.com/nathoo/tuberoulette/types"
)

// ErrQuit is returned by Run when the player leaves before the game ends.
var ErrQuit = errors.New("player left the table")

// CLI handles terminal interaction with the player. It is the engine's
// Controller, so Engine must be set before Run.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)

	scanner *bufio.Scanner
	cancel  context.CancelFunc
	quit    bool
	started bool
	pending []string      // narration produced before Run
	aimed   *types.Target // target typed at the item prompt
}

// New creates a CLI on the given streams. Nil streams mean stdin/stdout.
func New(in io.Reader, out io.Writer) *CLI {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &CLI{In: in, Out: out}
}

// Narrate prints a narrated line. Lines produced before Run are held
// until the banner has been shown.
func (c *CLI) Narrate(line string) {
	if c.quit {
		return
	}
	if !c.started {
		c.pending = append(c.pending, line)
		return
	}
	c.printLine(line)
}

// Run plays until the game ends or the player quits.
func (c *CLI) Run(ctx context.Context) (types.Outcome, error) {
	if c.Engine == nil {
		return types.OutcomeNone, errors.New("cli has no engine")
	}
	ctx, c.cancel = context.WithCancel(ctx)
	defer c.cancel()
	c.scanner = bufio.NewScanner(c.In)

	c.printLine("TUBE ROULETTE. Two seats, one shotgun. Type /help at any prompt.")
	c.printLine("")
	c.started = true
	for _, line := range c.pending {
		c.printLine(line)
	}
	c.pending = nil

	s := c.Engine.State
	for s.Outcome == types.OutcomeNone {
		if s.Turn == s.Player && !s.Player.SkipNext && s.Shotgun.Remaining() > 0 {
			c.printBoard()
		}
		result, err := c.Engine.Step(ctx)
		if c.Trace {
			c.printTrace(result)
		}
		if err != nil {
			if c.quit {
				return types.OutcomeNone, ErrQuit
			}
			return types.OutcomeNone, err
		}
	}

	c.printLine("")
	if s.Outcome == types.OutcomePlayerWin {
		c.printLine("YOU WIN!")
	} else {
		c.printLine("YOU LOSE.")
	}
	c.printSummary()
	return s.Outcome, nil
}

// ChooseItem implements engine.Controller.
func (c *CLI) ChooseItem(actor *state.Actor, prompt string) (types.ItemID, bool) {
	c.printInventory(actor.Inventory)
	for {
		in, ok := c.ask(prompt + " (number or name, ENTER to skip): ")
		if !ok {
			return types.ItemNone, false
		}
		switch in.Verb {
		case "", parser.VerbDone:
			return types.ItemNone, false
		case parser.VerbShoot:
			// "s" or "d" here skips straight to the shot.
			if t, ok := parser.Target(in.Object); ok {
				c.aimed = &t
			}
			return types.ItemNone, false
		case parser.VerbUse:
			id, err := resolve.Item(actor.Inventory, in.Object)
			if err != nil {
				c.printSystem(err.Error())
				continue
			}
			return id, true
		}
		c.printSystem("Invalid choice.")
	}
}

// ChooseTarget implements engine.Controller.
func (c *CLI) ChooseTarget(actor *state.Actor) types.Target {
	if c.aimed != nil {
		t := *c.aimed
		c.aimed = nil
		return t
	}
	for {
		in, ok := c.ask("Shoot (S)elf or (D)ealer? ")
		if !ok {
			return types.TargetOpponent
		}
		if in.Verb == parser.VerbShoot {
			if t, ok := parser.Target(in.Object); ok {
				return t
			}
		}
		c.printSystem("Please type S or D.")
	}
}

// ChooseSteal implements engine.Controller.
func (c *CLI) ChooseSteal(victim *state.Actor, prompt string) (types.ItemID, bool) {
	c.printLine(victim.Name + "'s items:")
	c.printInventory(victim.Inventory)
	for {
		in, ok := c.ask(prompt + " (number or name, ENTER to cancel): ")
		if !ok {
			return types.ItemNone, false
		}
		switch in.Verb {
		case "", parser.VerbDone:
			return types.ItemNone, false
		case parser.VerbUse:
			id, err := resolve.Item(victim.Inventory, in.Object)
			if err != nil {
				c.printSystem(err.Error())
				continue
			}
			return id, true
		}
		c.printSystem("Invalid choice.")
	}
}

// ask reads lines until one parses into a game intent. Meta-commands are
// handled in place. ok is false once the player has quit or input ends.
func (c *CLI) ask(prompt string) (types.Intent, bool) {
	for {
		if c.quit {
			return types.Intent{}, false
		}
		c.print(prompt)
		if !c.scanner.Scan() {
			c.printLine("")
			c.leave()
			return types.Intent{}, false
		}
		input := strings.TrimSpace(c.scanner.Text())
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		in, err := parser.Parse(input)
		if err != nil {
			c.printSystem(fmt.Sprintf("%v. Type /help for available commands.", err))
			continue
		}
		switch in.Verb {
		case parser.VerbHelp:
			c.cmdHelp()
		case parser.VerbState:
			c.cmdState()
		case parser.VerbTrace:
			c.Trace = !c.Trace
			if c.Trace {
				c.printSystem("Trace output enabled.")
			} else {
				c.printSystem("Trace output disabled.")
			}
		case parser.VerbQuit:
			c.printSystem("Goodbye.")
			c.leave()
			return types.Intent{}, false
		default:
			return in, true
		}
	}
}

// leave abandons the game. The engine sees the cancelled context as soon
// as the current prompt returns.
func (c *CLI) leave() {
	c.quit = true
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *CLI) cmdHelp() {
	t := table.NewWriter()
	t.SetOutputMirror(c.Out)
	t.AppendHeader(table.Row{"Input", "Meaning"})
	t.AppendRows([]table.Row{
		{"2, saw, use hand saw", "Use an item by number, name or alias"},
		{"ENTER, done", "Stop using items (or cancel a steal)"},
		{"s, self, shoot me", "Shoot yourself: a blank keeps your turn"},
		{"d, dealer, shoot dealer", "Shoot the dealer"},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"/state", "Show the table"},
		{"/trace", "Toggle event trace output"},
		{"/help", "Show this help"},
		{"/quit", "Leave the table"},
	})
	t.SetStyle(table.StyleLight)
	t.Render()

	c.printLine("Items:")
	for _, it := range items.Catalog() {
		c.printLine(fmt.Sprintf("  %-16s %s", it.Name, it.Desc))
	}
}

func (c *CLI) cmdState() {
	c.printBoard()
	b := c.Engine.Board()
	c.printSystem(fmt.Sprintf("Seed: %d | Step: %d | RNG draws: %d | Phase: %s", b.Seed, b.Step, b.Draws, c.Engine.Phase()))
}

func (c *CLI) printBoard() {
	b := c.Engine.Board()

	c.printLine("")
	c.printLine(fmt.Sprintf("Round %d | Shells left: %d (L:%d / B:%d)", b.Round, b.Remaining, b.Live, b.Blank))

	t := table.NewWriter()
	t.SetOutputMirror(c.Out)
	t.AppendHeader(table.Row{"", b.Player.Name, b.Dealer.Name})
	t.AppendRow(table.Row{"HP", fmt.Sprintf("%d/%d", b.Player.HP, b.Player.MaxHP), fmt.Sprintf("%d/%d", b.Dealer.HP, b.Dealer.MaxHP)})
	t.AppendRow(table.Row{"Items", listOrNone(b.Player.Items), listOrNone(b.Dealer.Items)})
	t.AppendRow(table.Row{"Status", status(b.Player), status(b.Dealer)})
	t.SetStyle(table.StyleLight)
	t.Render()

	if len(b.Known) > 0 {
		parts := make([]string, 0, len(b.Known))
		for _, k := range b.Known {
			parts = append(parts, fmt.Sprintf("shell %d is %s", k.Offset, k.Shell))
		}
		c.printLine("You know: " + strings.Join(parts, ", ") + ".")
	}
}

func (c *CLI) printSummary() {
	b := c.Engine.Board()

	t := table.NewWriter()
	t.SetOutputMirror(c.Out)
	t.SetTitle("Game over")
	t.AppendRows([]table.Row{
		{"Outcome", b.Outcome.String()},
		{"Rounds", b.Round},
		{"Steps", b.Step},
		{b.Player.Name + " HP", fmt.Sprintf("%d/%d", b.Player.HP, b.Player.MaxHP)},
		{b.Dealer.Name + " HP", fmt.Sprintf("%d/%d", b.Dealer.HP, b.Dealer.MaxHP)},
		{"Seed", b.Seed},
	})
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}

func (c *CLI) printInventory(ids []types.ItemID) {
	if len(ids) == 0 {
		c.printLine("  (none)")
		return
	}
	for i, id := range ids {
		it, _ := items.Lookup(id)
		c.printLine(fmt.Sprintf("  [%d] %s: %s", i+1, it.Name, it.Desc))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) == 0 {
		return
	}
	c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
	for _, e := range result.Events {
		c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

func status(s engine.Seat) string {
	var flags []string
	if s.Cuffed {
		flags = append(flags, "cuffed")
	}
	if s.SawReady {
		flags = append(flags, "saw ready")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ", ")
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
