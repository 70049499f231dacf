// Package engine provides the Step() orchestrator that drives one turn of
// the round/turn state machine: skip check, reload, item phase, aim, shot.
package engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nathoo/tuberoulette/config"
	"github.com/nathoo/tuberoulette/engine/ai"
	"github.com/nathoo/tuberoulette/engine/items"
	"github.com/nathoo/tuberoulette/engine/shotgun"
	"github.com/nathoo/tuberoulette/engine/state"
	"github.com/nathoo/tuberoulette/types"
)

var (
	// ErrInvariant marks corrupted game state. It is never recoverable.
	ErrInvariant = errors.New("game invariant violated")
	// ErrGameOver is returned by Step once the game has an outcome.
	ErrGameOver = errors.New("game is over")
)

// Controller is the human side of the table. Implementations block until
// the human answers and must only return items the named actor holds.
type Controller interface {
	// ChooseItem returns the item to use next, or false to stop using items.
	ChooseItem(actor *state.Actor, prompt string) (types.ItemID, bool)
	// ChooseTarget returns where to aim.
	ChooseTarget(actor *state.Actor) types.Target
	// ChooseSteal picks an item from victim's inventory, or false to cancel.
	ChooseSteal(victim *state.Actor, prompt string) (types.ItemID, bool)
}

// Engine holds the configuration and mutable state of one game.
type Engine struct {
	Config   config.Config
	State    *state.State
	RNG      *RNG
	Human    Controller
	Policy   *ai.Policy
	Log      logrus.FieldLogger
	Narrator func(line string) // live narration sink, optional

	phase  *fsm.FSM
	result types.Result
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostic logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.Log = log }
}

// WithNarrator streams every narrated line to fn as it happens.
func WithNarrator(fn func(line string)) Option {
	return func(e *Engine) { e.Narrator = fn }
}

// New seats the player and the dealer, loads the first round and deals
// its items. A nil seed in cfg picks one from the clock.
func New(cfg config.Config, human Controller, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if human == nil {
		return nil, errors.New("engine needs a human controller")
	}

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	e := &Engine{
		Config: cfg,
		RNG:    NewRNG(seed),
		Human:  human,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.Log = l
	}
	e.Policy = ai.New(e.Log)
	e.phase = newPhaseMachine(e.Log)

	player := state.NewActor("You", cfg.PlayerMaxHP, false)
	dealer := state.NewActor("Dealer", cfg.DealerMaxHP, true)
	e.State = state.NewState(player, dealer, seed)

	e.Log.WithField("seed", seed).Debug("new game")
	e.loadRound()
	return e, nil
}

// Step runs one pass of the turn state machine for whoever holds the turn.
// The returned Result carries this step's events and narration. If ctx is
// cancelled during a human prompt the step is abandoned and ctx.Err() is
// returned; the engine should not be stepped again after that.
func (e *Engine) Step(ctx context.Context) (types.Result, error) {
	e.result = types.Result{}
	s := e.State

	if s.Outcome != types.OutcomeNone {
		return e.result, ErrGameOver
	}
	if s.Turn != s.Player && s.Turn != s.Dealer {
		return e.result, errors.Wrap(ErrInvariant, "turn held by neither actor")
	}

	s.StepCount++
	actor := s.Turn
	opp := s.Other(actor)
	log := e.Log.WithFields(logrus.Fields{"round": s.Round, "step": s.StepCount, "actor": actor.Name})

	if err := e.transition(ctx, evBegin); err != nil {
		return e.result, err
	}

	// Skip check.
	if actor.SkipNext {
		actor.SkipNext = false
		e.narrate(fmt.Sprintf("[%s] is restrained and skips the turn.", actor.Name))
		e.emit(types.EventTurnSkipped, map[string]any{"actor": actor.Name})
		s.Turn = opp
		log.Debug("turn skipped")
		return e.result, e.transition(ctx, evSkip)
	}
	if err := e.transition(ctx, evProceed); err != nil {
		return e.result, err
	}

	// Reload check. The player always opens a new round.
	if s.Shotgun.Remaining() == 0 {
		s.Round++
		e.narrate("--- New round: reloading the shotgun and dealing new items ---")
		e.loadRound()
		s.Turn = s.Player
		log.WithField("new_round", s.Round).Debug("reloaded")
		return e.result, e.transition(ctx, evReload)
	}
	if err := e.transition(ctx, evArm); err != nil {
		return e.result, err
	}

	if err := e.itemPhase(ctx, actor, opp); err != nil {
		return e.result, err
	}

	// Beer can rack out the last shell; the next step reloads. The turn
	// ends without a shot, so a sawn-off barrel goes unused.
	if s.Shotgun.Remaining() == 0 {
		actor.DmgMult = 1
		e.narrate(fmt.Sprintf("[%s] racked out the last shell. The tube is empty.", actor.Name))
		log.Debug("chamber emptied during item phase")
		return e.result, e.transition(ctx, evStall)
	}
	if err := e.transition(ctx, evAim); err != nil {
		return e.result, err
	}

	aim, err := e.aim(ctx, actor)
	if err != nil {
		return e.result, err
	}
	target := opp
	if aim == types.TargetSelf {
		target = actor
	}
	if err := e.transition(ctx, evFire); err != nil {
		return e.result, err
	}

	keep, err := e.resolveShot(actor, target)
	if err != nil {
		return e.result, err
	}

	if s.GameOver() {
		e.endGame()
		log.WithField("outcome", s.Outcome.String()).Info("game over")
		return e.result, e.transition(ctx, evFinish)
	}

	if keep {
		e.emit(types.EventTurnRetained, map[string]any{"actor": actor.Name})
	} else {
		s.Turn = opp
		e.emit(types.EventTurnPassed, map[string]any{"from": actor.Name, "to": opp.Name})
	}
	return e.result, e.transition(ctx, evSettle)
}

// Play steps until the game ends. Cancellation is honoured between steps.
func (e *Engine) Play(ctx context.Context) (types.Outcome, error) {
	for e.State.Outcome == types.OutcomeNone {
		if err := ctx.Err(); err != nil {
			return types.OutcomeNone, err
		}
		if _, err := e.Step(ctx); err != nil {
			return types.OutcomeNone, err
		}
	}
	return e.State.Outcome, nil
}

// Outcome returns the game result, OutcomeNone while play continues.
func (e *Engine) Outcome() types.Outcome {
	return e.State.Outcome
}

// Phase returns the current turn phase name.
func (e *Engine) Phase() string {
	return e.phase.Current()
}

// itemPhase lets the acting side use items before aiming. A context
// cancelled while the human was deciding abandons the step before the
// answer is applied.
func (e *Engine) itemPhase(ctx context.Context, actor, opp *state.Actor) error {
	if actor.AI {
		var invErr error
		e.Policy.UseItems(e.State, actor, e.RNG, func(id types.ItemID) {
			if !actor.PopItem(id) {
				invErr = errors.Wrapf(ErrInvariant, "%s used %s without holding it", actor.Name, items.Name(id))
				return
			}
			if err := e.useItem(id, actor, opp); err != nil {
				invErr = err
			}
		})
		return invErr
	}

	for len(actor.Inventory) > 0 && e.State.Shotgun.Remaining() > 0 {
		id, ok := e.Human.ChooseItem(actor, "Use an item before shooting?")
		if err := ctx.Err(); err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if !actor.PopItem(id) {
			return errors.Wrapf(ErrInvariant, "%s chose %s without holding it", actor.Name, items.Name(id))
		}
		if err := e.useItem(id, actor, opp); err != nil {
			return err
		}
		// A steal prompt may have been abandoned.
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) useItem(id types.ItemID, user, target *state.Actor) error {
	guard := &stealGuard{chooser: e.Human}
	env := items.Env{State: e.State, RNG: e.RNG, Steal: guard}
	evts, out := items.Apply(env, id, user, target)
	e.result.Events = append(e.result.Events, evts...)
	for _, line := range out {
		e.narrate(line)
	}
	return guard.err
}

// stealGuard holds the human's steal choice to the same contract as item
// choices: picking an item the victim does not hold is an invariant
// violation.
type stealGuard struct {
	chooser Controller
	err     error
}

func (g *stealGuard) ChooseSteal(victim *state.Actor, prompt string) (types.ItemID, bool) {
	id, ok := g.chooser.ChooseSteal(victim, prompt)
	if ok && !victim.HasItem(id) {
		g.err = errors.Wrapf(ErrInvariant, "steal picked %s, which %s does not hold", items.Name(id), victim.Name)
		return types.ItemNone, false
	}
	return id, ok
}

func (e *Engine) aim(ctx context.Context, actor *state.Actor) (types.Target, error) {
	if actor.AI {
		return e.Policy.ChooseTarget(e.State, actor), nil
	}
	t := e.Human.ChooseTarget(actor)
	return t, ctx.Err()
}

// loadRound replaces the shotgun and deals both hands for the current round.
func (e *Engine) loadRound() {
	s := e.State
	s.Shotgun = shotgun.Load(e.RNG, e.Config.MinShells, e.Config.MaxShells)
	live, blank := s.Shotgun.Counts()
	e.narrate(fmt.Sprintf("Round %d: %d shells go into the tube (%d live, %d blank).", s.Round, live+blank, live, blank))
	e.emit(types.EventRoundLoaded, map[string]any{"round": s.Round, "live": live, "blank": blank})
	e.dealItems()
}

// dealItems gives each actor a fresh hand drawn without replacement from
// the catalog, and wipes what they knew about the old tube.
func (e *Engine) dealItems() {
	for _, who := range []*state.Actor{e.State.Player, e.State.Dealer} {
		who.Inventory = []types.ItemID{}
		k := e.RNG.IntRange(e.Config.MinItems, e.Config.MaxItems)
		for _, idx := range e.RNG.Sample(len(types.AllItems), k) {
			who.GiveItem(types.AllItems[idx])
		}
		who.Knowledge.Reset()

		names := items.Names(who.Inventory)
		e.emit(types.EventItemsDealt, map[string]any{"actor": who.Name, "items": names})
		if len(names) == 0 {
			e.narrate(fmt.Sprintf("%s receives no items.", who.Name))
			continue
		}
		e.narrate(fmt.Sprintf("%s receives: %s.", who.Name, strings.Join(names, ", ")))
	}
}

// endGame records the outcome once either actor is dead.
func (e *Engine) endGame() {
	s := e.State
	if s.Player.IsAlive() {
		s.Outcome = types.OutcomePlayerWin
		e.narrate("The Dealer slumps over the table.")
	} else {
		s.Outcome = types.OutcomeDealerWin
		e.narrate("The room fades to black.")
	}
	e.emit(types.EventGameOver, map[string]any{"outcome": s.Outcome.String(), "round": s.Round})
}

// narrate appends a line to the transcript, the step result, and the live sink.
func (e *Engine) narrate(line string) {
	e.State.Transcript = append(e.State.Transcript, line)
	e.result.Output = append(e.result.Output, line)
	if e.Narrator != nil {
		e.Narrator(line)
	}
}

func (e *Engine) emit(typ string, data map[string]any) {
	e.result.Events = append(e.result.Events, types.Event{Type: typ, Data: data})
}

// transition fires a phase event. A cancelled context is reported as is;
// any other refusal means the step sequence is corrupt.
func (e *Engine) transition(ctx context.Context, event string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.phase.Event(ctx, event); err != nil {
		return errors.Wrapf(ErrInvariant, "phase %s cannot take %s: %v", e.phase.Current(), event, err)
	}
	return nil
}
