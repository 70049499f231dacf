// Package state holds the mutable game aggregate: both actors, their
// knowledge of the shell sequence, and the active shotgun.
package state

import (
	"github.com/nathoo/tuberoulette/engine/shotgun"
	"github.com/nathoo/tuberoulette/types"
)

// Knowledge is what one actor provably knows about the shells.
type Knowledge struct {
	Current   types.Shell         // chambered shell, ShellUnknown if not known
	Positions map[int]types.Shell // absolute index -> shell, from revelations ahead of the cursor
}

// NewKnowledge returns an empty knowledge store.
func NewKnowledge() Knowledge {
	return Knowledge{Positions: map[int]types.Shell{}}
}

// Reset forgets everything. Called on reload.
func (k *Knowledge) Reset() {
	k.Current = types.ShellUnknown
	k.Positions = map[int]types.Shell{}
}

// Forget drops certainty about the chambered shell.
func (k *Knowledge) Forget() {
	k.Current = types.ShellUnknown
}

// Learn records the shell at an absolute position.
func (k *Knowledge) Learn(pos int, s types.Shell) {
	if k.Positions == nil {
		k.Positions = map[int]types.Shell{}
	}
	k.Positions[pos] = s
}

// Upcoming returns the known positions at or after cursor.
// Entries the cursor has already passed are stale and skipped.
func (k *Knowledge) Upcoming(cursor int) map[int]types.Shell {
	out := map[int]types.Shell{}
	for pos, s := range k.Positions {
		if pos >= cursor {
			out[pos] = s
		}
	}
	return out
}

// Actor is one side of the table.
type Actor struct {
	Name      string
	MaxHP     int
	HP        int
	Inventory []types.ItemID
	SkipNext  bool
	DmgMult   int
	AI        bool
	Knowledge Knowledge
}

// NewActor creates an actor at full health with no items.
func NewActor(name string, maxHP int, ai bool) *Actor {
	return &Actor{
		Name:      name,
		MaxHP:     maxHP,
		HP:        maxHP,
		Inventory: []types.ItemID{},
		DmgMult:   1,
		AI:        ai,
		Knowledge: NewKnowledge(),
	}
}

// IsAlive reports whether HP is above zero.
func (a *Actor) IsAlive() bool { return a.HP > 0 }

// Heal adds n HP, clamped to MaxHP. Returns the new HP.
func (a *Actor) Heal(n int) int {
	a.HP += n
	if a.HP > a.MaxHP {
		a.HP = a.MaxHP
	}
	return a.HP
}

// Hurt removes n HP. There is no floor; IsAlive decides the outcome.
func (a *Actor) Hurt(n int) int {
	a.HP -= n
	return a.HP
}

// HasItem reports whether the inventory holds at least one id.
func (a *Actor) HasItem(id types.ItemID) bool {
	for _, it := range a.Inventory {
		if it == id {
			return true
		}
	}
	return false
}

// GiveItem appends an item to the inventory.
func (a *Actor) GiveItem(id types.ItemID) {
	a.Inventory = append(a.Inventory, id)
}

// PopItem removes the first copy of id. Returns false if none is held.
func (a *Actor) PopItem(id types.ItemID) bool {
	for i, it := range a.Inventory {
		if it == id {
			a.Inventory = append(a.Inventory[:i], a.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// State is the complete mutable game state.
type State struct {
	Player     *Actor
	Dealer     *Actor
	Shotgun    *shotgun.Shotgun
	Turn       *Actor
	Round      int
	StepCount  int
	Seed       int64
	Outcome    types.Outcome
	Transcript []string
}

// NewState seats both actors with the player to act first.
// The shotgun is left nil until the first load.
func NewState(player, dealer *Actor, seed int64) *State {
	return &State{
		Player:     player,
		Dealer:     dealer,
		Turn:       player,
		Round:      1,
		Seed:       seed,
		Transcript: []string{},
	}
}

// Other returns the opponent of a.
func (s *State) Other(a *Actor) *Actor {
	if a == s.Player {
		return s.Dealer
	}
	return s.Player
}

// ForgetCurrent clears both actors' knowledge of the chambered shell.
func (s *State) ForgetCurrent() {
	s.Player.Knowledge.Forget()
	s.Dealer.Knowledge.Forget()
}

// GameOver reports whether either actor is dead.
func (s *State) GameOver() bool {
	return !s.Player.IsAlive() || !s.Dealer.IsAlive()
}
