package engine

import (
	"sort"

	"github.com/nathoo/tuberoulette/engine/items"
	"github.com/nathoo/tuberoulette/engine/state"
	"github.com/nathoo/tuberoulette/types"
)

// Seat is the public view of one actor.
type Seat struct {
	Name     string
	HP       int
	MaxHP    int
	Items    []string
	Cuffed   bool
	SawReady bool
}

// KnownShell is a shell the human has learned, by 1-based offset from the
// chamber (1 is the chambered shell).
type KnownShell struct {
	Offset int
	Shell  types.Shell
}

// Board is a display snapshot. It holds no references into live state, so
// it can be handed to another goroutine.
type Board struct {
	Round     int
	Step      int
	Remaining int
	Live      int
	Blank     int
	Turn      string
	Player    Seat
	Dealer    Seat
	Known     []KnownShell // the human's knowledge only
	Seed      int64
	Draws     int64
	Outcome   types.Outcome
}

// Board returns a snapshot of what the human may see.
func (e *Engine) Board() Board {
	s := e.State
	live, blank := s.Shotgun.Counts()
	b := Board{
		Round:     s.Round,
		Step:      s.StepCount,
		Remaining: s.Shotgun.Remaining(),
		Live:      live,
		Blank:     blank,
		Turn:      s.Turn.Name,
		Player:    seat(s.Player),
		Dealer:    seat(s.Dealer),
		Seed:      s.Seed,
		Draws:     e.RNG.Position(),
		Outcome:   s.Outcome,
	}

	cursor := s.Shotgun.Cursor()
	k := s.Player.Knowledge
	if k.Current != types.ShellUnknown && b.Remaining > 0 {
		b.Known = append(b.Known, KnownShell{Offset: 1, Shell: k.Current})
	}
	for pos, sh := range k.Upcoming(cursor) {
		if pos == cursor && k.Current != types.ShellUnknown {
			continue
		}
		b.Known = append(b.Known, KnownShell{Offset: pos - cursor + 1, Shell: sh})
	}
	sort.Slice(b.Known, func(i, j int) bool { return b.Known[i].Offset < b.Known[j].Offset })
	return b
}

func seat(a *state.Actor) Seat {
	return Seat{
		Name:     a.Name,
		HP:       a.HP,
		MaxHP:    a.MaxHP,
		Items:    items.Names(a.Inventory),
		Cuffed:   a.SkipNext,
		SawReady: a.DmgMult > 1,
	}
}
