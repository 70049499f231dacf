// Package shotgun models the tube-fed shell sequence of one round.
package shotgun

import (
	"github.com/pkg/errors"

	"github.com/nathoo/tuberoulette/types"
)

// ErrEmpty is returned when a shell is requested from an exhausted tube.
var ErrEmpty = errors.New("empty magazine")

// Random is the subset of the game RNG needed to load a tube.
type Random interface {
	IntRange(lo, hi int) int
	Shuffle(n int, swap func(i, j int))
}

// Shotgun holds the hidden shell order and the firing cursor.
// The cursor only moves forward.
type Shotgun struct {
	shells []types.Shell
	cursor int
}

// Load builds a random tube of N shells, N uniform in [minShells, maxShells],
// with a live count uniform in [1, N-1] so both kinds are always present.
func Load(rng Random, minShells, maxShells int) *Shotgun {
	n := rng.IntRange(minShells, maxShells)
	live := rng.IntRange(1, n-1)

	shells := make([]types.Shell, n)
	for i := range shells {
		if i < live {
			shells[i] = types.ShellLive
		} else {
			shells[i] = types.ShellBlank
		}
	}
	rng.Shuffle(n, func(i, j int) {
		shells[i], shells[j] = shells[j], shells[i]
	})
	return &Shotgun{shells: shells}
}

// New returns a tube loaded with exactly the given shells, in order.
func New(shells ...types.Shell) *Shotgun {
	cp := make([]types.Shell, len(shells))
	copy(cp, shells)
	return &Shotgun{shells: cp}
}

// Len returns the number of shells loaded this round.
func (g *Shotgun) Len() int { return len(g.shells) }

// Cursor returns the absolute index of the chambered shell.
func (g *Shotgun) Cursor() int { return g.cursor }

// Remaining returns how many shells are left to fire.
func (g *Shotgun) Remaining() int { return len(g.shells) - g.cursor }

// Counts returns the live and blank shells at or after the cursor.
func (g *Shotgun) Counts() (live, blank int) {
	for _, s := range g.shells[g.cursor:] {
		if s == types.ShellLive {
			live++
		} else {
			blank++
		}
	}
	return live, blank
}

// Peek returns the chambered shell without moving the cursor.
func (g *Shotgun) Peek() (types.Shell, error) {
	if g.Remaining() <= 0 {
		return types.ShellUnknown, ErrEmpty
	}
	return g.shells[g.cursor], nil
}

// At returns the shell at an absolute position that has not been fired yet.
func (g *Shotgun) At(pos int) (types.Shell, error) {
	if pos < g.cursor || pos >= len(g.shells) {
		return types.ShellUnknown, errors.Errorf("position %d outside live range [%d,%d)", pos, g.cursor, len(g.shells))
	}
	return g.shells[pos], nil
}

// Fire returns the chambered shell and advances the cursor.
func (g *Shotgun) Fire() (types.Shell, error) {
	if g.cursor >= len(g.shells) {
		return types.ShellUnknown, errors.WithStack(ErrEmpty)
	}
	s := g.shells[g.cursor]
	g.cursor++
	return s, nil
}

// Eject racks the chambered shell out without firing it.
func (g *Shotgun) Eject() (types.Shell, error) {
	return g.Fire()
}

// Invert flips the chambered shell between live and blank.
// It does nothing on an empty tube.
func (g *Shotgun) Invert() {
	if g.cursor >= len(g.shells) {
		return
	}
	if g.shells[g.cursor] == types.ShellLive {
		g.shells[g.cursor] = types.ShellBlank
	} else {
		g.shells[g.cursor] = types.ShellLive
	}
}
