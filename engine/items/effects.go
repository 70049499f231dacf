package items

import (
	"fmt"

	"github.com/nathoo/tuberoulette/engine/state"
	"github.com/nathoo/tuberoulette/types"
)

// Random is the subset of the game RNG used by item effects.
type Random interface {
	IntRange(lo, hi int) int
}

// StealChooser lets a human pick which item Adrenaline takes.
type StealChooser interface {
	ChooseSteal(victim *state.Actor, prompt string) (types.ItemID, bool)
}

// Env carries the shared state an effect may read and mutate.
type Env struct {
	State *state.State
	RNG   Random
	Steal StealChooser // consulted only when a human uses Adrenaline
}

// Apply resolves one item's effect. The caller has already removed the
// item from the user's inventory. Returns events emitted and narration.
// Inapplicable effects are narrated no-ops, never errors.
func Apply(env Env, id types.ItemID, user, target *state.Actor) ([]types.Event, []string) {
	var events []types.Event
	var output []string
	gun := env.State.Shotgun

	events = append(events, types.Event{
		Type: types.EventItemUsed,
		Data: map[string]any{"item": Name(id), "user": user.Name, "target": target.Name},
	})

	switch id {
	case types.ItemMagnifyingGlass:
		shell, err := gun.Peek()
		if err != nil {
			output = append(output, fmt.Sprintf("[%s] squints through the Magnifying Glass, but the chamber is empty.", user.Name))
			break
		}
		user.Knowledge.Current = shell
		events = append(events, types.Event{
			Type: types.EventShellRevealed,
			Data: map[string]any{"to": user.Name, "position": gun.Cursor(), "shell": shell.String()},
		})
		if user.AI {
			output = append(output, fmt.Sprintf("[%s] uses Magnifying Glass → studies the chambered shell.", user.Name))
		} else {
			output = append(output, fmt.Sprintf("[%s] uses Magnifying Glass → Current shell is %s.", user.Name, shell))
		}

	case types.ItemBeer:
		if gun.Remaining() == 0 {
			output = append(output, fmt.Sprintf("[%s] tries Beer, but the gun is empty.", user.Name))
			break
		}
		pos := gun.Cursor()
		shell, err := gun.Eject()
		if err != nil {
			break
		}
		// The next shell is a fresh unknown for both sides.
		env.State.ForgetCurrent()
		events = append(events, types.Event{
			Type: types.EventShellEjected,
			Data: map[string]any{"by": user.Name, "position": pos, "shell": shell.String()},
		})
		output = append(output, fmt.Sprintf("[Beer] %s racks the shotgun → Ejected %s.", user.Name, shell))

	case types.ItemHandcuffs:
		target.SkipNext = true
		events = append(events, types.Event{
			Type: types.EventActorCuffed,
			Data: map[string]any{"by": user.Name, "target": target.Name},
		})
		output = append(output, fmt.Sprintf("[%s] slaps Handcuffs → %s's next turn is skipped.", user.Name, target.Name))

	case types.ItemHandSaw:
		user.DmgMult = 2
		events = append(events, types.Event{
			Type: types.EventDamageBoosted,
			Data: map[string]any{"actor": user.Name, "mult": user.DmgMult},
		})
		output = append(output, fmt.Sprintf("[%s] uses Hand Saw → Next live shot deals DOUBLE damage.", user.Name))

	case types.ItemInverter:
		gun.Invert()
		if user.Knowledge.Current != types.ShellUnknown {
			user.Knowledge.Current = flip(user.Knowledge.Current)
		}
		// A phone reveal that has reached the chamber flips too.
		if s, ok := user.Knowledge.Positions[gun.Cursor()]; ok {
			user.Knowledge.Positions[gun.Cursor()] = flip(s)
		}
		events = append(events, types.Event{
			Type: types.EventShellInverted,
			Data: map[string]any{"by": user.Name, "position": gun.Cursor()},
		})
		output = append(output, fmt.Sprintf("[%s] flips the polarity with Inverter → Current shell toggled.", user.Name))

	case types.ItemBurnerPhone:
		rem := gun.Remaining()
		if rem <= 1 {
			output = append(output, fmt.Sprintf("[%s] uses Burner Phone → 'How unfortunate...' (only one shell left).", user.Name))
			break
		}
		offset := env.RNG.IntRange(1, rem-1)
		pos := gun.Cursor() + offset
		shell, err := gun.At(pos)
		if err != nil {
			break
		}
		user.Knowledge.Learn(pos, shell)
		events = append(events, types.Event{
			Type: types.EventShellRevealed,
			Data: map[string]any{"to": user.Name, "position": pos, "offset": offset, "shell": shell.String()},
		})
		if user.AI {
			output = append(output, fmt.Sprintf("[Burner Phone] A voice whispers something to %s.", user.Name))
		} else {
			output = append(output, fmt.Sprintf("[Burner Phone] A voice whispers: 'Shell %d is %s.'", offset+1, shell))
		}

	case types.ItemCigarette:
		before := user.HP
		user.Heal(1)
		events = append(events, types.Event{
			Type: types.EventActorHealed,
			Data: map[string]any{"actor": user.Name, "from": before, "to": user.HP},
		})
		output = append(output, fmt.Sprintf("[%s] smokes → +1 HP (%d→%d).", user.Name, before, user.HP))

	case types.ItemAdrenaline:
		if len(target.Inventory) == 0 {
			output = append(output, fmt.Sprintf("[%s] uses Adrenaline → Nothing to steal.", user.Name))
			break
		}
		stolen, ok := chooseSteal(env, user, target)
		if !ok || !target.PopItem(stolen) {
			output = append(output, fmt.Sprintf("[%s] cancels the steal.", user.Name))
			break
		}
		events = append(events, types.Event{
			Type: types.EventItemStolen,
			Data: map[string]any{"item": Name(stolen), "by": user.Name, "from": target.Name},
		})
		output = append(output, fmt.Sprintf("[Adrenaline] %s steals %s from %s and uses it!", user.Name, Name(stolen), target.Name))
		// Stolen items are used on the spot and never return to an inventory.
		evts, out := Apply(env, stolen, user, target)
		events = append(events, evts...)
		output = append(output, out...)

	default:
		output = append(output, fmt.Sprintf("[%s] fumbles with an unknown item.", user.Name))
	}

	return events, output
}

// chooseSteal picks the item Adrenaline takes: the human decides,
// the dealer grabs one at random.
func chooseSteal(env Env, user, target *state.Actor) (types.ItemID, bool) {
	if !user.AI && env.Steal != nil {
		return env.Steal.ChooseSteal(target, "Choose an item to steal and use now")
	}
	idx := env.RNG.IntRange(0, len(target.Inventory)-1)
	return target.Inventory[idx], true
}

func flip(s types.Shell) types.Shell {
	if s == types.ShellLive {
		return types.ShellBlank
	}
	return types.ShellLive
}
