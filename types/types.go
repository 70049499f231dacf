// Package types defines the shared data structures for the Tube Roulette engine.
// This package contains only type definitions, constants and their names.
package types

// Shell is the load of one chamber position.
// The zero value is ShellUnknown, used by knowledge slots; a loaded
// sequence only ever holds ShellLive or ShellBlank.
type Shell int

const (
	ShellUnknown Shell = iota
	ShellBlank
	ShellLive
)

func (s Shell) String() string {
	switch s {
	case ShellLive:
		return "LIVE"
	case ShellBlank:
		return "BLANK"
	default:
		return "UNKNOWN"
	}
}

// ItemID identifies an entry of the fixed item catalog.
type ItemID int

const (
	ItemNone ItemID = iota
	ItemMagnifyingGlass
	ItemBeer
	ItemHandcuffs
	ItemHandSaw
	ItemInverter
	ItemBurnerPhone
	ItemCigarette
	ItemAdrenaline
)

// AllItems lists every catalog item in catalog order.
var AllItems = []ItemID{
	ItemMagnifyingGlass,
	ItemBeer,
	ItemHandcuffs,
	ItemHandSaw,
	ItemInverter,
	ItemBurnerPhone,
	ItemCigarette,
	ItemAdrenaline,
}

// Target is the aim choice for a shot.
type Target int

const (
	TargetSelf Target = iota
	TargetOpponent
)

func (t Target) String() string {
	if t == TargetSelf {
		return "self"
	}
	return "opponent"
}

// Outcome is the result of a finished game.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePlayerWin
	OutcomeDealerWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayerWin:
		return "PLAYER_WIN"
	case OutcomeDealerWin:
		return "DEALER_WIN"
	default:
		return "NONE"
	}
}

// Intent is the parsed representation of a human input line.
type Intent struct {
	Verb   string // "use", "shoot", "done", or a meta verb
	Object string // item name, item number, or target word
}

// Event is emitted after every meaningful state change.
type Event struct {
	Type string
	Data map[string]any
}

// Event types.
const (
	EventRoundLoaded   = "round_loaded"
	EventItemsDealt    = "items_dealt"
	EventTurnSkipped   = "turn_skipped"
	EventItemUsed      = "item_used"
	EventItemStolen    = "item_stolen"
	EventShellRevealed = "shell_revealed"
	EventShellEjected  = "shell_ejected"
	EventShellInverted = "shell_inverted"
	EventActorCuffed   = "actor_cuffed"
	EventDamageBoosted = "damage_boosted"
	EventActorHealed   = "actor_healed"
	EventShotFired     = "shot_fired"
	EventActorDamaged  = "actor_damaged"
	EventTurnPassed    = "turn_passed"
	EventTurnRetained  = "turn_retained"
	EventGameOver      = "game_over"
)

// Result is the output of a single engine step.
type Result struct {
	Events []Event
	Output []string
}
