// Package ai implements the dealer's heuristic: one fixed pass of item
// checks per turn, then a target choice from knowledge or shell odds.
package ai

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/tuberoulette/engine/items"
	"github.com/nathoo/tuberoulette/engine/state"
	"github.com/nathoo/tuberoulette/types"
)

// Usage probabilities and thresholds of the dealer heuristic.
const (
	ChanceCigarette = 0.5
	ChanceGlass     = 0.35
	ChanceSaw       = 0.5
	ChanceBeer      = 0.15
	ChanceCuffs     = 0.25

	AggressiveOdds = 0.6 // p_live at which saw and cuffs become attractive
	ShootOpponent  = 0.5 // p_live at which the dealer aims across the table
	BeerMinShells  = 2   // beer only when more than this many shells remain
)

// Random is the subset of the game RNG the policy draws from.
type Random interface {
	Float64() float64
}

// UseFunc removes id from the dealer's inventory and applies its effect.
type UseFunc func(id types.ItemID)

// Policy is the dealer's decision procedure.
type Policy struct {
	Log logrus.FieldLogger
}

// New returns a policy logging through log. A nil log discards output.
func New(log logrus.FieldLogger) *Policy {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Policy{Log: log}
}

// PLive is the chance the chambered shell is live, from remaining counts.
func PLive(live, blank int) float64 {
	total := live + blank
	if total < 1 {
		total = 1
	}
	return float64(live) / float64(total)
}

// UseItems runs the five item checks once, in fixed order. A random draw
// is made only when a check's preconditions hold, so seeded games replay
// exactly. Returns the items used, in order.
func (p *Policy) UseItems(s *state.State, self *state.Actor, rng Random, use UseFunc) []types.ItemID {
	var used []types.ItemID
	live, blank := s.Shotgun.Counts()
	pLive := PLive(live, blank)

	log := p.Log.WithFields(logrus.Fields{
		"actor": self.Name, "round": s.Round, "live": live, "blank": blank,
	})
	log.WithField("p_live", pLive).Debug("dealer weighing items")

	try := func(id types.ItemID, chance float64) bool {
		roll := rng.Float64()
		if roll >= chance {
			log.WithFields(logrus.Fields{"item": items.Name(id), "roll": roll, "chance": chance}).Debug("dealer holds item")
			return false
		}
		log.WithFields(logrus.Fields{"item": items.Name(id), "roll": roll, "chance": chance}).Debug("dealer uses item")
		use(id)
		used = append(used, id)
		return true
	}

	if self.HP < self.MaxHP && self.HasItem(types.ItemCigarette) {
		try(types.ItemCigarette, ChanceCigarette)
	}

	if self.Knowledge.Current == types.ShellUnknown && self.HasItem(types.ItemMagnifyingGlass) {
		if try(types.ItemMagnifyingGlass, ChanceGlass) {
			switch self.Knowledge.Current {
			case types.ShellLive:
				pLive = 1.0
			case types.ShellBlank:
				pLive = 0.0
			}
			log.WithField("p_live", pLive).Debug("dealer odds after glass")
		}
	}

	if pLive >= AggressiveOdds && self.HasItem(types.ItemHandSaw) {
		try(types.ItemHandSaw, ChanceSaw)
	}

	if s.Shotgun.Remaining() > BeerMinShells && self.HasItem(types.ItemBeer) {
		try(types.ItemBeer, ChanceBeer)
	}

	if pLive >= AggressiveOdds && self.HasItem(types.ItemHandcuffs) {
		try(types.ItemHandcuffs, ChanceCuffs)
	}

	return used
}

// ChooseTarget aims from certain knowledge first, then from the odds.
func (p *Policy) ChooseTarget(s *state.State, self *state.Actor) types.Target {
	var target types.Target
	var reason string

	switch self.Knowledge.Current {
	case types.ShellLive:
		target, reason = types.TargetOpponent, "knows live"
	case types.ShellBlank:
		target, reason = types.TargetSelf, "knows blank"
	default:
		live, blank := s.Shotgun.Counts()
		if PLive(live, blank) >= ShootOpponent {
			target, reason = types.TargetOpponent, "odds favour live"
		} else {
			target, reason = types.TargetSelf, "odds favour blank"
		}
	}

	p.Log.WithFields(logrus.Fields{
		"actor": self.Name, "target": target.String(), "reason": reason,
	}).Debug("dealer aims")
	return target
}
