package engine

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nathoo/tuberoulette/engine/state"
	"github.com/nathoo/tuberoulette/types"
)

// resolveShot fires the chambered shell at target. It reports whether the
// shooter keeps the turn, which only happens on a blank aimed at self.
func (e *Engine) resolveShot(shooter, target *state.Actor) (bool, error) {
	s := e.State
	pos := s.Shotgun.Cursor()
	shell, err := s.Shotgun.Fire()
	if err != nil {
		return false, errors.Wrap(ErrInvariant, err.Error())
	}
	s.ForgetCurrent()

	mult := shooter.DmgMult
	if mult < 1 {
		mult = 1
	}
	shooter.DmgMult = 1

	self := shooter == target
	aimedAt := target.Name
	if self {
		aimedAt = "self"
	}

	e.emit(types.EventShotFired, map[string]any{
		"shooter": shooter.Name, "target": target.Name, "position": pos, "shell": shell.String(),
	})
	e.Log.WithFields(logrus.Fields{
		"shooter": shooter.Name, "target": target.Name, "shell": shell.String(), "mult": mult,
	}).Debug("shot fired")

	if shell == types.ShellLive {
		hp := target.Hurt(mult)
		e.narrate(fmt.Sprintf("[%s] fires at %s → LIVE! %s takes %d damage (HP=%d).",
			shooter.Name, aimedAt, target.Name, mult, hp))
		e.emit(types.EventActorDamaged, map[string]any{"actor": target.Name, "amount": mult, "hp": hp})
		return false, nil
	}

	e.narrate(fmt.Sprintf("[%s] fires at %s → BLANK.", shooter.Name, aimedAt))
	if self {
		e.narrate(fmt.Sprintf("[%s] keeps the turn.", shooter.Name))
	}
	return self, nil
}
