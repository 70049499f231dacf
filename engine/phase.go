package engine

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// Turn phases. A step always starts and ends in phaseIdle unless the
// game ends.
const (
	phaseIdle        = "idle"
	phaseSkipCheck   = "skip_check"
	phaseReloadCheck = "reload_check"
	phaseItems       = "item_phase"
	phaseAiming      = "aiming"
	phaseResolving   = "resolving"
	phaseGameOver    = "game_over"
)

// Phase events.
const (
	evBegin   = "begin"
	evSkip    = "skip"
	evProceed = "proceed"
	evReload  = "reload"
	evArm     = "arm"
	evStall   = "stall"
	evAim     = "aim"
	evFire    = "fire"
	evSettle  = "settle"
	evFinish  = "finish"
)

// newPhaseMachine builds the turn state machine. Every legal move is a
// listed event; anything else is an invariant violation.
func newPhaseMachine(log logrus.FieldLogger) *fsm.FSM {
	return fsm.NewFSM(
		phaseIdle,
		fsm.Events{
			{Name: evBegin, Src: []string{phaseIdle}, Dst: phaseSkipCheck},
			{Name: evSkip, Src: []string{phaseSkipCheck}, Dst: phaseIdle},
			{Name: evProceed, Src: []string{phaseSkipCheck}, Dst: phaseReloadCheck},
			{Name: evReload, Src: []string{phaseReloadCheck}, Dst: phaseIdle},
			{Name: evArm, Src: []string{phaseReloadCheck}, Dst: phaseItems},
			{Name: evStall, Src: []string{phaseItems}, Dst: phaseIdle},
			{Name: evAim, Src: []string{phaseItems}, Dst: phaseAiming},
			{Name: evFire, Src: []string{phaseAiming}, Dst: phaseResolving},
			{Name: evSettle, Src: []string{phaseResolving}, Dst: phaseIdle},
			{Name: evFinish, Src: []string{phaseResolving}, Dst: phaseGameOver},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.WithFields(logrus.Fields{"event": e.Event, "from": e.Src, "to": e.Dst}).Trace("phase")
			},
		},
	)
}
