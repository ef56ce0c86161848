package slot

import (
	"fmt"

	"github.com/google/uuid"
)

// Gap between an autoplay cycle settling and the next spin request.
const (
	autoNextDelay      = 0.25
	autoNextDelayTurbo = 0.12
)

// AutoplaySession is one bounded run of automatic spins. Created on
// start, destroyed when the count runs out or a stop request is
// observed after the in-flight cycle completes.
type AutoplaySession struct {
	id            uuid.UUID
	remaining     int
	stopRequested bool
}

// AutoplayController chains spin cycles on top of the engine, bounded
// by a selected count and speed mode. It owns the session's lifetime;
// the engine only reports cycle completions.
type AutoplayController struct {
	sched  *Scheduler
	log    *ControlLog
	engine *SpinEngine

	counts   []int
	selected int // chosen denomination, 0 = none yet
	session  *AutoplaySession
}

func NewAutoplayController(cfg Config, engine *SpinEngine, sched *Scheduler, log *ControlLog) *AutoplayController {
	a := &AutoplayController{
		sched:  sched,
		log:    log,
		engine: engine,
		counts: cfg.AutoplayCounts,
	}
	engine.OnCycleEnd(a.onCycleEnd)
	return a
}

// Counts returns the configured count denominations.
func (a *AutoplayController) Counts() []int { return a.counts }

// Selected returns the currently selected count denomination.
func (a *AutoplayController) Selected() int { return a.selected }

// Active reports whether an autoplay session exists. A session whose
// stop was requested stays active until its in-flight cycle settles.
func (a *AutoplayController) Active() bool { return a.session != nil }

// Remaining returns the number of cycles the session will still
// trigger, 0 when no session is active.
func (a *AutoplayController) Remaining() int {
	if a.session == nil {
		return 0
	}
	return a.session.remaining
}

// SelectCount picks a count denomination. While a session is running
// the selection restarts its remaining count in place rather than
// stacking a second session.
func (a *AutoplayController) SelectCount(n int) {
	if n <= 0 {
		return
	}
	a.selected = n
	if a.session != nil {
		a.session.remaining = n
		a.log.Add(a.sched.Now(), "auto", "count_restart", "", float64(n))
		return
	}
	a.log.Add(a.sched.Now(), "auto", "count_select", "", float64(n))
}

// SetSpeedMode forwards the mode to the engine; it applies to cycles
// that have not started yet.
func (a *AutoplayController) SetSpeedMode(m SpeedMode) {
	a.engine.SetSpeedMode(m)
}

// Start begins a session of count cycles at the given speed. Rejected
// while a spin cycle or another session is active; the return value
// reports acceptance.
func (a *AutoplayController) Start(count int, mode SpeedMode) bool {
	if count <= 0 {
		return false
	}
	if a.session != nil {
		a.log.AddVerbose(a.sched.Now(), "auto", "start_rejected", "session active", 0)
		return false
	}
	if a.engine.Phase() != PhaseIdle {
		a.log.AddVerbose(a.sched.Now(), "auto", "start_rejected", "spin cycle active", 0)
		return false
	}
	a.engine.SetSpeedMode(mode)
	a.session = &AutoplaySession{id: uuid.New(), remaining: count}
	a.log.Add(a.sched.Now(), "auto", "session_start", mode.String(), float64(count))
	a.triggerSpin(a.session)
	return true
}

// Stop flags the session to end. The in-flight cycle runs to
// completion (any manual forced stop acts on the engine independently);
// the session dies once the cycle reaches idle.
func (a *AutoplayController) Stop() {
	if a.session == nil {
		return
	}
	a.session.stopRequested = true
	a.log.Add(a.sched.Now(), "auto", "stop_requested", "", float64(a.session.remaining))
}

// onCycleEnd runs on every engine cycle completion. It schedules the
// next automatic spin after a short gap, or destroys the session when
// the count is exhausted or a stop was requested.
func (a *AutoplayController) onCycleEnd(cycle uuid.UUID) {
	sess := a.session
	if sess == nil {
		return
	}
	if sess.stopRequested {
		a.endSession("stopped")
		return
	}
	if sess.remaining <= 0 {
		a.endSession("count exhausted")
		return
	}
	delay := autoNextDelay
	if a.engine.SpeedMode() == SpeedTurbo {
		delay = autoNextDelayTurbo
	}
	id := sess.id
	a.sched.After(delay, func() { a.autoNext(id) })
}

// autoNext triggers the next cycle of the identified session. Identity
// is checked first so a duplicate or superseded completion callback is
// a no-op rather than a double spin.
func (a *AutoplayController) autoNext(id uuid.UUID) {
	sess := a.session
	if sess == nil || sess.id != id {
		a.log.Add(a.sched.Now(), "auto", "stale_callback", "next-spin for superseded session", 0)
		return
	}
	if sess.stopRequested {
		a.endSession("stopped")
		return
	}
	if a.engine.Phase() != PhaseIdle {
		// A manual spin slipped into the gap; the session resumes when
		// that cycle completes.
		a.log.AddVerbose(a.sched.Now(), "auto", "next_deferred", "engine busy", 0)
		return
	}
	a.triggerSpin(sess)
}

// triggerSpin requests one cycle and consumes one unit of the count.
func (a *AutoplayController) triggerSpin(sess *AutoplaySession) {
	if !a.engine.Spin() {
		return
	}
	sess.remaining--
	a.log.Add(a.sched.Now(), "auto", "cycle_trigger", fmt.Sprintf("remaining %d", sess.remaining), float64(sess.remaining))
}

func (a *AutoplayController) endSession(reason string) {
	a.log.Add(a.sched.Now(), "auto", "session_end", reason, 0)
	a.session = nil
}
