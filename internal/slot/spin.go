package slot

import (
	"fmt"

	"github.com/google/uuid"
)

// SpeedMode selects the reel timing constants for subsequent spin
// cycles. It never changes game outcome, only delays.
type SpeedMode int

const (
	SpeedNormal SpeedMode = iota
	SpeedQuick
	SpeedTurbo
)

var speedNames = [...]string{"normal", "quick", "turbo"}

func (m SpeedMode) String() string {
	if m < 0 || int(m) >= len(speedNames) {
		return "unknown"
	}
	return speedNames[m]
}

// Phase is the spin cycle state. The cycle is IDLE → REQUESTED →
// SPINNING → (STOPPING) → SETTLING → IDLE; there is no other terminal
// state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRequested
	PhaseSpinning
	PhaseStopping
	PhaseSettling
)

var phaseNames = [...]string{"idle", "requested", "spinning", "stopping", "settling"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Reel timing constants. Stagger places reel i's natural stop at
// dur*(staggerBase + staggerSpan*i/(n-1)); a forced stop shortens each
// still-pending reel timer to forceStopBase + forceStopStep*i seconds,
// but only when more than forceStopThreshold remains; reels already
// landing keep their natural deadline. The per-reel step keeps the
// shortened reels settling left to right.
const (
	staggerBase        = 0.60
	staggerSpan        = 0.40
	forceStopThreshold = 0.22
	forceStopBase      = 0.10
	forceStopStep      = 0.05
	settleSeconds      = 0.20
)

// SpinSession is one spin cycle's private state. Owned exclusively by
// the engine and discarded when the cycle returns to idle; the uuid
// lets late callbacks detect that their cycle is gone.
type SpinSession struct {
	id        uuid.UUID
	startedAt float64
	timers    []TimerID
	stopAt    []float64
	stopped   []bool
	forced    bool
}

// SpinEngine drives the single spin cycle. At most one cycle is active;
// Spin outside idle and Stop outside spinning/stopping are defensive
// no-ops, never errors; the UI's disabled skins are the first guard.
type SpinEngine struct {
	sched *Scheduler
	log   *ControlLog
	cfg   Config

	reels   int
	mode    SpeedMode
	phase   Phase
	session *SpinSession

	onCycleEnd []func(cycle uuid.UUID)
}

// NewSpinEngine validates the reel configuration; a zero-reel layout is
// a fatal configuration error, reported here and never at spin time.
func NewSpinEngine(cfg Config, sched *Scheduler, log *ControlLog) (*SpinEngine, error) {
	if cfg.Reels < 1 {
		return nil, fmt.Errorf("spin engine: reel count must be >= 1, got %d", cfg.Reels)
	}
	return &SpinEngine{
		sched: sched,
		log:   log,
		cfg:   cfg,
		reels: cfg.Reels,
		phase: PhaseIdle,
	}, nil
}

// OnCycleEnd registers a listener invoked each time a cycle settles
// back to idle, with the finished cycle's identity.
func (e *SpinEngine) OnCycleEnd(fn func(cycle uuid.UUID)) {
	e.onCycleEnd = append(e.onCycleEnd, fn)
}

// Phase returns the current cycle phase.
func (e *SpinEngine) Phase() Phase { return e.phase }

// Reels returns the reel count.
func (e *SpinEngine) Reels() int { return e.reels }

// SpeedMode returns the mode applied to subsequent cycles.
func (e *SpinEngine) SpeedMode() SpeedMode { return e.mode }

// SetSpeedMode changes the timing constants for cycles that have not
// started yet; a cycle already in flight keeps its schedule.
func (e *SpinEngine) SetSpeedMode(m SpeedMode) {
	if m == e.mode {
		return
	}
	e.mode = m
	e.log.Add(e.sched.Now(), "spin", "speed_mode", m.String(), 0)
}

// ShowsStopControl is the pure phase→control mapping for the visual
// Spin↔Stop swap: the Stop skin shows exactly while reels are moving.
func ShowsStopControl(p Phase) bool {
	return p == PhaseSpinning || p == PhaseStopping
}

// Spin requests a new cycle. Only accepted from idle; any other phase
// is a silent no-op and the return value reports acceptance. The reel
// motion itself starts on the next scheduler step, so the request is a
// real suspension point the event loop consumes.
func (e *SpinEngine) Spin() bool {
	if e.phase != PhaseIdle {
		e.log.AddVerbose(e.sched.Now(), "spin", "spin_rejected", "phase "+e.phase.String(), 0)
		return false
	}
	sess := &SpinSession{
		id:        uuid.New(),
		startedAt: e.sched.Now(),
		timers:    make([]TimerID, e.reels),
		stopAt:    make([]float64, e.reels),
		stopped:   make([]bool, e.reels),
	}
	e.session = sess
	e.setPhase(PhaseRequested)
	e.sched.After(0, func() { e.beginSpinning(sess) })
	return true
}

// beginSpinning starts reel motion and schedules every reel's natural
// stop timer with its stagger.
func (e *SpinEngine) beginSpinning(sess *SpinSession) {
	if e.session != sess {
		e.log.Add(e.sched.Now(), "spin", "stale_callback", "begin for superseded cycle", 0)
		return
	}
	e.setPhase(PhaseSpinning)
	dur := e.cfg.spinSeconds(e.mode)
	denom := e.reels - 1
	if denom < 1 {
		denom = 1
	}
	for i := 0; i < e.reels; i++ {
		reel := i
		delay := dur * (staggerBase + staggerSpan*float64(i)/float64(denom))
		sess.stopAt[i] = e.sched.Now() + delay
		sess.timers[i] = e.sched.After(delay, func() { e.reelStop(sess, reel) })
	}
}

// Stop requests a forced stop. Meaningful only while reels are moving;
// from idle, requested, or settling it is an idempotent no-op. It never
// interrupts motion synchronously: pending reel timers are shortened to
// the per-reel settle floor so each reel still decelerates through its
// settle animation rather than snapping to rest.
func (e *SpinEngine) Stop() bool {
	if e.phase != PhaseSpinning && e.phase != PhaseStopping {
		e.log.AddVerbose(e.sched.Now(), "spin", "stop_ignored", "phase "+e.phase.String(), 0)
		return false
	}
	sess := e.session
	if sess == nil || sess.forced {
		return false
	}
	sess.forced = true
	e.setPhase(PhaseStopping)
	now := e.sched.Now()
	for i := 0; i < e.reels; i++ {
		if sess.stopped[i] {
			continue
		}
		remaining := sess.stopAt[i] - now
		if remaining <= forceStopThreshold {
			continue
		}
		shortened := forceStopBase + forceStopStep*float64(i)
		if e.sched.ShortenTo(sess.timers[i], shortened) {
			sess.stopAt[i] = now + shortened
			e.log.AddVerbose(now, "spin", "reel_shortened", fmt.Sprintf("reel %d", i), shortened)
		}
	}
	e.log.Add(now, "spin", "force_stop", "", 0)
	return true
}

// reelStop fires when one reel's stop timer elapses, naturally or
// shortened. The last reel entering rest moves the cycle to settling.
func (e *SpinEngine) reelStop(sess *SpinSession, reel int) {
	if e.session != sess {
		e.log.Add(e.sched.Now(), "spin", "stale_callback", fmt.Sprintf("reel %d of superseded cycle", reel), 0)
		return
	}
	sess.stopped[reel] = true
	e.log.Add(e.sched.Now(), "spin", "reel_stop", fmt.Sprintf("reel %d", reel), float64(reel))
	for _, done := range sess.stopped {
		if !done {
			return
		}
	}
	e.setPhase(PhaseSettling)
	e.sched.After(settleSeconds, func() { e.finishCycle(sess) })
}

// finishCycle ends result presentation and frees the engine for the
// next spin. Completion listeners run after the phase change so a
// listener may immediately request a new cycle.
func (e *SpinEngine) finishCycle(sess *SpinSession) {
	if e.session != sess {
		e.log.Add(e.sched.Now(), "spin", "stale_callback", "settle for superseded cycle", 0)
		return
	}
	e.session = nil
	e.setPhase(PhaseIdle)
	e.log.Add(e.sched.Now(), "spin", "cycle_end", sess.id.String(), e.sched.Now()-sess.startedAt)
	for _, fn := range e.onCycleEnd {
		fn(sess.id)
	}
}

// ReelStopped reports whether reel i has come to rest in the current
// cycle. With no cycle active every reel is at rest.
func (e *SpinEngine) ReelStopped(i int) bool {
	if e.session == nil || i < 0 || i >= e.reels {
		return true
	}
	if e.phase == PhaseRequested {
		return true
	}
	return e.session.stopped[i]
}

// ForcedStop reports whether the current cycle had a forced stop.
func (e *SpinEngine) ForcedStop() bool {
	return e.session != nil && e.session.forced
}

func (e *SpinEngine) setPhase(p Phase) {
	if p == e.phase {
		return
	}
	prev := e.phase
	e.phase = p
	e.log.Add(e.sched.Now(), "spin", "phase_change", prev.String()+" -> "+p.String(), 0)
}
