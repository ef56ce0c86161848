package slot

import (
	"math"
	"testing"
)

func newEngine(t *testing.T, cfg Config) (*SpinEngine, *Scheduler, *ControlLog) {
	t.Helper()
	sched := NewScheduler()
	log := NewControlLog(false)
	e, err := NewSpinEngine(cfg, sched, log)
	if err != nil {
		t.Fatalf("engine construction failed: %v", err)
	}
	return e, sched, log
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func stopTimes(log *ControlLog) []float64 {
	var out []float64
	for _, e := range log.Filter("spin", "reel_stop") {
		out = append(out, e.Time)
	}
	return out
}

// --- Phase machine ---

func TestSpin_PhaseSequence(t *testing.T) {
	e, sched, _ := newEngine(t, DefaultConfig())

	if !e.Spin() {
		t.Fatal("spin from idle must be accepted")
	}
	if e.Phase() != PhaseRequested {
		t.Fatalf("spin should land in requested before the next step, got %s", e.Phase())
	}

	sched.Advance(0)
	if e.Phase() != PhaseSpinning {
		t.Fatalf("zero-length advance should start reel motion, got %s", e.Phase())
	}

	// Full natural cycle: last reel at 2.8s, settle 0.2s.
	sched.Advance(2.8)
	if e.Phase() != PhaseSettling {
		t.Fatalf("after last reel expected settling, got %s", e.Phase())
	}
	sched.Advance(0.2)
	if e.Phase() != PhaseIdle {
		t.Fatalf("after settle expected idle, got %s", e.Phase())
	}
}

func TestSpin_RejectedOutsideIdle(t *testing.T) {
	e, sched, _ := newEngine(t, DefaultConfig())

	e.Spin()
	if e.Spin() {
		t.Fatal("spin during requested must be rejected")
	}
	sched.Advance(1.0)
	if e.Spin() {
		t.Fatal("spin during spinning must be rejected")
	}
	sched.Advance(10)
	if !e.Spin() {
		t.Fatal("spin after the cycle settles must be accepted again")
	}
}

func TestSpin_NaturalStagger(t *testing.T) {
	e, sched, log := newEngine(t, DefaultConfig())
	e.Spin()
	sched.Advance(5)

	stops := stopTimes(log)
	if len(stops) != 5 {
		t.Fatalf("expected 5 reel stops, got %d", len(stops))
	}
	// First reel at 60% of the duration, then evenly spread to 100%.
	if !approx(stops[0], 2.8*0.60) {
		t.Fatalf("reel 0 should stop at %.3f, got %.3f", 2.8*0.60, stops[0])
	}
	if !approx(stops[4], 2.8) {
		t.Fatalf("last reel should stop at the full duration, got %.3f", stops[4])
	}
	gap := 2.8 * 0.40 / 4
	for i := 1; i < len(stops); i++ {
		if !approx(stops[i]-stops[i-1], gap) {
			t.Fatalf("uneven stagger at reel %d: gap %.4f want %.4f", i, stops[i]-stops[i-1], gap)
		}
	}

	ends := log.Filter("spin", "cycle_end")
	if len(ends) != 1 || !approx(ends[0].NumVal, 3.0) {
		t.Fatalf("expected one cycle of 3.0s, got %+v", ends)
	}
}

func TestSpin_SingleReel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reels = 1
	e, sched, log := newEngine(t, cfg)
	e.Spin()
	sched.Advance(5)

	stops := stopTimes(log)
	if len(stops) != 1 || !approx(stops[0], 2.8*0.60) {
		t.Fatalf("single reel should stop at the stagger base, got %v", stops)
	}
	if e.Phase() != PhaseIdle {
		t.Fatalf("single-reel cycle should settle to idle, got %s", e.Phase())
	}
}

func TestNewSpinEngine_RejectsZeroReels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reels = 0
	if _, err := NewSpinEngine(cfg, NewScheduler(), NewControlLog(false)); err == nil {
		t.Fatal("zero reels must be a construction error")
	}
}

// --- Forced stop ---

func TestStop_ShortensAllPendingReels(t *testing.T) {
	e, sched, log := newEngine(t, DefaultConfig())
	e.Spin()
	sched.Advance(0.5)

	if !e.Stop() {
		t.Fatal("stop during spinning must be accepted")
	}
	if e.Phase() != PhaseStopping {
		t.Fatalf("expected stopping, got %s", e.Phase())
	}
	sched.Advance(5)

	stops := stopTimes(log)
	if len(stops) != 5 {
		t.Fatalf("expected 5 reel stops, got %d", len(stops))
	}
	// Each reel lands forceStopBase + i*forceStopStep after the stop.
	for i, st := range stops {
		want := 0.5 + 0.10 + 0.05*float64(i)
		if !approx(st, want) {
			t.Fatalf("reel %d should land at %.3f, got %.3f", i, want, st)
		}
	}

	ends := log.Filter("spin", "cycle_end")
	if len(ends) != 1 || !approx(ends[0].Time, 0.5+0.10+0.05*4+0.20) {
		t.Fatalf("forced cycle should settle at 1.0s, got %+v", ends)
	}
}

func TestStop_ReelsInsideThresholdKeepDeadline(t *testing.T) {
	e, sched, log := newEngine(t, DefaultConfig())
	e.Spin()
	// Reel 0 lands at 1.68; at t=1.5 only 0.18s remain, inside the
	// no-touch threshold.
	sched.Advance(1.5)
	e.Stop()
	sched.Advance(5)

	// Index by reel: reel 1 shortens to 1.65 and lands before reel 0.
	byReel := make(map[int]float64)
	for _, entry := range log.Filter("spin", "reel_stop") {
		byReel[int(entry.NumVal)] = entry.Time
	}
	if !approx(byReel[0], 1.68) {
		t.Fatalf("reel 0 was almost down and must keep its deadline, got %.3f", byReel[0])
	}
	if !approx(byReel[1], 1.65) {
		t.Fatalf("reel 1 should be shortened to 1.65, got %.3f", byReel[1])
	}
	// Reel 4 had 1.3s left and is pulled in to 1.5+0.30.
	if !approx(byReel[4], 1.8) {
		t.Fatalf("reel 4 should be shortened to 1.8, got %.3f", byReel[4])
	}
}

func TestStop_Idempotent(t *testing.T) {
	e, sched, _ := newEngine(t, DefaultConfig())
	e.Spin()
	sched.Advance(0.5)
	if !e.Stop() {
		t.Fatal("first stop must be accepted")
	}
	if e.Stop() {
		t.Fatal("second stop must be a no-op")
	}
}

func TestStop_IgnoredOutsideMotion(t *testing.T) {
	e, sched, _ := newEngine(t, DefaultConfig())
	if e.Stop() {
		t.Fatal("stop from idle must be ignored")
	}
	e.Spin()
	if e.Stop() {
		t.Fatal("stop during requested must be ignored")
	}
	sched.Advance(2.8) // settling now
	if e.Phase() != PhaseSettling {
		t.Fatalf("expected settling, got %s", e.Phase())
	}
	if e.Stop() {
		t.Fatal("stop during settling must be ignored")
	}
}

func TestStop_NeverPushesDeadlinesBack(t *testing.T) {
	e, sched, log := newEngine(t, DefaultConfig())
	e.Spin()
	// At 2.7s reels 0..3 are already down and reel 4 has 0.1s left,
	// which is under the threshold: a stop here changes nothing.
	sched.Advance(2.7)
	e.Stop()
	sched.Advance(5)

	stops := stopTimes(log)
	if !approx(stops[4], 2.8) {
		t.Fatalf("reel 4 must keep its natural 2.8s deadline, got %.3f", stops[4])
	}
}

// --- Speed modes ---

func TestSetSpeedMode_AppliesToNextCycleOnly(t *testing.T) {
	e, sched, log := newEngine(t, DefaultConfig())
	e.Spin()
	sched.Advance(0.5)
	e.SetSpeedMode(SpeedTurbo)
	sched.Advance(10)

	ends := log.Filter("spin", "cycle_end")
	if len(ends) != 1 || !approx(ends[0].NumVal, 3.0) {
		t.Fatalf("in-flight cycle must keep normal timing, got %+v", ends)
	}

	e.Spin()
	sched.Advance(10)
	ends = log.Filter("spin", "cycle_end")
	if len(ends) != 2 || !approx(ends[1].NumVal, 1.2+0.2) {
		t.Fatalf("turbo cycle should last 1.4s, got %+v", ends)
	}
}

// --- Queries ---

func TestShowsStopControl(t *testing.T) {
	cases := []struct {
		phase Phase
		want  bool
	}{
		{PhaseIdle, false},
		{PhaseRequested, false},
		{PhaseSpinning, true},
		{PhaseStopping, true},
		{PhaseSettling, false},
	}
	for _, c := range cases {
		if got := ShowsStopControl(c.phase); got != c.want {
			t.Fatalf("phase %s: expected %v, got %v", c.phase, c.want, got)
		}
	}
}

func TestReelStopped(t *testing.T) {
	e, sched, _ := newEngine(t, DefaultConfig())
	if !e.ReelStopped(0) {
		t.Fatal("with no cycle every reel is at rest")
	}
	e.Spin()
	sched.Advance(2.0) // reels 0 and 1 down (1.68, 1.96)
	if !e.ReelStopped(0) || !e.ReelStopped(1) {
		t.Fatal("reels 0 and 1 should be down at 2.0s")
	}
	if e.ReelStopped(2) {
		t.Fatal("reel 2 should still be moving at 2.0s")
	}
}
