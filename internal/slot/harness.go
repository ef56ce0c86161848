package slot

// TestPanel is a headless harness used by tests and the report tool.
// It drives the control runtime on a virtual clock with no Ebiten
// dependency and keeps the structured log for assertions.
type TestPanel struct {
	Panel *ControlPanelPresenter
	Sched *Scheduler
	Log   *ControlLog

	cfg   Config
	stems map[string]string
}

// panelOptionKind controls the pass in which an option is applied.
type panelOptionKind int

const (
	panelOptConfig panelOptionKind = iota // config fields, verbose, skins — applied first
	panelOptSetup                         // actions against the built panel
)

// PanelOption is a builder function applied to a TestPanel during construction.
type PanelOption struct {
	kind panelOptionKind
	fn   func(*TestPanel)
}

// WithReels sets the reel count.
func WithReels(n int) PanelOption {
	return PanelOption{panelOptConfig, func(tp *TestPanel) {
		tp.cfg.Reels = n
	}}
}

// WithBetLevels sets the bet denominations and bounds from their extremes.
func WithBetLevels(levels ...int) PanelOption {
	return PanelOption{panelOptConfig, func(tp *TestPanel) {
		tp.cfg.BetLevels = levels
		if len(levels) > 0 {
			tp.cfg.BetMin = levels[0]
			tp.cfg.BetMax = levels[len(levels)-1]
		}
	}}
}

// WithAutoplayCounts sets the selectable session counts.
func WithAutoplayCounts(counts ...int) PanelOption {
	return PanelOption{panelOptConfig, func(tp *TestPanel) {
		tp.cfg.AutoplayCounts = counts
	}}
}

// WithSpinSeconds sets the normal/quick/turbo spin durations.
func WithSpinSeconds(normal, quick, turbo float64) PanelOption {
	return PanelOption{panelOptConfig, func(tp *TestPanel) {
		tp.cfg.SpinSecondsNormal = normal
		tp.cfg.SpinSecondsQuick = quick
		tp.cfg.SpinSecondsTurbo = turbo
	}}
}

// WithVerbose enables verbose logging.
func WithVerbose(v bool) PanelOption {
	return PanelOption{panelOptConfig, func(tp *TestPanel) {
		tp.Log = NewControlLog(v)
	}}
}

// WithSkin registers one uploaded skin stem.
func WithSkin(stem, path string) PanelOption {
	return PanelOption{panelOptConfig, func(tp *TestPanel) {
		if tp.stems == nil {
			tp.stems = make(map[string]string)
		}
		tp.stems[stem] = path
	}}
}

// WithSpeedMode sets the starting speed mode on the built panel.
func WithSpeedMode(m SpeedMode) PanelOption {
	return PanelOption{panelOptSetup, func(tp *TestPanel) {
		tp.Panel.Engine().SetSpeedMode(m)
	}}
}

// NewTestPanel constructs a TestPanel from the given options in two
// ordered passes: config first, then setup actions against the built
// panel. Invalid configs panic; harness callers control their inputs.
func NewTestPanel(opts ...PanelOption) *TestPanel {
	tp := &TestPanel{
		Sched: NewScheduler(),
		Log:   NewControlLog(false),
		cfg:   DefaultConfig(),
	}
	for _, o := range opts {
		if o.kind == panelOptConfig {
			o.fn(tp)
		}
	}
	panel, err := NewControlPanel(tp.cfg, NewManifest(tp.stems), tp.Sched, tp.Log)
	if err != nil {
		panic("slot: bad harness config: " + err.Error())
	}
	tp.Panel = panel
	for _, o := range opts {
		if o.kind == panelOptSetup {
			o.fn(tp)
		}
	}
	return tp
}

// Config returns the effective config.
func (tp *TestPanel) Config() Config { return tp.cfg }

// Advance moves the virtual clock forward by dt seconds.
func (tp *TestPanel) Advance(dt float64) {
	tp.Sched.Advance(dt)
}

// RunUntilIdle advances until the engine returns to idle with no
// pending timers, up to maxSeconds. Returns the time at which idle was
// reached, or -1 if it never was. Advances one pending deadline at a
// time so every scheduled event fires at its exact virtual time.
func (tp *TestPanel) RunUntilIdle(maxSeconds float64) float64 {
	deadline := tp.Sched.Now() + maxSeconds
	for {
		if tp.Panel.Engine().Phase() == PhaseIdle && tp.Sched.Pending() == 0 {
			return tp.Sched.Now()
		}
		wait, ok := tp.Sched.NextDue()
		if !ok || tp.Sched.Now()+wait > deadline {
			return -1
		}
		tp.Sched.Advance(wait)
	}
}

// RunUntil advances deadline by deadline up to maxSeconds, stopping
// early when the predicate holds. Returns the satisfying time, or -1.
func (tp *TestPanel) RunUntil(predicate func(*TestPanel) bool, maxSeconds float64) float64 {
	deadline := tp.Sched.Now() + maxSeconds
	if predicate(tp) {
		return tp.Sched.Now()
	}
	for {
		wait, ok := tp.Sched.NextDue()
		if !ok || tp.Sched.Now()+wait > deadline {
			return -1
		}
		tp.Sched.Advance(wait)
		if predicate(tp) {
			return tp.Sched.Now()
		}
	}
}

// ReelStops returns the recorded stop times of the most recent cycle,
// indexed by reel.
func (tp *TestPanel) ReelStops() []float64 {
	stops := make([]float64, 0, tp.cfg.Reels)
	entries := tp.Log.Filter("spin", "reel_stop")
	// Walk backwards collecting the last full set.
	start := len(entries) - tp.cfg.Reels
	if start < 0 {
		start = 0
	}
	for _, e := range entries[start:] {
		stops = append(stops, e.Time)
	}
	return stops
}
