package slot

// TimerID identifies a pending scheduled callback. The zero value is
// never issued, so it can be used as "no timer".
type TimerID int

type timer struct {
	id  TimerID
	due float64 // absolute virtual time in seconds
	seq int     // insertion order, breaks ties between equal due times
	fn  func()
}

// Scheduler is a single-threaded virtual-time event queue. All game
// timers (reel stops, settle delays, autoplay gaps) live here; the
// ebiten frame loop advances it by one frame's worth of seconds, tests
// and the headless runner advance it directly. Callbacks run inline
// during Advance and may freely schedule, shorten, or cancel further
// timers; there is no other thread of execution.
type Scheduler struct {
	now    float64
	seq    int
	nextID TimerID
	timers []*timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run once delay seconds from now. A negative
// delay is treated as zero: the callback fires on the next Advance,
// never synchronously.
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.seq++
	s.timers = append(s.timers, &timer{
		id:  s.nextID,
		due: s.now + delay,
		seq: s.seq,
		fn:  fn,
	})
	return s.nextID
}

// Remaining reports the time left before the timer fires, and whether
// the timer is still pending.
func (s *Scheduler) Remaining(id TimerID) (float64, bool) {
	for _, t := range s.timers {
		if t.id == id {
			return t.due - s.now, true
		}
	}
	return 0, false
}

// ShortenTo moves a pending timer so it fires remaining seconds from
// now, but only if that is sooner than its current deadline: deadlines
// are never pushed back. Returns true if the timer was adjusted.
func (s *Scheduler) ShortenTo(id TimerID, remaining float64) bool {
	if remaining < 0 {
		remaining = 0
	}
	for _, t := range s.timers {
		if t.id != id {
			continue
		}
		due := s.now + remaining
		if due >= t.due {
			return false
		}
		t.due = due
		return true
	}
	return false
}

// Cancel discards a pending timer. Returns true if it was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of timers waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// NextDue returns the time until the earliest pending timer fires.
func (s *Scheduler) NextDue() (float64, bool) {
	t := s.earliest(s.now + 1e18)
	if t == nil {
		return 0, false
	}
	return t.due - s.now, true
}

// Advance moves virtual time forward by dt seconds, firing every timer
// that falls due, in deadline order (insertion order for equal
// deadlines). Time observed by callbacks is exact: Now() equals the
// firing timer's deadline, not the end of the advance window.
func (s *Scheduler) Advance(dt float64) {
	if dt < 0 {
		return
	}
	target := s.now + dt
	for {
		t := s.earliest(target)
		if t == nil {
			break
		}
		if t.due > s.now {
			s.now = t.due
		}
		s.remove(t.id)
		t.fn()
	}
	s.now = target
}

// earliest returns the pending timer with the smallest (due, seq) at or
// before limit, or nil. Linear scan: the queue holds a handful of reel
// and autoplay timers, never more.
func (s *Scheduler) earliest(limit float64) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) remove(id TimerID) {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}
