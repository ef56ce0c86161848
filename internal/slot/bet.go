package slot

import "sort"

// BetState holds the current bet selection. min <= current <= max
// always; when levels is non-empty, current is always a member.
// Out-of-range construction values are clamped here, never at
// mutation time.
type BetState struct {
	current int
	min     int
	max     int
	levels  []int
}

// NewBetState builds a clamped bet state. Levels are sorted, deduped,
// and trimmed to [min, max]; when levels survive, min/max tighten to
// the first/last level and current snaps to the nearest level at or
// below it. With no levels the bet steps through the integer range.
func NewBetState(min, max, initial int, levels []int) BetState {
	if min > max {
		min, max = max, min
	}
	kept := make([]int, 0, len(levels))
	for _, lv := range levels {
		if lv >= min && lv <= max {
			kept = append(kept, lv)
		}
	}
	sort.Ints(kept)
	kept = dedupInts(kept)
	if len(kept) > 0 {
		min = kept[0]
		max = kept[len(kept)-1]
	}

	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}
	if len(kept) > 0 {
		snapped := kept[0]
		for _, lv := range kept {
			if lv <= initial {
				snapped = lv
			}
		}
		initial = snapped
	}
	return BetState{current: initial, min: min, max: max, levels: kept}
}

func dedupInts(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// BetVisibility is the enabled/disabled split for the three bet
// adjustment controls, recomputed after every mutation.
type BetVisibility struct {
	DecEnabled bool
	IncEnabled bool
	MaxEnabled bool
}

// BetController owns the bet state and applies the stepping rules. All
// mutations are synchronous, total, and silently saturate at the ends.
type BetController struct {
	state BetState
	log   *ControlLog
	sched *Scheduler
}

func NewBetController(state BetState, sched *Scheduler, log *ControlLog) *BetController {
	return &BetController{state: state, sched: sched, log: log}
}

// Current returns the selected bet value.
func (b *BetController) Current() int {
	return b.state.current
}

// Min returns the lower bet bound.
func (b *BetController) Min() int { return b.state.min }

// Max returns the upper bet bound.
func (b *BetController) Max() int { return b.state.max }

// Levels returns the discrete bet levels, if any.
func (b *BetController) Levels() []int { return b.state.levels }

// Increase moves to the next level strictly greater than the current
// value; a no-op at the top.
func (b *BetController) Increase() {
	next := b.state.current
	if len(b.state.levels) > 0 {
		for _, lv := range b.state.levels {
			if lv > b.state.current {
				next = lv
				break
			}
		}
	} else if b.state.current < b.state.max {
		next = b.state.current + 1
	}
	b.setCurrent(next)
}

// Decrease moves to the previous level strictly less than the current
// value; a no-op at the bottom.
func (b *BetController) Decrease() {
	next := b.state.current
	if len(b.state.levels) > 0 {
		for _, lv := range b.state.levels {
			if lv < b.state.current {
				next = lv
			}
		}
	} else if b.state.current > b.state.min {
		next = b.state.current - 1
	}
	b.setCurrent(next)
}

// SetMax jumps straight to the top bet, bypassing increment stepping.
func (b *BetController) SetMax() {
	b.setCurrent(b.state.max)
}

func (b *BetController) setCurrent(v int) {
	if v == b.state.current {
		return
	}
	b.state.current = v
	b.log.Add(b.now(), "bet", "bet_change", "", float64(v))
}

// Visibility recomputes the adjustment-control split from the current
// value. The presenter turns these into disabled skins.
func (b *BetController) Visibility() BetVisibility {
	return BetVisibility{
		DecEnabled: b.state.current > b.state.min,
		IncEnabled: b.state.current < b.state.max,
		MaxEnabled: b.state.current < b.state.max,
	}
}

func (b *BetController) now() float64 {
	if b.sched == nil {
		return 0
	}
	return b.sched.Now()
}
