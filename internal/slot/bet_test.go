package slot

import "testing"

func newBet(t *testing.T, min, max, initial int, levels []int) *BetController {
	t.Helper()
	return NewBetController(NewBetState(min, max, initial, levels), NewScheduler(), NewControlLog(false))
}

// --- Bet stepping ---

func TestBet_IncreaseWalksLevels(t *testing.T) {
	b := newBet(t, 1, 10, 1, []int{1, 2, 5, 10})

	want := []int{2, 5, 10, 10}
	for i, w := range want {
		b.Increase()
		if b.Current() != w {
			t.Fatalf("step %d: expected %d, got %d", i+1, w, b.Current())
		}
	}
}

func TestBet_DecreaseWalksLevels(t *testing.T) {
	b := newBet(t, 1, 10, 10, []int{1, 2, 5, 10})

	want := []int{5, 2, 1, 1}
	for i, w := range want {
		b.Decrease()
		if b.Current() != w {
			t.Fatalf("step %d: expected %d, got %d", i+1, w, b.Current())
		}
	}
}

func TestBet_SetMaxJumps(t *testing.T) {
	b := newBet(t, 1, 10, 1, []int{1, 2, 5, 10})
	b.SetMax()
	if b.Current() != 10 {
		t.Fatalf("expected max bet 10, got %d", b.Current())
	}
	// Already at max: stays put.
	b.SetMax()
	b.Increase()
	if b.Current() != 10 {
		t.Fatalf("bet must saturate at max, got %d", b.Current())
	}
}

func TestBet_NoLevelsStepsByOne(t *testing.T) {
	b := newBet(t, 3, 6, 3, nil)
	b.Increase()
	b.Increase()
	if b.Current() != 5 {
		t.Fatalf("expected 5 after two unit steps, got %d", b.Current())
	}
	b.Decrease()
	if b.Current() != 4 {
		t.Fatalf("expected 4 after one step down, got %d", b.Current())
	}
}

// --- Construction clamping ---

func TestBetState_InitialSnapsToLevel(t *testing.T) {
	b := newBet(t, 1, 20, 7, []int{1, 2, 5, 10, 20})
	if b.Current() != 5 {
		t.Fatalf("initial 7 should snap down to level 5, got %d", b.Current())
	}
}

func TestBetState_LevelsTrimmedToBounds(t *testing.T) {
	b := newBet(t, 2, 10, 2, []int{1, 2, 5, 10, 20})
	levels := b.Levels()
	if len(levels) != 3 || levels[0] != 2 || levels[2] != 10 {
		t.Fatalf("expected levels [2 5 10], got %v", levels)
	}
	if b.Min() != 2 || b.Max() != 10 {
		t.Fatalf("bounds should tighten to surviving levels, got [%d,%d]", b.Min(), b.Max())
	}
}

func TestBetState_ReversedBoundsSwap(t *testing.T) {
	b := newBet(t, 10, 1, 5, nil)
	if b.Min() != 1 || b.Max() != 10 {
		t.Fatalf("reversed bounds should swap, got [%d,%d]", b.Min(), b.Max())
	}
}

func TestBetState_DuplicateLevelsCollapse(t *testing.T) {
	b := newBet(t, 1, 10, 1, []int{5, 1, 5, 2, 2})
	levels := b.Levels()
	if len(levels) != 3 || levels[0] != 1 || levels[1] != 2 || levels[2] != 5 {
		t.Fatalf("expected deduped sorted levels [1 2 5], got %v", levels)
	}
}

// --- Visibility ---

func TestBet_VisibilityAtBounds(t *testing.T) {
	b := newBet(t, 1, 10, 1, []int{1, 2, 5, 10})

	v := b.Visibility()
	if v.DecEnabled || !v.IncEnabled || !v.MaxEnabled {
		t.Fatalf("at min expected dec off / inc on / max on, got %+v", v)
	}

	b.SetMax()
	v = b.Visibility()
	if !v.DecEnabled || v.IncEnabled || v.MaxEnabled {
		t.Fatalf("at max expected dec on / inc off / max off, got %+v", v)
	}
}

func TestBet_ChangeLoggedOnce(t *testing.T) {
	log := NewControlLog(false)
	b := NewBetController(NewBetState(1, 10, 1, []int{1, 2, 5, 10}), NewScheduler(), log)

	b.Increase() // 1 -> 2
	b.Decrease() // 2 -> 1
	b.Decrease() // saturated, no change
	entries := log.Filter("bet", "bet_change")
	if len(entries) != 2 {
		t.Fatalf("expected 2 bet_change entries, got %d", len(entries))
	}
}
