package slot

import (
	"fmt"
	"math"
	"strings"
)

// ControlReport renders a human-readable summary of a control log:
// cycle timings, reel-stop spacing, forced stops and bet/autoplay
// activity. Pasted into bug reports, so it has to stand alone.
func ControlReport(log *ControlLog, lastEntries int) string {
	entries := log.Entries()
	if len(entries) == 0 {
		return "--- slotpanel control report ---\n(no entries recorded yet)\n"
	}
	if lastEntries <= 0 {
		lastEntries = 200
	}
	window := entries
	if len(window) > lastEntries {
		window = window[len(window)-lastEntries:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- slotpanel control report ---\n")
	fmt.Fprintf(&b, "entries=%d window=%d time_range=[%.3fs..%.3fs]\n\n",
		len(entries), len(window), window[0].Time, window[len(window)-1].Time)

	sum := summarizeControlLog(window)
	fmt.Fprintf(&b, "summary: cycles=%d reel_stops=%d forced_stops=%d stop_ignored=%d stale_callbacks=%d\n",
		sum.cycles, sum.reelStops, sum.forcedStops, sum.stopIgnored, sum.staleCallbacks)
	fmt.Fprintf(&b, "         cycle_dur[min/avg/max]=%.3f/%.3f/%.3f  stop_gap[min/avg/max]=%.3f/%.3f/%.3f\n",
		sum.minCycle, sum.avgCycle, sum.maxCycle,
		sum.minGap, sum.avgGap, sum.maxGap)
	fmt.Fprintf(&b, "         bet_changes=%d auto_sessions=%d auto_triggers=%d deferred=%d\n\n",
		sum.betChanges, sum.autoSessions, sum.autoTriggers, sum.deferred)

	events := reportEvents(window)
	b.WriteString("events:\n")
	for _, e := range events {
		b.WriteString("  - ")
		b.WriteString(e)
		b.WriteByte('\n')
	}

	return b.String()
}

type controlLogSummary struct {
	cycles         int
	reelStops      int
	forcedStops    int
	stopIgnored    int
	staleCallbacks int
	betChanges     int
	autoSessions   int
	autoTriggers   int
	deferred       int
	minCycle       float64
	avgCycle       float64
	maxCycle       float64
	minGap         float64
	avgGap         float64
	maxGap         float64
}

func summarizeControlLog(entries []ControlLogEntry) controlLogSummary {
	res := controlLogSummary{
		minCycle: math.MaxFloat64,
		minGap:   math.MaxFloat64,
	}
	cycleSum := 0.0
	gapSum := 0.0
	gaps := 0
	lastStop := -1.0
	for _, e := range entries {
		switch e.Key {
		case "cycle_end":
			res.cycles++
			d := e.NumVal
			cycleSum += d
			if d < res.minCycle {
				res.minCycle = d
			}
			if d > res.maxCycle {
				res.maxCycle = d
			}
			lastStop = -1
		case "reel_stop":
			res.reelStops++
			if lastStop >= 0 {
				g := e.Time - lastStop
				gapSum += g
				gaps++
				if g < res.minGap {
					res.minGap = g
				}
				if g > res.maxGap {
					res.maxGap = g
				}
			}
			lastStop = e.Time
		case "force_stop":
			res.forcedStops++
		case "stop_ignored":
			res.stopIgnored++
		case "stale_callback":
			res.staleCallbacks++
		case "bet_change":
			res.betChanges++
		case "session_start":
			res.autoSessions++
		case "cycle_trigger":
			res.autoTriggers++
		case "next_deferred":
			res.deferred++
		}
	}
	if res.cycles > 0 {
		res.avgCycle = cycleSum / float64(res.cycles)
	}
	if gaps > 0 {
		res.avgGap = gapSum / float64(gaps)
	}
	if res.minCycle == math.MaxFloat64 {
		res.minCycle = 0
	}
	if res.minGap == math.MaxFloat64 {
		res.minGap = 0
	}
	return res
}

// reportEvents keeps the story readable: phase changes, sessions and
// forced stops survive, per-reel stops collapse into one line per run.
func reportEvents(entries []ControlLogEntry) []string {
	var out []string
	runStart := -1
	runEnd := -1
	var runFrom, runTo float64
	flush := func() {
		if runStart < 0 {
			return
		}
		if runStart == runEnd {
			out = append(out, fmt.Sprintf("t=%.3f reel %d stopped", runFrom, runStart))
		} else {
			out = append(out, fmt.Sprintf("t=%.3f..%.3f reels %d..%d stopped", runFrom, runTo, runStart, runEnd))
		}
		runStart = -1
	}
	for _, e := range entries {
		if e.Key == "reel_stop" {
			reel := int(e.NumVal)
			if runStart < 0 {
				runStart, runFrom = reel, e.Time
			}
			runEnd, runTo = reel, e.Time
			continue
		}
		flush()
		switch e.Key {
		case "phase_change", "force_stop", "cycle_end",
			"session_start", "session_end", "stop_requested",
			"count_select", "count_restart", "speed_mode",
			"bet_change", "stale_callback":
			out = append(out, fmt.Sprintf("t=%.3f %s %s", e.Time, e.Key, e.Value))
		}
	}
	flush()
	if len(out) > 40 {
		out = append(out[:40], fmt.Sprintf("... (%d more events)", len(out)-40))
	}
	if len(out) == 0 {
		out = append(out, "(none)")
	}
	return out
}
