package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/reelworks/slotpanel/internal/slot"
)

type runStats struct {
	runIndex  int
	mode      slot.SpeedMode
	stopAfter float64 // <0: no forced stop

	cycles      int
	reelStops   int
	forcedStops int
	stale       int

	minCycle float64
	avgCycle float64
	maxCycle float64
	minGap   float64
	avgGap   float64
	maxGap   float64

	totalTime float64
}

func main() {
	var runs int
	var count int
	var reels int
	var modeName string
	var scenario string
	var stopBase float64
	var stopStep float64

	flag.IntVar(&runs, "runs", 3, "number of headless runs")
	flag.IntVar(&count, "count", 20, "autoplay cycles per run")
	flag.IntVar(&reels, "reels", 5, "reel count")
	flag.StringVar(&modeName, "mode", "normal", "spin speed: normal, quick or turbo")
	flag.StringVar(&scenario, "scenario", "autoplay", "scenario name: autoplay or forced-stop")
	flag.Float64Var(&stopBase, "stop-after", 0.5, "forced-stop scenario: seconds after spin start for run 1")
	flag.Float64Var(&stopStep, "stop-step", 0.4, "forced-stop scenario: stop-time increment between runs")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if count <= 0 {
		fmt.Println("error: -count must be > 0")
		return
	}
	mode, ok := parseMode(modeName)
	if !ok {
		fmt.Printf("error: unknown mode %q (supported: normal, quick, turbo)\n", modeName)
		return
	}
	if scenario != "autoplay" && scenario != "forced-stop" {
		fmt.Printf("error: unsupported scenario %q (supported: autoplay, forced-stop)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Control Report ===\n")
	fmt.Printf("scenario=%s runs=%d count=%d reels=%d mode=%s\n\n", scenario, runs, count, reels, mode)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		var rs runStats
		if scenario == "forced-stop" {
			rs = runForcedStop(i+1, reels, count, mode, stopBase+float64(i)*stopStep)
		} else {
			rs = runAutoplay(i+1, reels, count, mode)
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

func parseMode(name string) (slot.SpeedMode, bool) {
	switch name {
	case "normal":
		return slot.SpeedNormal, true
	case "quick":
		return slot.SpeedQuick, true
	case "turbo":
		return slot.SpeedTurbo, true
	}
	return slot.SpeedNormal, false
}

// runAutoplay drives one full autoplay session through the popup
// handlers, exactly as the interactive panel would.
func runAutoplay(runIndex, reels, count int, mode slot.SpeedMode) runStats {
	tp := slot.NewTestPanel(
		slot.WithReels(reels),
		slot.WithAutoplayCounts(count),
		slot.WithSpeedMode(mode),
	)
	p := tp.Panel
	p.OnAutoOpen()
	p.OnAutoCountSelect(count)
	p.OnAutoStart()

	end := tp.RunUntilIdle(float64(count)*10 + 10)
	return collectStats(tp, runIndex, mode, -1, end)
}

// runForcedStop spins count manual cycles, forcing a stop stopAfter
// seconds into each one.
func runForcedStop(runIndex, reels, count int, mode slot.SpeedMode, stopAfter float64) runStats {
	tp := slot.NewTestPanel(
		slot.WithReels(reels),
		slot.WithSpeedMode(mode),
	)
	p := tp.Panel
	for i := 0; i < count; i++ {
		p.OnSpin()
		tp.Advance(stopAfter)
		p.OnStop()
		if tp.RunUntilIdle(20) < 0 {
			break
		}
	}
	return collectStats(tp, runIndex, mode, stopAfter, tp.Sched.Now())
}

func collectStats(tp *slot.TestPanel, runIndex int, mode slot.SpeedMode, stopAfter, end float64) runStats {
	rs := runStats{
		runIndex:  runIndex,
		mode:      mode,
		stopAfter: stopAfter,
		minCycle:  math.MaxFloat64,
		minGap:    math.MaxFloat64,
		totalTime: end,
	}

	cycleSum := 0.0
	for _, e := range tp.Log.Filter("spin", "cycle_end") {
		rs.cycles++
		cycleSum += e.NumVal
		rs.minCycle = math.Min(rs.minCycle, e.NumVal)
		rs.maxCycle = math.Max(rs.maxCycle, e.NumVal)
	}
	if rs.cycles > 0 {
		rs.avgCycle = cycleSum / float64(rs.cycles)
	}

	stops := tp.Log.Filter("spin", "reel_stop")
	rs.reelStops = len(stops)
	gapSum := 0.0
	gaps := 0
	for i := 1; i < len(stops); i++ {
		// Gaps only within a cycle: the reel index must increase.
		if stops[i].NumVal <= stops[i-1].NumVal {
			continue
		}
		g := stops[i].Time - stops[i-1].Time
		gapSum += g
		gaps++
		rs.minGap = math.Min(rs.minGap, g)
		rs.maxGap = math.Max(rs.maxGap, g)
	}
	if gaps > 0 {
		rs.avgGap = gapSum / float64(gaps)
	}
	if rs.minCycle == math.MaxFloat64 {
		rs.minCycle = 0
	}
	if rs.minGap == math.MaxFloat64 {
		rs.minGap = 0
	}

	rs.forcedStops = len(tp.Log.Filter("spin", "force_stop"))
	rs.stale = len(tp.Log.Filter("spin", "stale_callback")) + len(tp.Log.Filter("auto", "stale_callback"))
	return rs
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (mode=%s", rs.runIndex, rs.mode)
	if rs.stopAfter >= 0 {
		fmt.Printf(" stop_after=%.2fs", rs.stopAfter)
	}
	fmt.Printf(") ---\n")
	fmt.Printf("cycles=%d reel_stops=%d forced_stops=%d stale_callbacks=%d total_time=%.3fs\n",
		rs.cycles, rs.reelStops, rs.forcedStops, rs.stale, rs.totalTime)
	fmt.Printf("cycle_dur[min/avg/max]=%.3f/%.3f/%.3f  stop_gap[min/avg/max]=%.3f/%.3f/%.3f\n\n",
		rs.minCycle, rs.avgCycle, rs.maxCycle, rs.minGap, rs.avgGap, rs.maxGap)
}

func printAggregate(all []runStats) {
	totalCycles := 0
	totalForced := 0
	totalStale := 0
	cycleSum := 0.0
	for _, rs := range all {
		totalCycles += rs.cycles
		totalForced += rs.forcedStops
		totalStale += rs.stale
		cycleSum += rs.avgCycle * float64(rs.cycles)
	}
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d total_cycles=%d total_forced_stops=%d total_stale_callbacks=%d\n",
		len(all), totalCycles, totalForced, totalStale)
	if totalCycles > 0 {
		fmt.Printf("avg_cycle_dur=%.3fs\n", cycleSum/float64(totalCycles))
	}
}
