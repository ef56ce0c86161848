package slot

import (
	"fmt"
	"strings"
)

// ControlLogEntry is one recorded control-runtime event.
type ControlLogEntry struct {
	Time   float64 // virtual time in seconds
	Source string  // spin, auto, bet, panel
	Key    string  // event name, e.g. phase_change, reel_stop
	Value  string  // human-readable detail
	NumVal float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[t=2.80s] spin  reel_stop       reel 4
func (e ControlLogEntry) String() string {
	return fmt.Sprintf("[t=%6.3fs] %-5s %-16s %s", e.Time, e.Source, e.Key, e.Value)
}

// ControlLog collects structured events from the spin engine, autoplay
// controller, and presenter. It is unbounded and machine-readable:
// tests and the headless report filter it instead of scraping output.
type ControlLog struct {
	entries []ControlLogEntry
	verbose bool
}

// NewControlLog creates a ControlLog. If verbose is true, per-event
// detail entries (skin resolutions, timer adjustments) are also kept.
func NewControlLog(verbose bool) *ControlLog {
	return &ControlLog{verbose: verbose}
}

// Add records a new entry at the given virtual time.
func (cl *ControlLog) Add(now float64, source, key, value string, numVal float64) {
	if cl == nil {
		return
	}
	cl.entries = append(cl.entries, ControlLogEntry{
		Time:   now,
		Source: source,
		Key:    key,
		Value:  value,
		NumVal: numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (cl *ControlLog) AddVerbose(now float64, source, key, value string, numVal float64) {
	if cl == nil || !cl.verbose {
		return
	}
	cl.Add(now, source, key, value, numVal)
}

// Entries returns all recorded entries.
func (cl *ControlLog) Entries() []ControlLogEntry {
	if cl == nil {
		return nil
	}
	return cl.entries
}

// Filter returns entries matching the given source and/or key.
// Pass empty string to match any value for that field.
func (cl *ControlLog) Filter(source, key string) []ControlLogEntry {
	var out []ControlLogEntry
	for _, e := range cl.Entries() {
		if source != "" && e.Source != source {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Tail formats the most recent n entries, one per line.
func (cl *ControlLog) Tail(n int) string {
	entries := cl.Entries()
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
