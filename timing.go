package idlc

import (
	"fmt"
	"time"
)

// PhaseTimer records how long each named pipeline phase took, printed
// only when the frontend's optional --time-phases flag is set. Grounded
// on idlc/src/timer.rs, which the original distillation dropped from
// the spec but which enriches the implementation per SPEC_FULL.md.
type PhaseTimer struct {
	enabled bool
	names   []string
	elapsed []time.Duration
}

func NewPhaseTimer(enabled bool) *PhaseTimer {
	return &PhaseTimer{enabled: enabled}
}

// Time runs fn and records its duration under name if timing is
// enabled; otherwise it just runs fn. Grounded on idlc/src/timer.rs,
// wired into the frontend's optional --time-phases flag.
func (t *PhaseTimer) Time(name string, fn func() *Diagnostic) *Diagnostic {
	if !t.enabled {
		return fn()
	}
	start := time.Now()
	diag := fn()
	t.names = append(t.names, name)
	t.elapsed = append(t.elapsed, time.Since(start))
	return diag
}

// Report formats a per-phase timing table for stderr.
func (t *PhaseTimer) Report() string {
	out := ""
	for i, name := range t.names {
		out += fmt.Sprintf("%-16s %s\n", name, t.elapsed[i])
	}
	return out
}
