// Package engine plays the token game over a compiled network. Each
// step fires one enabled transition chosen uniformly at random and
// records the resulting marking, producing a per-step history table
// whose columns are place labels.
package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/riboflow/go-riboflow/petri"
)

// Engine holds the live marking of one simulation run. An Engine owns
// its marking exclusively; run independent engines for independent
// simulations.
type Engine struct {
	net     *petri.Network
	marking map[string]int
	columns []string
	rng     *rand.Rand
}

// New creates an engine at the network's initial marking. The seed
// fixes the firing order among enabled transitions, making runs
// reproducible.
func New(net *petri.Network, seed int64) *Engine {
	return &Engine{
		net:     net,
		marking: net.Marking(),
		columns: net.PlaceLabels(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Marking returns a copy of the current marking.
func (e *Engine) Marking() map[string]int {
	m := make(map[string]int, len(e.marking))
	for k, v := range e.marking {
		m[k] = v
	}
	return m
}

// Tokens returns the current token count of one place.
func (e *Engine) Tokens(place string) int {
	return e.marking[place]
}

// Enabled returns the labels of all currently enabled transitions in
// sorted order. A transition is enabled when every consumed place holds
// at least the required weight.
func (e *Engine) Enabled() []string {
	var enabled []string
	for label, t := range e.net.Transitions {
		if e.isEnabled(t) {
			enabled = append(enabled, label)
		}
	}
	sort.Strings(enabled)
	return enabled
}

func (e *Engine) isEnabled(t *petri.Transition) bool {
	for place, weight := range t.Consume {
		if e.marking[place] < weight {
			return false
		}
	}
	return true
}

// Fire fires the named transition, applying its consume and produce
// weights as one atomic step. It fails if the transition is unknown or
// not enabled; the marking is untouched on failure.
func (e *Engine) Fire(label string) error {
	t, ok := e.net.Transitions[label]
	if !ok {
		return fmt.Errorf("fire %q: unknown transition", label)
	}
	if !e.isEnabled(t) {
		return fmt.Errorf("fire %q: not enabled", label)
	}
	for place, weight := range t.Consume {
		e.marking[place] -= weight
	}
	for place, weight := range t.Produce {
		e.marking[place] += weight
	}
	return nil
}

// Step fires one enabled transition chosen uniformly at random and
// returns its label. ok is false when the marking is dead (no
// transition enabled).
func (e *Engine) Step() (label string, ok bool) {
	enabled := e.Enabled()
	if len(enabled) == 0 {
		return "", false
	}
	label = enabled[e.rng.Intn(len(enabled))]
	if err := e.Fire(label); err != nil {
		// Enabled was just checked; a failure here is a bug.
		panic(err)
	}
	return label, true
}

// RunOptions bounds a simulation run. MaxSteps is required. If
// StopPlace is set, the run also stops once that place reaches
// StopCount tokens.
type RunOptions struct {
	MaxSteps  int
	StopPlace string
	StopCount int
}

// Run plays the token game until the step budget is exhausted, the
// marking is dead, or the stop condition is met. The returned history
// includes the initial marking as its first row.
func (e *Engine) Run(opts RunOptions) *History {
	h := newHistory(e.columns)
	h.record(e.marking)
	for step := 0; step < opts.MaxSteps; step++ {
		if opts.StopPlace != "" && e.marking[opts.StopPlace] >= opts.StopCount {
			break
		}
		if _, ok := e.Step(); !ok {
			break
		}
		h.record(e.marking)
	}
	return h
}
