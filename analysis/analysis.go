// Package analysis explores the reachable state space of a network by
// breadth-first search. Translation networks are small and structurally
// bounded, so an exhaustive walk is a practical way to verify a compiled
// network before running long simulations: it finds transitions that can
// never fire and places that grow without bound, both of which point at
// wiring mistakes.
package analysis

import (
	"sort"
	"strconv"
	"strings"

	"github.com/riboflow/go-riboflow/petri"
)

// Options bound the exploration. Zero values select the defaults.
type Options struct {
	MaxStates int // states explored before truncating (default 10000)
	MaxTokens int // per-place token cap used to flag unboundedness (default 1000)
}

const (
	defaultMaxStates = 10000
	defaultMaxTokens = 1000
)

// Report summarizes the explored state space.
type Report struct {
	States   int
	Edges    int
	MaxDepth int

	// Bounded is false when some place exceeded the token cap, which in
	// a translation network means a production arc without a matching
	// consumption.
	Bounded   bool
	MaxTokens map[string]int

	// Terminal holds every reachable marking with no enabled transition.
	// A healthy translation network has exactly one: all copies
	// translated and the ribosome pool back at its initial level.
	Terminal []map[string]int

	// DeadTransitions lists transitions that fired in no explored state,
	// sorted by label.
	DeadTransitions []string

	// Truncated is true when the walk stopped at MaxStates or at the
	// token cap, so the report may be incomplete.
	Truncated bool
}

// Explore walks the state space of net from its initial marking.
func Explore(net *petri.Network, opts Options) *Report {
	if opts.MaxStates <= 0 {
		opts.MaxStates = defaultMaxStates
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	places := net.PlaceLabels()
	transitions := net.TransitionLabels()

	report := &Report{
		Bounded:   true,
		MaxTokens: make(map[string]int),
	}
	fired := make(map[string]bool)

	initial := net.Marking()
	seen := map[string]int{key(initial, places): 0}
	queue := []map[string]int{initial}
	depths := []int{0}
	report.States = 1
	observe(report, initial)

	for head := 0; head < len(queue); head++ {
		current := queue[head]
		depth := depths[head]
		if depth > report.MaxDepth {
			report.MaxDepth = depth
		}

		enabled := 0
		for _, label := range transitions {
			t := net.Transitions[label]
			if !isEnabled(t, current) {
				continue
			}
			enabled++
			fired[label] = true
			next := fire(t, current)
			report.Edges++

			if exceedsCap(next, opts.MaxTokens) {
				report.Bounded = false
				report.Truncated = true
				observe(report, next)
				continue
			}
			k := key(next, places)
			if _, ok := seen[k]; ok {
				continue
			}
			if report.States >= opts.MaxStates {
				report.Truncated = true
				continue
			}
			seen[k] = len(queue)
			queue = append(queue, next)
			depths = append(depths, depth+1)
			report.States++
			observe(report, next)
		}
		if enabled == 0 {
			report.Terminal = append(report.Terminal, copyMarking(current))
		}
	}

	for _, label := range transitions {
		if !fired[label] {
			report.DeadTransitions = append(report.DeadTransitions, label)
		}
	}
	sort.Strings(report.DeadTransitions)
	return report
}

func isEnabled(t *petri.Transition, marking map[string]int) bool {
	for place, weight := range t.Consume {
		if marking[place] < weight {
			return false
		}
	}
	return true
}

func fire(t *petri.Transition, marking map[string]int) map[string]int {
	next := copyMarking(marking)
	for place, weight := range t.Consume {
		next[place] -= weight
	}
	for place, weight := range t.Produce {
		next[place] += weight
	}
	return next
}

func exceedsCap(marking map[string]int, limit int) bool {
	for _, tokens := range marking {
		if tokens > limit {
			return true
		}
	}
	return false
}

func observe(report *Report, marking map[string]int) {
	for place, tokens := range marking {
		if tokens > report.MaxTokens[place] {
			report.MaxTokens[place] = tokens
		}
	}
}

func copyMarking(marking map[string]int) map[string]int {
	out := make(map[string]int, len(marking))
	for place, tokens := range marking {
		out[place] = tokens
	}
	return out
}

// key encodes a marking as a canonical string over the sorted place
// labels, so two equal markings always hash to the same state.
func key(marking map[string]int, places []string) string {
	var b strings.Builder
	for _, place := range places {
		b.WriteString(strconv.Itoa(marking[place]))
		b.WriteByte(',')
	}
	return b.String()
}
