// Package petri implements the place/transition network emitted by the
// chain compilers. A network is a classic integer-weighted Petri net:
// Places hold non-negative token counts and Transitions atomically move
// fixed token weights between them when fired.
package petri

import (
	"errors"
	"fmt"
	"sort"
)

// Error types for the petri package.
var (
	// ErrUnknownPlace is returned when a transition references a place
	// that does not exist in the network.
	ErrUnknownPlace = errors.New("unknown place")

	// ErrNegativeMarking is returned when a place holds a negative
	// initial token count.
	ErrNegativeMarking = errors.New("negative marking")

	// ErrInvalidWeight is returned when an arc weight is not a positive
	// integer.
	ErrInvalidWeight = errors.New("arc weight must be positive")
)

// Place represents a pool of indistinguishable tokens: partially
// translated chain copies at one position, free product molecules, or
// free resource units.
type Place struct {
	Label   string
	Initial int // initial token count, never negative
}

// Transition represents an atomic firing rule. It is enabled when every
// place in Consume holds at least the mapped weight; firing decrements
// the consumed places and increments the produced places in one step.
type Transition struct {
	Label   string
	Consume map[string]int // place label -> positive weight
	Produce map[string]int // place label -> positive weight
}

// AddConsume adds weight to the consume arc from the given place,
// merging with any existing weight rather than overwriting it.
func (t *Transition) AddConsume(place string, weight int) {
	t.Consume[place] += weight
}

// AddProduce adds weight to the produce arc into the given place,
// merging with any existing weight rather than overwriting it.
func (t *Transition) AddProduce(place string, weight int) {
	t.Produce[place] += weight
}

// Network is the compiled artifact handed to a simulation engine.
// Labels are unique by construction: places and transitions are keyed
// by label.
type Network struct {
	Places      map[string]*Place
	Transitions map[string]*Transition
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{
		Places:      make(map[string]*Place),
		Transitions: make(map[string]*Transition),
	}
}

// AddPlace adds a place with the given label and initial token count.
// Adding a label twice replaces the earlier place.
func (n *Network) AddPlace(label string, initial int) *Place {
	p := &Place{Label: label, Initial: initial}
	n.Places[label] = p
	return p
}

// AddTransition adds a transition with empty consume/produce maps.
func (n *Network) AddTransition(label string) *Transition {
	t := &Transition{
		Label:   label,
		Consume: make(map[string]int),
		Produce: make(map[string]int),
	}
	n.Transitions[label] = t
	return t
}

// Validate checks the structural invariants of the network: every arc
// references an existing place, markings are non-negative, and all arc
// weights are positive.
func (n *Network) Validate() error {
	for _, p := range n.Places {
		if p.Initial < 0 {
			return fmt.Errorf("%w: place %q starts at %d", ErrNegativeMarking, p.Label, p.Initial)
		}
	}
	for _, t := range n.Transitions {
		for _, arcs := range []map[string]int{t.Consume, t.Produce} {
			for place, weight := range arcs {
				if _, ok := n.Places[place]; !ok {
					return fmt.Errorf("%w: transition %q references %q", ErrUnknownPlace, t.Label, place)
				}
				if weight <= 0 {
					return fmt.Errorf("%w: transition %q -> %q has weight %d", ErrInvalidWeight, t.Label, place, weight)
				}
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the network. Extension layers copy
// before mutating so the caller's base network stays intact.
func (n *Network) Clone() *Network {
	out := NewNetwork()
	for label, p := range n.Places {
		out.Places[label] = &Place{Label: p.Label, Initial: p.Initial}
	}
	for label, t := range n.Transitions {
		ct := &Transition{
			Label:   t.Label,
			Consume: make(map[string]int, len(t.Consume)),
			Produce: make(map[string]int, len(t.Produce)),
		}
		for k, v := range t.Consume {
			ct.Consume[k] = v
		}
		for k, v := range t.Produce {
			ct.Produce[k] = v
		}
		out.Transitions[label] = ct
	}
	return out
}

// Marking returns the initial marking vector: place label -> tokens.
func (n *Network) Marking() map[string]int {
	m := make(map[string]int, len(n.Places))
	for label, p := range n.Places {
		m[label] = p.Initial
	}
	return m
}

// PlaceLabels returns all place labels in sorted order. Downstream
// consumers key history columns by these labels, so the order is part
// of the output contract.
func (n *Network) PlaceLabels() []string {
	labels := make([]string, 0, len(n.Places))
	for label := range n.Places {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// TransitionLabels returns all transition labels in sorted order.
func (n *Network) TransitionLabels() []string {
	labels := make([]string, 0, len(n.Transitions))
	for label := range n.Transitions {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
