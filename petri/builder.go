package petri

// Builder provides a fluent API for constructing small networks by
// hand, mostly in tests and examples. The chain compilers construct
// their networks directly.
//
// Example:
//
//	net := petri.Build().
//	    Place("in", 3).
//	    Place("out", 0).
//	    Transition("move").
//	    Consume("move", "in", 1).
//	    Produce("move", "out", 1).
//	    Done()
type Builder struct {
	net *Network
}

// Build creates a new Builder.
func Build() *Builder {
	return &Builder{net: NewNetwork()}
}

// Place adds a place with the given label and initial token count.
func (b *Builder) Place(label string, initial int) *Builder {
	b.net.AddPlace(label, initial)
	return b
}

// Transition adds a transition with the given label.
func (b *Builder) Transition(label string) *Builder {
	b.net.AddTransition(label)
	return b
}

// Consume adds a consume arc to an existing transition. Weights on the
// same arc accumulate.
func (b *Builder) Consume(transition, place string, weight int) *Builder {
	if t, ok := b.net.Transitions[transition]; ok {
		t.AddConsume(place, weight)
	}
	return b
}

// Produce adds a produce arc to an existing transition.
func (b *Builder) Produce(transition, place string, weight int) *Builder {
	if t, ok := b.net.Transitions[transition]; ok {
		t.AddProduce(place, weight)
	}
	return b
}

// Flow wires place -> transition -> place with the given weight, the
// common pattern for sequential pipelines.
func (b *Builder) Flow(from, transition, to string, weight int) *Builder {
	return b.Consume(transition, from, weight).Produce(transition, to, weight)
}

// Done returns the constructed network.
func (b *Builder) Done() *Network {
	return b.net
}
