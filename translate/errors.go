package translate

import "errors"

// Error types for the translate package. All are reported synchronously
// at compile time, before any network is returned; a caller running a
// parameter sweep catches them per configuration and moves on.
var (
	// ErrInvalidChain is returned for a malformed chain: a missing name
	// or product, an empty sequence, or a name that collides with
	// another chain.
	ErrInvalidChain = errors.New("invalid chain")

	// ErrInvalidParameters is returned for malformed simulation
	// parameters, such as a negative initial marking or output goal.
	ErrInvalidParameters = errors.New("invalid simulation parameters")

	// ErrMissingTransition is returned when the ribosome extension is
	// applied to a network that lacks a chain's first or last
	// elongation transition, signalling a base/extension mismatch.
	ErrMissingTransition = errors.New("missing transition")

	// ErrInvalidRibosomes is returned for malformed ribosome
	// parameters, such as a negative pool size.
	ErrInvalidRibosomes = errors.New("invalid ribosome parameters")
)
