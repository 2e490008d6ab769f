// Package translate compiles mRNA chain descriptions into
// place/transition networks that model ribosomal translation. The base
// compiler turns each chain into a linear elongation pipeline; the
// ribosome extension couples all chains through one shared pool of free
// ribosomes.
package translate

import "unicode/utf8"

// Chain describes one mRNA transcript to be translated.
type Chain struct {
	Name     string // unique within a compilation
	Sequence string // ordered monomer symbols, one per elongation step
	Product  string // polypeptide the chain translates into
}

// Len returns the number of elongation steps for the chain, one per
// monomer symbol.
func (c Chain) Len() int {
	return utf8.RuneCountInString(c.Sequence)
}

// RibosomeParams configures the shared ribosome pool added by
// ExtendWithRibosomes.
type RibosomeParams struct {
	InitialRibosomes int
}

// DefaultRibosomeParams is the documented default pool size for callers
// that do not sweep ribosome availability. It is never applied
// implicitly: extension requires explicit parameters, and callers that
// want the default pass this value themselves.
var DefaultRibosomeParams = RibosomeParams{InitialRibosomes: 50}

// Params holds the simulation parameters a compilation derives its
// initial marking from. MaxProteinOutputGoal and ExcessAminoacidsFactor
// are informational: experiment drivers use them to size step budgets
// and label sweep axes, the compiler only validates them.
type Params struct {
	InitialChainsMarking   int
	MaxProteinOutputGoal   int
	ExcessAminoacidsFactor float64 // optional; zero means unset
	Ribosomes              *RibosomeParams
}
