package translate

import (
	"fmt"

	"github.com/riboflow/go-riboflow/petri"
)

// ExtendWithRibosomes layers a shared, bounded ribosome pool onto a
// network produced by Compile. It adds the p_free_ribosomes place
// seeded with rp.InitialRibosomes, then for every chain makes the first
// elongation transition consume one ribosome and the last one return
// it. Transitions between the first and last step never touch the pool:
// a ribosome is held for the whole elongation and released only on
// completion.
//
// The input network is treated as borrowed: it is deep-copied before
// mutation, so the caller keeps a usable base version. Arc weights
// merge additively, which makes a double extension detectable (the
// first step would consume two ribosomes) rather than silently
// clobbered.
func ExtendWithRibosomes(base *petri.Network, chains []Chain, rp RibosomeParams) (*petri.Network, error) {
	if rp.InitialRibosomes < 0 {
		return nil, fmt.Errorf("%w: initial_ribosomes is %d", ErrInvalidRibosomes, rp.InitialRibosomes)
	}

	net := base.Clone()
	net.AddPlace(RibosomePlace, rp.InitialRibosomes)

	for _, c := range chains {
		first, ok := net.Transitions[StepTransition(c.Name, 1)]
		if !ok {
			return nil, fmt.Errorf("%w: %s (was the network compiled for chain %q?)",
				ErrMissingTransition, StepTransition(c.Name, 1), c.Name)
		}
		last, ok := net.Transitions[StepTransition(c.Name, c.Len())]
		if !ok {
			return nil, fmt.Errorf("%w: %s (was the network compiled for chain %q?)",
				ErrMissingTransition, StepTransition(c.Name, c.Len()), c.Name)
		}
		first.AddConsume(RibosomePlace, 1)
		last.AddProduce(RibosomePlace, 1)
	}

	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}
