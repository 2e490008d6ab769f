package translate

import (
	"fmt"

	"github.com/riboflow/go-riboflow/petri"
)

// Compile translates the chains into a base network. For a chain of
// length L it creates L position places p_<chain>_0..p_<chain>_{L-1}
// and L transitions t_<chain>_t1..t_<chain>_t<L>; step i moves one
// token from position i-1 to position i, and the final step produces
// into the product place instead. Position 0 is seeded with
// params.InitialChainsMarking un-translated copies. Chains sharing a
// product name feed one shared product place.
//
// Compile is pure: it allocates a fresh network per call and retains no
// state, so independent compilations may run concurrently. The result
// never contains a ribosome pool; that is ExtendWithRibosomes' job.
func Compile(chains []Chain, params Params) (*petri.Network, error) {
	if err := validateChains(chains); err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	net := petri.NewNetwork()
	for _, c := range chains {
		length := c.Len()
		for i := 0; i < length; i++ {
			marking := 0
			if i == 0 {
				marking = params.InitialChainsMarking
			}
			net.AddPlace(PositionPlace(c.Name, i), marking)
		}

		product := ProductPlace(c.Product)
		if _, ok := net.Places[product]; !ok {
			net.AddPlace(product, 0)
		}

		for i := 1; i <= length; i++ {
			t := net.AddTransition(StepTransition(c.Name, i))
			t.AddConsume(PositionPlace(c.Name, i-1), 1)
			if i == length {
				t.AddProduce(product, 1)
			} else {
				t.AddProduce(PositionPlace(c.Name, i), 1)
			}
		}
	}

	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}

func validateChains(chains []Chain) error {
	seen := make(map[string]struct{}, len(chains))
	for _, c := range chains {
		if c.Name == "" {
			return fmt.Errorf("%w: chain has no name", ErrInvalidChain)
		}
		if c.Len() == 0 {
			return fmt.Errorf("%w: chain %q has an empty sequence", ErrInvalidChain, c.Name)
		}
		if c.Product == "" {
			return fmt.Errorf("%w: chain %q has no product name", ErrInvalidChain, c.Name)
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("%w: duplicate chain name %q", ErrInvalidChain, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

func validateParams(params Params) error {
	if params.InitialChainsMarking < 0 {
		return fmt.Errorf("%w: initial_chains_marking is %d", ErrInvalidParameters, params.InitialChainsMarking)
	}
	if params.MaxProteinOutputGoal < 0 {
		return fmt.Errorf("%w: max_protein_output_goal is %d", ErrInvalidParameters, params.MaxProteinOutputGoal)
	}
	if params.ExcessAminoacidsFactor < 0 {
		return fmt.Errorf("%w: excess_aminoacids_factor is %g", ErrInvalidParameters, params.ExcessAminoacidsFactor)
	}
	return nil
}
