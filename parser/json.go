// Package parser handles JSON import/export: the chain-set description
// consumed by the compilers and the compiled-network interchange format
// handed to simulation engines.
package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/riboflow/go-riboflow/petri"
	"github.com/riboflow/go-riboflow/translate"
)

type chainJSON struct {
	Name     string `json:"name"`
	Sequence string `json:"sequence"`
	Product  string `json:"product_name"`
	// Older configs use the original field name.
	Polipeptide string `json:"polipeptide_name"`
}

type ribosomeJSON struct {
	InitialRibosomes *int `json:"initial_ribosomes"`
}

type paramsJSON struct {
	InitialChainsMarking   *int          `json:"initial_chains_marking"`
	MaxProteinOutputGoal   *int          `json:"max_protein_output_goal"`
	ExcessAminoacidsFactor float64       `json:"excess_aminoacids_factor"`
	RibosomeParameters     *ribosomeJSON `json:"ribosome_parameters"`
}

type inputJSON struct {
	Chains               []chainJSON `json:"chains"`
	SimulationParameters *paramsJSON `json:"simulation_parameters"`
}

// FromJSON parses a chain-set description:
//
//	{
//	  "chains": [
//	    {"name": "chainA", "sequence": "MALW...", "product_name": "preinsulin"}
//	  ],
//	  "simulation_parameters": {
//	    "initial_chains_marking": 2,
//	    "max_protein_output_goal": 2,
//	    "excess_aminoacids_factor": 1,
//	    "ribosome_parameters": {"initial_ribosomes": 2}
//	  }
//	}
//
// Required fields must be present; nothing is defaulted silently.
// product_name may also be spelled polipeptide_name for compatibility
// with older configs.
func FromJSON(data []byte) ([]translate.Chain, translate.Params, error) {
	var in inputJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, translate.Params{}, fmt.Errorf("invalid JSON: %w", err)
	}

	if len(in.Chains) == 0 {
		return nil, translate.Params{}, fmt.Errorf("chains is required")
	}
	if in.SimulationParameters == nil {
		return nil, translate.Params{}, fmt.Errorf("simulation_parameters is required")
	}
	sp := in.SimulationParameters
	if sp.InitialChainsMarking == nil {
		return nil, translate.Params{}, fmt.Errorf("simulation_parameters.initial_chains_marking is required")
	}
	if sp.MaxProteinOutputGoal == nil {
		return nil, translate.Params{}, fmt.Errorf("simulation_parameters.max_protein_output_goal is required")
	}

	chains := make([]translate.Chain, 0, len(in.Chains))
	for i, c := range in.Chains {
		product := c.Product
		if product == "" {
			product = c.Polipeptide
		}
		if product == "" {
			return nil, translate.Params{}, fmt.Errorf("chains[%d]: product_name is required", i)
		}
		chains = append(chains, translate.Chain{
			Name:     c.Name,
			Sequence: c.Sequence,
			Product:  product,
		})
	}

	params := translate.Params{
		InitialChainsMarking:   *sp.InitialChainsMarking,
		MaxProteinOutputGoal:   *sp.MaxProteinOutputGoal,
		ExcessAminoacidsFactor: sp.ExcessAminoacidsFactor,
	}
	if sp.RibosomeParameters != nil {
		if sp.RibosomeParameters.InitialRibosomes == nil {
			return nil, translate.Params{}, fmt.Errorf("ribosome_parameters.initial_ribosomes is required when ribosome_parameters is present")
		}
		params.Ribosomes = &translate.RibosomeParams{
			InitialRibosomes: *sp.RibosomeParameters.InitialRibosomes,
		}
	}

	return chains, params, nil
}

// LoadFile reads and parses a chain-set description from a file.
func LoadFile(path string) ([]translate.Chain, translate.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, translate.Params{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return FromJSON(data)
}

type transitionJSON struct {
	Consume map[string]int `json:"consume"`
	Produce map[string]int `json:"produce"`
}

type networkJSON struct {
	Places      map[string]int            `json:"places"`
	Transitions map[string]transitionJSON `json:"transitions"`
}

// MarshalNetwork renders a compiled network in the interchange format
// consumed by simulation engines: places as label -> initial marking,
// transitions as label -> {consume, produce}.
func MarshalNetwork(net *petri.Network) ([]byte, error) {
	out := networkJSON{
		Places:      make(map[string]int, len(net.Places)),
		Transitions: make(map[string]transitionJSON, len(net.Transitions)),
	}
	for label, p := range net.Places {
		out.Places[label] = p.Initial
	}
	for label, t := range net.Transitions {
		out.Transitions[label] = transitionJSON{
			Consume: t.Consume,
			Produce: t.Produce,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// UnmarshalNetwork parses a network from the interchange format.
func UnmarshalNetwork(data []byte) (*petri.Network, error) {
	var in networkJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("invalid network JSON: %w", err)
	}
	net := petri.NewNetwork()
	for label, marking := range in.Places {
		net.AddPlace(label, marking)
	}
	for label, t := range in.Transitions {
		nt := net.AddTransition(label)
		for place, weight := range t.Consume {
			nt.AddConsume(place, weight)
		}
		for place, weight := range t.Produce {
			nt.AddProduce(place, weight)
		}
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}
