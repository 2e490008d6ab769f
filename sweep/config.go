// Package sweep runs parameter-sweep experiments: for every cell of an
// (initial ribosomes x initial chains marking) grid it compiles the
// chain network, layers the ribosome pool on top, simulates, and
// records the outcome. Failed cells are logged and skipped so one bad
// configuration never aborts a whole sweep.
package sweep

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/riboflow/go-riboflow/translate"
)

// ChainConfig mirrors translate.Chain in experiment files.
type ChainConfig struct {
	Name     string `yaml:"name"`
	Sequence string `yaml:"sequence"`
	Product  string `yaml:"product_name"`
}

// Config describes one sweep experiment.
type Config struct {
	Chains []ChainConfig `yaml:"chains"`

	// Grid axes.
	InitialChainsMarking []int `yaml:"initial_chains_marking"`
	InitialRibosomes     []int `yaml:"initial_ribosomes"`

	MaxProteinOutputGoal int `yaml:"max_protein_output_goal"`

	// Repeats is how many seeded runs to average per grid cell.
	Repeats int `yaml:"repeats"`

	// MaxSteps bounds each run; 0 derives the budget from the longest
	// chain and the marking (length * (marking + 1)).
	MaxSteps int `yaml:"max_steps"`

	// Workers is the number of parallel simulations; 0 means NumCPU.
	Workers int `yaml:"workers"`

	// Seed is the base seed; each run derives its own from it.
	Seed int64 `yaml:"seed"`
}

// LoadConfig reads a sweep experiment from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Chains) == 0 {
		return fmt.Errorf("sweep config: chains is required")
	}
	if len(c.InitialChainsMarking) == 0 {
		return fmt.Errorf("sweep config: initial_chains_marking axis is required")
	}
	if len(c.InitialRibosomes) == 0 {
		return fmt.Errorf("sweep config: initial_ribosomes axis is required")
	}
	if c.Repeats < 1 {
		c.Repeats = 1
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

func (c *Config) chains() []translate.Chain {
	chains := make([]translate.Chain, len(c.Chains))
	for i, cc := range c.Chains {
		chains[i] = translate.Chain{Name: cc.Name, Sequence: cc.Sequence, Product: cc.Product}
	}
	return chains
}

// longestChain returns the maximum chain length, used to derive step
// budgets the way the marking experiments size them.
func (c *Config) longestChain() int {
	longest := 0
	for _, cc := range c.Chains {
		if l := (translate.Chain{Sequence: cc.Sequence}).Len(); l > longest {
			longest = l
		}
	}
	return longest
}
