package translate

import "fmt"

// The naming scheme below is a documented contract, not an internal
// detail: the ribosome extension locates transitions by it, and
// downstream consumers locate history columns by it.
//
//	p_<chain>_<i>      chain copies elongated to position i, i = 0..L-1
//	p_<product>        free product molecules
//	t_<chain>_t<i>     elongation step i, i = 1..L
//	p_free_ribosomes   the shared ribosome pool

// RibosomePlace is the label of the shared ribosome pool place.
const RibosomePlace = "p_free_ribosomes"

// PositionPlace returns the label of the place holding chain copies at
// elongation position i.
func PositionPlace(chain string, i int) string {
	return fmt.Sprintf("p_%s_%d", chain, i)
}

// StepTransition returns the label of the transition for elongation
// step i of the chain.
func StepTransition(chain string, i int) string {
	return fmt.Sprintf("t_%s_t%d", chain, i)
}

// ProductPlace returns the label of the place holding free copies of
// the named product.
func ProductPlace(product string) string {
	return "p_" + product
}
