// Package pairwise implements components C and D of the engine: the Pair
// Enumerator (§4.3), which computes the universe of required pairs and
// marks each feasible or infeasible, and the Vector Builder (§4.4), which
// greedily constructs vectors covering every feasible pair. The search
// follows the branch-and-bound shape of a combinatorial backtracking
// search rather than any one teacher file, since the teacher itself
// never needed a constraint solver; the builder's seed is carried the
// same way pkg/fuzz's Sampler carries one, but is not itself backed by
// an RNG here (see DESIGN.md).
package pairwise

import (
	"fmt"

	"github.com/jihwankim/genpairs/internal/model"
)

// Pair is one required pair between two normal choices from distinct
// categories, with i < j in model category order (§3).
type Pair struct {
	A, B      *model.Choice
	Feasible  bool
	Covered   bool
}

// Key returns a comparable identity for use as a map key.
func (p *Pair) Key() PairKey { return PairKey{A: p.A, B: p.B} }

// PairKey is the comparable identity of a Pair.
type PairKey struct {
	A, B *model.Choice
}

// Warning renders the exact wire format spec.md §4.3/§6 mandates:
// "Warning - No pair possible:  [ cat_i=a cat_j=b ]" — two spaces after
// the colon, one space inside the brackets.
func Warning(a, b *model.Choice) string {
	return fmt.Sprintf("Warning - No pair possible:  [ %s %s ]", a.ID, b.ID)
}
