package pairwise

import (
	"sort"

	"github.com/jihwankim/genpairs/internal/model"
)

// Builder greedily constructs pairwise vectors over a semantic Model
// until every feasible required pair is covered (§4.4).
type Builder struct {
	Model    *model.Model
	Enum     *Enumeration
	Seed     int64
	Vectors  [][]*model.Choice
	catIndex map[string]int
}

// NewBuilder creates a Builder. seed is recorded on the Builder so a
// caller can log or persist it for reproducing a run; the same seed
// against the same model always produces the same Vectors (§4.4
// "Randomness", §8 invariant 6) because the tie-break chain
// (gain → future-options → input order) is already a total order over
// every candidate set this algorithm produces, so no randomness is
// actually consulted — see DESIGN.md.
func NewBuilder(m *model.Model, enum *Enumeration, seed int64) *Builder {
	idx := make(map[string]int, len(m.Categories))
	for i, c := range m.Categories {
		idx[c.Name] = i
	}
	return &Builder{Model: m, Enum: enum, Seed: seed, catIndex: idx}
}

// Build runs the greedy construction loop until no uncovered feasible
// pair remains, returning the pairwise vectors it produced.
func (b *Builder) Build() [][]*model.Choice {
	for {
		uncovered := b.Enum.Uncovered()
		if len(uncovered) == 0 {
			return b.Vectors
		}
		seed := b.selectSeed(uncovered)
		vec, ok := b.constructVector(seed)
		if !ok {
			// §4.4 step 3: the seed's own feasibility witness relied on
			// pruning that turned out to be too optimistic. Demote and
			// move on; termination still holds because Uncovered()
			// shrinks by at least one pair every pass through this loop.
			b.Enum.DemoteInfeasible(seed)
			continue
		}
		b.markCovered(vec)
		b.Vectors = append(b.Vectors, vec)
	}
}

// selectSeed picks the most-constrained uncovered pair: fewest other
// uncovered pairs sharing an endpoint, then enumeration order (§4.4
// step 1).
func (b *Builder) selectSeed(uncovered []*Pair) *Pair {
	best := uncovered[0]
	bestDeg := degree(uncovered, best)
	for _, p := range uncovered[1:] {
		d := degree(uncovered, p)
		if d < bestDeg {
			best, bestDeg = p, d
		}
	}
	return best
}

func degree(pairs []*Pair, target *Pair) int {
	n := 0
	for _, p := range pairs {
		if p == target {
			continue
		}
		if p.A == target.A || p.A == target.B || p.B == target.A || p.B == target.B {
			n++
		}
	}
	return n
}

// constructVector places the seed pair, then fills every other category,
// backtracking on dead ends, until a complete valid vector exists or
// every alternative has been exhausted.
func (b *Builder) constructVector(seed *Pair) ([]*model.Choice, bool) {
	vec := make([]*model.Choice, len(b.Model.Categories))
	vec[b.catIndex[seed.A.ID.Cat]] = seed.A
	vec[b.catIndex[seed.B.ID.Cat]] = seed.B

	placed := []*model.Choice{seed.A, seed.B}
	remaining := categoriesExcept(b.Model, seed.A.ID.Cat, seed.B.ID.Cat)

	if !b.fill(vec, placed, remaining) {
		return nil, false
	}
	return vec, true
}

// fill recursively assigns every category in remaining, choosing at each
// step the most-constrained category next and, within it, the
// highest-scoring compatible choice first (§4.4 step 2). On a dead end
// it backtracks (step 3): the most recent placement is undone first and
// its next-best candidate is tried.
func (b *Builder) fill(vec []*model.Choice, placed []*model.Choice, remaining []*model.Category) bool {
	if len(remaining) == 0 {
		// The reachability prune only guarantees a provider exists
		// somewhere unassigned, not that the path taken actually placed
		// one; a final validity check catches the rare case and lets
		// the caller backtrack into an earlier choice instead.
		return ValidVector(placed)
	}

	catPos, rest := b.pickMostConstrained(placed, remaining)
	cat := remaining[catPos]

	compatibleChoices := make([]*model.Choice, 0, len(cat.Normals))
	for _, ch := range cat.Normals {
		if !Compatible(placed, ch) {
			continue
		}
		withCh := append(append([]*model.Choice{}, placed...), ch)
		if !reachable(withCh, rest) {
			continue
		}
		compatibleChoices = append(compatibleChoices, ch)
	}
	if len(compatibleChoices) == 0 {
		return false
	}

	ordered := b.orderCandidates(compatibleChoices, placed, rest)
	for _, ch := range ordered {
		idx := b.catIndex[cat.Name]
		vec[idx] = ch
		newPlaced := append(append([]*model.Choice{}, placed...), ch)
		if b.fill(vec, newPlaced, rest) {
			return true
		}
		vec[idx] = nil
	}
	return false
}

// pickMostConstrained returns the index, within remaining, of the
// category with the fewest choices still compatible with placed (ties
// broken by input order), and the slice of the other remaining
// categories.
func (b *Builder) pickMostConstrained(placed []*model.Choice, remaining []*model.Category) (int, []*model.Category) {
	best := 0
	bestCount := compatibleCount(placed, remaining[0])
	for i := 1; i < len(remaining); i++ {
		c := compatibleCount(placed, remaining[i])
		if c < bestCount {
			best, bestCount = i, c
		}
	}
	rest := make([]*model.Category, 0, len(remaining)-1)
	rest = append(rest, remaining[:best]...)
	rest = append(rest, remaining[best+1:]...)
	return best, rest
}

func compatibleCount(placed []*model.Choice, cat *model.Category) int {
	n := 0
	for _, ch := range cat.Normals {
		if Compatible(placed, ch) {
			n++
		}
	}
	return n
}

// orderCandidates sorts compatible choices by: most still-uncovered
// feasible pairs they'd add against the placed columns; then most
// future options left open across the other remaining categories; then
// input order (§4.4 step 2).
func (b *Builder) orderCandidates(candidates []*model.Choice, placed []*model.Choice, restCats []*model.Category) []*model.Choice {
	type scored struct {
		ch         *model.Choice
		gain       int
		future     int
		inputOrder int
	}
	items := make([]scored, len(candidates))
	for i, ch := range candidates {
		items[i] = scored{
			ch:         ch,
			gain:       b.newlyCoveredGain(ch, placed),
			future:     futureOptions(ch, placed, restCats),
			inputOrder: i,
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].gain != items[j].gain {
			return items[i].gain > items[j].gain
		}
		if items[i].future != items[j].future {
			return items[i].future > items[j].future
		}
		return items[i].inputOrder < items[j].inputOrder
	})
	out := make([]*model.Choice, len(items))
	for i, it := range items {
		out[i] = it.ch
	}
	return out
}

// newlyCoveredGain counts how many still-uncovered feasible pairs
// {candidate, already-placed choice} the partial would gain by placing
// candidate.
func (b *Builder) newlyCoveredGain(candidate *model.Choice, placed []*model.Choice) int {
	n := 0
	for _, other := range placed {
		p := b.Enum.Lookup(candidate, other)
		if p != nil && p.Feasible && !p.Covered {
			n++
		}
	}
	return n
}

// futureOptions counts, across the categories not yet assigned after
// this step, how many choices would remain compatible if candidate were
// placed alongside placed — "keeps the most future options open".
func futureOptions(candidate *model.Choice, placed []*model.Choice, restCats []*model.Category) int {
	withCandidate := append(append([]*model.Choice{}, placed...), candidate)
	n := 0
	for _, cat := range restCats {
		n += compatibleCount(withCandidate, cat)
	}
	return n
}

// markCovered marks every feasible pair the completed vector contains as
// covered (§4.4 step 4).
func (b *Builder) markCovered(vec []*model.Choice) {
	for i := 0; i < len(vec); i++ {
		for j := i + 1; j < len(vec); j++ {
			if p := b.Enum.Lookup(vec[i], vec[j]); p != nil && p.Feasible {
				p.Covered = true
			}
		}
	}
}
