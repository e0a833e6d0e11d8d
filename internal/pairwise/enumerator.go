package pairwise

import "github.com/jihwankim/genpairs/internal/model"

// Enumeration holds the universe of required pairs (§4.3) in a stable
// order: category i before category j (model category order) and,
// within a category pair, Normals order — the order the spec says
// warnings must follow ("stable but unspecified beyond that").
type Enumeration struct {
	Model    *model.Model
	Pairs    []*Pair
	byKey    map[PairKey]*Pair
	Warnings []string
}

// Enumerate computes every required pair and tests each for feasibility.
func Enumerate(m *model.Model) *Enumeration {
	e := &Enumeration{Model: m, byKey: map[PairKey]*Pair{}}

	for i := 0; i < len(m.Categories); i++ {
		for j := i + 1; j < len(m.Categories); j++ {
			ci, cj := m.Categories[i], m.Categories[j]
			for _, a := range ci.Normals {
				for _, b := range cj.Normals {
					pair := &Pair{A: a, B: b}
					pair.Feasible = e.feasible(a, b)
					e.Pairs = append(e.Pairs, pair)
					e.byKey[pair.Key()] = pair
					if !pair.Feasible {
						e.Warnings = append(e.Warnings, Warning(a, b))
					}
				}
			}
		}
	}
	return e
}

// Lookup returns the Pair for the unordered endpoints (a, b), trying both
// orientations since Pair.Key is order-sensitive but the caller may not
// know which endpoint came from the lower-indexed category.
func (e *Enumeration) Lookup(a, b *model.Choice) *Pair {
	if p, ok := e.byKey[PairKey{A: a, B: b}]; ok {
		return p
	}
	if p, ok := e.byKey[PairKey{A: b, B: a}]; ok {
		return p
	}
	return nil
}

// Uncovered returns every feasible pair not yet marked covered, in
// enumeration order.
func (e *Enumeration) Uncovered() []*Pair {
	var out []*Pair
	for _, p := range e.Pairs {
		if p.Feasible && !p.Covered {
			out = append(out, p)
		}
	}
	return out
}

// DemoteInfeasible retroactively marks a pair infeasible (§4.4 step 3:
// the builder's backtracking exhausted every completion) and emits the
// same warning the enumerator would have emitted had its own, more
// limited, pruning caught it the first time.
func (e *Enumeration) DemoteInfeasible(p *Pair) {
	if !p.Feasible {
		return
	}
	p.Feasible = false
	e.Warnings = append(e.Warnings, Warning(p.A, p.B))
}

// categoriesExcept returns the categories other than those named, in
// their original relative order.
func categoriesExcept(m *model.Model, names ...string) []*model.Category {
	skip := map[string]bool{}
	for _, n := range names {
		skip[n] = true
	}
	var out []*model.Category
	for _, cat := range m.Categories {
		if !skip[cat.Name] {
			out = append(out, cat)
		}
	}
	return out
}

// feasible runs the bounded DPLL-style search of §4.3: fix a and b, then
// try to complete a valid vector over the remaining categories.
func (e *Enumeration) feasible(a, b *model.Choice) bool {
	remaining := categoriesExcept(e.Model, a.ID.Cat, b.ID.Cat)
	placed := []*model.Choice{a, b}
	if !Compatible([]*model.Choice{b}, a) {
		return false
	}
	return search(remaining, placed)
}

// search tries, in category order, each remaining category's normal
// choices in input order, backtracking on dead ends.
func search(remaining []*model.Category, placed []*model.Choice) bool {
	if len(remaining) == 0 {
		return ValidVector(placed)
	}
	cat, rest := remaining[0], remaining[1:]
	for _, ch := range cat.Normals {
		if !Compatible(placed, ch) {
			continue
		}
		next := append(append([]*model.Choice{}, placed...), ch)
		if !reachable(next, rest) {
			continue
		}
		if search(rest, next) {
			return true
		}
	}
	return false
}
