// Package singles implements component E (§4.5): one vector per single
// or error choice, with every other column filled by the first
// compatible normal choice in input order. It shares the compatibility
// primitives of package pairwise rather than duplicating them, since
// §4.5 is explicit that the fill rule uses "the constraints of §3" — the
// same validity rules the builder enforces.
package singles

import (
	"github.com/jihwankim/genpairs/internal/model"
	"github.com/jihwankim/genpairs/internal/pairwise"
)

// Vector pairs the single/error choice that seeded it with the complete
// assignment produced around it.
type Vector struct {
	Seed   *model.Choice
	Values []*model.Choice // aligned with Model.Categories order
}

// Enumerate emits errors before singles, each group in category-then-
// input order, one vector per choice (§4.5).
func Enumerate(m *model.Model) []Vector {
	var out []Vector
	for _, cat := range m.Categories {
		for _, ch := range cat.Errors {
			out = append(out, build(m, ch))
		}
	}
	for _, cat := range m.Categories {
		for _, ch := range cat.Singles {
			out = append(out, build(m, ch))
		}
	}
	return out
}

func build(m *model.Model, seed *model.Choice) Vector {
	vec := make([]*model.Choice, len(m.Categories))
	placed := []*model.Choice{seed}
	for i, cat := range m.Categories {
		if cat.Name == seed.ID.Cat {
			vec[i] = seed
			continue
		}
		pick := firstCompatible(cat, placed)
		vec[i] = pick
		placed = append(placed, pick)
	}
	return Vector{Seed: seed, Values: vec}
}

// firstCompatible returns the first normal choice, in input order, that
// is compatible with everything already placed. If none qualifies (a
// spec whose constraints leave no witness for this column — §4.5 is
// silent on this edge case) it falls back to the category's first
// normal choice so every single/error vector is still emitted exactly
// once, as §8 invariant 4 requires.
func firstCompatible(cat *model.Category, placed []*model.Choice) *model.Choice {
	for _, ch := range cat.Normals {
		if pairwise.Compatible(placed, ch) {
			return ch
		}
	}
	if len(cat.Normals) > 0 {
		return cat.Normals[0]
	}
	return nil
}
