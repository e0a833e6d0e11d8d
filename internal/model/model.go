// Package model builds the semantic model described in §4.2: it resolves
// property names to the choices that declare them, classifies every
// choice as normal/single/error, and attaches the if/except constraints
// each choice carries. It is grounded on the same accumulate-then-check
// shape as pkg/scenario/validator.Validator, generalized from a fixed
// chaos-scenario schema to the category/choice/property graph spec.md
// defines.
package model

import (
	"fmt"
	"sort"

	"github.com/jihwankim/genpairs/internal/diag"
	"github.com/jihwankim/genpairs/internal/lexspec"
	"github.com/jihwankim/genpairs/internal/lexspec/token"
)

// Kind classifies a choice. The zero value is Normal, matching spec.md
// §3 ("absence = normal").
type Kind int

const (
	Normal Kind = iota
	Single
	Error
)

// ID globally identifies a choice as "cat=name" (§3: "category-qualified
// globally as cat=name").
type ID struct {
	Cat  string
	Name string
}

func (id ID) String() string { return fmt.Sprintf("%s=%s", id.Cat, id.Name) }

// Choice is one fully resolved choice: its kind and the three constraint
// sets §3 defines (properties, requires, excludes).
type Choice struct {
	ID       ID
	Pos      token.Position
	Kind     Kind
	Props    map[string]bool
	Requires map[string]bool
	Excludes map[string]bool
}

// IsNormal reports whether c participates in required pairs (§3: "kind =
// error or kind = single implies the choice participates in no required
// pair").
func (c *Choice) IsNormal() bool { return c.Kind == Normal }

// Declares reports whether c declares property p.
func (c *Choice) Declares(p string) bool { return c.Props[p] }

// Category is a named column holding its choices in input order, plus
// the same choices filtered by kind for cheap iteration by the pair
// enumerator, vector builder, and singles/errors enumerator.
type Category struct {
	Name    string
	Choices []*Choice // input order, all kinds
	Normals []*Choice // input order, kind == Normal
	Singles []*Choice
	Errors  []*Choice
}

// Model is the immutable semantic model: once Build returns it without
// errors, nothing about it changes again (§3 Lifecycles: "built once per
// invocation and is thereafter immutable").
type Model struct {
	Categories []*Category          // input order
	byCategory map[string]*Category
	Providers  map[string][]*Choice // property -> declaring choices, in first-seen order
}

// CategoryByName looks up a category, or nil if none exists by that name.
func (m *Model) CategoryByName(name string) *Category { return m.byCategory[name] }

// Build turns a parsed AST into a semantic Model, recording every static
// error (duplicate-adjacent checks already happened in the parser;
// here the checks are the ones that need global, cross-category
// knowledge: property providers and self-exclusion) into bag.
func Build(file *lexspec.File) (*Model, *diag.Bag) {
	bag := diag.New()
	m := &Model{byCategory: map[string]*Category{}, Providers: map[string][]*Choice{}}

	for _, astCat := range file.Categories {
		cat := &Category{Name: astCat.Name}
		for _, astCh := range astCat.Choices {
			ch := &Choice{
				ID:       ID{Cat: astCat.Name, Name: astCh.Name},
				Pos:      astCh.Pos,
				Props:    toSet(astCh.Props),
				Requires: toSet(astCh.Needs),
				Excludes: toSet(astCh.Excl),
			}
			switch {
			case astCh.Error:
				ch.Kind = Error
			case astCh.Single:
				ch.Kind = Single
			default:
				ch.Kind = Normal
			}

			cat.Choices = append(cat.Choices, ch)
			switch ch.Kind {
			case Normal:
				cat.Normals = append(cat.Normals, ch)
			case Single:
				cat.Singles = append(cat.Singles, ch)
			case Error:
				cat.Errors = append(cat.Errors, ch)
			}

			for p := range ch.Props {
				m.Providers[p] = append(m.Providers[p], ch)
			}
		}
		m.Categories = append(m.Categories, cat)
		m.byCategory[cat.Name] = cat
	}

	// Self-exclusion: a choice that both declares and forbids the same
	// property can never appear in any valid vector (§4.2).
	for _, cat := range m.Categories {
		for _, ch := range cat.Choices {
			for p := range ch.Excludes {
				if ch.Declares(p) {
					bag.Errorf(ch.Pos, "choice %s: self-exclusion — declares and excludes property %q", ch.ID, p)
				}
			}
		}
	}

	// Every 'if P' must have at least one provider (§3 invariant, §4.1
	// diagnostics: "reference to a property with no provider").
	for _, cat := range m.Categories {
		for _, ch := range cat.Choices {
			for p := range ch.Requires {
				if len(m.Providers[p]) == 0 {
					bag.Errorf(ch.Pos, "choice %s: property %q required via 'if' has no provider", ch.ID, p)
				}
			}
		}
	}

	return m, bag
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			set[n] = true
		}
	}
	return set
}

// SortedProperties returns the property names with at least one
// provider, in a stable (alphabetical) order — used only for
// deterministic diagnostic output, never for feasibility logic.
func (m *Model) SortedProperties() []string {
	names := make([]string, 0, len(m.Providers))
	for p := range m.Providers {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}
