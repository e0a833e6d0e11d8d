package pairwise

import "github.com/jihwankim/genpairs/internal/model"

// declaredAndRequired returns the union of properties declared by, and
// required by, every choice in placed — the set §4.3 rule (i) checks a
// candidate's excludes against.
func declaredAndRequired(placed []*model.Choice) map[string]bool {
	union := map[string]bool{}
	for _, c := range placed {
		for p := range c.Props {
			union[p] = true
		}
		for p := range c.Requires {
			union[p] = true
		}
	}
	return union
}

// Compatible implements §4.3 rules (i)-(ii): candidate may join placed
// iff neither side's excludes reach into the other's declared or
// required properties.
func Compatible(placed []*model.Choice, candidate *model.Choice) bool {
	declaredReq := declaredAndRequired([]*model.Choice{candidate})
	for p := range candidate.Excludes {
		if declaredAndRequired(placed)[p] {
			return false
		}
	}
	for _, c := range placed {
		for p := range c.Excludes {
			if declaredReq[p] || candidate.Declares(p) {
				return false
			}
		}
	}
	return true
}

// ValidVector implements the §3 definition of a valid vector exactly:
// every requires is satisfied by some other chosen choice, and no chosen
// choice declares a property another chosen choice excludes.
func ValidVector(vec []*model.Choice) bool {
	for i, c := range vec {
		for p := range c.Requires {
			satisfied := false
			for j, other := range vec {
				if i != j && other.Declares(p) {
					satisfied = true
					break
				}
			}
			if !satisfied {
				return false
			}
		}
		for p := range c.Excludes {
			for j, other := range vec {
				if i != j && other.Declares(p) {
					return false
				}
			}
		}
	}
	return true
}

// reachable implements the §4.3 rule (iii) prune: every property any
// placed choice still requires (and has not yet had satisfied by another
// placed choice) must have at least one provider among the normal
// choices of the categories not yet assigned.
func reachable(placed []*model.Choice, remaining []*model.Category) bool {
	unmet := map[string]bool{}
	for _, c := range placed {
		for p := range c.Requires {
			unmet[p] = true
		}
	}
	for p := range unmet {
		satisfied := false
		for _, c := range placed {
			if c.Declares(p) {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}
		found := false
		for _, cat := range remaining {
			for _, ch := range cat.Normals {
				if ch.Declares(p) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
