// Package tile implements rule-based tile placement: a grid where each
// edit re-resolves the affected cell and its immediate neighbors
// against adjacency rules, with weighted random tie-break among
// equally valid variants
package tile

import (
	"math/bits"
	"math/rand"
	"sort"

	"github.com/lixenwraith/framecore/core"
)

// Definition is one concrete tile variant
type Definition struct {
	Name string
}

// Candidate is a weighted tile variant. Selection probability is
// Weight divided by the sum of weights in the candidate set
type Candidate struct {
	Def    Definition
	Weight int
}

// Neighbor occupancy bits for the 8 cells around a position
const (
	NeighborNW uint8 = 1 << iota
	NeighborN
	NeighborNE
	NeighborW
	NeighborE
	NeighborSW
	NeighborS
	NeighborSE
)

// PatternSurrounded matches a cell whose 8 neighbors are all filled
const PatternSurrounded uint8 = 0xFF

// Rule maps a neighbor occupancy pattern to a candidate set.
// Care selects which neighbor bits the rule constrains; bits outside
// Care are wildcards. A rule with Care == 0 matches anything
type Rule struct {
	Pattern    uint8
	Care       uint8
	Candidates []Candidate
}

// matches reports whether the occupancy satisfies the rule
func (r Rule) matches(occupancy uint8) bool {
	return occupancy&r.Care == r.Pattern&r.Care
}

// GroupKind discriminates the group variants
type GroupKind uint8

const (
	GroupSingle GroupKind = iota
	GroupWeighted
	GroupRules
)

// Group is what callers place on the grid: a single definition, a
// weighted set, or a set of adjacency rules resolved per placement
type Group struct {
	kind       GroupKind
	single     Definition
	candidates []Candidate
	rules      []Rule
}

// NewGroup creates a single-definition group
func NewGroup(def Definition) *Group {
	return &Group{kind: GroupSingle, single: def}
}

// NewWeightedGroup creates a group choosing among weighted variants.
// All weights must be positive
func NewWeightedGroup(candidates []Candidate) (*Group, error) {
	if len(candidates) == 0 {
		return nil, core.Configf("tile.group", "weighted group needs at least one candidate")
	}
	for _, c := range candidates {
		if c.Weight <= 0 {
			return nil, core.Configf("tile.group", "weight %d for %q is not positive", c.Weight, c.Def.Name)
		}
	}
	return &Group{kind: GroupWeighted, candidates: candidates}, nil
}

// NewRuleGroup creates a group resolved through adjacency rules.
// Rules are matched in specificity order: the more neighbor bits a
// rule constrains, the earlier it is tried, so exact corner and edge
// patterns win over the catch-all. Ties keep declaration order
func NewRuleGroup(rules []Rule) (*Group, error) {
	if len(rules) == 0 {
		return nil, core.Configf("tile.group", "rule group needs at least one rule")
	}
	for i, r := range rules {
		if len(r.Candidates) == 0 {
			return nil, core.Configf("tile.group", "rule %d has no candidates", i)
		}
		for _, c := range r.Candidates {
			if c.Weight <= 0 {
				return nil, core.Configf("tile.group", "weight %d for %q is not positive", c.Weight, c.Def.Name)
			}
		}
	}

	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bits.OnesCount8(sorted[i].Care) > bits.OnesCount8(sorted[j].Care)
	})
	return &Group{kind: GroupRules, rules: sorted}, nil
}

// Kind returns the group variant
func (g *Group) Kind() GroupKind {
	return g.kind
}

// resolve picks the definition for the given neighbor occupancy
func (g *Group) resolve(occupancy uint8, rng *rand.Rand) (Definition, bool) {
	switch g.kind {
	case GroupSingle:
		return g.single, true
	case GroupWeighted:
		return pickWeighted(g.candidates, rng), true
	case GroupRules:
		for _, r := range g.rules {
			if r.matches(occupancy) {
				return pickWeighted(r.Candidates, rng), true
			}
		}
	}
	return Definition{}, false
}

// pickWeighted selects a candidate with probability proportional to
// its weight. Callers guarantee positive weights
func pickWeighted(candidates []Candidate, rng *rand.Rand) Definition {
	if len(candidates) == 1 {
		return candidates[0].Def
	}

	total := 0
	for _, c := range candidates {
		total += c.Weight
	}

	roll := rng.Intn(total)
	for _, c := range candidates {
		roll -= c.Weight
		if roll < 0 {
			return c.Def
		}
	}
	return candidates[len(candidates)-1].Def
}
