package split

import (
	"fmt"
	"slices"
	"sort"
)

// Resolver removes overlap between candidates. It returns the candidates in
// the same order with reduced Members and leaves its input untouched.
// Candidates are never added, removed or merged, even when they end up
// empty.
type Resolver func([]Candidate) []Candidate

const (
	OnePassName        = "one-pass"
	InnermostFirstName = "innermost-first"
)

// ParseResolver returns the resolver with the given name.
func ParseResolver(name string) (Resolver, error) {
	switch name {
	case OnePassName, "":
		return OnePass, nil
	case InnermostFirstName:
		return InnermostFirst, nil
	}
	return nil, fmt.Errorf("unknown resolver %q, allowed values are %s, %s", name, OnePassName, InnermostFirstName)
}

// OnePass compares each candidate with every earlier one. When the root of
// one of them is still a member of the other, the full original subtree of
// the first is removed from the second: an embedded clause wins the span it
// covers. Containment is tested on the current members, the subtraction
// uses the original subtree.
func OnePass(candidates []Candidate) []Candidate {
	out := slices.Clone(candidates)
	for i := range out {
		for j := 0; j < i; j++ {
			if out[j].Members.Has(out[i].Root) {
				out[j].Members = out[j].Members.Without(out[i].Subtree)
			}
			if out[i].Members.Has(out[j].Root) {
				out[i].Members = out[i].Members.Without(out[j].Subtree)
			}
		}
	}
	return out
}

// InnermostFirst visits candidates from the smallest subtree to the largest
// and drops from each the tokens already claimed by a smaller one. Every
// token ends in exactly one candidate, the innermost clause containing it.
func InnermostFirst(candidates []Candidate) []Candidate {
	out := slices.Clone(candidates)

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(out[order[a]].Subtree) < len(out[order[b]].Subtree)
	})

	claimed := TokenSet{}
	for _, i := range order {
		out[i].Members = out[i].Members.Without(claimed)
		for id, t := range out[i].Members {
			claimed[id] = t
		}
	}
	return out
}
