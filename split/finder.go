package split

import (
	"slices"

	sent "github.com/revelaction/subsent/sentence"
)

// RootFinder decides whether a token heads an independent clause. It must
// be total and free of side effects.
type RootFinder func(sent.Token) bool

// DefaultRootFinder selects the sentence root, and verbs or adjectives that
// are conjuncts or clausal complements.
func DefaultRootFinder(t sent.Token) bool {
	return (isPredicatePos(t.Pos) && (t.HasDep("conj") || t.HasDep("ccomp"))) || t.HasDep(sent.RootDep)
}

func isPredicatePos(pos string) bool {
	return pos == "VERB" || pos == "ADJ"
}

// Rules describes a RootFinder by sets of labels. A token is a root when
// its POS is in Pos and its dependency label in Deps, or when its label is
// in Always.
type Rules struct {
	Pos    []string `yaml:"pos"`
	Deps   []string `yaml:"deps"`
	Always []string `yaml:"always"`
}

// DefaultRules are the rules of DefaultRootFinder.
var DefaultRules = Rules{
	Pos:    []string{"VERB", "ADJ"},
	Deps:   []string{"conj", "ccomp"},
	Always: []string{sent.RootDep},
}

// RootFinder returns the finder for r. The rules are copied, later changes
// to r do not affect it.
func (r Rules) RootFinder() RootFinder {
	pos := slices.Clone(r.Pos)
	deps := slices.Clone(r.Deps)
	always := slices.Clone(r.Always)

	hasDep := func(t sent.Token, deps []string) bool {
		for _, d := range deps {
			if t.HasDep(d) {
				return true
			}
		}
		return false
	}

	return func(t sent.Token) bool {
		if hasDep(t, always) {
			return true
		}
		return slices.Contains(pos, t.Pos) && hasDep(t, deps)
	}
}
