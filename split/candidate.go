package split

import (
	"sort"

	sent "github.com/revelaction/subsent/sentence"
)

// TokenSet is a set of tokens keyed by token Id. No method modifies its
// receiver.
type TokenSet map[int]sent.Token

func NewTokenSet(tokens []sent.Token) TokenSet {
	s := make(TokenSet, len(tokens))
	for _, t := range tokens {
		s[t.Id] = t
	}
	return s
}

func (s TokenSet) Has(t sent.Token) bool {
	_, ok := s[t.Id]
	return ok
}

// Without returns the tokens of s not in o.
func (s TokenSet) Without(o TokenSet) TokenSet {
	out := make(TokenSet, len(s))
	for id, t := range s {
		if _, ok := o[id]; !ok {
			out[id] = t
		}
	}
	return out
}

func (s TokenSet) SubsetOf(o TokenSet) bool {
	for id := range s {
		if _, ok := o[id]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the tokens ordered by text offset. Parts of a multi token
// word share the offset and keep their Id order.
func (s TokenSet) Sorted() []sent.Token {
	tokens := make([]sent.Token, 0, len(s))
	for _, t := range s {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Idx != tokens[j].Idx {
			return tokens[i].Idx < tokens[j].Idx
		}
		return tokens[i].Id < tokens[j].Id
	})
	return tokens
}

// Candidate is a provisional clause. Subtree is the full subtree of Root and
// never changes; Members is what remains of it after resolution.
type Candidate struct {
	Root    sent.Token
	Subtree TokenSet
	Members TokenSet
}

// Collect returns a candidate for each of tokens satisfying find, ordered by
// the position of the root. Members are the full subtree of each root,
// overlap between candidates is left in place.
func Collect(p sent.Parse, tokens []sent.Token, find RootFinder) []Candidate {
	var candidates []Candidate
	for _, t := range tokens {
		if !find(t) {
			continue
		}
		subtree := NewTokenSet(p.Subtree(t))
		candidates = append(candidates, Candidate{Root: t, Subtree: subtree, Members: subtree})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Root.Id < candidates[j].Root.Id
	})
	return candidates
}

// Clause is a resolved candidate, its tokens ordered by text offset.
type Clause struct {
	Root       sent.Token   `json:"root"`
	SentenceId int          `json:"sent"`
	Tokens     []sent.Token `json:"tokens"`
}

func newClause(c Candidate) Clause {
	return Clause{
		Root:       c.Root,
		SentenceId: c.Root.SentenceId,
		Tokens:     c.Members.Sorted(),
	}
}

// Start returns the lowest text offset of the clause, -1 if it is empty.
func (c Clause) Start() int {
	if len(c.Tokens) == 0 {
		return -1
	}
	return c.Tokens[0].Idx
}

// End returns the highest text offset of the clause, -1 if it is empty.
func (c Clause) End() int {
	if len(c.Tokens) == 0 {
		return -1
	}
	return c.Tokens[len(c.Tokens)-1].Idx
}
