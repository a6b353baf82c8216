package sentence

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidTree is returned when the tokens of a sentence do not form a
// single rooted, acyclic dependency tree.
var ErrInvalidTree = errors.New("invalid dependency tree")

// Parse is a read-only view of a dependency parsed document.
type Parse interface {
	// Sentences returns the tokens of each sentence, in document order.
	Sentences() [][]Token

	// Tokens returns all tokens of the document, in document order.
	Tokens() []Token

	// Subtree returns t and all its transitive dependents, ordered by Id.
	Subtree(t Token) []Token
}

// Tree is a validated Parse built from a Doc.
type Tree struct {
	sentences [][]Token
	tokens    []Token

	// children by token Id
	children map[int][]Token
	ids      map[int]bool
}

var _ Parse = (*Tree)(nil)

// NewTree validates the sentences of doc and indexes their dependency links.
func NewTree(doc Doc) (*Tree, error) {
	t := &Tree{
		sentences: doc.Tokens,
		children:  map[int][]Token{},
		ids:       map[int]bool{},
	}

	for sid, s := range doc.Tokens {
		if err := ValidateSentence(s); err != nil {
			return nil, fmt.Errorf("sentence %d: %w", sid, err)
		}

		byIndex := indexTokens(s)
		for _, token := range s {
			if t.ids[token.Id] {
				return nil, fmt.Errorf("%w: sentence %d: duplicated token id %d", ErrInvalidTree, sid, token.Id)
			}
			t.ids[token.Id] = true
			t.tokens = append(t.tokens, token)

			if token.IsRoot() {
				continue
			}
			parent := byIndex[token.Head]
			t.children[parent.Id] = append(t.children[parent.Id], token)
		}
	}

	return t, nil
}

func (t *Tree) Sentences() [][]Token {
	return t.sentences
}

func (t *Tree) Tokens() []Token {
	return t.tokens
}

// Subtree returns nil for tokens not in the tree.
func (t *Tree) Subtree(token Token) []Token {
	if !t.ids[token.Id] {
		return nil
	}

	subtree := []Token{token}
	stack := []Token{token}
	for len(stack) > 0 {
		last := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range t.children[last.Id] {
			subtree = append(subtree, child)
			stack = append(stack, child)
		}
	}

	sort.Slice(subtree, func(i, j int) bool { return subtree[i].Id < subtree[j].Id })
	return subtree
}

// ValidateSentence checks that s has exactly one root, that every head
// points into s and that following heads from any token reaches the root.
func ValidateSentence(s []Token) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty sentence", ErrInvalidTree)
	}

	byIndex := make(map[int]Token, len(s))
	var roots []Token
	for _, token := range s {
		if _, ok := byIndex[token.Index]; ok {
			return fmt.Errorf("%w: duplicated index %d", ErrInvalidTree, token.Index)
		}
		byIndex[token.Index] = token
		if token.IsRoot() {
			roots = append(roots, token)
		}
	}

	switch {
	case len(roots) == 0:
		return fmt.Errorf("%w: no root", ErrInvalidTree)
	case len(roots) > 1:
		return fmt.Errorf("%w: %d roots (%q, %q)", ErrInvalidTree, len(roots), roots[0].Text, roots[1].Text)
	}

	// reached holds the indexes known to lead to the root
	reached := map[int]bool{roots[0].Index: true}
	for _, token := range s {
		var path []int
		current := token
		for !reached[current.Index] {
			if len(path) > len(s) {
				return fmt.Errorf("%w: cycle through token %d %q", ErrInvalidTree, token.Index, token.Text)
			}
			path = append(path, current.Index)

			parent, ok := byIndex[current.Head]
			if !ok {
				return fmt.Errorf("%w: token %d %q has head %d outside the sentence", ErrInvalidTree, current.Index, current.Text, current.Head)
			}
			current = parent
		}

		for _, idx := range path {
			reached[idx] = true
		}
	}

	return nil
}

// Validate checks every sentence of p, and that the subtree p reports for
// each sentence root covers exactly the tokens of the sentence.
func Validate(p Parse) error {
	ids := map[int]bool{}
	for sid, s := range p.Sentences() {
		if err := ValidateSentence(s); err != nil {
			return fmt.Errorf("sentence %d: %w", sid, err)
		}

		inSentence := make(map[int]bool, len(s))
		var root Token
		for _, token := range s {
			if ids[token.Id] {
				return fmt.Errorf("%w: sentence %d: duplicated token id %d", ErrInvalidTree, sid, token.Id)
			}
			ids[token.Id] = true
			inSentence[token.Id] = true
			if token.IsRoot() {
				root = token
			}
		}

		subtree := p.Subtree(root)
		seen := make(map[int]bool, len(subtree))
		for _, token := range subtree {
			if !inSentence[token.Id] || seen[token.Id] {
				return fmt.Errorf("%w: sentence %d: subtree of root %q has unexpected token %d", ErrInvalidTree, sid, root.Text, token.Id)
			}
			seen[token.Id] = true
		}
		if len(seen) != len(s) {
			return fmt.Errorf("%w: sentence %d: %d of %d tokens unreachable from root %q", ErrInvalidTree, sid, len(s)-len(seen), len(s), root.Text)
		}
	}

	return nil
}

func indexTokens(s []Token) map[int]Token {
	byIndex := make(map[int]Token, len(s))
	for _, token := range s {
		byIndex[token.Index] = token
	}
	return byIndex
}
