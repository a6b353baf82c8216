// Package split decomposes dependency parsed sentences into single
// predicate clauses.
//
// A RootFinder selects the tokens heading a clause, Collect builds one
// candidate per root from its subtree and a Resolver removes the overlap
// between nested candidates. The Splitter drives the three over a parse and
// yields the resulting clauses lazily.
package split

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	sent "github.com/revelaction/subsent/sentence"
)

// Mode selects the tokens candidates are computed over.
type Mode int

const (
	// ModeSentence computes candidates over each sentence and yields the
	// clauses of every sentence once.
	ModeSentence Mode = iota

	// ModeDocumentPerSentence recomputes candidates over the whole document
	// at every sentence boundary, so a document of n sentences yields all
	// its clauses n times.
	ModeDocumentPerSentence
)

var modeNames = map[Mode]string{
	ModeSentence:            "sentence",
	ModeDocumentPerSentence: "document-per-sentence",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	if name == "" {
		return ModeSentence, nil
	}
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return ModeSentence, fmt.Errorf("unknown mode %q, allowed values are %s, %s", name, ModeSentence, ModeDocumentPerSentence)
}

// Splitter splits parsed documents into clauses. It is immutable and can be
// shared between goroutines.
type Splitter struct {
	find    RootFinder
	resolve Resolver
	mode    Mode
	logger  *zap.Logger
}

type Option func(*Splitter)

// WithRootFinder replaces DefaultRootFinder.
func WithRootFinder(f RootFinder) Option {
	return func(s *Splitter) {
		if f != nil {
			s.find = f
		}
	}
}

// WithResolver replaces OnePass.
func WithResolver(r Resolver) Option {
	return func(s *Splitter) {
		if r != nil {
			s.resolve = r
		}
	}
}

func WithMode(m Mode) Option {
	return func(s *Splitter) {
		s.mode = m
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Splitter) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(opts ...Option) *Splitter {
	s := &Splitter{
		find:    DefaultRootFinder,
		resolve: OnePass,
		mode:    ModeSentence,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Splitter) Mode() Mode {
	return s.mode
}

// Split returns the clauses of p. The parse is validated first; an invalid
// tree yields a single error wrapping sent.ErrInvalidTree and nothing else.
// The clauses of a sentence are computed when the sequence reaches it, the
// consumer can stop at any point.
func (s *Splitter) Split(p sent.Parse) iter.Seq2[Clause, error] {
	return func(yield func(Clause, error) bool) {
		if err := sent.Validate(p); err != nil {
			yield(Clause{}, err)
			return
		}

		for sid, tokens := range p.Sentences() {
			if s.mode == ModeDocumentPerSentence {
				tokens = p.Tokens()
			}

			clauses := s.clauses(p, tokens)
			s.logger.Debug("split sentence",
				zap.Int("sentence", sid),
				zap.Stringer("mode", s.mode),
				zap.Int("tokens", len(tokens)),
				zap.Int("clauses", len(clauses)),
			)

			for _, c := range clauses {
				if !yield(c, nil) {
					return
				}
			}
		}
	}
}

// SplitAll collects the sequence returned by Split.
func (s *Splitter) SplitAll(p sent.Parse) ([]Clause, error) {
	var clauses []Clause
	for c, err := range s.Split(p) {
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}

// SplitSentence returns the clauses of the sentence sid of p, computed over
// that sentence only whatever the mode.
func (s *Splitter) SplitSentence(p sent.Parse, sid int) ([]Clause, error) {
	sentences := p.Sentences()
	if sid < 0 || sid >= len(sentences) {
		return nil, fmt.Errorf("sentence index %d out of bounds (0-%d)", sid, len(sentences)-1)
	}

	tokens := sentences[sid]
	if err := sent.ValidateSentence(tokens); err != nil {
		return nil, fmt.Errorf("sentence %d: %w", sid, err)
	}

	return s.clauses(p, tokens), nil
}

func (s *Splitter) clauses(p sent.Parse, tokens []sent.Token) []Clause {
	resolved := s.resolve(Collect(p, tokens, s.find))
	clauses := make([]Clause, 0, len(resolved))
	for _, c := range resolved {
		clauses = append(clauses, newClause(c))
	}
	return clauses
}
