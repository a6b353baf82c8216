package stat

import (
	sent "github.com/revelaction/subsent/sentence"
	"github.com/revelaction/subsent/split"
)

type Handler struct {
	stats Stats

	// owners counts the clauses each token Id belongs to
	owners map[int]int
}

type Stats struct {
	NumSentences int
	NumTokens    int
	NumClauses   int

	ClausesPerSentenceMean float64
	TokensPerClauseMean    float64

	// number of clauses by number of tokens
	TokensPerClauseDis map[int]int

	// Unassigned tokens belong to no clause, Overlapping to more than one.
	Unassigned  int
	Overlapping int

	// EmptyClauses lost all their tokens during resolution
	EmptyClauses int
}

func (h *Handler) Get() Stats {
	s := h.stats
	s.Unassigned, s.Overlapping = 0, 0
	for _, n := range h.owners {
		switch {
		case n == 0:
			s.Unassigned++
		case n > 1:
			s.Overlapping++
		}
	}

	if s.NumSentences > 0 {
		s.ClausesPerSentenceMean = float64(s.NumClauses) / float64(s.NumSentences)
	}
	if s.NumClauses > 0 {
		assigned := 0
		for size, n := range s.TokensPerClauseDis {
			assigned += size * n
		}
		s.TokensPerClauseMean = float64(assigned) / float64(s.NumClauses)
	}

	return s
}

func NewHandler() *Handler {
	stats := Stats{TokensPerClauseDis: map[int]int{}}
	return &Handler{
		stats:  stats,
		owners: map[int]int{},
	}
}

// Aggregate adds the doc and the clauses it was split into. Tokens are
// identified by Id, clauses repeated by the splitter count as overlap.
func (h *Handler) Aggregate(doc sent.Doc, clauses []split.Clause) {
	h.stats.NumSentences += len(doc.Tokens)
	h.stats.NumTokens += doc.NumTokens()
	for _, sentence := range doc.Tokens {
		for _, t := range sentence {
			if _, ok := h.owners[t.Id]; !ok {
				h.owners[t.Id] = 0
			}
		}
	}

	h.stats.NumClauses += len(clauses)
	for _, c := range clauses {
		h.stats.TokensPerClauseDis[len(c.Tokens)]++
		if len(c.Tokens) == 0 {
			h.stats.EmptyClauses++
		}
		for _, t := range c.Tokens {
			h.owners[t.Id]++
		}
	}
}
