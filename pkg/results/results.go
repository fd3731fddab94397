// Package results holds the lower-triangular win-rate matrix produced
// by a tournament run, plus the ranking derived from it.
package results

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/strategy"
)

// Ranking pairs a strategy index with its win count, produced by
// MakeRankings.
type Ranking struct {
	Index int
	Wins  int
}

// Results holds one win rate per unordered pair of strategies.
// Table[i][j] is only meaningful for j < i; Get derives the rest by
// symmetry.
type Results struct {
	Strategies []*strategy.Strategy
	Table      [][]float64
	Rankings   []Ranking
}

// New allocates an empty lower-triangular Results for the given
// detached strategy snapshot, with Table[i] sized i (row width equals
// the row index, matching a strictly-lower triangle).
func New(strategies []*strategy.Strategy) *Results {
	r := &Results{Strategies: strategies, Table: make([][]float64, len(strategies))}
	for i := range r.Table {
		r.Table[i] = make([]float64, i)
	}
	return r
}

// Get returns the win rate of strategy i0 against strategy i1.
func (r *Results) Get(i0, i1 int) float64 {
	switch {
	case i0 == i1:
		return 0.5
	case i0 < i1:
		return 1.0 - r.Table[i1][i0]
	default:
		return r.Table[i0][i1]
	}
}

// IsWin reports whether i0 beats i1 by more than the win epsilon.
func (r *Results) IsWin(i0, i1 int) bool {
	return r.Get(i0, i1) > 0.5+hogconfig.WinEpsilon
}

// MakeRankings recomputes Rankings from Table: one win credited per
// pairwise victory, ties broken by ascending strategy name.
func (r *Results) MakeRankings() {
	rankings := make([]Ranking, len(r.Strategies))
	for i := range rankings {
		rankings[i] = Ranking{Index: i}
	}
	for i := 1; i < len(r.Strategies); i++ {
		for j := 0; j < i; j++ {
			wr := r.Get(i, j)
			switch {
			case wr > 0.5+hogconfig.WinEpsilon:
				rankings[i].Wins++
			case wr < 0.5-hogconfig.WinEpsilon:
				rankings[j].Wins++
			}
		}
	}
	sort.SliceStable(rankings, func(a, b int) bool {
		if rankings[a].Wins != rankings[b].Wins {
			return rankings[a].Wins > rankings[b].Wins
		}
		return r.Strategies[rankings[a].Index].Name < r.Strategies[rankings[b].Index].Name
	})
	r.Rankings = rankings
}

// String renders the rankings as human-readable lines, one per
// strategy, most wins first.
func (r *Results) String() string {
	var sb strings.Builder
	for _, rk := range r.Rankings {
		s := r.Strategies[rk.Index]
		plural := "s"
		if rk.Wins == 1 {
			plural = ""
		}
		fmt.Fprintf(&sb, "%s with %d win%s\n", s.Name, rk.Wins, plural)
	}
	return sb.String()
}
