package tournament

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/strategy"
)

func buildStrategies(rolls ...int) []*strategy.Strategy {
	out := make([]*strategy.Strategy, len(rolls))
	for i, r := range rolls {
		s, _ := strategy.New(string(rune('a'+i)), "")
		s.SetConst(r)
		out[i] = s
	}
	return out
}

func TestRunComputesFullMatrixWhenNoPrior(t *testing.T) {
	rules := hogconfig.Rules{}
	strats := buildStrategies(3, 4, 5)
	res := Run(rules, strats, nil, 2, zerolog.Nop())
	if len(res.Table) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(res.Table))
	}
	for i := 1; i < 3; i++ {
		for j := 0; j < i; j++ {
			wr := res.Get(i, j)
			if wr <= 0 || wr >= 1 {
				t.Fatalf("Get(%d,%d) = %v out of (0,1)", i, j, wr)
			}
		}
	}
}

func TestRunReusesUnchangedResults(t *testing.T) {
	rules := hogconfig.Rules{}
	strats := buildStrategies(3, 4, 5)
	first := Run(rules, strats, nil, 1, zerolog.Nop())

	// Mutate nothing; rerun should reuse every cell and produce the
	// identical matrix without recomputation.
	second := Run(rules, strats, first, 1, zerolog.Nop())
	for i := 1; i < 3; i++ {
		for j := 0; j < i; j++ {
			if first.Get(i, j) != second.Get(i, j) {
				t.Fatalf("Get(%d,%d) changed across reuse: %v vs %v", i, j, first.Get(i, j), second.Get(i, j))
			}
		}
	}
}

func TestRunRecomputesChangedStrategy(t *testing.T) {
	rules := hogconfig.Rules{}
	strats := buildStrategies(3, 4, 5)
	first := Run(rules, strats, nil, 1, zerolog.Nop())

	strats[0].SetConst(6)
	second := Run(rules, strats, first, 1, zerolog.Nop())

	if first.Get(1, 0) == second.Get(1, 0) && strats[0].MustGet(0, 0) != 3 {
		// Not a hard guarantee of difference (win rates could coincide),
		// but the matchups touching index 0 must have been recomputed
		// rather than blindly copied; exercise the path without
		// asserting a specific numeric outcome.
		t.Log("win rate unchanged after strategy mutation; this can happen but is worth noting")
	}
}

func TestRunSingleVsMultiWorkerAgree(t *testing.T) {
	rules := hogconfig.Rules{EnableSwineSwap: true}
	strats := buildStrategies(3, 4, 5, 6)
	single := Run(rules, strats, nil, 1, zerolog.Nop())
	multi := Run(rules, strats, nil, 4, zerolog.Nop())
	for i := 1; i < 4; i++ {
		for j := 0; j < i; j++ {
			if single.Get(i, j) != multi.Get(i, j) {
				t.Fatalf("single vs multi worker mismatch at (%d,%d): %v vs %v", i, j, single.Get(i, j), multi.Get(i, j))
			}
		}
	}
}
