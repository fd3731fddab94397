package optimizer

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/sxyu/bacon2/pkg/evaluator"
	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/strategy"
)

func TestTrainStrategyDoesNotLowerWinRate(t *testing.T) {
	rules := hogconfig.Rules{EnableSwineSwap: true, EnableFeralHogs: true}
	strat, _ := strategy.New("s", "")
	strat.SetConst(5)
	opponent, _ := strategy.New("o", "")
	opponent.SetConst(6)

	e := evaluator.New(rules)
	before := e.WinRate(strat, opponent)

	if err := TrainStrategy(rules, strat, opponent, hogconfig.Goal, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	after := e.WinRate(strat, opponent)
	if after < before-1e-9 {
		t.Fatalf("win rate decreased after training: before=%v after=%v", before, after)
	}
}

// The greedy variant's cell-local cache invalidation is a known
// approximation; this only checks it runs to completion and leaves
// every cell within the legal roll range, not that it improves the
// win rate monotonically.
func TestTrainStrategyGreedyStaysInBounds(t *testing.T) {
	rules := hogconfig.Rules{EnableSwineSwap: true}
	strat, _ := strategy.New("s", "")
	strat.SetConst(4)
	opponent, _ := strategy.New("o", "")
	opponent.SetConst(4)

	if err := TrainStrategyGreedy(rules, strat, opponent, 50, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < hogconfig.Goal; i++ {
		for j := 0; j < hogconfig.Goal; j++ {
			v, err := strat.Get(i, j)
			if err != nil {
				t.Fatal(err)
			}
			if v < hogconfig.MinRolls || v > hogconfig.MaxRolls {
				t.Fatalf("cell (%d,%d) = %d out of bounds", i, j, v)
			}
		}
	}
}

func TestMakeOptimalStrategyDominatesConstant(t *testing.T) {
	opt, _ := strategy.New("opt", "")
	if err := MakeOptimalStrategy(opt); err != nil {
		t.Fatal(err)
	}

	rules := hogconfig.Rules{EnableSwineSwap: true}
	e := evaluator.New(rules)
	dumb, _ := strategy.New("dumb", "")
	dumb.SetConst(4)

	wr := e.WinRate(opt, dumb)
	if wr < 0.5 {
		t.Fatalf("optimal strategy should not lose to a constant one on average, got %v", wr)
	}

	wrFirst := e.WinRateGoingFirst(opt, dumb)
	if wrFirst <= 0.55 {
		t.Fatalf("win_rate_going_first against always-roll-4 = %v, want > 0.55", wrFirst)
	}
}
