// Package optimizer implements the coordinate-wise hill-climbing
// trainers and the exact retrograde-induction construction of an
// optimal strategy.
package optimizer

import (
	"github.com/rs/zerolog"

	"github.com/sxyu/bacon2/pkg/evaluator"
	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/strategy"
)

// logEvery matches the progress cadence of the original trainer.
const logEvery = 500

// TrainStrategy hill-climbs strat's cells in row-major order against a
// fixed opponent, trying every legal roll count per cell and adopting
// whichever maximizes the full win rate. It is a full re-evaluation
// per trial and so is the most expensive, most reliable variant; see
// DESIGN.md for why this (and the greedy sibling below) still carries
// no guarantee of monotone improvement.
func TrainStrategy(rules hogconfig.Rules, strat, opponent *strategy.Strategy, numSteps int, log zerolog.Logger) error {
	e := evaluator.New(rules)
	// Train against a clone so strat and opponent may be the same
	// underlying strategy without the in-progress edits contaminating
	// the opponent's own win-rate evaluation mid-sweep.
	clone := strat.Clone(strat.UniqueID, strat.Name)

	steps := 0
	for steps < numSteps {
		for i := 0; i < hogconfig.Goal && steps < numSteps; i++ {
			for j := 0; j < hogconfig.Goal && steps < numSteps; j++ {
				bestWR := -1.0
				bestRoll := 0
				for roll := hogconfig.MinRolls; roll <= hogconfig.MaxRolls; roll++ {
					if err := clone.Set(i, j, roll); err != nil {
						return err
					}
					wr := e.WinRate(clone, opponent)
					if wr > bestWR {
						bestWR = wr
						bestRoll = roll
					}
				}
				if err := strat.Set(i, j, bestRoll); err != nil {
					return err
				}
				if err := clone.Set(i, j, bestRoll); err != nil {
					return err
				}
				steps++
				if steps%logEvery == 0 {
					log.Info().Int("steps", steps).Msg("train_strategy progress")
				}
			}
		}
	}
	return nil
}

// TrainStrategyGreedy is the cheaper sibling: instead of a full
// win-rate re-evaluation per trial, it clears only the single DP cell
// for the current (i, j) and recomputes that subtree directly,
// reusing everything else memoized so far. Because clearing a cell
// does not invalidate the ancestor cells whose cached values depended
// on it, this can leave the table inconsistent with the strategy being
// trained — it is documented here, as in the source it is grounded on,
// as unreliable, not monotone-improving, and not fixed.
func TrainStrategyGreedy(rules hogconfig.Rules, strat, opponent *strategy.Strategy, numSteps int, log zerolog.Logger) error {
	e := evaluator.New(rules)
	e.Reset()
	e.WinRateGoingFirst(strat, opponent) // prime the table once

	steps := 0
	for steps < numSteps {
		for i := 0; i < hogconfig.Goal && steps < numSteps; i++ {
			for j := 0; j < hogconfig.Goal && steps < numSteps; j++ {
				bestWR := -1.0
				bestRoll := 0
				for roll := hogconfig.MinRolls; roll <= hogconfig.MaxRolls; roll++ {
					if err := strat.Set(i, j, roll); err != nil {
						return err
					}
					wr := e.RecomputeRootCell(strat, opponent, i, j)
					if wr > bestWR {
						bestWR = wr
						bestRoll = roll
					}
				}
				if err := strat.Set(i, j, bestRoll); err != nil {
					return err
				}
				steps++
				if steps%logEvery == 0 {
					log.Info().Int("steps", steps).Msg("train_strategy_greedy progress")
				}
			}
		}
	}
	return nil
}

// MakeOptimalStrategy constructs an exact optimal strategy under the
// simplified ruleset (Swine Swap only, no Feral Hogs, no Time Trot) by
// retrograde induction: game-state positions are visited in decreasing
// total score order, so every successor state has already been
// resolved by the time a cell is evaluated.
func MakeOptimalStrategy(strat *strategy.Strategy) error {
	rules := hogconfig.Rules{EnableSwineSwap: true}
	e := evaluator.New(rules)
	e.Reset()

	for t := 2*hogconfig.Goal - 2; t >= 0; t-- {
		lo := t - hogconfig.Goal + 1
		if lo < 0 {
			lo = 0
		}
		hi := t
		if hi > hogconfig.Goal-1 {
			hi = hogconfig.Goal - 1
		}
		for j := lo; j <= hi; j++ {
			i := t - j
			bestWR := -1.0
			bestRoll := 0
			for roll := hogconfig.MinRolls; roll <= hogconfig.MaxRolls; roll++ {
				if err := strat.Set(i, j, roll); err != nil {
					return err
				}
				wr := e.RecomputeRootCell(strat, strat, i, j)
				if wr > bestWR {
					bestWR = wr
					bestRoll = roll
				}
			}
			if err := strat.Set(i, j, bestRoll); err != nil {
				return err
			}
			e.SetRootCell(i, j, bestWR)
		}
	}
	return nil
}
