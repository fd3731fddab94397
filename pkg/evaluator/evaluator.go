// Package evaluator computes exact win probabilities for a pair of
// strategies via memoized recursion over the game tree, and provides a
// Monte Carlo player for cross-checking the exact result.
package evaluator

import (
	"math"
	"math/rand"

	"github.com/sxyu/bacon2/pkg/dicetable"
	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/strategy"
)

// Evaluator owns one memoization table and is not safe for concurrent
// use; the tournament runner gives each worker goroutine its own
// instance. Table dimensions collapse according to which rules are
// enabled, so a ruleset with Feral Hogs and Time Trot both off uses a
// GOAL*GOAL*2 table instead of the full seven-dimensional one.
type Evaluator struct {
	rules hogconfig.Rules
	dt    dicetable.Table

	lastDim int
	turnDim int
	trotDim int

	table []float64
}

// New returns an Evaluator for the given ruleset, with its DP table
// allocated at the dimension-collapsed size appropriate to that
// ruleset.
func New(rules hogconfig.Rules) *Evaluator {
	e := &Evaluator{rules: rules, dt: dicetable.Get()}
	e.lastDim = 1
	if rules.EnableFeralHogs {
		e.lastDim = hogconfig.MaxRolls + 1
	}
	e.turnDim = 1
	e.trotDim = 1
	if rules.EnableTimeTrot {
		e.turnDim = hogconfig.ModTrot
		e.trotDim = 2
	}
	size := hogconfig.Goal * hogconfig.Goal * 2 * e.lastDim * e.lastDim * e.turnDim * e.trotDim
	e.table = make([]float64, size)
	return e
}

// reset clears the memoization table for a fresh (strat, oppStrat)
// pair; the +1.0 sentinel scheme means a zero entry is "unfilled".
func (e *Evaluator) reset() {
	for i := range e.table {
		e.table[i] = 0
	}
}

func (e *Evaluator) index(who, score, oppScore, lastRolls, oppLastRolls, turnMod, trot int) int {
	idx := who
	idx = idx*hogconfig.Goal + score
	idx = idx*hogconfig.Goal + oppScore
	idx = idx*e.lastDim + lastRolls
	idx = idx*e.lastDim + oppLastRolls
	idx = idx*e.turnDim + turnMod
	idx = idx*e.trotDim + trot
	return idx
}

// WinRate returns the average of a's win probability going first and
// going last against b, i.e. the symmetric head-to-head win rate.
func (e *Evaluator) WinRate(a, b *strategy.Strategy) float64 {
	wr0 := e.WinRateGoingFirst(a, b)
	wr1 := e.WinRateGoingLast(a, b)
	return (wr0 + wr1) / 2
}

// WinRateGoingFirst returns the probability a beats b when a moves
// first.
func (e *Evaluator) WinRateGoingFirst(a, b *strategy.Strategy) float64 {
	e.reset()
	trot := 0
	if e.rules.EnableTimeTrot {
		trot = 1
	}
	return e.compute(a, b, 0, 0, 0, 0, 0, 0, trot)
}

// WinRateGoingLast returns the probability a beats b when b moves
// first.
func (e *Evaluator) WinRateGoingLast(a, b *strategy.Strategy) float64 {
	e.reset()
	trot := 0
	if e.rules.EnableTimeTrot {
		trot = 1
	}
	return 1.0 - e.compute(b, a, 0, 0, 0, 0, 0, 0, trot)
}

// compute returns the probability that strat (whose turn it is)
// eventually reaches GOAL before oppStrat, from the given state.
func (e *Evaluator) compute(strat, oppStrat *strategy.Strategy, score, oppScore, who, lastRolls, oppLastRolls, turnMod, trot int) float64 {
	if !e.rules.EnableFeralHogs {
		lastRolls, oppLastRolls = 0, 0
	}
	if !e.rules.EnableTimeTrot {
		turnMod, trot = 0, 0
	}
	idx := e.index(who, score, oppScore, lastRolls, oppLastRolls, turnMod, trot)
	if e.table[idx] != 0 {
		return e.table[idx] - 1.0
	}

	rolls := strat.MustGet(score, oppScore)
	takeTurn := func(k int) float64 {
		return e.takeTurn(strat, oppStrat, score, oppScore, who, lastRolls, oppLastRolls, turnMod, trot, rolls, k)
	}

	var result float64
	if rolls == 0 {
		result = takeTurn(hogconfig.FreeBacon(oppScore))
	} else {
		weighted := takeTurn(1) * float64(e.dt.Ways(rolls, 1))
		totalWeight := float64(e.dt.Ways(rolls, 1))
		for k := 2 * rolls; k <= hogconfig.DiceSides*rolls; k++ {
			w := float64(e.dt.Ways(rolls, k))
			if w == 0 {
				continue
			}
			weighted += takeTurn(k) * w
			totalWeight += w
		}
		result = weighted / totalWeight
	}
	e.table[idx] = result + 1.0
	return result
}

func (e *Evaluator) takeTurn(strat, oppStrat *strategy.Strategy, score, oppScore, who, lastRolls, oppLastRolls, turnMod, trot, rolls, k int) float64 {
	newScore, newOpp := score+k, oppScore
	if e.rules.EnableFeralHogs {
		diff := rolls - lastRolls
		if diff < 0 {
			diff = -diff
		}
		if diff == hogconfig.FeralHogsAbsDiff {
			newScore += 3
		}
	}
	if e.rules.EnableSwineSwap && hogconfig.IsSwap(newScore, newOpp) {
		newScore, newOpp = newOpp, newScore
	}
	if newScore >= hogconfig.Goal {
		return 1.0
	}
	if newOpp >= hogconfig.Goal {
		return 0.0
	}

	nextTurn := (turnMod + 1) % hogconfig.ModTrot
	if trot != 0 && turnMod == rolls {
		return e.compute(strat, oppStrat, newScore, newOpp, who, rolls, oppLastRolls, nextTurn, 0)
	}
	child := e.compute(oppStrat, strat, newOpp, newScore, who^1, oppLastRolls, rolls, nextTurn, 1)
	return 1.0 - child
}

// initialTrot returns the "armed" value used for the root (turn_mod=0)
// state of a fresh turn sequence: 1 if Time Trot is enabled, else 0
// (collapsed by compute itself when disabled).
func (e *Evaluator) initialTrot() int {
	if e.rules.EnableTimeTrot {
		return 1
	}
	return 0
}

// ClearRootCell invalidates the memoized value for (score=i, oppScore=j)
// as the root of a fresh turn (who=0, no Feral Hogs history, turn_mod=0),
// forcing the next RecomputeRootCell/compute call to recompute it. Used
// by the optimizer's cell-local retraining passes.
func (e *Evaluator) ClearRootCell(i, j int) {
	e.table[e.index(0, i, j, 0, 0, 0, e.initialTrot())] = 0
}

// RecomputeRootCell clears and recomputes the root cell for (i, j),
// reusing whatever else remains cached in the table.
func (e *Evaluator) RecomputeRootCell(strat, oppo *strategy.Strategy, i, j int) float64 {
	e.ClearRootCell(i, j)
	return e.compute(strat, oppo, i, j, 0, 0, 0, 0, e.initialTrot())
}

// SetRootCell directly writes a resolved value into the root cell for
// (i, j), bypassing compute. Used by MakeOptimalStrategy's retrograde
// construction, which already knows the value after trying every roll
// count and wants later (lower-total-score) cells in the sweep to see
// it without recomputation.
func (e *Evaluator) SetRootCell(i, j int, value float64) {
	e.table[e.index(0, i, j, 0, 0, 0, e.initialTrot())] = value + 1.0
}

// Reset clears the full memoization table, exposed for callers (such
// as the optimizer) that prime the table once and then issue many
// RecomputeRootCell calls against it.
func (e *Evaluator) Reset() { e.reset() }

// PlayOneGame simulates a single game with an independent RNG and
// reports whether a beat b. Pig-Out, Feral Hogs, Swine Swap and Time
// Trot follow the same rules as the exact evaluator.
func (e *Evaluator) PlayOneGame(rng *rand.Rand, a, b *strategy.Strategy) bool {
	scoreA, scoreB := 0, 0
	lastA, lastB := 0, 0
	turnMod := 0
	trot := e.rules.EnableTimeTrot
	mover, other := a, b
	moverScore, otherScore := &scoreA, &scoreB
	moverLast, otherLast := &lastA, &lastB
	movingIsA := true

	for {
		rolls := mover.MustGet(*moverScore, *otherScore)
		var k int
		if rolls == 0 {
			k = hogconfig.FreeBacon(*otherScore)
		} else {
			k = rollDice(rng, rolls)
		}
		newScore := *moverScore + k
		newOther := *otherScore
		if e.rules.EnableFeralHogs {
			diff := rolls - *moverLast
			if diff < 0 {
				diff = -diff
			}
			if diff == hogconfig.FeralHogsAbsDiff {
				newScore += 3
			}
		}
		if e.rules.EnableSwineSwap && hogconfig.IsSwap(newScore, newOther) {
			newScore, newOther = newOther, newScore
		}
		*moverScore, *otherScore = newScore, newOther
		*moverLast = rolls

		if *moverScore >= hogconfig.Goal {
			return movingIsA
		}
		if *otherScore >= hogconfig.Goal {
			return !movingIsA
		}

		takeAnother := trot && turnMod == rolls
		turnMod = (turnMod + 1) % hogconfig.ModTrot
		if takeAnother {
			trot = false
			continue
		}
		trot = e.rules.EnableTimeTrot
		mover, other = other, mover
		moverScore, otherScore = otherScore, moverScore
		moverLast, otherLast = otherLast, moverLast
		movingIsA = !movingIsA
	}
}

func rollDice(rng *rand.Rand, n int) int {
	pigOut := false
	sum := 0
	for i := 0; i < n; i++ {
		face := 1 + rng.Intn(hogconfig.DiceSides)
		if face == 1 {
			pigOut = true
		}
		sum += face
	}
	if pigOut {
		return 1
	}
	return sum
}

// WinRateBySampling estimates a's win rate against b by Monte Carlo,
// playing halfSamples games with a first and halfSamples with b
// first.
func WinRateBySampling(rules hogconfig.Rules, rng *rand.Rand, a, b *strategy.Strategy, halfSamples int) float64 {
	e := New(rules)
	wins := 0
	for i := 0; i < halfSamples; i++ {
		if e.PlayOneGame(rng, a, b) {
			wins++
		}
	}
	for i := 0; i < halfSamples; i++ {
		if !e.PlayOneGame(rng, b, a) {
			wins++
		}
	}
	return float64(wins) / float64(2*halfSamples)
}

// SamplingTolerance returns the 1/sqrt(N)-scaled bound used to compare
// an exact win rate against a Monte Carlo estimate over n samples.
func SamplingTolerance(n int) float64 {
	return 5.0 / math.Sqrt(float64(n))
}
