package evaluator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/strategy"
)

func defaultRules() hogconfig.Rules {
	return hogconfig.Rules{EnableSwineSwap: true, EnableFeralHogs: true, EnableTimeTrot: false}
}

func constStrategy(t *testing.T, id string, roll int) *strategy.Strategy {
	t.Helper()
	s, err := strategy.New(id, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetConst(roll); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSelfPlayIsHalf(t *testing.T) {
	e := New(defaultRules())
	a := constStrategy(t, "a", 4)
	got := e.WinRate(a, a)
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("WinRate(a,a) = %v, want 0.5", got)
	}
}

func TestZeroSum(t *testing.T) {
	e := New(defaultRules())
	a := constStrategy(t, "a", 4)
	b := constStrategy(t, "b", 6)
	ab := e.WinRate(a, b)
	ba := e.WinRate(b, a)
	if math.Abs(ab+ba-1.0) > 1e-9 {
		t.Fatalf("WinRate(a,b)+WinRate(b,a) = %v, want 1.0", ab+ba)
	}
}

func TestWinRateInUnitInterval(t *testing.T) {
	e := New(defaultRules())
	a := constStrategy(t, "a", 3)
	b := constStrategy(t, "b", 8)
	for _, wr := range []float64{e.WinRate(a, b), e.WinRateGoingFirst(a, b), e.WinRateGoingLast(a, b)} {
		if wr < 0 || wr > 1 {
			t.Fatalf("win rate %v out of [0,1]", wr)
		}
	}
}

func TestMonteCarloCrossCheck(t *testing.T) {
	rules := defaultRules()
	e := New(rules)
	a := constStrategy(t, "a", 4)
	b := constStrategy(t, "b", 6)
	exact := e.WinRate(a, b)

	rng := rand.New(rand.NewSource(42))
	const n = 20000
	sampled := WinRateBySampling(rules, rng, a, b, n/2)

	tol := SamplingTolerance(n)
	if math.Abs(exact-sampled) > tol {
		t.Fatalf("exact=%v sampled=%v diverge by more than tolerance %v", exact, sampled, tol)
	}
}

func TestDimensionCollapse(t *testing.T) {
	allOff := New(hogconfig.Rules{})
	wantSmall := hogconfig.Goal * hogconfig.Goal * 2
	if len(allOff.table) != wantSmall {
		t.Fatalf("all-off table size = %d, want %d", len(allOff.table), wantSmall)
	}

	feralOn := New(hogconfig.Rules{EnableFeralHogs: true})
	wantFeral := hogconfig.Goal * hogconfig.Goal * 2 * (hogconfig.MaxRolls + 1) * (hogconfig.MaxRolls + 1)
	if len(feralOn.table) != wantFeral {
		t.Fatalf("feral-on table size = %d, want %d", len(feralOn.table), wantFeral)
	}

	trotOn := New(hogconfig.Rules{EnableTimeTrot: true})
	wantTrot := hogconfig.Goal * hogconfig.Goal * 2 * hogconfig.ModTrot * 2
	if len(trotOn.table) != wantTrot {
		t.Fatalf("trot-on table size = %d, want %d", len(trotOn.table), wantTrot)
	}
}

func TestFreeBaconRollZero(t *testing.T) {
	e := New(defaultRules())
	a := constStrategy(t, "a", 0)
	b := constStrategy(t, "b", 0)
	wr := e.WinRate(a, b)
	if math.Abs(wr-0.5) > 1e-9 {
		t.Fatalf("two always-roll-0 strategies should tie at 0.5, got %v", wr)
	}
}
