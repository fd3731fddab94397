package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sxyu/bacon2/pkg/strategy"
)

func strats(n int) []*strategy.Strategy {
	out := make([]*strategy.Strategy, n)
	for i := range out {
		s, _ := strategy.New(string(rune('a'+i)), "")
		out[i] = s
	}
	return out
}

func TestGetDiagonalIsHalf(t *testing.T) {
	r := New(strats(3))
	assert.Equal(t, 0.5, r.Get(1, 1))
}

func TestGetSymmetry(t *testing.T) {
	r := New(strats(3))
	r.Table[2][1] = 0.7
	assert.InDelta(t, 0.3, r.Get(1, 2), 1e-12)
	assert.InDelta(t, 0.7, r.Get(2, 1), 1e-12)
}

func TestMakeRankings(t *testing.T) {
	r := New(strats(3))
	// 0 beats 1, 1 beats 2, 0 beats 2.
	r.Table[1][0] = 0.1
	r.Table[2][1] = 0.1
	r.Table[2][0] = 0.1
	r.MakeRankings()
	require.Len(t, r.Rankings, 3)
	assert.Equal(t, 0, r.Rankings[0].Index)
	assert.Equal(t, 2, r.Rankings[0].Wins)
}

func TestRowWidthsMatchIndex(t *testing.T) {
	r := New(strats(4))
	for i, row := range r.Table {
		assert.Len(t, row, i)
	}
}
