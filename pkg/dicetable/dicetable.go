// Package dicetable precomputes the number of ways to roll a given
// Pig-Out-collapsed turn total with a given number of dice.
package dicetable

import (
	"sync"

	"github.com/sxyu/bacon2/pkg/hogconfig"
)

// Table holds ways[r][s]: the number of r-dice outcomes whose
// Pig-Out-collapsed sum is s. Row r has width
// DiceSides*MaxRolls+1, entries outside [2r, DiceSides*r] (other than
// s==1) are zero.
type Table [][]int64

var (
	once  sync.Once
	table Table
)

// Get returns the process-wide dice table, computing it on first use.
func Get() Table {
	once.Do(func() { table = compute() })
	return table
}

func compute() Table {
	width := hogconfig.DiceSides*hogconfig.MaxRolls + 1
	t := make(Table, hogconfig.MaxRolls+1)
	for r := range t {
		t[r] = make([]int64, width)
	}
	t[0][0] = 1

	pow6, pow5 := int64(1), int64(1)
	for r := 1; r <= hogconfig.MaxRolls; r++ {
		pow6 *= hogconfig.DiceSides
		pow5 *= hogconfig.DiceSides - 1
		t[r][1] = pow6 - pow5

		prevLow := 2 * (r - 1)
		top := hogconfig.DiceSides * r
		// Sliding window of width DiceSides-1 over the previous row,
		// seeded at the top of the current row and walked downward.
		rolling := int64(0)
		for k := top - hogconfig.DiceSides + 1; k < top; k++ {
			rolling += t[r-1][k]
		}
		for s := top; s >= 2*r; s-- {
			if s-1 >= prevLow {
				rolling -= t[r-1][s-1]
			}
			if s-hogconfig.DiceSides >= prevLow {
				rolling += t[r-1][s-hogconfig.DiceSides]
			}
			t[r][s] = rolling
		}
	}
	return t
}

// Ways returns ways[r][s], or 0 when out of range.
func (t Table) Ways(r, s int) int64 {
	if r < 0 || r >= len(t) || s < 0 || s >= len(t[r]) {
		return 0
	}
	return t[r][s]
}
