// Package tournament runs a round-robin win-rate evaluation across a
// set of strategies, dispatching matchups to a worker pool and reusing
// cached results for strategies that have not changed since the last
// run.
package tournament

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/sxyu/bacon2/pkg/evaluator"
	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/results"
	"github.com/sxyu/bacon2/pkg/strategy"
)

type matchup struct {
	i, j int
}

// Run computes the full lower-triangular Results matrix for the given
// strategy set under rules, using numWorkers goroutines. prev, if
// non-nil, is the previously cached Results: a matchup is skipped and
// its win rate copied over whenever both strategies it involves are
// still present, under the same unique id, and byte-identical
// (Strategy.Equals) to their prior snapshot.
func Run(rules hogconfig.Rules, strategies []*strategy.Strategy, prev *results.Results, numWorkers int, log zerolog.Logger) *results.Results {
	if numWorkers < 1 {
		numWorkers = 1
	}

	snapshot := make([]*strategy.Strategy, len(strategies))
	idMap := make(map[string]int, len(strategies))
	for i, s := range strategies {
		clone := s.Clone(s.UniqueID, s.Name)
		snapshot[i] = clone
		idMap[s.UniqueID] = i
	}

	res := results.New(snapshot)

	// Map each new index to its index in prev, if the strategy survived
	// unchanged; -1 means "needs fresh computation".
	mapToOld := make([]int, len(snapshot))
	for i := range mapToOld {
		mapToOld[i] = -1
	}
	if prev != nil {
		for oldIdx, oldStrat := range prev.Strategies {
			newIdx, ok := idMap[oldStrat.UniqueID]
			if !ok {
				continue
			}
			if snapshot[newIdx].Equals(oldStrat) {
				mapToOld[newIdx] = oldIdx
			}
		}
	}

	var matchups []matchup
	for i := 1; i < len(snapshot); i++ {
		for j := 0; j < i; j++ {
			if mapToOld[i] >= 0 && mapToOld[j] >= 0 {
				res.Table[i][j] = prev.Get(mapToOld[i], mapToOld[j])
			} else {
				matchups = append(matchups, matchup{i, j})
			}
		}
	}

	log.Info().Int("matchups", len(matchups)).Msg("starting tournament")

	var mu sync.Mutex
	var wg sync.WaitGroup
	next := 0
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			eval := evaluator.New(rules)
			for {
				mu.Lock()
				if next >= len(matchups) {
					mu.Unlock()
					return
				}
				m := matchups[next]
				next++
				if next%50 == 0 {
					log.Info().Int("done", next).Int("total", len(matchups)).Msg("matchups played")
				}
				mu.Unlock()

				wr := eval.WinRate(snapshot[m.i], snapshot[m.j])
				res.Table[m.i][m.j] = wr
			}
		}()
	}
	wg.Wait()

	res.MakeRankings()
	return res
}
