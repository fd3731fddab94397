// Package session implements the named collection of strategies a
// user works with: an ID-to-Strategy map enforcing the at-most-one-
// owner invariant, a string config map, and an optional cached
// Results from the last tournament run.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/sxyu/bacon2/pkg/evaluator"
	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/results"
	"github.com/sxyu/bacon2/pkg/strategy"
)

var (
	// ErrAlreadyOwned is returned by Add when the strategy is already
	// attached to some session (possibly this one, under another id).
	ErrAlreadyOwned = errors.New("session: strategy already belongs to a session")
	// ErrNotFound is returned by accessors for an unknown id/key.
	ErrNotFound = errors.New("session: not found")
)

// Store is the persistence hook a Session calls on every mutation and
// on construction. A nil Store makes the Session transient: mutations
// are silent no-ops from a persistence standpoint. Concrete
// implementations live outside this package (see internal/persist).
type Store interface {
	SaveStrategies([]*strategy.Strategy) error
	SaveResults(*results.Results) error
	SaveConfig(map[string]string) error
	Load() (strategies []*strategy.Strategy, res *results.Results, cfg map[string]string, err error)
}

// Session owns a named set of strategies (at most one session per
// strategy at a time), a string configuration map, and the most
// recently computed Results.
type Session struct {
	mu sync.RWMutex

	name       string
	strategies map[string]*strategy.Strategy
	config     map[string]string
	res        *results.Results
	store      Store
}

// New creates a session backed by store (nil for a transient, unsaved
// session) and loads any existing state store reports.
func New(name string, store Store) (*Session, error) {
	s := &Session{
		name:       name,
		strategies: make(map[string]*strategy.Strategy),
		config:     make(map[string]string),
		store:      store,
	}
	if store == nil {
		return s, nil
	}
	loadedStrategies, res, cfg, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("session %q: load: %w", name, err)
	}
	for _, strat := range loadedStrategies {
		strat.SetSess(s)
		s.strategies[strat.UniqueID] = strat
	}
	s.res = res
	if cfg != nil {
		s.config = cfg
	}
	return s, nil
}

// NotifyStrategyChanged implements strategy.Owner; it is called by any
// owned strategy whenever its roll table is mutated. Unlike the other
// mutators in this file, it is invoked without the session's own lock
// held (the caller mutates the *Strategy directly), so it takes its
// own read lock before snapshotting.
func (s *Session) NotifyStrategyChanged() {
	if s.store == nil {
		return
	}
	s.mu.RLock()
	snapshot := s.values()
	s.mu.RUnlock()
	_ = s.store.SaveStrategies(snapshot)
}

// maybeSerializeStrategies persists the current strategy set; callers
// must already hold s.mu.
func (s *Session) maybeSerializeStrategies() {
	if s.store == nil {
		return
	}
	_ = s.store.SaveStrategies(s.values())
}

func (s *Session) maybeSerializeResults() {
	if s.store == nil || s.res == nil {
		return
	}
	_ = s.store.SaveResults(s.res)
}

func (s *Session) maybeSerializeConfig() {
	if s.store == nil {
		return
	}
	_ = s.store.SaveConfig(s.config)
}

// IsPersistent reports whether this session has a backing Store.
func (s *Session) IsPersistent() bool { return s.store != nil }

// Add attaches strat under its own UniqueID, replacing (and detaching)
// any existing strategy at that id. Returns ErrAlreadyOwned if strat
// is already attached to a session.
func (s *Session) Add(strat *strategy.Strategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strat.Sess() != nil {
		return fmt.Errorf("adding strategy %q: %w", strat.UniqueID, ErrAlreadyOwned)
	}
	if old, ok := s.strategies[strat.UniqueID]; ok {
		old.SetSess(nil)
	}
	strat.SetSess(s)
	s.strategies[strat.UniqueID] = strat
	s.maybeSerializeStrategies()
	return nil
}

// AddNew creates a constant-roll strategy owned by this session.
func (s *Session) AddNew(id, name string, roll int) (*strategy.Strategy, error) {
	strat, err := strategy.New(id, name)
	if err != nil {
		return nil, err
	}
	if err := strat.SetConst(roll); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	strat.SetSess(s)
	if old, ok := s.strategies[id]; ok {
		old.SetSess(nil)
	}
	s.strategies[id] = strat
	s.maybeSerializeStrategies()
	return strat, nil
}

// AddRandom creates a strategy with independent uniform roll counts,
// owned by this session.
func (s *Session) AddRandom(id, name string, rng *rand.Rand) (*strategy.Strategy, error) {
	strat, err := strategy.New(id, name)
	if err != nil {
		return nil, err
	}
	strat.SetRandom(rng)
	s.mu.Lock()
	defer s.mu.Unlock()
	strat.SetSess(s)
	if old, ok := s.strategies[id]; ok {
		old.SetSess(nil)
	}
	s.strategies[id] = strat
	s.maybeSerializeStrategies()
	return strat, nil
}

// Remove detaches and deletes strat if present, reporting whether it
// was found.
func (s *Session) Remove(strat *strategy.Strategy) bool {
	return s.RemoveByID(strat.UniqueID)
}

// RemoveByID detaches and deletes the strategy at id, if present.
func (s *Session) RemoveByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	strat, ok := s.strategies[id]
	if !ok {
		return false
	}
	strat.SetSess(nil)
	delete(s.strategies, id)
	s.maybeSerializeStrategies()
	return true
}

// Clear detaches and removes every strategy.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, strat := range s.strategies {
		strat.SetSess(nil)
	}
	s.strategies = make(map[string]*strategy.Strategy)
	s.maybeSerializeStrategies()
}

// Size returns the number of strategies currently owned.
func (s *Session) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.strategies)
}

// Get returns the strategy at id.
func (s *Session) Get(id string) (*strategy.Strategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	strat, ok := s.strategies[id]
	if !ok {
		return nil, fmt.Errorf("strategy %q: %w", id, ErrNotFound)
	}
	return strat, nil
}

// Contains reports whether id is present.
func (s *Session) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.strategies[id]
	return ok
}

// Values returns every owned strategy, sorted by id for determinism.
func (s *Session) Values() []*strategy.Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values()
}

func (s *Session) values() []*strategy.Strategy {
	out := make([]*strategy.Strategy, 0, len(s.strategies))
	for _, v := range s.strategies {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UniqueID < out[j].UniqueID })
	return out
}

// Keys returns every owned strategy's id, sorted.
func (s *Session) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.strategies))
	for k := range s.strategies {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Names returns every owned strategy's display name, in id order.
func (s *Session) Names() []string {
	values := s.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Name
	}
	return out
}

// WinRate returns the symmetric win rate of a against b under rules.
func (s *Session) WinRate(rules hogconfig.Rules, a, b *strategy.Strategy) float64 {
	return evaluator.New(rules).WinRate(a, b)
}

// WinRate0 returns a's win rate against b when a moves first.
func (s *Session) WinRate0(rules hogconfig.Rules, a, b *strategy.Strategy) float64 {
	return evaluator.New(rules).WinRateGoingFirst(a, b)
}

// WinRate1 returns a's win rate against b when b moves first.
func (s *Session) WinRate1(rules hogconfig.Rules, a, b *strategy.Strategy) float64 {
	return evaluator.New(rules).WinRateGoingLast(a, b)
}

// Results returns the most recently cached tournament Results, or nil
// if none has been run yet.
func (s *Session) Results() *results.Results {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.res
}

// SetResults installs new Results (called by the tournament runner)
// and serializes them if persistent.
func (s *Session) SetResults(r *results.Results) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.res = r
	s.maybeSerializeResults()
}

// Unlink detaches this session's storage (if any), leaving it
// transient; in-memory state is unaffected.
func (s *Session) Unlink() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = nil
}

// Config returns the value for key, or ErrNotFound.
func (s *Session) Config(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.config[key]
	if !ok {
		return "", fmt.Errorf("config %q: %w", key, ErrNotFound)
	}
	return v, nil
}

// SetConfig assigns key=value and serializes if persistent.
func (s *Session) SetConfig(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config[key] = value
	s.maybeSerializeConfig()
}

// RemoveConfig deletes key and serializes if persistent.
func (s *Session) RemoveConfig(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.config, key)
	s.maybeSerializeConfig()
}

// Name returns the session's name (empty for a transient session
// created with an empty name).
func (s *Session) Name() string { return s.name }
