// Package strategy implements the dense per-cell roll-count table a
// player follows, plus the detach-on-copy ownership rules shared with
// pkg/session.
package strategy

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sxyu/bacon2/pkg/hogconfig"
)

// ErrOutOfRange is returned when a score or roll count falls outside
// its legal domain.
var ErrOutOfRange = errors.New("strategy: value out of range")

// Owner is the narrow interface Strategy needs from its owning
// Session, avoiding an import cycle between pkg/strategy and
// pkg/session (the session owns strategies, not the other way round).
type Owner interface {
	// NotifyStrategyChanged is called whenever an owned strategy's
	// roll table is mutated, so the session can re-serialize.
	NotifyStrategyChanged()
}

// Strategy maps (own_score, opp_score) to a number of dice to roll.
// A Strategy is either detached (sess == nil) or owned by at most one
// Session; assigning or cloning always produces a detached copy.
type Strategy struct {
	UniqueID string
	Name     string

	rolls [hogconfig.Goal * hogconfig.Goal]int8
	sess  Owner
}

// New creates a detached strategy with every cell set to 0.
func New(uniqueID, name string) (*Strategy, error) {
	if uniqueID == "" {
		return nil, errors.New("strategy: unique id cannot be empty")
	}
	if name == "" {
		name = uniqueID
	}
	return &Strategy{UniqueID: uniqueID, Name: name}, nil
}

// NewOwned constructs a strategy already attached to sess.
func NewOwned(sess Owner, uniqueID, name string) (*Strategy, error) {
	if uniqueID == "" {
		return nil, errors.New("strategy: unique id cannot be empty")
	}
	if name == "" {
		name = uniqueID
	}
	return &Strategy{UniqueID: uniqueID, Name: name, sess: sess}, nil
}

// SetSess is the narrow hook pkg/session uses to attach/detach a
// strategy without either package reaching into the other's internals
// beyond this single method.
func (s *Strategy) SetSess(sess Owner) { s.sess = sess }

// Sess reports the strategy's current Owner, or nil if detached.
func (s *Strategy) Sess() Owner { return s.sess }

// Clone returns a new, detached strategy with an independent copy of
// the roll table under a new id/name.
func (s *Strategy) Clone(id, name string) *Strategy {
	c := &Strategy{UniqueID: id, Name: name}
	if name == "" {
		c.Name = id
	}
	c.rolls = s.rolls
	return c
}

// CopyFrom overwrites s's roll table (but not its id/name) from other,
// and detaches s from any session, mirroring the original's
// copy-assignment semantics.
func (s *Strategy) CopyFrom(other *Strategy) {
	s.rolls = other.rolls
	s.sess = nil
}

func index(ourScore, oppScore int) (int, error) {
	if ourScore < 0 || ourScore >= hogconfig.Goal || oppScore < 0 || oppScore >= hogconfig.Goal {
		return 0, fmt.Errorf("strategy: score (%d,%d) out of [0,%d): %w", ourScore, oppScore, hogconfig.Goal, ErrOutOfRange)
	}
	return ourScore*hogconfig.Goal + oppScore, nil
}

// Get returns the configured roll count for (ourScore, oppScore).
func (s *Strategy) Get(ourScore, oppScore int) (int, error) {
	i, err := index(ourScore, oppScore)
	if err != nil {
		return 0, err
	}
	return int(s.rolls[i]), nil
}

// MustGet panics on an out-of-range index; used in hot evaluator loops
// where the caller has already validated the coordinates.
func (s *Strategy) MustGet(ourScore, oppScore int) int {
	i, err := index(ourScore, oppScore)
	if err != nil {
		panic(err)
	}
	return int(s.rolls[i])
}

// Set assigns a roll count, validating both the coordinates and the
// value, and notifies the owning session (if any) to persist.
func (s *Strategy) Set(ourScore, oppScore, value int) error {
	i, err := index(ourScore, oppScore)
	if err != nil {
		return err
	}
	if value < hogconfig.MinRolls || value > hogconfig.MaxRolls {
		return fmt.Errorf("strategy: roll count %d out of [%d,%d]: %w", value, hogconfig.MinRolls, hogconfig.MaxRolls, ErrOutOfRange)
	}
	s.rolls[i] = int8(value)
	s.notify()
	return nil
}

// SetConst sets every cell to the same roll count.
func (s *Strategy) SetConst(roll int) error {
	if roll < hogconfig.MinRolls || roll > hogconfig.MaxRolls {
		return fmt.Errorf("strategy: roll count %d out of [%d,%d]: %w", roll, hogconfig.MinRolls, hogconfig.MaxRolls, ErrOutOfRange)
	}
	for i := range s.rolls {
		s.rolls[i] = int8(roll)
	}
	s.notify()
	return nil
}

// SetRandom fills every cell with an independent uniform roll count.
func (s *Strategy) SetRandom(rng *rand.Rand) {
	for i := range s.rolls {
		s.rolls[i] = int8(hogconfig.MinRolls + rng.Intn(hogconfig.MaxRolls-hogconfig.MinRolls+1))
	}
	s.notify()
}

// SetFromBuffer overwrites every cell from a raw byte buffer sized
// Goal*Goal, used by the persistence collaborator.
func (s *Strategy) SetFromBuffer(buf []byte) error {
	if len(buf) != hogconfig.Goal*hogconfig.Goal {
		return fmt.Errorf("strategy: buffer has %d bytes, want %d", len(buf), hogconfig.Goal*hogconfig.Goal)
	}
	for i, b := range buf {
		s.rolls[i] = int8(b)
	}
	s.notify()
	return nil
}

// Bytes returns the raw roll table in row-major (own_score, opp_score)
// order, for the persistence collaborator.
func (s *Strategy) Bytes() []byte {
	buf := make([]byte, len(s.rolls))
	for i, v := range s.rolls {
		buf[i] = byte(v)
	}
	return buf
}

// NumDiff counts cells where s and other disagree.
func (s *Strategy) NumDiff(other *Strategy) int {
	n := 0
	for i := range s.rolls {
		if s.rolls[i] != other.rolls[i] {
			n++
		}
	}
	return n
}

// Equals reports whether every cell matches between s and other.
func (s *Strategy) Equals(other *Strategy) bool {
	return s.rolls == other.rolls
}

func (s *Strategy) notify() {
	if s.sess != nil {
		s.sess.NotifyStrategyChanged()
	}
}
