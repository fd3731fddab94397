// Package persist implements the on-disk wire format for strategies,
// results, and session configuration, and a FileStore adapter that
// satisfies pkg/session's Store interface.
package persist

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/results"
	"github.com/sxyu/bacon2/pkg/strategy"
)

// marker is the leading byte of every encoded Strategy record.
const marker = 0x0A

// ErrCorrupt is returned when a decoded record's marker byte does not
// match what EncodeStrategy writes. Truncated input is reported as the
// underlying read error (wrapped), not as ErrCorrupt.
var ErrCorrupt = errors.New("persist: corrupt strategy record")

// EncodeStrategy appends the wire-format encoding of s to w: a marker
// byte, the length-prefixed unique id, the length-prefixed name, then
// the raw Goal*Goal roll table.
func EncodeStrategy(w io.Writer, s *strategy.Strategy) error {
	if _, err := w.Write([]byte{marker}); err != nil {
		return err
	}
	if err := writeLenPrefixed(w, []byte(s.UniqueID)); err != nil {
		return err
	}
	if err := writeLenPrefixed(w, []byte(s.Name)); err != nil {
		return err
	}
	if _, err := w.Write(s.Bytes()); err != nil {
		return err
	}
	return nil
}

// DecodeStrategy reads one Strategy record from r, in the form
// EncodeStrategy writes it.
func DecodeStrategy(r io.Reader) (*strategy.Strategy, error) {
	var m [1]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return nil, fmt.Errorf("persist: reading marker: %w", err)
	}
	if m[0] != marker {
		return nil, ErrCorrupt
	}
	id, err := readLenPrefixed(r)
	if err != nil {
		return nil, fmt.Errorf("persist: reading unique id: %w", err)
	}
	name, err := readLenPrefixed(r)
	if err != nil {
		return nil, fmt.Errorf("persist: reading name: %w", err)
	}
	rolls := make([]byte, hogconfig.Goal*hogconfig.Goal)
	if _, err := io.ReadFull(r, rolls); err != nil {
		return nil, fmt.Errorf("persist: reading roll table: %w", err)
	}
	s, err := strategy.New(string(id), string(name))
	if err != nil {
		return nil, err
	}
	if err := s.SetFromBuffer(rolls); err != nil {
		return nil, err
	}
	return s, nil
}

func writeLenPrefixed(w io.Writer, b []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readLenPrefixed(r io.Reader) ([]byte, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// FileStore persists a single session's state under a directory,
// mirroring the strategies/results/config file layout of the original
// implementation. It satisfies pkg/session.Store.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating dir (and
// any missing parents) if necessary.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persist: creating session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(name string) string { return filepath.Join(f.dir, name) }

// SaveStrategies overwrites the strategies file with the given set.
func (f *FileStore) SaveStrategies(strategies []*strategy.Strategy) error {
	file, err := os.Create(f.path("strategies"))
	if err != nil {
		return fmt.Errorf("persist: opening strategies file: %w", err)
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(strategies))); err != nil {
		return err
	}
	for _, s := range strategies {
		if err := EncodeStrategy(w, s); err != nil {
			return err
		}
	}
	return w.Flush()
}

// SaveResults overwrites the results file.
func (f *FileStore) SaveResults(res *results.Results) error {
	if res == nil {
		return nil
	}
	file, err := os.Create(f.path("results"))
	if err != nil {
		return fmt.Errorf("persist: opening results file: %w", err)
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(res.Strategies))); err != nil {
		return err
	}
	for _, s := range res.Strategies {
		if err := EncodeStrategy(w, s); err != nil {
			return err
		}
	}
	for _, row := range res.Table {
		for _, v := range row {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// SaveConfig overwrites the config file with key/value pairs.
func (f *FileStore) SaveConfig(cfg map[string]string) error {
	file, err := os.Create(f.path("config"))
	if err != nil {
		return fmt.Errorf("persist: opening config file: %w", err)
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(cfg))); err != nil {
		return err
	}
	for k, v := range cfg {
		if err := writeLenPrefixed(w, []byte(k)); err != nil {
			return err
		}
		if err := writeLenPrefixed(w, []byte(v)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Load reads back whatever strategies/results/config files are
// present, treating a missing file as empty rather than an error.
func (f *FileStore) Load() ([]*strategy.Strategy, *results.Results, map[string]string, error) {
	strategies, err := f.loadStrategies()
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := f.loadResults()
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	return strategies, res, cfg, nil
}

func (f *FileStore) loadStrategies() ([]*strategy.Strategy, error) {
	file, err := os.Open(f.path("strategies"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: opening strategies file: %w", err)
	}
	defer file.Close()
	r := bufio.NewReader(file)
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("persist: reading strategy count: %w", err)
	}
	out := make([]*strategy.Strategy, 0, n)
	for i := uint64(0); i < n; i++ {
		s, err := DecodeStrategy(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *FileStore) loadResults() (*results.Results, error) {
	file, err := os.Open(f.path("results"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: opening results file: %w", err)
	}
	defer file.Close()
	r := bufio.NewReader(file)
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("persist: reading results strategy count: %w", err)
	}
	strategies := make([]*strategy.Strategy, 0, n)
	for i := uint64(0); i < n; i++ {
		s, err := DecodeStrategy(r)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	res := results.New(strategies)
	for i := range res.Table {
		for j := range res.Table[i] {
			if err := binary.Read(r, binary.LittleEndian, &res.Table[i][j]); err != nil {
				return nil, fmt.Errorf("persist: reading results table: %w", err)
			}
		}
	}
	res.MakeRankings()
	return res, nil
}

func (f *FileStore) loadConfig() (map[string]string, error) {
	file, err := os.Open(f.path("config"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: opening config file: %w", err)
	}
	defer file.Close()
	r := bufio.NewReader(file)
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("persist: reading config count: %w", err)
	}
	cfg := make(map[string]string, n)
	for i := uint64(0); i < n; i++ {
		k, err := readLenPrefixed(r)
		if err != nil {
			return nil, fmt.Errorf("persist: reading config key: %w", err)
		}
		v, err := readLenPrefixed(r)
		if err != nil {
			return nil, fmt.Errorf("persist: reading config value: %w", err)
		}
		cfg[string(k)] = string(v)
	}
	return cfg, nil
}
