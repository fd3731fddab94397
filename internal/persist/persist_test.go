package persist

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sxyu/bacon2/pkg/results"
	"github.com/sxyu/bacon2/pkg/strategy"
)

func TestStrategyRoundTrip(t *testing.T) {
	s, _ := strategy.New("alice", "Alice")
	s.SetConst(4)
	s.Set(10, 20, 7)

	var buf bytes.Buffer
	if err := EncodeStrategy(&buf, s); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeStrategy(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.UniqueID != s.UniqueID || got.Name != s.Name {
		t.Fatalf("id/name mismatch: got %q/%q, want %q/%q", got.UniqueID, got.Name, s.UniqueID, s.Name)
	}
	if !got.Equals(s) {
		t.Fatal("roll tables differ after round trip")
	}
}

func TestDecodeStrategyRejectsBadMarker(t *testing.T) {
	s, _ := strategy.New("a", "")
	var buf bytes.Buffer
	EncodeStrategy(&buf, s)
	corrupted := buf.Bytes()
	corrupted[0] = 0xFF
	if _, err := DecodeStrategy(bytes.NewReader(corrupted)); err == nil {
		t.Fatal("expected an error for a corrupted marker byte")
	}
}

func TestFileStoreStrategiesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := strategy.New("a", "Alice")
	a.SetConst(3)
	b, _ := strategy.New("b", "Bob")
	b.SetConst(5)

	if err := store.SaveStrategies([]*strategy.Strategy{a, b}); err != nil {
		t.Fatal(err)
	}

	loaded, res, cfg, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Fatal("expected no results file yet")
	}
	if cfg != nil {
		t.Fatal("expected no config file yet")
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 strategies, got %d", len(loaded))
	}
	if loaded[0].UniqueID != "a" || loaded[1].UniqueID != "b" {
		t.Fatalf("unexpected ids: %q, %q", loaded[0].UniqueID, loaded[1].UniqueID)
	}
}

func TestFileStoreResultsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileStore(dir)

	a, _ := strategy.New("a", "")
	b, _ := strategy.New("b", "")
	res := results.New([]*strategy.Strategy{a, b})
	res.Table[1][0] = 0.75
	res.MakeRankings()

	if err := store.SaveResults(res); err != nil {
		t.Fatal(err)
	}
	_, loaded, _, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil {
		t.Fatal("expected results to load back")
	}
	if loaded.Get(1, 0) != 0.75 {
		t.Fatalf("Get(1,0) = %v, want 0.75", loaded.Get(1, 0))
	}
}

func TestFileStoreConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileStore(dir)

	if err := store.SaveConfig(map[string]string{"workers": "4"}); err != nil {
		t.Fatal(err)
	}
	_, _, cfg, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg["workers"] != "4" {
		t.Fatalf("cfg[workers] = %q, want %q", cfg["workers"], "4")
	}
}

func TestFileStoreMissingFilesAreNotErrors(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileStore(dir)
	strategies, res, cfg, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if strategies != nil || res != nil || cfg != nil {
		t.Fatal("expected all-nil state for a fresh directory")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "strategies")); !os.IsNotExist(statErr) {
		t.Fatal("expected no strategies file to have been created by Load")
	}
}
