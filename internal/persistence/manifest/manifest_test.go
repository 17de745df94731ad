package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"pixelcooked.dev/internal/sim/kitchen"
)

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	cfg := kitchen.KitchenConfig{RoundID: "round_1", Players: 3, Seed: 99, RoundMs: 300_000, TickMs: 15}
	started := time.Date(2024, 6, 2, 18, 30, 0, 0, time.UTC)
	m := New(cfg, "abc123", started)

	path := Path(dir)
	if err := Write(path, m); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Header.RoundID != "round_1" || !got.Header.StartedAt.Equal(started) {
		t.Fatalf("header %+v", got.Header)
	}
	if got.Seed != 99 || got.Players != 3 || got.CatalogDigest != "abc123" {
		t.Fatalf("manifest %+v", got)
	}
	if got.Config != cfg {
		t.Fatalf("config %+v, want %+v", got.Config, cfg)
	}
}

func TestRead_RejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	if _, err := enc.Write([]byte(`{"version":7,"round_id":"x"}` + "\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = enc.Close()
	_ = f.Close()

	if _, err := Read(path); !errors.Is(err, ErrVersion) {
		t.Fatalf("err=%v, want ErrVersion", err)
	}
}
