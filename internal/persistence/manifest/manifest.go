package manifest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"pixelcooked.dev/internal/sim/kitchen"
)

// FileName is the manifest file inside a round directory.
const FileName = "manifest.json.zst"

const Version = 1

var ErrVersion = errors.New("manifest: unsupported version")

type Header struct {
	Version   int       `json:"version"`
	RoundID   string    `json:"round_id"`
	StartedAt time.Time `json:"started_at"`
}

// Manifest is everything needed to rebuild a round's kitchen for replay.
type Manifest struct {
	Header Header `json:"header"`

	Seed    int64                 `json:"seed"`
	Players int                   `json:"players"`
	Config  kitchen.KitchenConfig `json:"config"`

	CatalogDigest string `json:"catalog_digest"`
	TuningPath    string `json:"tuning_path,omitempty"`
}

func New(cfg kitchen.KitchenConfig, catalogDigest string, startedAt time.Time) Manifest {
	return Manifest{
		Header:        Header{Version: Version, RoundID: cfg.RoundID, StartedAt: startedAt.UTC()},
		Seed:          cfg.Seed,
		Players:       cfg.Players,
		Config:        cfg,
		CatalogDigest: catalogDigest,
	}
}

// Path returns the manifest path of a round directory.
func Path(roundDir string) string { return filepath.Join(roundDir, FileName) }

// Write stores m as two zstd-compressed JSON lines: the header, then the full manifest.
func Write(path string, m Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)

	je := json.NewEncoder(bw)
	if err := je.Encode(m.Header); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if err := je.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return enc.Close()
}

func Read(path string) (Manifest, error) {
	var m Manifest
	f, err := os.Open(path)
	if err != nil {
		return m, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return m, err
	}
	defer dec.Close()

	jd := json.NewDecoder(bufio.NewReader(dec))
	var h Header
	if err := jd.Decode(&h); err != nil {
		return m, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != Version {
		return m, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	if err := jd.Decode(&m); err != nil {
		return m, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}
