// Package gtfscache persists a built gtfsbuild.Snapshot to disk, gob
// encoded and zstd compressed, so a repeated run against the same feed
// skips the parse-and-index step.
package gtfscache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/SukantoMette/McRAPTOR/internal/gtfsbuild"
)

// Save writes snap to cachePath, zstd-compressed, overwriting any file
// already there.
func Save(cachePath string, snap *gtfsbuild.Snapshot) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("gtfscache: encoding snapshot: %w", err)
	}

	f, err := os.Create(cachePath)
	if err != nil {
		return fmt.Errorf("gtfscache: creating %s: %w", cachePath, err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("gtfscache: opening zstd writer: %w", err)
	}
	if _, err := zw.Write(buf.Bytes()); err != nil {
		zw.Close()
		return fmt.Errorf("gtfscache: writing %s: %w", cachePath, err)
	}
	return zw.Close()
}

// Load reads and decompresses a Snapshot previously written by Save.
func Load(cachePath string) (*gtfsbuild.Snapshot, error) {
	f, err := os.Open(cachePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gtfscache: opening zstd reader: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gtfscache: reading %s: %w", cachePath, err)
	}

	var snap gtfsbuild.Snapshot
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("gtfscache: decoding %s: %w", cachePath, err)
	}
	return &snap, nil
}

// BuildOrLoad loads cachePath if it exists and is usable, falling back
// to gtfsbuild.Build(gtfsPath, opts) and writing a fresh cache entry on
// a miss. Any read or decode error on the cache is treated as a miss
// rather than a hard failure.
func BuildOrLoad(gtfsPath, cachePath string, opts gtfsbuild.Options) (*gtfsbuild.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	if snap, err := Load(cachePath); err == nil {
		logger.Printf("gtfscache: loaded cached snapshot from %s", cachePath)
		res, merr := gtfsbuild.Materialize(snap)
		if merr == nil {
			return res, nil
		}
		logger.Printf("gtfscache: cached snapshot at %s failed to materialize, rebuilding: %v", cachePath, merr)
	}

	res, err := gtfsbuild.Build(gtfsPath, opts)
	if err != nil {
		return nil, err
	}

	snap := gtfsbuild.ToSnapshot(res)
	if err := Save(cachePath, snap); err != nil {
		logger.Printf("gtfscache: failed to write cache at %s: %v", cachePath, err)
	}
	return res, nil
}
