// Package opstack verifies OP-Stack unsafe (pre-confirmation) block
// payloads: ZSTD-compressed SSZ execution payloads signed by a chain's
// sequencer, as gossiped over the op-node p2p network. Grounded in
// other_examples' opg_bridge reference capture tool.
package opstack

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Decompression bounds, chosen to reject zip-bomb-style frames well before
// they exhaust memory: a legitimate Deneb execution payload is a few hundred
// KiB at most, even full of transactions.
const (
	DefaultMaxDecompressedSize = 16 << 20 // 16 MiB
	DefaultMaxCompressionRatio = 100      // decompressed bytes per compressed byte
)

var (
	ErrDecompressedTooLarge = errors.New("opstack: decompressed payload exceeds size limit")
	ErrEmptyFrame           = errors.New("opstack: empty compressed frame")
)

// DecompressConfig bounds resource usage of ZSTD decompression.
type DecompressConfig struct {
	// MaxDecompressedSize caps the absolute decompressed size in bytes.
	MaxDecompressedSize int
	// MaxCompressionRatio caps decompressed-size/compressed-size.
	MaxCompressionRatio int
}

// DefaultDecompressConfig returns the bounds applied when a caller doesn't
// supply its own.
func DefaultDecompressConfig() DecompressConfig {
	return DecompressConfig{
		MaxDecompressedSize: DefaultMaxDecompressedSize,
		MaxCompressionRatio: DefaultMaxCompressionRatio,
	}
}

// Decompress decodes a ZSTD frame, enforcing both an absolute size cap and a
// compression-ratio cap so a malicious or corrupt frame cannot be used to
// exhaust memory during decoding.
func Decompress(compressed []byte, cfg DecompressConfig) ([]byte, error) {
	if len(compressed) == 0 {
		return nil, ErrEmptyFrame
	}
	if cfg.MaxDecompressedSize <= 0 {
		cfg.MaxDecompressedSize = DefaultMaxDecompressedSize
	}
	if cfg.MaxCompressionRatio <= 0 {
		cfg.MaxCompressionRatio = DefaultMaxCompressionRatio
	}

	limit := int64(cfg.MaxDecompressedSize)
	if ratioLimit := int64(len(compressed)) * int64(cfg.MaxCompressionRatio); ratioLimit > 0 && ratioLimit < limit {
		limit = ratioLimit
	}

	dec, err := zstd.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := io.ReadAll(io.LimitReader(dec, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, ErrDecompressedTooLarge
	}
	return out, nil
}
