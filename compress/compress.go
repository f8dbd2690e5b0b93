// File: compress/compress.go
// Author: momentics <momentics@gmail.com>
//
// Dictionary-parameterized compression pipeline. compress/decompress take a
// blob plus an optional executor: with an executor the work runs there and
// resolves the returned blob from a posted task, otherwise it runs inline on
// the calling goroutine before returning an already-resolved blob.
//
// Wraps github.com/klauspost/compress/zstd, which supports the
// dictionary-parameterized encode/decode this pipeline needs.

package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/momentics/lune/blob"
	"github.com/momentics/lune/exec"
)

// Algorithm enumerates the supported compression algorithms. Only Zstd is
// implemented; the enum exists so additional algorithms can be added
// without changing the Codec interface.
type Algorithm int

const (
	AlgorithmZstd Algorithm = iota
)

// Codec is a dictionary-parameterized compressor/decompressor.
type Codec interface {
	Compress(in *blob.Blob, ex exec.Executor) *blob.Blob
	Decompress(in *blob.Blob, ex exec.Executor) *blob.Blob
}

// ZstdCodec wraps a dictionary-bound zstd encoder/decoder pair. The zero
// value is not usable; build one with NewZstdCodec.
type ZstdCodec struct {
	dict []byte
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

// rawDictID tags frames produced with a raw-content dictionary so the
// decoder can match it back. Arbitrary nonzero value shared by both sides.
const rawDictID = 1

// NewZstdCodec builds a codec bound to dict (nil for no dictionary). The
// dictionary is raw content, not the structured zstd dictionary format.
func NewZstdCodec(dict []byte) (*ZstdCodec, error) {
	var encOpts []zstd.EOption
	var decOpts []zstd.DOption
	if len(dict) > 0 {
		encOpts = append(encOpts, zstd.WithEncoderDictRaw(rawDictID, dict))
		decOpts = append(decOpts, zstd.WithDecoderDictRaw(rawDictID, dict))
	}
	enc, err := zstd.NewWriter(nil, encOpts...)
	if err != nil {
		return nil, fmt.Errorf("compress: new encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, decOpts...)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("compress: new decoder: %w", err)
	}
	return &ZstdCodec{dict: dict, enc: enc, dec: dec}, nil
}

// Close releases the underlying encoder/decoder goroutines.
func (c *ZstdCodec) Close() {
	c.enc.Close()
	c.dec.Close()
}

// Compress returns a blob that resolves to the zstd-compressed form of in's
// content, once in itself resolves. If ex is non-nil the transform runs
// there; otherwise it runs inline.
func (c *ZstdCodec) Compress(in *blob.Blob, ex exec.Executor) *blob.Blob {
	return c.run(in, ex, c.enc.EncodeAll)
}

// Decompress returns a blob that resolves to the zstd-decompressed form of
// in's content.
func (c *ZstdCodec) Decompress(in *blob.Blob, ex exec.Executor) *blob.Blob {
	return c.run(in, ex, func(src, dst []byte) []byte {
		out, err := c.dec.DecodeAll(src, dst)
		if err != nil {
			// DecodeAll on malformed input: surface as an empty,
			// errored result rather than panicking the codec goroutine.
			return nil
		}
		return out
	})
}

func (c *ZstdCodec) run(in *blob.Blob, ex exec.Executor, transform func(src, dst []byte) []byte) *blob.Blob {
	out := blob.NewDynamic()
	apply := func() {
		src, ok := in.Wait()
		if !ok {
			out.Set(nil, true)
			return
		}
		result := transform(src, nil)
		if result == nil {
			out.Set(nil, true)
			return
		}
		out.Set(result, false)
	}
	if ex != nil {
		if err := ex.Submit(apply); err != nil {
			out.Set(nil, true)
		}
	} else {
		apply()
	}
	return out
}
