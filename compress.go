package dualcol

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

const (
	defaultCompressionThreshold = 1024 // bytes
	minCompressionSavings       = 0.10 // skip compression below 10% savings

	// maxDecompressedSize caps decompression output (64MB) so a small
	// malicious payload cannot expand to consume all available memory.
	maxDecompressedSize = 64 * 1024 * 1024
)

var (
	// zstd encoder and decoder are thread-safe and reusable
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdOnce    sync.Once
	zstdErr     error
)

func initZstd() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEncoder, zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zstdErr != nil {
			return
		}
		zstdDecoder, zstdErr = zstd.NewReader(nil)
		if zstdErr != nil {
			zstdEncoder.Close()
			zstdEncoder = nil
		}
	})
	return zstdEncoder, zstdDecoder, zstdErr
}

// maybeCompress compresses the payload when it is large enough and
// compression actually helps. Returns the payload to encrypt and the flag
// byte recording which form was used; the flag is sealed alongside the
// payload.
func maybeCompress(payload []byte, threshold int, disabled bool) ([]byte, byte) {
	if disabled || len(payload) < threshold {
		return payload, flagPlain
	}

	encoder, _, err := initZstd()
	if err != nil {
		return payload, flagPlain
	}
	compressed := encoder.EncodeAll(payload, nil)

	savings := float64(len(payload)-len(compressed)) / float64(len(payload))
	if savings < minCompressionSavings {
		return payload, flagPlain
	}

	return compressed, flagZstd
}

// decompress restores a decrypted payload according to its flag.
func decompress(payload []byte, flag byte) ([]byte, error) {
	switch flag {
	case flagPlain:
		return payload, nil
	case flagZstd:
		_, decoder, err := initZstd()
		if err != nil {
			return nil, err
		}
		result, err := decoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, ErrDecompressionFailed
		}
		if len(result) > maxDecompressedSize {
			return nil, ErrDecompressionFailed
		}
		return result, nil
	default:
		return nil, ErrInvalidToken
	}
}
