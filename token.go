package dualcol

import (
	"encoding/binary"
	"time"
)

// Token format:
// [version:1][timestamp:8][nonce:24][secretbox(flag + payload)]
//
// The version byte is fixed at 0x80; unknown versions are rejected. The
// compression flag lives inside the sealed payload, so it is covered by the
// Poly1305 tag and cannot be flipped without failing authentication:
//
//	[flag:1][payload]   flag 0x00 = as-is, 0x01 = zstd compressed
//
// The timestamp is the unix time the token was minted, big-endian. It is
// informational only and not authenticated; no expiry is enforced on
// decrypt.

const (
	tokenVersion byte = 0x80

	flagPlain byte = 0x00
	flagZstd  byte = 0x01

	timestampSize = 8
	nonceSize     = 24
	overheadSize  = 16 // Poly1305 tag appended by secretbox

	headerSize = 1 + timestampSize + nonceSize
	// The box holds at least the flag byte plus the tag.
	minTokenSize = headerSize + overheadSize + 1
)

// formatToken assembles a token from its parts.
func formatToken(timestamp int64, nonce [nonceSize]byte, box []byte) []byte {
	token := make([]byte, 0, headerSize+len(box))
	token = append(token, tokenVersion)
	token = binary.BigEndian.AppendUint64(token, uint64(timestamp))
	token = append(token, nonce[:]...)
	token = append(token, box...)
	return token
}

// parseToken splits a token into its parts. The box is the secretbox
// ciphertext including its tag. Returns ErrInvalidToken for unknown versions
// or truncated data.
func parseToken(data []byte) (timestamp int64, nonce [nonceSize]byte, box []byte, err error) {
	if len(data) < minTokenSize {
		err = ErrInvalidToken
		return
	}

	if data[0] != tokenVersion {
		err = ErrInvalidToken
		return
	}

	timestamp = int64(binary.BigEndian.Uint64(data[1 : 1+timestampSize]))
	copy(nonce[:], data[1+timestampSize:headerSize])
	box = data[headerSize:]

	return
}

// sealPayload prepends the compression flag to the payload before
// encryption, binding the flag under the authentication tag.
func sealPayload(flag byte, payload []byte) []byte {
	inner := make([]byte, 0, 1+len(payload))
	inner = append(inner, flag)
	inner = append(inner, payload...)
	return inner
}

// openPayload splits a decrypted inner payload back into flag and payload.
func openPayload(inner []byte) (flag byte, payload []byte, err error) {
	if len(inner) < 1 {
		return 0, nil, ErrInvalidToken
	}
	return inner[0], inner[1:], nil
}

// TokenTimestamp returns the time a token was minted, without decrypting it.
// Informational only; nothing enforces an age limit on tokens.
func TokenTimestamp(token []byte) (time.Time, error) {
	ts, _, _, err := parseToken(token)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0), nil
}
