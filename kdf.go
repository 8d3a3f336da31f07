package dualcol

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// infoEncryption is the HKDF context string. It ties derived keys to this
// package's purpose, so a master secret shared with an unrelated system never
// yields the same encryption key here.
const infoEncryption = "dualcol-encryption"

const keySize = 32

// deriveKey produces a 32-byte encryption key from a master secret.
//
// With useHKDF, the secret may be any length and is stretched with
// HKDF-SHA256. No salt is used: the master secret is assumed to be
// high-entropy already, so the extract step adds nothing. Derivation is
// deterministic; the same secret yields the same key in every process.
//
// Without useHKDF the secret is used as-is and must be exactly 32 bytes.
func deriveKey(secret []byte, useHKDF bool) ([keySize]byte, error) {
	var key [keySize]byte

	if !useHKDF {
		if len(secret) != keySize {
			return key, ErrInvalidKeySize
		}
		copy(key[:], secret)
		return key, nil
	}

	reader := hkdf.New(sha256.New, secret, nil, []byte(infoEncryption))
	if _, err := io.ReadFull(reader, key[:]); err != nil {
		return key, err
	}
	return key, nil
}
