package dualcol

import "crypto/sha256"

// DigestSize is the length of the stored digest cell in bytes.
const DigestSize = sha256.Size

// Digest computes the unsalted SHA-256 of a plaintext's canonical bytes.
// This is the queryable counterpart of a ciphertext cell: deterministic, so
// the same plaintext always maps to the same 32 bytes, and one-way, so the
// stored digest never yields the plaintext back.
//
// No salt means equal plaintexts collide across rows and across fields. That
// is intended; it is what makes exact-match lookup work at all, and it is
// the leakage a dual field accepts.
//
// Returns nil for nil data (NULL preservation).
func Digest(data []byte) []byte {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return sum[:]
}
