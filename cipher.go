package dualcol

import (
	"crypto/rand"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
)

// Cipher encrypts and decrypts single values under one derived key.
// It is immutable after construction and safe for concurrent use.
type Cipher struct {
	key                  [keySize]byte
	compressionThreshold int
	compressionDisabled  bool
}

func newCipher(key [keySize]byte, threshold int, disabled bool) *Cipher {
	if threshold <= 0 {
		threshold = defaultCompressionThreshold
	}
	return &Cipher{
		key:                  key,
		compressionThreshold: threshold,
		compressionDisabled:  disabled,
	}
}

// Encrypt seals plaintext into a token with a fresh random nonce. Repeated
// encryptions of the same plaintext yield different tokens. Returns nil for
// nil plaintext (NULL preservation).
func (c *Cipher) Encrypt(plaintext []byte) []byte {
	if plaintext == nil {
		return nil
	}

	payload, flag := maybeCompress(plaintext, c.compressionThreshold, c.compressionDisabled)
	nonce := generateNonce()
	box := secretbox.Seal(nil, sealPayload(flag, payload), &nonce, &c.key)

	return formatToken(time.Now().Unix(), nonce, box)
}

// Decrypt opens a token sealed by Encrypt. Returns ErrInvalidToken when the
// structure is malformed or the authentication tag does not verify under
// this key. Returns nil, nil for nil ciphertext (NULL preservation).
//
// The token's timestamp is not checked; tokens never expire.
func (c *Cipher) Decrypt(token []byte) ([]byte, error) {
	if token == nil {
		return nil, nil
	}

	_, nonce, box, err := parseToken(token)
	if err != nil {
		return nil, err
	}

	inner, ok := secretbox.Open(nil, box, &nonce, &c.key)
	if !ok {
		return nil, ErrInvalidToken
	}

	// The flag is part of the sealed payload, so it is authenticated along
	// with the data it describes.
	flag, payload, err := openPayload(inner)
	if err != nil {
		return nil, err
	}

	return decompress(payload, flag)
}

// generateNonce returns a cryptographically random 24-byte nonce.
// Panics if the system's random source fails (unrecoverable).
func generateNonce() [nonceSize]byte {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return nonce
}
