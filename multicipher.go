package dualcol

import "errors"

// MultiCipher holds one Cipher per configured key, primary first. New values
// are always encrypted under the primary key; decryption tries every key in
// order, which is what makes key rotation transparent: prepend a new primary,
// keep the old keys as fallbacks, and existing rows stay readable.
//
// Key derivation is the expensive part, so a MultiCipher is built once from
// its Settings and is immutable and safe for concurrent use afterwards.
type MultiCipher struct {
	ciphers []*Cipher
}

// NewMultiCipher derives a cipher for each key in s, in order.
func NewMultiCipher(s Settings) (*MultiCipher, error) {
	if len(s.Keys) == 0 {
		return nil, ErrNoKeys
	}

	ciphers := make([]*Cipher, 0, len(s.Keys))
	for _, secret := range s.Keys {
		key, err := deriveKey(secret, s.UseHKDF)
		if err != nil {
			return nil, err
		}
		ciphers = append(ciphers, newCipher(key, s.CompressionThreshold, s.DisableCompression))
	}

	return &MultiCipher{ciphers: ciphers}, nil
}

// Encrypt seals plaintext under the primary key.
// Returns nil for nil plaintext (NULL preservation).
func (m *MultiCipher) Encrypt(plaintext []byte) []byte {
	return m.ciphers[0].Encrypt(plaintext)
}

// Decrypt tries each key in order and returns the first success. Fails with
// ErrInvalidToken only when no key authenticates the token: corrupted data,
// tampering, or a key list missing the encrypting key. That is a permanent
// condition until key material is corrected, never a transient one.
//
// Returns nil, nil for nil ciphertext (NULL preservation).
func (m *MultiCipher) Decrypt(token []byte) ([]byte, error) {
	if token == nil {
		return nil, nil
	}

	for _, c := range m.ciphers {
		plaintext, err := c.Decrypt(token)
		if err == nil {
			return plaintext, nil
		}
		// A structural or decompression failure is the same under every key.
		if !errors.Is(err, ErrInvalidToken) {
			return nil, err
		}
	}
	return nil, ErrInvalidToken
}

// Keys reports how many keys the cipher holds.
func (m *MultiCipher) Keys() int {
	return len(m.ciphers)
}
