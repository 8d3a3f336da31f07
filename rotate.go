package dualcol

// Rotate re-encrypts a token under the primary key. Use it to migrate rows
// opportunistically after prepending a new key to the list; until then, old
// rows stay readable through decryption fallback.
//
// Returns nil for nil token (NULL stays NULL). Returns ErrInvalidToken when
// no configured key can open the token.
func (m *MultiCipher) Rotate(token []byte) ([]byte, error) {
	if token == nil {
		return nil, nil
	}

	plaintext, err := m.Decrypt(token)
	if err != nil {
		return nil, err
	}
	return m.Encrypt(plaintext), nil
}

// NeedsRotation reports whether a token cannot be opened by the primary key
// alone, meaning it was encrypted under an older key still in the fallback
// list. Returns false for nil tokens; NULL cells never need rotation.
//
// A token no key can open also reports true; the follow-up Rotate call
// surfaces the real error.
func (m *MultiCipher) NeedsRotation(token []byte) bool {
	if token == nil {
		return false
	}
	_, err := m.ciphers[0].Decrypt(token)
	return err != nil
}

// RotateStorage re-encrypts a dual field's ciphertext cell under the primary
// key and recomputes the digest cell from the recovered plaintext. The
// consistency invariant between the two cells holds on the rotated pair just
// as it does after a save.
func (f *DualField[T]) RotateStorage(hashCell, encCell []byte) (newHash, newEnc []byte, err error) {
	if encCell == nil {
		return nil, nil, nil
	}

	cipher, err := f.enc.multiCipher()
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := cipher.Decrypt(encCell)
	if err != nil {
		return nil, nil, err
	}

	data := plaintext
	if f.norm != nil {
		data = []byte(f.norm(string(data)))
	}

	return Digest(data), cipher.Encrypt(plaintext), nil
}
