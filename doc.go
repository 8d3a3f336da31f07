// Package dualcol provides transparent at-rest encryption for SQL columns,
// paired with a deterministic digest column that keeps encrypted data
// queryable by exact match.
//
// A field declared with dualcol is encrypted before it reaches the database
// and decrypted transparently on read. Keys are versioned: new values are
// always encrypted under the primary (first) key, while decryption falls back
// through the whole key list, so keys can be rotated without re-encrypting
// existing rows up front.
//
// # Encryption
//
// Values are sealed with XSalsa20-Poly1305 (NaCl secretbox) using a fresh
// random 24-byte nonce per encryption, wrapped in a self-describing token:
//
//	[version:1][timestamp:8][nonce:24][secretbox(flag + payload)]
//
// Large values are transparently compressed with zstd; the flag byte naming
// the payload encoding lives inside the sealed box, so it is authenticated
// along with the data it describes. Encrypting the same value twice yields
// different tokens, so the ciphertext column can never be used as a lookup
// oracle. The embedded timestamp records when the token was minted; no expiry
// is enforced.
//
// Keys are derived from the configured master secrets with HKDF-SHA256 using
// a fixed context string, so a master secret shared with unrelated systems
// never yields the same encryption key here. Derivation can be disabled for
// callers that manage raw 32-byte keys themselves.
//
// # Basic Usage
//
//	field, err := dualcol.NewEncryptedField("ssn", dualcol.Text,
//	    dualcol.WithSettings(dualcol.Settings{
//	        Keys:    [][]byte{[]byte("current-secret"), []byte("old-secret")},
//	        UseHKDF: true,
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ciphertext, _ := field.PrepareForStorage(dualcol.Ptr("078-05-1120"))
//	// write ciphertext to the column; later:
//	value, err := field.LoadFromStorage(ciphertext)
//
// Without WithSettings, key material is read once from the environment
// (DUALCOL_MASTER_KEYS, DUALCOL_USE_HKDF) and the derived ciphers are cached
// for the life of the process.
//
// # Dual Fields
//
// An encrypted column cannot be queried. For fields that need exact-match
// lookups, a dual field stores two cells: the ciphertext (authoritative, in
// <name>_encrypted) and an unsalted SHA-256 digest of the plaintext's
// canonical bytes (queryable, in <name>). The digest is recomputed from the
// encrypted half at save time and is never readable as a value; loading a row
// always yields the decrypted ciphertext, never the digest.
//
//	email, _ := dualcol.NewDualField("email", dualcol.Text,
//	    dualcol.WithNormalizer(dualcol.NormalizeEmail),
//	)
//
//	rec := email.Bind()
//	rec.Set(dualcol.Ptr("Alice@Example.COM"))
//	hashCell, encCell, _ := email.PrepareForStorage(rec)
//	// INSERT both cells; later:
//	cond, _ := email.Exact("alice@example.com", 1)
//	rows, _ := db.Query("SELECT ... WHERE "+cond.SQL, cond.Args...)
//
// Only exact, in, and isnull lookups are supported on a dual field; every
// other operator fails, and any lookup at all on a plain encrypted field
// fails. Equal plaintexts produce equal digests across rows and fields; that
// leakage is the accepted price of queryability.
//
// # NULL Handling
//
// NULL is preserved end to end: a nil value encrypts to a nil cell, a nil
// cell loads as a nil value, and the digest cell is NULL exactly when the
// ciphertext cell is. Both cells of a dual field share nullability.
//
// # Key Rotation
//
//	// DUALCOL_MASTER_KEYS="new-secret,old-secret"
//	// Old rows decrypt via fallback; re-encrypt opportunistically:
//	if cipher.NeedsRotation(token) {
//	    token, err = cipher.Rotate(token)
//	}
//
// # Restrictions
//
// Encrypted and dual fields reject primary key, unique, and index options at
// declaration time: ciphertext is randomized per write, so constraints and
// indexes over it are meaningless. Use the digest column of a dual field when
// a field must be searchable.
package dualcol
