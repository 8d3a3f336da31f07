package dualcol

import (
	"strings"
	"sync"

	"github.com/allisson/go-env"
	"github.com/jellydator/validation"
	"github.com/joho/godotenv"
)

// Settings holds the process-wide key material and encryption options.
//
// Keys is ordered: the first key is the primary, used for every new
// encryption; all keys are decryption candidates, most recent first. The
// list must be non-empty.
type Settings struct {
	// Keys is the ordered list of master secrets.
	Keys [][]byte
	// UseHKDF selects whether keys are derived with HKDF-SHA256 (default) or
	// used raw, in which case each secret must be exactly 32 bytes.
	UseHKDF bool
	// CompressionThreshold is the minimum payload size in bytes before
	// compression is attempted. Zero means the default (1KB).
	CompressionThreshold int
	// DisableCompression turns payload compression off entirely.
	DisableCompression bool
}

// DefaultSettings returns Settings with derivation enabled and no keys.
func DefaultSettings() Settings {
	return Settings{
		UseHKDF:              true,
		CompressionThreshold: defaultCompressionThreshold,
	}
}

// SettingsFromEnv loads Settings from environment variables, after trying a
// .env file in the working directory:
//
//	DUALCOL_MASTER_KEYS           comma-separated secrets, primary first (required)
//	DUALCOL_USE_HKDF              default true
//	DUALCOL_COMPRESSION_THRESHOLD default 1024
//	DUALCOL_COMPRESSION_DISABLED  default false
func SettingsFromEnv() (Settings, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	s := Settings{
		UseHKDF:              env.GetBool("DUALCOL_USE_HKDF", true),
		CompressionThreshold: env.GetInt("DUALCOL_COMPRESSION_THRESHOLD", defaultCompressionThreshold),
		DisableCompression:   env.GetBool("DUALCOL_COMPRESSION_DISABLED", false),
	}
	for _, part := range strings.Split(env.GetString("DUALCOL_MASTER_KEYS", ""), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		s.Keys = append(s.Keys, []byte(part))
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings for declaration-level mistakes.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Keys,
			validation.Required.Error("at least one master key is required"),
			validation.By(s.checkKeySizes),
		),
		validation.Field(&s.CompressionThreshold,
			validation.Min(0),
		),
	)
}

func (s Settings) checkKeySizes(value interface{}) error {
	if s.UseHKDF {
		return nil
	}
	keys, _ := value.([][]byte)
	for _, k := range keys {
		if len(k) != keySize {
			return ErrInvalidKeySize
		}
	}
	return nil
}

var (
	envOnce   sync.Once
	envCipher *MultiCipher
	envErr    error
)

// DefaultCipher returns the process-wide MultiCipher built from environment
// settings. Key derivation is expensive, so the result is computed once on
// first use and cached for the life of the process. The cached value is
// write-once-then-immutable; concurrent readers need no locking, and every
// field without explicit settings shares it.
func DefaultCipher() (*MultiCipher, error) {
	envOnce.Do(func() {
		s, err := SettingsFromEnv()
		if err != nil {
			envErr = err
			return
		}
		envCipher, envErr = NewMultiCipher(s)
	})
	return envCipher, envErr
}
