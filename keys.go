package encfs

import (
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"
)

// ivSeedLen and macKeyLen are the fixed sizes EncFS allocates for the IV
// seed and the HMAC-SHA1 MAC key within the derived key block; only the
// cipher key's length varies with the chosen AES key size.
const (
	ivSeedLen = 16
	macKeyLen = 20
)

// DeriveVolumeKeys derives a volume's key material from a password and
// salt using PBKDF2-SHA1, matching the key-derivation scheme of an
// EncFS volume's .encfs6.xml (parsing that file is out of scope; callers
// are expected to have already extracted password, salt, iterations,
// and cipherKeyLen from it). The derived key block is split, in order,
// into the cipher key, the 16-byte IV seed, and the HMAC-SHA1 MAC key.
func DeriveVolumeKeys(password, salt []byte, iterations, cipherKeyLen int) (*VolumeKeys, error) {
	if len(password) == 0 {
		return nil, NewInvalidArgumentError("password", nil, "password cannot be empty")
	}
	if len(salt) == 0 {
		return nil, NewInvalidArgumentError("salt", nil, "salt cannot be empty")
	}
	if iterations <= 0 {
		return nil, NewInvalidArgumentError("iterations", iterations, "iterations must be positive")
	}
	if cipherKeyLen != 16 && cipherKeyLen != 24 && cipherKeyLen != 32 {
		return nil, NewInvalidArgumentError("cipherKeyLen", cipherKeyLen, "cipher key length must be 16, 24, or 32 bytes for AES")
	}

	total := cipherKeyLen + ivSeedLen + macKeyLen
	keyData := pbkdf2.Key(password, salt, iterations, total, sha1.New)

	keys := &VolumeKeys{
		CipherKey: append([]byte(nil), keyData[:cipherKeyLen]...),
		IVSeed:    append([]byte(nil), keyData[cipherKeyLen:cipherKeyLen+ivSeedLen]...),
		MACKey:    append([]byte(nil), keyData[cipherKeyLen+ivSeedLen:]...),
	}
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	return keys, nil
}
