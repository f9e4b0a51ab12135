package encfs

// VolumeConfig holds the immutable parameters of an EncFS volume that
// parameterise the block decoder. These mirror the fields EncFS stores in
// .encfs6.xml; parsing that file is out of scope, so callers construct a
// VolumeConfig directly (or via NewVolumeConfig) from values obtained
// however they like.
type VolumeConfig struct {
	// BlockSize is the number of ciphertext bytes per block (typical 1024).
	BlockSize int

	// UniqueIV indicates each file carries an 8-byte encrypted header used
	// to derive a per-file IV. When false, the file IV is all-zero and no
	// header is read.
	UniqueIV bool

	// BlockMACBytes is the number of MAC bytes prepended to each block's
	// plaintext (0 or 8).
	BlockMACBytes int

	// BlockMACRandBytes is the number of random bytes following the MAC in
	// each block's plaintext.
	BlockMACRandBytes int

	// HolesAllowed indicates all-zero ciphertext blocks are treated as
	// sparse holes: decoded as all-zero plaintext without running the
	// cipher, and without MAC verification.
	HolesAllowed bool

	// ExternalIVChaining, when true, means the volume enables file-data IV
	// chaining off the directory IV chain. This module does not implement
	// it; OpenFileStream rejects such a config with UnsupportedConfigError
	// rather than guessing at semantics without access to the directory
	// IV chain a real implementation would need.
	ExternalIVChaining bool
}

// NewVolumeConfig builds a VolumeConfig from its field values and
// validates it immediately.
func NewVolumeConfig(blockSize int, uniqueIV bool, blockMACBytes, blockMACRandBytes int, holesAllowed bool) (*VolumeConfig, error) {
	cfg := &VolumeConfig{
		BlockSize:         blockSize,
		UniqueIV:          uniqueIV,
		BlockMACBytes:     blockMACBytes,
		BlockMACRandBytes: blockMACRandBytes,
		HolesAllowed:      holesAllowed,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for internally-consistent values.
func (c *VolumeConfig) Validate() error {
	if c == nil {
		return &InvalidArgumentError{Field: "config", Message: "volume config cannot be nil"}
	}
	if c.BlockSize <= 0 {
		return &InvalidArgumentError{Field: "blockSize", Value: c.BlockSize, Message: "block size must be positive"}
	}
	if c.BlockMACBytes != 0 && c.BlockMACBytes != 8 {
		return &InvalidArgumentError{Field: "blockMACBytes", Value: c.BlockMACBytes, Message: "block MAC bytes must be 0 or 8"}
	}
	if c.BlockMACRandBytes < 0 {
		return &InvalidArgumentError{Field: "blockMACRandBytes", Value: c.BlockMACRandBytes, Message: "block MAC rand bytes cannot be negative"}
	}
	if c.BlockHeaderSize() >= c.BlockSize {
		return &InvalidArgumentError{Field: "blockSize", Value: c.BlockSize, Message: "block size must exceed the MAC+random header size"}
	}
	return nil
}

// BlockHeaderSize is the derived size of the MAC+random header prefixed
// to every decoded block's plaintext.
func (c *VolumeConfig) BlockHeaderSize() int {
	return c.BlockMACBytes + c.BlockMACRandBytes
}

// VolumeKeys holds the cryptographic key material derived for a volume
// during open (out of scope to derive from a password here in full
// generality, but see keys.go's DeriveVolumeKeys for the common path).
// The decoder treats VolumeKeys as read-only for its lifetime.
type VolumeKeys struct {
	// CipherKey is the symmetric key for the block/stream cipher (AES).
	CipherKey []byte

	// IVSeed is the 16-byte IV base mixed with per-file/per-block IVs.
	IVSeed []byte

	// MACKey is the HMAC key used for block MAC and stream-mode IV
	// mangling.
	MACKey []byte
}

// Validate checks that key material has the sizes the cipher primitives
// require.
func (k *VolumeKeys) Validate() error {
	if k == nil {
		return &InvalidArgumentError{Field: "keys", Message: "volume keys cannot be nil"}
	}
	if len(k.CipherKey) != 16 && len(k.CipherKey) != 24 && len(k.CipherKey) != 32 {
		return &InvalidArgumentError{Field: "cipherKey", Value: len(k.CipherKey), Message: "cipher key must be 16, 24, or 32 bytes for AES"}
	}
	if err := validateKeySize(k.IVSeed, "ivSeed", 16); err != nil {
		return err
	}
	if err := validateBuffer(k.MACKey, "macKey", 1); err != nil {
		return err
	}
	return nil
}
