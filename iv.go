package encfs

import "encoding/binary"

// zeroIV8 is the fixed 8-byte IV used to decode a file's header, and the
// file IV itself when the volume does not use unique per-file IVs.
//
// EncFS also supports an "external" IV chain derived from the directory
// structure (used so that renaming a file changes its content IV even
// without re-encrypting it). That chain is never consulted here: header
// decode always starts from the zero IV, matching the upstream behaviour
// this module targets (see the doc comment on
// VolumeConfig.ExternalIVChaining, which OpenFileStream rejects).
var zeroIV8 = make([]byte, 8)

// deriveFileIV computes a file's IV from its optional 8-byte encrypted
// header. When cfg.UniqueIV is false, the file IV is fixed at zero and no
// header bytes are consumed.
func deriveFileIV(keys *VolumeKeys, cfg *VolumeConfig, headerBytes []byte) ([]byte, error) {
	if !cfg.UniqueIV {
		return zeroIV8, nil
	}
	if len(headerBytes) < 8 {
		return nil, NewHeaderError("", "encrypted header shorter than 8 bytes", nil)
	}
	iv, err := streamDecode(keys, zeroIV8, headerBytes[:8])
	if err != nil {
		return nil, NewHeaderError("", "failed to decrypt file header", err)
	}
	return iv, nil
}

// blockIV computes the per-block IV: the file IV, interpreted as an
// 8-byte big-endian integer, XORed with the block index.
func blockIV(fileIV []byte, blockIndex uint64) []byte {
	f := binary.BigEndian.Uint64(fileIV)
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, f^blockIndex)
	return out
}
