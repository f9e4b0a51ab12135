package encfs

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha1"
)

// extendIV repeats an 8-byte IV seed to fill a 16-byte AES block-size IV,
// per the EncFS convention of extending a short IV by duplication.
func extendIV(iv8 []byte) []byte {
	out := make([]byte, aes.BlockSize)
	copy(out, iv8)
	copy(out[len(iv8):], iv8)
	return out
}

// xorBytes writes dst[i] = a[i] ^ b[i] for i in 0..len(dst). a and b must
// be at least len(dst) long.
func xorBytes(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// combinedIVec builds the 16-byte CBC/CFB initialisation vector from the
// volume's IV seed and an 8-byte chaining value (blockIV or the zero IV
// used for header decode): ivSeed XOR extend(iv8).
func combinedIVec(keys *VolumeKeys, iv8 []byte) []byte {
	extended := extendIV(iv8)
	ivec := make([]byte, aes.BlockSize)
	xorBytes(ivec, keys.IVSeed, extended)
	return ivec
}

// blockDecode decrypts one full ciphertext block with AES-CBC. cipherBytes
// must be a positive multiple of aes.BlockSize. readBlock passes whole
// BlockSize-long blocks, and VolumeConfig.Validate does not require
// BlockSize to be such a multiple, so any other length is rejected here
// with a BlockCorruptionError.
func blockDecode(keys *VolumeKeys, iv8, cipherBytes []byte) ([]byte, error) {
	if len(cipherBytes) == 0 || len(cipherBytes)%aes.BlockSize != 0 {
		return nil, NewBlockCorruptionError("", 0, "ciphertext length is not a positive multiple of the cipher block size", nil)
	}

	block, err := aes.NewCipher(keys.CipherKey)
	if err != nil {
		return nil, err
	}

	ivec := combinedIVec(keys, iv8)
	plain := make([]byte, len(cipherBytes))
	dec := cipher.NewCBCDecrypter(block, ivec)
	dec.CryptBlocks(plain, cipherBytes)
	return plain, nil
}

// reverseBytes returns a new slice holding b's bytes in reverse order.
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// streamDecode implements EncFS's dual-pass CFB stream decode used for the
// 8-byte file header and for the final short (tail) block. A single CFB
// pass only propagates a plaintext change forward from the point of
// change; EncFS runs a second pass, in the opposite byte order, keyed off
// a MAC of the first pass's output, so that a single byte difference
// anywhere in the block perturbs the entire decoded result.
func streamDecode(keys *VolumeKeys, iv8, cipherBytes []byte) ([]byte, error) {
	if len(cipherBytes) == 0 {
		return nil, NewBlockCorruptionError("", 0, "stream decode requires at least one byte", nil)
	}

	block, err := aes.NewCipher(keys.CipherKey)
	if err != nil {
		return nil, err
	}

	ivec1 := combinedIVec(keys, iv8)
	pass1 := make([]byte, len(cipherBytes))
	cipher.NewCFBDecrypter(block, ivec1).XORKeyStream(pass1, cipherBytes)

	flipped1 := reverseBytes(pass1)

	mac := mac64(keys, flipped1)
	ivec2 := combinedIVec(keys, mac)
	pass2 := make([]byte, len(flipped1))
	cipher.NewCFBDecrypter(block, ivec2).XORKeyStream(pass2, flipped1)

	return reverseBytes(pass2), nil
}

// mac64 computes HMAC-SHA1(macKey, data) and folds the 20-byte digest down
// to 8 bytes by XORing it in overlapping 8/8/4-byte chunks: the first 8
// bytes seed the result, the next 8 bytes XOR across the whole result, and
// the final 4 bytes XOR into the low 4 bytes of the result.
func mac64(keys *VolumeKeys, data []byte) []byte {
	h := hmac.New(sha1.New, keys.MACKey)
	h.Write(data)
	digest := h.Sum(nil)

	result := make([]byte, 8)
	copy(result, digest[0:8])
	for i := 0; i < 8; i++ {
		result[i] ^= digest[8+i]
	}
	for i := 0; i < 4; i++ {
		result[4+i] ^= digest[16+i]
	}
	return result
}

// checkBlockMAC verifies the reversed-byte MAC comparison EncFS uses:
// storedMAC[i] == mac64(payload)[7-i] for i in 0..macBytes.
func checkBlockMAC(keys *VolumeKeys, macBytes int, storedMAC, payload []byte) bool {
	expected := mac64(keys, payload)
	for i := 0; i < macBytes; i++ {
		if storedMAC[i] != expected[7-i] {
			return false
		}
	}
	return true
}
