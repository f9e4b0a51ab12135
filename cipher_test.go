package encfs

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"testing"
)

func testKeys(t *testing.T) *VolumeKeys {
	t.Helper()
	keys := &VolumeKeys{
		CipherKey: bytes.Repeat([]byte{0x11}, 32),
		IVSeed:    bytes.Repeat([]byte{0x22}, 16),
		MACKey:    bytes.Repeat([]byte{0x33}, 20),
	}
	if err := keys.Validate(); err != nil {
		t.Fatalf("test key fixture is invalid: %v", err)
	}
	return keys
}

func TestBlockDecodeRoundTrip(t *testing.T) {
	keys := testKeys(t)
	iv8 := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	plain := bytes.Repeat([]byte("0123456789abcdef"), 4) // 64 bytes, multiple of AES block size

	block, err := aes.NewCipher(keys.CipherKey)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	ivec := combinedIVec(keys, iv8)
	cipherBytes := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, ivec).CryptBlocks(cipherBytes, plain)

	got, err := blockDecode(keys, iv8, cipherBytes)
	if err != nil {
		t.Fatalf("blockDecode: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("blockDecode round trip mismatch:\n got  %x\n want %x", got, plain)
	}
}

func TestBlockDecodeRejectsBadLength(t *testing.T) {
	keys := testKeys(t)
	iv8 := make([]byte, 8)
	if _, err := blockDecode(keys, iv8, make([]byte, 10)); err == nil {
		t.Error("expected error for ciphertext length not a multiple of the AES block size")
	}
	if !IsBlockCorruptionError(func() error { _, err := blockDecode(keys, iv8, make([]byte, 10)); return err }()) {
		t.Error("expected a BlockCorruptionError")
	}
}

// buildStreamCiphertext constructs ciphertext bytes that streamDecode will
// decode without error, by choosing the decode's internal "first
// intermediate" value directly and running the forward CFB transform that
// produces it — sidestepping the need for a literal streamEncode (which
// would require inverting an HMAC). The resulting plaintext is whatever
// streamDecode computes for this ciphertext; callers that need the
// plaintext call streamDecode themselves to learn it.
func buildStreamCiphertext(t *testing.T, keys *VolumeKeys, iv8 []byte, intermediate []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(keys.CipherKey)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	ivec1 := combinedIVec(keys, iv8)
	pre := reverseBytes(intermediate)
	out := make([]byte, len(pre))
	cipher.NewCFBEncrypter(block, ivec1).XORKeyStream(out, pre)
	return out
}

func TestStreamDecodeDeterministic(t *testing.T) {
	keys := testKeys(t)
	iv8 := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	intermediate := bytes.Repeat([]byte{0xAB}, 37)
	cipherBytes := buildStreamCiphertext(t, keys, iv8, intermediate)

	p1, err := streamDecode(keys, iv8, cipherBytes)
	if err != nil {
		t.Fatalf("streamDecode: %v", err)
	}
	p2, err := streamDecode(keys, iv8, cipherBytes)
	if err != nil {
		t.Fatalf("streamDecode: %v", err)
	}
	if !bytes.Equal(p1, p2) {
		t.Error("streamDecode is not deterministic for identical inputs")
	}
	if len(p1) != len(cipherBytes) {
		t.Errorf("streamDecode changed length: got %d, want %d", len(p1), len(cipherBytes))
	}
}

func TestStreamDecodeAvalanche(t *testing.T) {
	keys := testKeys(t)
	iv8 := []byte{1, 1, 1, 1, 1, 1, 1, 1}
	intermediate := bytes.Repeat([]byte{0x5A}, 64)
	cipherBytes := buildStreamCiphertext(t, keys, iv8, intermediate)

	base, err := streamDecode(keys, iv8, cipherBytes)
	if err != nil {
		t.Fatalf("streamDecode: %v", err)
	}

	tampered := append([]byte(nil), cipherBytes...)
	tampered[0] ^= 0x01
	changed, err := streamDecode(keys, iv8, tampered)
	if err != nil {
		t.Fatalf("streamDecode: %v", err)
	}

	diff := 0
	for i := range base {
		if base[i] != changed[i] {
			diff++
		}
	}
	// A single flipped ciphertext bit should perturb most of the block,
	// not just the bytes downstream of it in a single CFB pass.
	if diff < len(base)/2 {
		t.Errorf("single-byte ciphertext change only perturbed %d/%d plaintext bytes, want at least half", diff, len(base))
	}
}

func TestStreamDecodeDifferentIV(t *testing.T) {
	keys := testKeys(t)
	intermediate := bytes.Repeat([]byte{0x77}, 16)
	iv8a := []byte{0, 0, 0, 0, 0, 0, 0, 1}
	cipherBytes := buildStreamCiphertext(t, keys, iv8a, intermediate)

	iv8b := []byte{0, 0, 0, 0, 0, 0, 0, 2}
	pa, err := streamDecode(keys, iv8a, cipherBytes)
	if err != nil {
		t.Fatalf("streamDecode: %v", err)
	}
	pb, err := streamDecode(keys, iv8b, cipherBytes)
	if err != nil {
		t.Fatalf("streamDecode: %v", err)
	}
	if bytes.Equal(pa, pb) {
		t.Error("decoding the same ciphertext under two different IVs produced identical plaintext")
	}
}

func TestMac64Deterministic(t *testing.T) {
	keys := testKeys(t)
	data := []byte("the quick brown fox jumps over the lazy dog")

	m1 := mac64(keys, data)
	m2 := mac64(keys, data)
	if !bytes.Equal(m1, m2) {
		t.Error("mac64 is not deterministic")
	}
	if len(m1) != 8 {
		t.Fatalf("mac64 length = %d, want 8", len(m1))
	}

	other := mac64(keys, []byte("the quick brown fox jumps over the lazy dof"))
	if bytes.Equal(m1, other) {
		t.Error("mac64 produced identical output for different inputs")
	}
}

func TestCheckBlockMAC(t *testing.T) {
	keys := testKeys(t)
	payload := []byte("payload bytes for a single block")
	mac := mac64(keys, payload)

	stored := make([]byte, 8)
	for i := 0; i < 8; i++ {
		stored[i] = mac[7-i]
	}

	if !checkBlockMAC(keys, 8, stored, payload) {
		t.Error("checkBlockMAC rejected a correctly computed MAC")
	}

	stored[0] ^= 0x01
	if checkBlockMAC(keys, 8, stored, payload) {
		t.Error("checkBlockMAC accepted a tampered MAC")
	}
}
