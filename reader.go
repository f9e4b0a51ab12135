package encfs

import "io"

// blockReader pulls ciphertext blocks from a ByteSource and decodes them
// into plaintext, one block at a time. It holds all the per-file state
// that readBlock needs: the file IV, the running block index, and a
// reusable ciphertext buffer.
type blockReader struct {
	path   string
	source ByteSource
	cfg    *VolumeConfig
	keys   *VolumeKeys

	fileIV     []byte
	blockIndex uint64
	cipherBuf  []byte
}

func newBlockReader(path string, source ByteSource, cfg *VolumeConfig, keys *VolumeKeys, fileIV []byte) *blockReader {
	return &blockReader{
		path:      path,
		source:    source,
		cfg:       cfg,
		keys:      keys,
		fileIV:    fileIV,
		cipherBuf: make([]byte, cfg.BlockSize),
	}
}

// readFullOrShort reads from src until buf is full or the source is
// exhausted, tolerating the partial reads a provider is allowed to
// return mid-block. It never returns io.EOF itself: a
// zero-byte result with nil error means true end of stream, while any
// other error is a genuine provider failure.
func readFullOrShort(src ByteSource, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := src.Read(buf[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// readBlock reads up to one block of ciphertext, classifies it as a full
// block, a sparse hole, or the final short (stream-mode) block, decodes
// it, verifies its MAC, and returns the decoded plaintext including its
// MAC+random header. io.EOF is returned once the provider yields zero
// bytes.
func (r *blockReader) readBlock() ([]byte, error) {
	n, err := readFullOrShort(r.source, r.cipherBuf)
	if err != nil {
		return nil, NewProviderError("read", r.path, err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	cipherBytes := r.cipherBuf[:n]

	var plain []byte
	var isHole bool

	switch {
	case n == r.cfg.BlockSize && r.cfg.HolesAllowed && allZero(cipherBytes):
		isHole = true
		plain = make([]byte, n)
	case n == r.cfg.BlockSize:
		iv := blockIV(r.fileIV, r.blockIndex)
		plain, err = blockDecode(r.keys, iv, cipherBytes)
		if err != nil {
			return nil, NewBlockCorruptionError(r.path, r.blockIndex, "block decode failed", err)
		}
	default:
		iv := blockIV(r.fileIV, r.blockIndex)
		plain, err = streamDecode(r.keys, iv, cipherBytes)
		if err != nil {
			return nil, NewBlockCorruptionError(r.path, r.blockIndex, "stream decode failed", err)
		}
	}

	if !isHole && r.cfg.BlockMACBytes > 0 {
		headerSize := r.cfg.BlockHeaderSize()
		// A tail remainder of 0 < n <= headerSize has no room for a
		// payload at all: there is nothing to MAC-check, and the caller
		// sees an empty plaintext payload once its cursor runs past the
		// header offset into this short buffer.
		if len(plain) > headerSize {
			stored := plain[:r.cfg.BlockMACBytes]
			payload := plain[headerSize:]
			if !checkBlockMAC(r.keys, r.cfg.BlockMACBytes, stored, payload) {
				return nil, NewMACMismatchError(r.path, r.blockIndex)
			}
		}
	}

	r.blockIndex++
	return plain, nil
}
