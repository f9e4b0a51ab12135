package encfs

import "io"

// FileStream is a forward-only, decrypted view over one encrypted file.
// It implements io.Reader; Skip provides forward seeking by decoding and
// discarding the skipped bytes, so every skipped block is still MAC-checked.
// FileStream is not
// safe for concurrent use: callers needing parallel access to the same
// file must open independent streams, which is safe because
// VolumeConfig and VolumeKeys are immutable.
type FileStream struct {
	path   string
	cfg    *VolumeConfig
	source ByteSource
	reader *blockReader

	plainBuf []byte
	cursor   int
	eof      bool
	closed   bool
}

var _ io.Reader = (*FileStream)(nil)

// OpenFileStream opens path through provider and prepares a decrypted
// read-only stream over its contents. If cfg.UniqueIV is set, the file's
// 8-byte encrypted header is read and decoded immediately to recover the
// file IV; otherwise the file IV is fixed at zero and no header bytes
// are consumed.
func OpenFileStream(provider FileProvider, path string, cfg *VolumeConfig, keys *VolumeKeys) (*FileStream, error) {
	if provider == nil {
		return nil, NewInvalidArgumentError("provider", nil, "provider cannot be nil")
	}
	if err := validateFilePath(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	if cfg.ExternalIVChaining {
		return nil, NewUnsupportedConfigError("externalIVChaining", "file-data IV chaining off the directory IV chain is not implemented")
	}

	source, err := provider.OpenInput(path)
	if err != nil {
		return nil, NewProviderError("openInput", path, err)
	}

	var header []byte
	if cfg.UniqueIV {
		header = make([]byte, 8)
		n, rerr := readFullOrShort(source, header)
		if rerr != nil {
			source.Close()
			return nil, NewProviderError("read", path, rerr)
		}
		header = header[:n]
	}

	fileIV, err := deriveFileIV(keys, cfg, header)
	if err != nil {
		source.Close()
		return nil, err
	}

	return &FileStream{
		path:   path,
		cfg:    cfg,
		source: source,
		reader: newBlockReader(path, source, cfg, keys, fileIV),
	}, nil
}

// Read implements io.Reader. It fills p from the currently buffered
// decoded block, pulling and decoding further blocks as needed. Read
// returns io.EOF once the underlying file is exhausted; a short,
// non-error read (n < len(p), err == nil) never occurs except when the
// stream reaches EOF partway through filling p, in which case Read
// returns the bytes produced so far with a nil error and reports io.EOF
// on the next call, matching io.Reader's contract.
func (s *FileStream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, NewInvalidArgumentError("stream", nil, "read on closed stream")
	}
	if len(p) == 0 {
		return 0, nil
	}

	total := 0
	for total < len(p) {
		if s.cursor >= len(s.plainBuf) {
			if s.eof {
				break
			}
			plain, err := s.reader.readBlock()
			if err != nil {
				if err == io.EOF {
					s.eof = true
					break
				}
				return total, err
			}
			s.plainBuf = plain
			s.cursor = s.cfg.BlockHeaderSize()
			continue
		}
		n := copy(p[total:], s.plainBuf[s.cursor:])
		s.cursor += n
		total += n
	}

	if total == 0 && s.eof {
		return 0, io.EOF
	}
	return total, nil
}

// Skip advances the stream by n plaintext bytes without returning them,
// decoding and discarding whole blocks via Read. Skip rejects negative n
// with InvalidArgumentError; it returns the number of bytes actually
// skipped, which is less than n only if EOF was reached.
func (s *FileStream) Skip(n int64) (int64, error) {
	if err := validateOffset(n, "n"); err != nil {
		return 0, err
	}

	discard := make([]byte, s.cfg.BlockSize)
	var total int64
	for total < n {
		want := n - total
		if want > int64(len(discard)) {
			want = int64(len(discard))
		}
		m, err := s.Read(discard[:want])
		total += int64(m)
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
		if m == 0 {
			return total, nil
		}
	}
	return total, nil
}

// Close releases the underlying provider source. Idempotent.
func (s *FileStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.source.Close()
}
