package encfs

import "time"

// ByteSource is a sequential, read-only source of raw ciphertext bytes,
// as returned by FileProvider.OpenInput. Implementations need not support
// seeking; the decoder reads strictly forward.
type ByteSource interface {
	// Read fills buf[:n] with up to len(buf) bytes read sequentially from
	// the source. It returns the number of bytes read and an error. Read
	// may return n < len(buf) without error when fewer bytes are
	// immediately available (a short read); the caller is responsible
	// for looping until a block is filled or EOF is observed. At true
	// end of stream, Read returns (0, io.EOF).
	Read(buf []byte) (n int, err error)

	// Close releases the underlying resource. Idempotent.
	Close() error
}

// FileInfo describes a file or directory as reported by a FileProvider.
type FileInfo struct {
	Name       string
	ParentPath string
	IsDir      bool
	ModTime    time.Time
	Size       int64
	CanRead    bool
	CanWrite   bool
	CanExecute bool
}

// FileProvider is the narrow boundary the read-path core depends on for
// raw ciphertext bytes and metadata. Any backing store — local disk,
// object store, in-memory fixture — that implements OpenInput and
// FileInfo can supply files to OpenFileStream.
//
// A full provider typically also offers directory traversal and write
// operations (listing children, creating/moving/deleting files); those
// are management-layer concerns this package never calls and does not
// declare here. See providers/absfsprovider for a concrete adapter on top
// of github.com/absfs/absfs; it too implements only OpenInput and FileInfo.
type FileProvider interface {
	// OpenInput opens path for sequential reading of raw ciphertext.
	OpenInput(path string) (ByteSource, error)

	// FileInfo reports metadata about path.
	FileInfo(path string) (FileInfo, error)
}
