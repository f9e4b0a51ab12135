// Package encfs implements the read path of an EncFS 1.x-compatible
// encrypted volume: turning an encrypted on-disk file into a plaintext
// byte stream.
//
// # Overview
//
// EncFS stores each plaintext file as a separately encrypted file in an
// underlying raw directory tree. This package implements the
// cryptographic block decoder for file contents: per-file IV recovery
// from an optional encrypted header, per-block IV chaining, MAC-verified
// block decode, sparse-hole passthrough for all-zero ciphertext blocks,
// and a byte-oriented sequential Read/Skip facade whose positions do not
// line up with the underlying cipher blocks.
//
// Filename encoding, volume-config (.encfs6.xml) parsing, the write
// path, and directory traversal are out of scope: they are external
// collaborators specified only by the interfaces this package consumes
// or, in the case of filenames, not touched at all (raw paths are
// assumed already resolved by the caller).
//
// # Block layout
//
// Each encrypted file looks like:
//
//	[ 8-byte encrypted header IV ]   -- present iff VolumeConfig.UniqueIV
//	[ block 0 : BlockSize bytes ]
//	...
//	[ block K-1 : BlockSize bytes ]
//	[ tail block : 1..BlockSize bytes ]  -- iff file length not a multiple of BlockSize
//
// and each decrypted block's plaintext is laid out as:
//
//	[ BlockMACBytes : MAC, compared byte-reversed against payload's HMAC ]
//	[ BlockMACRandBytes : random padding, discarded ]
//	[ payload ]
//
// # Basic usage
//
//	keys, err := encfs.DeriveVolumeKeys(password, salt, 1000, 32)
//	cfg, err := encfs.NewVolumeConfig(1024, true, 8, 0, true)
//	stream, err := encfs.OpenFileStream(provider, "/raw/path/to/file", cfg, keys)
//	defer stream.Close()
//	io.Copy(os.Stdout, stream)
//
// # Provider contract
//
// The decoder depends on a narrow FileProvider interface (openInput +
// fileInfo) for raw ciphertext bytes; any backing store — local disk,
// object store, in-memory — that satisfies FileProvider plugs in. See
// provider.go and providers/absfsprovider for a concrete adapter built on
// github.com/absfs/absfs.
package encfs
