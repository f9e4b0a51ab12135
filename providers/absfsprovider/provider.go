// Package absfsprovider adapts a github.com/absfs/absfs.FileSystem into
// the encfs.FileProvider contract: sequential ciphertext reads plus
// metadata lookup over the raw (encrypted) directory tree. It deliberately
// implements nothing beyond what encfs.OpenFileStream consumes — no
// directory traversal, no write path — mirroring the read-only scope of
// the package it serves.
package absfsprovider

import (
	"io"

	"github.com/absfs/absfs"

	"github.com/absfs/encfs"
)

// Provider wraps an absfs.FileSystem rooted at the raw (encrypted)
// directory tree. Paths passed to OpenInput and FileInfo are raw
// filesystem paths; this package never decodes EncFS's encrypted
// filenames, matching the core's assumption that raw paths are already
// resolved by the caller.
type Provider struct {
	base absfs.FileSystem
}

// New wraps base as an encfs.FileProvider.
func New(base absfs.FileSystem) (*Provider, error) {
	if base == nil {
		return nil, encfs.NewInvalidArgumentError("base", nil, "base filesystem cannot be nil")
	}
	return &Provider{base: base}, nil
}

var _ encfs.FileProvider = (*Provider)(nil)

// OpenInput opens path for sequential reading of raw ciphertext.
func (p *Provider) OpenInput(path string) (encfs.ByteSource, error) {
	f, err := p.base.Open(path)
	if err != nil {
		return nil, err
	}
	return &fileSource{f: f}, nil
}

// FileInfo reports metadata about path.
func (p *Provider) FileInfo(path string) (encfs.FileInfo, error) {
	info, err := p.base.Stat(path)
	if err != nil {
		return encfs.FileInfo{}, err
	}

	mode := info.Mode()
	return encfs.FileInfo{
		Name:       info.Name(),
		ParentPath: parentPath(path, p.base.Separator()),
		IsDir:      info.IsDir(),
		ModTime:    info.ModTime(),
		Size:       info.Size(),
		CanRead:    mode.Perm()&0o400 != 0,
		CanWrite:   mode.Perm()&0o200 != 0,
		CanExecute: mode.Perm()&0o100 != 0,
	}, nil
}

// parentPath derives the directory portion of path. Whether the root
// directory and files directly under it should be distinguished in the
// result is left unspecified by the contract this adapter implements;
// this adapter returns "/" for both, the simplest reading available.
func parentPath(path string, sep uint8) string {
	s := string(sep)
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == sep {
			if i == 0 {
				return s
			}
			return path[:i]
		}
	}
	return s
}

// fileSource adapts an absfs.File to encfs.ByteSource: sequential Read
// plus Close, nothing else. absfs.File exposes a much larger surface
// (Write, Seek, Readdir, ...) that this adapter never calls, since the
// decoder never seeks or writes.
type fileSource struct {
	f absfs.File
}

func (s *fileSource) Read(buf []byte) (int, error) {
	n, err := s.f.Read(buf)
	if err == io.EOF {
		return n, io.EOF
	}
	return n, err
}

func (s *fileSource) Close() error {
	return s.f.Close()
}
