// Package pngstore loads PNG containers from disk and writes them back.
package pngstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/samcharles93/pngme/pkg/png"
)

var ErrNotRegularFile = errors.New("pngstore: not a regular file")

// Load maps path read-only and parses it. If mmap is unavailable, it falls
// back to ReadAt-based loading. Parsed chunks own their bytes, so the mapping
// is released before Load returns.
func Load(path string) (*png.PNG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !stat.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return nil, fmt.Errorf("pngstore: %s too large", path)
	}
	size := int(size64)
	if size == 0 {
		// mmap rejects empty mappings; let the parser report the bad signature.
		return png.Parse(nil)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		p, parseErr := png.Parse(data)
		if unmapErr := unix.Munmap(data); unmapErr != nil && parseErr == nil {
			return nil, unmapErr
		}
		return p, parseErr
	}

	return LoadReaderAt(f, size64)
}

// LoadReaderAt reads size bytes from r and parses them without mmap.
func LoadReaderAt(r io.ReaderAt, size int64) (*png.PNG, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("pngstore: invalid size %d", size)
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return png.Parse(data)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Save writes p to path through a temporary file in the same directory and
// renames it into place, so a failed write never leaves a half-written image.
// An existing file keeps its permission bits.
func Save(path string, p *png.PNG) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if err := writeFull(tmp, p.Bytes()); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func writeFull(f *os.File, p []byte) error {
	for len(p) > 0 {
		n, err := f.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
