// Package archive is a read-only view over a data-download zip.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
)

var (
	ErrInvalidArchive = errors.New("invalid zip archive")
	ErrNoEntry        = errors.New("no such entry")
)

// Archive is opened once per extraction run and never mutated. Decoded data
// copied out of it stays valid after Close.
type Archive struct {
	name   string
	reader *zip.Reader
	closer io.Closer
	names  []string
	index  map[string]*zip.File
}

// Open reads the zip at path. Anything that is not a readable zip is
// reported as ErrInvalidArchive.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r, err := zip.NewReader(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArchive, path, err)
	}
	return newArchive(st.Name(), r, f), nil
}

// FromBytes wraps an in-memory upload.
func FromBytes(name string, data []byte) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArchive, name, err)
	}
	return newArchive(name, r, nil), nil
}

func newArchive(name string, r *zip.Reader, closer io.Closer) *Archive {
	a := &Archive{
		name:   name,
		reader: r,
		closer: closer,
		names:  make([]string, 0, len(r.File)),
		index:  make(map[string]*zip.File, len(r.File)),
	}
	for _, f := range r.File {
		a.names = append(a.names, f.Name)
		if _, dup := a.index[f.Name]; !dup {
			a.index[f.Name] = f
		}
	}
	return a
}

// Name is the file name the archive was uploaded or opened under.
func (a *Archive) Name() string {
	return a.name
}

// Names returns entry names in archive order, directories included.
func (a *Archive) Names() []string {
	return a.names
}

func (a *Archive) Has(name string) bool {
	_, ok := a.index[name]
	return ok
}

// Read returns a copy of the entry's uncompressed bytes.
func (a *Archive) Read(name string) ([]byte, error) {
	f, ok := a.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoEntry, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}
