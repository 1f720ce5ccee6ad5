// Package export stores donation payloads on local disk.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ddp/internal/providers"
	"ddp/internal/structures"
	"ddp/internal/table"

	json "github.com/goccy/go-json"
)

const (
	jsonExt = ".json"
	zstExt  = ".zst"
	tmpExt  = ".tmp"
)

var ErrInvalidKey = errors.New("invalid donation key")

// Declined is stored in place of the tables when the donor does not consent.
var Declined = []byte(`{"status":"donation declined"}`)

// Payload encodes the consented tables.
func Payload(tables []*table.Table) ([]byte, error) {
	return json.Marshal(tables)
}

type FileManagerInterface interface {
	Save(key string, payload []byte) (string, error)
	Load(key string) ([]byte, error)
	Sweep(maxAge time.Duration, now time.Time) (int, error)
}

type FileManager struct {
	dir        string
	compress   bool
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileManager(conf *structures.Config, compressor CompressorInterface, logger providers.Logger) FileManagerInterface {
	return &FileManager{
		dir:        conf.Output.Dir,
		compress:   conf.Output.Compress,
		compressor: compressor,
		logger:     logger,
	}
}

func validKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`)
}

func (f *FileManager) path(key string, compressed bool) string {
	name := key + jsonExt
	if compressed {
		name += zstExt
	}
	return filepath.Join(f.dir, name)
}

// Save writes payload under key through a temp file and rename, so readers
// never observe a partial donation.
func (f *FileManager) Save(key string, payload []byte) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", err
	}

	data := payload
	if f.compress {
		var err error
		if data, err = f.compressor.Compress(payload); err != nil {
			return "", err
		}
	}

	fileName := f.path(key, f.compress)
	tmpFile := fileName + tmpExt
	file, err := os.Create(tmpFile)
	if err != nil {
		return "", err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return "", err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return "", err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return "", err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return "", err
	}
	f.logger.Infof(providers.TypeApp, "Donation %s stored in %s (%d bytes)", key, fileName, len(data))
	return fileName, nil
}

// Load returns the uncompressed payload stored under key.
func (f *FileManager) Load(key string) ([]byte, error) {
	if !validKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	data, err := os.ReadFile(f.path(key, true))
	if err == nil {
		return f.compressor.Decompress(data)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return os.ReadFile(f.path(key, false))
}

// Sweep removes donations and abandoned temp files last modified before
// now-maxAge. A missing output directory is not an error.
func (f *FileManager) Sweep(maxAge time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := now.Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !managed(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, e.Name())); err != nil {
			f.logger.Warnf(providers.TypeApp, "Cannot remove expired donation %s: %s", e.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}

func managed(name string) bool {
	name = strings.TrimSuffix(name, tmpExt)
	name = strings.TrimSuffix(name, zstExt)
	return strings.HasSuffix(name, jsonExt)
}
