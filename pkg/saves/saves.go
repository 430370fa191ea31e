// Package saves stores the battery backed RAM of cartridges on disk.
//
// Each cartridge is identified by its title and a fingerprint of its
// ROM, giving save files named <title>-<xxhash64>.sav. The files hold
// the raw RAM (followed by the RTC block for cartridges that have
// one), the same layout other emulators use. Before a save file is
// overwritten the previous contents are kept as a brotli compressed
// .sav.br backup.
package saves

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	saveExtension   = ".sav"
	backupExtension = ".sav.br"
)

// Store is a directory of save files.
type Store struct {
	dir string
	log log.Logger
}

// NewStore returns a Store rooted at dir, creating it if it doesn't
// exist.
func NewStore(dir string, logger log.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("saves: creating %s: %w", dir, err)
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Store{dir: dir, log: logger}, nil
}

// Name returns the base name of the save file for the given title and
// ROM, without an extension.
func Name(title string, rom []byte) string {
	return fmt.Sprintf("%s-%016x", sanitise(title), xxhash.Sum64(rom))
}

// Path returns the path of the save file for the given title and ROM.
func (s *Store) Path(title string, rom []byte) string {
	return filepath.Join(s.dir, Name(title, rom)+saveExtension)
}

// Load returns the saved RAM for the given title and ROM. A cartridge
// that has never been saved returns nil and no error.
func (s *Store) Load(title string, rom []byte) ([]byte, error) {
	path := s.Path(title, rom)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Debugf("saves: no save file at %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("saves: reading %s: %w", path, err)
	}
	s.log.Infof("saves: loaded %d bytes from %s", len(b), path)
	return b, nil
}

// Save writes data as the save file for the given title and ROM. The
// data is written to a temporary file first and renamed into place, so
// a failed write never truncates the previous save.
func (s *Store) Save(title string, rom []byte, data []byte) error {
	path := s.Path(title, rom)

	previous, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(previous, data) {
			return nil
		}
		if err := s.backup(path, previous); err != nil {
			return err
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("saves: reading %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("saves: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("saves: renaming %s: %w", tmp, err)
	}
	s.log.Infof("saves: wrote %d bytes to %s", len(data), path)
	return nil
}

// LoadBackup returns the contents of the save file as it was before
// the last overwrite.
func (s *Store) LoadBackup(title string, rom []byte) ([]byte, error) {
	path := filepath.Join(s.dir, Name(title, rom)+backupExtension)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("saves: opening %s: %w", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(brotli.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("saves: decompressing %s: %w", path, err)
	}
	return b, nil
}

func (s *Store) backup(path string, data []byte) error {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	backup := strings.TrimSuffix(path, saveExtension) + backupExtension
	if err := os.WriteFile(backup, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("saves: writing backup %s: %w", backup, err)
	}
	s.log.Debugf("saves: backed up %d bytes to %s", len(data), backup)
	return nil
}

// sanitise reduces a cartridge title to something safe to use in a
// file name.
func sanitise(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
