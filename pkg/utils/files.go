// Package utils provides helpers for loading and writing the files
// used by the emulator.
package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned when an archive doesn't contain any files.
var ErrEmptyArchive = errors.New("utils: empty archive")

// romExtensions are the extensions preferred when picking a file
// out of an archive.
var romExtensions = []string{".gb", ".gbc", ".cgb", ".sgb", ".bin"}

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield the first ROM they contain, or their first
// file when none of the names look like a ROM.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("utils: reading gzip %s: %w", filename, err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".xz":
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("utils: reading xz %s: %w", filename, err)
		}
		return io.ReadAll(r)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("utils: reading zip %s: %w", filename, err)
		}
		names := make([]string, len(r.File))
		for i, f := range r.File {
			names[i] = f.Name
		}
		i := pickROM(names)
		if i < 0 {
			return nil, ErrEmptyArchive
		}
		return readAll(r.File[i].Open())
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("utils: reading 7z %s: %w", filename, err)
		}
		names := make([]string, len(r.File))
		for i, f := range r.File {
			names[i] = f.Name
		}
		i := pickROM(names)
		if i < 0 {
			return nil, ErrEmptyArchive
		}
		return readAll(r.File[i].Open())
	}

	return data, nil
}

// pickROM returns the index of the first name with a ROM extension,
// the first name that isn't a directory otherwise, or -1.
func pickROM(names []string) int {
	first := -1
	for i, name := range names {
		if strings.HasSuffix(name, "/") {
			continue
		}
		if first < 0 {
			first = i
		}
		ext := strings.ToLower(filepath.Ext(name))
		for _, romExt := range romExtensions {
			if ext == romExt {
				return i
			}
		}
	}
	return first
}

func readAll(rc io.ReadCloser, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
