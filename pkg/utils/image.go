package utils

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// SaveImage encodes img as a PNG to the given file, creating the
// parent directories as needed.
func SaveImage(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
