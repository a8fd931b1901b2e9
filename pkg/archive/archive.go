// Package archive packages fragment files into a single compressed
// zip, one entry per fragment, named after the file's base name.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ZipName returns the archive file name for a model stem.
func ZipName(stem string) string {
	return stem + "_splits.zip"
}

// WriteZip writes a deflate-compressed zip of the given files to w.
// Entries are named by base name, in the order given.
func WriteZip(w io.Writer, files []string) error {
	zw := zip.NewWriter(w)
	for _, path := range files {
		if err := addFile(zw, path); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	return nil
}

// BuildZip is a convenience wrapper over WriteZip returning the
// archive bytes.
func BuildZip(files []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteZip(&buf, files); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addFile(zw *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("zip entry %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	entry, err := zw.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("zip entry %s: %w", filepath.Base(path), err)
	}
	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("zip entry %s: %w", filepath.Base(path), err)
	}
	return nil
}
