// Package zip bundles a set of in-memory files into a single archive, used by
// the combined data export endpoint.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// File is one named entry of an archive.
type File struct {
	Name string
	Data []byte
}

// Archive writes the files into a zip archive and returns its bytes.
func Archive(files []File) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
