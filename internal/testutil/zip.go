package testutil

import (
	"archive/zip"
	"bytes"
	"testing"
)

// ZipEntry is a single file placed into an archive built by MakeZip.
type ZipEntry struct {
	Name string
	Body string
}

// MakeZip builds an in-memory zip archive, preserving entry order. Office
// Open XML fixtures (docx, pptx) are built with it.
func MakeZip(t *testing.T, entries ...ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Body)); err != nil {
			t.Fatalf("write zip entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return buf.Bytes()
}
