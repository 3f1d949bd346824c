package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

func openZip(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return zr, nil
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// elementStack tracks the local names of open XML elements.
type elementStack []string

func (s *elementStack) push(name string) { *s = append(*s, name) }

func (s *elementStack) pop() {
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

// parent returns the name of the innermost open element.
func (s elementStack) parent() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

func (s elementStack) within(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}
