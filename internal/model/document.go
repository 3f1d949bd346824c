package model

import (
	"context"
	"path/filepath"
	"strings"
)

// Format is the document type selected from a file name extension.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatPPTX    Format = "pptx"
	FormatXLSX    Format = "xlsx"
	FormatTXT     Format = "txt"
	FormatUnknown Format = "unknown"
)

// FormatFromName maps a declared file name to a Format, case-insensitively.
// The format is the text after the last dot, or the whole base name when
// there is no dot, so a file named "txt" reads as text.
func FormatFromName(name string) Format {
	base := filepath.Base(name)
	ext := base
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		ext = base[i+1:]
	}
	ext = strings.ToLower(ext)
	switch Format(ext) {
	case FormatPDF, FormatDOCX, FormatPPTX, FormatXLSX, FormatTXT:
		return Format(ext)
	default:
		return FormatUnknown
	}
}

// Upload is a document received from a client.
type Upload struct {
	Name string
	Data []byte
}

// Extraction is the outcome of reading an upload. Text is always usable:
// when Err is set it holds whatever was read before the failure.
type Extraction struct {
	Format Format
	Text   string
	Err    error
}

// DocumentExtractor turns an upload into plain text.
type DocumentExtractor interface {
	Extract(ctx context.Context, upload Upload) Extraction
}
