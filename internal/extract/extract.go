// Package extract reads plain text out of uploaded study documents.
package extract

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

var _ model.DocumentExtractor = (*Extractor)(nil)

type Extractor struct {
	logger *logger.Logger
}

func NewExtractor(logger *logger.Logger) *Extractor {
	return &Extractor{
		logger: logger,
	}
}

// Extract dispatches on the declared file extension. Unknown formats yield
// empty text and no error. On failure the text read so far is kept and Err
// wraps model.ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, upload model.Upload) model.Extraction {
	format := model.FormatFromName(upload.Name)
	result := model.Extraction{Format: format}

	if err := ctx.Err(); err != nil {
		result.Err = fmt.Errorf("%w: %w", model.ErrExtractionFailed, err)
		return result
	}

	text, err := e.read(format, upload.Data)
	result.Text = text
	if err != nil {
		e.logger.WarnContext(ctx, "Extractor: failed to read document",
			"file", upload.Name, "format", format, "error", err)
		result.Err = fmt.Errorf("%w: %w", model.ErrExtractionFailed, err)
		return result
	}

	e.logger.DebugContext(ctx, "Extractor: document read",
		"file", upload.Name, "format", format, "chars", utf8.RuneCountInString(text))
	return result
}

func (e *Extractor) read(format model.Format, data []byte) (text string, err error) {
	// the parsers below can panic on malformed archives or streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed %s document: %v", format, r)
		}
	}()

	switch format {
	case model.FormatPDF:
		return readPDF(data)
	case model.FormatDOCX:
		return readDOCX(data)
	case model.FormatPPTX:
		return readPPTX(data)
	case model.FormatXLSX:
		return readXLSX(data)
	case model.FormatTXT:
		return readTXT(data)
	default:
		return "", nil
	}
}

func readTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("text is not valid utf-8")
	}
	return string(data), nil
}
