// Package extractor reads the plain text of uploaded documents.
package extractor

import (
	"context"
	"errors"
	"fmt"

	"scholarscope/internal/domain/entity"
)

// ErrInvalidText is returned for text documents that are not valid UTF-8.
var ErrInvalidText = errors.New("text document is not valid UTF-8")

// Extractor dispatches on the document type.
type Extractor struct {
	pdf *PDF
}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{pdf: &PDF{}}
}

// Extract returns the document's text. Cancellation is checked before
// parsing starts; parsing itself is in-memory and not interruptible.
func (e *Extractor) Extract(ctx context.Context, doc entity.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch doc.Type {
	case entity.DocumentTypePDF:
		return e.pdf.Extract(doc.Data)
	case entity.DocumentTypeText:
		return DecodeText(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", entity.ErrUnsupportedDocument, doc.Type)
	}
}
