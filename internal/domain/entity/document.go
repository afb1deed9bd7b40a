package entity

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DocumentType is the declared format of an uploaded document.
type DocumentType string

const (
	// DocumentTypePDF marks a document whose text is extracted page by page.
	DocumentTypePDF DocumentType = "pdf"
	// DocumentTypeText marks a UTF-8 plain-text document.
	DocumentTypeText DocumentType = "text"
)

// Document is one uploaded file. It lives only for the duration of a run and is
// discarded once its text has been extracted.
type Document struct {
	Name string
	Type DocumentType
	Data []byte
}

// DocumentTypeFromName derives the document type from a file name's extension.
// Matching is case-insensitive; only .pdf and .txt are accepted.
func DocumentTypeFromName(name string) (DocumentType, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return DocumentTypePDF, nil
	case ".txt":
		return DocumentTypeText, nil
	}
	return "", &ValidationError{
		Field:   "type",
		Message: fmt.Sprintf("file %q must be a .pdf or .txt document", name),
		Err:     ErrUnsupportedDocument,
	}
}

// NewDocument builds a Document, deriving its type from name.
func NewDocument(name string, data []byte) (Document, error) {
	docType, err := DocumentTypeFromName(name)
	if err != nil {
		return Document{}, err
	}
	return Document{Name: name, Type: docType, Data: data}, nil
}
