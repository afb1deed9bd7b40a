package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrMalformedPDF wraps every failure to parse a PDF.
var ErrMalformedPDF = errors.New("malformed pdf")

// PDF extracts page text with github.com/ledongthuc/pdf.
type PDF struct{}

// Extract returns the text of every page in order, separated by newlines.
// Pages without a content dictionary are skipped. The parser panics on some
// corrupt inputs; those panics are returned as ErrMalformedPDF.
func (p *PDF) Extract(data []byte) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: %v", ErrMalformedPDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrMalformedPDF, i, err)
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(content)
	}
	return b.String(), nil
}
