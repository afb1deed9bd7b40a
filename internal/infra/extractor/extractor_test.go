package extractor_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarscope/internal/domain/entity"
	"scholarscope/internal/infra/extractor"
)

// buildPDF assembles a minimal single-font PDF with one page per entry of
// pages, computing the cross-reference offsets.
func buildPDF(pages ...string) []byte {
	var objects []string
	kids := ""
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtract_PDFPagesInOrder(t *testing.T) {
	ext := extractor.New()
	doc := entity.Document{Name: "paper.pdf", Type: entity.DocumentTypePDF, Data: buildPDF("Hello PDF world", "Second page text")}

	got, err := ext.Extract(context.Background(), doc)
	require.NoError(t, err)
	assert.Contains(t, got, "Hello PDF world")
	assert.Contains(t, got, "Second page text")
	assert.Less(t, bytes.Index([]byte(got), []byte("Hello")), bytes.Index([]byte(got), []byte("Second")))
}

func TestExtract_MalformedPDF(t *testing.T) {
	ext := extractor.New()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "not a pdf", data: []byte("plain words, no header")},
		{name: "empty", data: nil},
		{name: "truncated", data: buildPDF("cut short")[:60]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ext.Extract(context.Background(), entity.Document{Name: "x.pdf", Type: entity.DocumentTypePDF, Data: tt.data})
			assert.ErrorIs(t, err, extractor.ErrMalformedPDF)
		})
	}
}

func TestExtract_Text(t *testing.T) {
	ext := extractor.New()

	got, err := ext.Extract(context.Background(), entity.Document{Name: "a.txt", Type: entity.DocumentTypeText, Data: []byte("\xEF\xBB\xBFdéjà vu")})
	require.NoError(t, err)
	assert.Equal(t, "\uFEFFdéjà vu", got, "a byte-order mark stays part of the first word")

	_, err = ext.Extract(context.Background(), entity.Document{Name: "b.txt", Type: entity.DocumentTypeText, Data: []byte{0xff, 0xfe, 'a'}})
	assert.ErrorIs(t, err, extractor.ErrInvalidText)
}

func TestExtract_UnsupportedType(t *testing.T) {
	_, err := extractor.New().Extract(context.Background(), entity.Document{Name: "a.doc", Type: "doc"})
	assert.ErrorIs(t, err, entity.ErrUnsupportedDocument)
}

func TestExtract_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.New().Extract(ctx, entity.Document{Name: "a.txt", Type: entity.DocumentTypeText, Data: []byte("x")})
	assert.ErrorIs(t, err, context.Canceled)
}
