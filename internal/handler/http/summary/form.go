package summary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"scholarscope/internal/domain/entity"
	"scholarscope/internal/handler/http/respond"
	"scholarscope/internal/usecase/summarize"
)

const (
	// FilesField is the multipart field carrying the uploaded documents.
	FilesField = "files"
	// ModelField is the form field carrying the model choice.
	ModelField = "model"
	// SummaryField carries an already rendered report to download.
	SummaryField = "summary"
)

// Runner executes a summarization run.
type Runner interface {
	Run(ctx context.Context, in summarize.RunInput, progress summarize.ProgressFunc) (*entity.Report, error)
	Config() summarize.Config
}

// parseUpload reads the documents and model choice from a multipart request.
// The file count is checked before any file is read.
func parseUpload(r *http.Request, maxMemory int64, maxFiles int) (summarize.RunInput, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return summarize.RunInput{}, formError(err)
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File[FilesField]
	}
	if len(headers) > maxFiles {
		return summarize.RunInput{}, &summarize.TooManyFilesError{Count: len(headers), Max: maxFiles}
	}

	docs := make([]entity.Document, 0, len(headers))
	for _, fh := range headers {
		doc, err := readDocument(fh)
		if err != nil {
			return summarize.RunInput{}, err
		}
		docs = append(docs, doc)
	}

	return summarize.RunInput{
		Documents: docs,
		Model:     r.FormValue(ModelField),
	}, nil
}

func readDocument(fh *multipart.FileHeader) (entity.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return entity.Document{}, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return entity.Document{}, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}
	return entity.NewDocument(fh.Filename, data)
}

func formError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return respond.NewAppError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload too large: the limit is %d bytes", maxErr.Limit), err)
	}
	if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
		return respond.NewAppError(http.StatusBadRequest,
			"request must be multipart/form-data", err)
	}
	return respond.NewAppError(http.StatusBadRequest, "invalid upload form", err)
}

// statusFor maps a run error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, summarize.ErrRemoteAPI):
		return http.StatusBadGateway
	case errors.Is(err, summarize.ErrTooManyFiles),
		errors.Is(err, summarize.ErrNoDocuments),
		errors.Is(err, summarize.ErrExtractionFailed),
		errors.Is(err, entity.ErrUnknownModel),
		errors.Is(err, entity.ErrUnsupportedDocument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// userMessage is the text shown for a run error. Provider messages are
// shown as returned, with secrets masked.
func userMessage(err error) string {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return respond.SanitizeError(err)
}

// writeRunError writes a run error that occurred before any report existed.
func writeRunError(w http.ResponseWriter, err error) {
	var appErr *respond.AppError
	if errors.As(err, &appErr) {
		respond.SafeError(w, appErr.Code, err)
		return
	}
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		respond.SafeError(w, code, err)
		return
	}
	respond.SafeError(w, code, respond.NewAppError(code, userMessage(err), err))
}
