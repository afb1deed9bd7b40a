// Package summarize implements the chunked summarization pipeline: extract the
// text of up to a few uploaded documents, cap it to a word budget, split it
// into fixed-size word chunks and summarize each chunk in order.
package summarize

import (
	"errors"
	"fmt"
)

// Sentinel errors for summarization runs.
var (
	// ErrNoDocuments indicates a run was requested without any document.
	ErrNoDocuments = errors.New("no documents uploaded")

	// ErrTooManyFiles indicates more documents were uploaded than allowed.
	ErrTooManyFiles = errors.New("too many files")

	// ErrExtractionFailed indicates a document's text could not be read.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrRemoteAPI indicates a completion call failed.
	ErrRemoteAPI = errors.New("remote api error")
)

// TooManyFilesError is returned before any work starts when Count exceeds Max.
type TooManyFilesError struct {
	Count int
	Max   int
}

func (e *TooManyFilesError) Error() string {
	return fmt.Sprintf("only %d files allowed at once, got %d", e.Max, e.Count)
}

func (e *TooManyFilesError) Is(target error) bool { return target == ErrTooManyFiles }

// ExtractionError names the document whose text could not be extracted.
type ExtractionError struct {
	Document string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not read %q: %v", e.Document, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtractionFailed }

// RemoteAPIError carries the provider's message for a failed chunk. ChunkIndex
// is 1-based.
type RemoteAPIError struct {
	ChunkIndex int
	Err        error
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("API Error: %v", e.Err)
}

func (e *RemoteAPIError) Unwrap() error { return e.Err }

func (e *RemoteAPIError) Is(target error) bool { return target == ErrRemoteAPI }
