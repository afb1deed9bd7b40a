package summary_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarscope/internal/handler/http/respond"
	"scholarscope/internal/handler/http/summary"
	"scholarscope/internal/infra/extractor"
	"scholarscope/internal/usecase/summarize"
)

/* ───────── helpers ───────── */

type stubCompleter struct {
	failOn  int
	failErr error
	calls   int
}

func (s *stubCompleter) Complete(_ context.Context, _ summarize.CompletionRequest) (string, error) {
	s.calls++
	if s.calls == s.failOn {
		return "", s.failErr
	}
	return fmt.Sprintf("  - summary %d\n", s.calls), nil
}

type upload struct {
	name string
	body string
}

func nWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i+1)
	}
	return strings.Join(words, " ")
}

func newMux(t *testing.T, comp summarize.Completer) *http.ServeMux {
	t.Helper()
	svc, err := summarize.NewService(summarize.DefaultConfig(), extractor.New(), comp)
	require.NoError(t, err)
	mux := http.NewServeMux()
	summary.Register(mux, svc, 1<<20)
	return mux
}

func multipartRequest(t *testing.T, path, model string, files ...upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		fw, err := mw.CreateFormFile(summary.FilesField, f.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(f.body))
		require.NoError(t, err)
	}
	if model != "" {
		require.NoError(t, mw.WriteField(summary.ModelField, model))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(mux http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) summary.ResultDTO {
	t.Helper()
	var dto summary.ResultDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	return dto
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

const threeChunkReport = "📍 Chunk 1:\n- summary 1\n\n📍 Chunk 2:\n- summary 2\n\n📍 Chunk 3:\n- summary 3"

/* ───────── POST /summaries ───────── */

func TestRunHandler_Success(t *testing.T) {
	comp := &stubCompleter{}
	mux := newMux(t, comp)

	rec := serve(mux, multipartRequest(t, "/summaries", "pro",
		upload{name: "a.txt", body: nWords(1500)},
		upload{name: "b.TXT", body: " " + nWords(1501)},
	))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeResult(t, rec)
	want := summary.ResultDTO{
		Summary: threeChunkReport,
		Chunks: []summary.ChunkDTO{
			{Index: 1, Text: "- summary 1"},
			{Index: 2, Text: "- summary 2"},
			{Index: 3, Text: "- summary 3"},
		},
		TotalChunks: 3,
		WordCount:   3001,
		Model:       "gpt-4",
		Notices:     []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, comp.calls)
}

func TestRunHandler_TruncationNotice(t *testing.T) {
	mux := newMux(t, &stubCompleter{})

	rec := serve(mux, multipartRequest(t, "/summaries", "", upload{name: "long.txt", body: nWords(10001)}))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeResult(t, rec)
	assert.True(t, got.Truncated)
	assert.Equal(t, 10000, got.WordCount)
	assert.Equal(t, 7, got.TotalChunks)
	assert.Equal(t, []string{"Truncating to 10000 words."}, got.Notices)
	assert.Equal(t, "gpt-3.5-turbo", got.Model)
}

func TestRunHandler_PartialFailure(t *testing.T) {
	comp := &stubCompleter{failOn: 2, failErr: errors.New("401 invalid key sk-1234567890abcdef")}
	mux := newMux(t, comp)

	rec := serve(mux, multipartRequest(t, "/summaries", "", upload{name: "a.txt", body: nWords(3001)}))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	got := decodeResult(t, rec)
	assert.Equal(t, "📍 Chunk 1:\n- summary 1", got.Summary)
	assert.Len(t, got.Chunks, 1)
	assert.Equal(t, 3, got.TotalChunks)
	assert.Equal(t, "API Error: 401 invalid key sk-****", got.Error)
	assert.Equal(t, 2, comp.calls, "chunk 3 must not be attempted")
}

func TestRunHandler_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		files    []upload
		wantCode int
		wantMsg  string
	}{
		{
			name:     "too many files",
			files:    []upload{{"1.txt", "a"}, {"2.txt", "b"}, {"3.txt", "c"}, {"4.txt", "d"}},
			wantCode: http.StatusBadRequest,
			wantMsg:  "only 3 files allowed at once, got 4",
		},
		{
			name:     "no files",
			wantCode: http.StatusBadRequest,
			wantMsg:  "no documents uploaded",
		},
		{
			name:     "unknown model",
			model:    "gpt-5",
			files:    []upload{{"a.txt", "hello"}},
			wantCode: http.StatusBadRequest,
			wantMsg:  `model "gpt-5" is not one of gpt-3.5-turbo, gpt-4`,
		},
		{
			name:     "unsupported type",
			files:    []upload{{"paper.docx", "hello"}},
			wantCode: http.StatusBadRequest,
			wantMsg:  `file "paper.docx" must be a .pdf or .txt document`,
		},
		{
			name:     "invalid utf-8",
			files:    []upload{{"bad.txt", "\xff\xfe\xfd"}},
			wantCode: http.StatusBadRequest,
			wantMsg:  `could not read "bad.txt": text document is not valid UTF-8`,
		},
		{
			name:     "malformed pdf",
			files:    []upload{{"broken.pdf", "not a pdf"}},
			wantCode: http.StatusBadRequest,
			wantMsg:  `could not read "broken.pdf"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := &stubCompleter{}
			mux := newMux(t, comp)

			rec := serve(mux, multipartRequest(t, "/summaries", tt.model, tt.files...))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, decodeError(t, rec), tt.wantMsg)
			assert.Zero(t, comp.calls)
		})
	}
}

func TestRunHandler_NotMultipart(t *testing.T) {
	mux := newMux(t, &stubCompleter{})
	req := httptest.NewRequest(http.MethodPost, "/summaries", strings.NewReader(`{"files":[]}`))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(mux, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request must be multipart/form-data", decodeError(t, rec))
}

func TestRunHandler_UploadTooLarge(t *testing.T) {
	mux := newMux(t, &stubCompleter{})
	req := multipartRequest(t, "/summaries", "", upload{name: "big.txt", body: strings.Repeat("a ", 4096)})
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 1024)

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "upload too large: the limit is 1024 bytes", decodeError(t, rec))
}

/* ───────── POST /summaries/download ───────── */

func TestDownloadHandler_RenderedSummary(t *testing.T) {
	comp := &stubCompleter{}
	mux := newMux(t, comp)

	form := url.Values{summary.SummaryField: {threeChunkReport}}
	req := httptest.NewRequest(http.MethodPost, "/summaries/download", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := serve(mux, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, threeChunkReport, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ScholarScope_Summary.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Zero(t, comp.calls)
}

// The downloaded body is byte-identical to the summary shown on screen.
func TestDownloadHandler_MatchesRunSummary(t *testing.T) {
	body := nWords(3001)

	shown := decodeResult(t, serve(newMux(t, &stubCompleter{}),
		multipartRequest(t, "/summaries", "", upload{name: "a.txt", body: body}))).Summary

	rec := serve(newMux(t, &stubCompleter{}),
		multipartRequest(t, "/summaries/download", "", upload{name: "a.txt", body: body}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, shown, rec.Body.String())
	assert.Equal(t, threeChunkReport, rec.Body.String())
}

func TestDownloadHandler_RemoteFailure(t *testing.T) {
	mux := newMux(t, &stubCompleter{failOn: 1, failErr: errors.New("rate limited")})

	rec := serve(mux, multipartRequest(t, "/summaries/download", "", upload{name: "a.txt", body: "hello"}))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "API Error: rate limited", decodeError(t, rec))
}

func TestDownloadHandler_PartialResult(t *testing.T) {
	mux := newMux(t, &stubCompleter{failOn: 2, failErr: errors.New("rate limited")})

	rec := serve(mux, multipartRequest(t, "/summaries/download", "", upload{name: "a.txt", body: nWords(3001)}))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))

	got := decodeResult(t, rec)
	want := summary.ResultDTO{
		Summary:     "📍 Chunk 1:\n- summary 1",
		Chunks:      []summary.ChunkDTO{{Index: 1, Text: "- summary 1"}},
		TotalChunks: 3,
		WordCount:   3001,
		Model:       "gpt-3.5-turbo",
		Notices:     []string{},
		Error:       "API Error: rate limited",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("partial result mismatch (-want +got):\n%s", diff)
	}
}

// Browsers submit textarea line breaks as CRLF; the file keeps the LF shown on screen.
func TestDownloadHandler_SubmittedLineBreaks(t *testing.T) {
	submitted := strings.ReplaceAll(threeChunkReport, "\n", "\r\n")

	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{
			name: "urlencoded form",
			req: func(t *testing.T) *http.Request {
				form := url.Values{summary.SummaryField: {submitted}}
				req := httptest.NewRequest(http.MethodPost, "/summaries/download", strings.NewReader(form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return req
			},
		},
		{
			name: "multipart form",
			req: func(t *testing.T) *http.Request {
				var buf bytes.Buffer
				mw := multipart.NewWriter(&buf)
				require.NoError(t, mw.WriteField(summary.SummaryField, submitted))
				require.NoError(t, mw.Close())
				req := httptest.NewRequest(http.MethodPost, "/summaries/download", &buf)
				req.Header.Set("Content-Type", mw.FormDataContentType())
				return req
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newMux(t, &stubCompleter{}), tt.req(t))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, threeChunkReport, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "\r")
		})
	}
}

/* ───────── POST /summaries/stream ───────── */

type sseEvent struct {
	name string
	data string
}

func parseEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	for _, block := range strings.Split(strings.TrimSpace(body), "\n\n") {
		lines := strings.SplitN(block, "\n", 2)
		require.Len(t, lines, 2, "malformed event block %q", block)
		events = append(events, sseEvent{
			name: strings.TrimPrefix(lines[0], "event: "),
			data: strings.TrimPrefix(lines[1], "data: "),
		})
	}
	return events
}

func TestStreamHandler_Events(t *testing.T) {
	mux := newMux(t, &stubCompleter{})

	rec := serve(mux, multipartRequest(t, "/summaries/stream", "", upload{name: "a.txt", body: nWords(10001)}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.True(t, rec.Flushed)

	events := parseEvents(t, rec.Body.String())
	// notice + (started, completed) per chunk + result
	require.Len(t, events, 1+2*7+1)

	assert.Equal(t, summary.EventNotice, events[0].name)
	assert.JSONEq(t, `{"message":"Truncating to 10000 words."}`, events[0].data)

	var first summary.ProgressDTO
	require.NoError(t, json.Unmarshal([]byte(events[1].data), &first))
	assert.Equal(t, summary.ProgressDTO{Kind: "chunk_started", Index: 1, Total: 7, Message: "Processing chunk 1/7"}, first)

	var done summary.ProgressDTO
	require.NoError(t, json.Unmarshal([]byte(events[2].data), &done))
	assert.Equal(t, "chunk_completed", done.Kind)
	assert.Equal(t, "- summary 1", done.Summary)

	last := events[len(events)-1]
	assert.Equal(t, summary.EventResult, last.name)
	var result summary.ResultDTO
	require.NoError(t, json.Unmarshal([]byte(last.data), &result))
	assert.Len(t, result.Chunks, 7)
	assert.True(t, result.Truncated)
}

func TestStreamHandler_FailureEvent(t *testing.T) {
	mux := newMux(t, &stubCompleter{failOn: 2, failErr: errors.New("boom")})

	rec := serve(mux, multipartRequest(t, "/summaries/stream", "", upload{name: "a.txt", body: nWords(3001)}))

	events := parseEvents(t, rec.Body.String())
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.name)
	}
	assert.Equal(t, []string{"progress", "progress", "progress", "error"}, names)

	var result summary.ResultDTO
	require.NoError(t, json.Unmarshal([]byte(events[3].data), &result))
	assert.Equal(t, "📍 Chunk 1:\n- summary 1", result.Summary)
	assert.Equal(t, "API Error: boom", result.Error)
}

// Errors found before the first event use a plain JSON response.
func TestStreamHandler_RejectedBeforeStream(t *testing.T) {
	mux := newMux(t, &stubCompleter{})

	rec := serve(mux, multipartRequest(t, "/summaries/stream", "gpt-5", upload{name: "a.txt", body: "hello"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, decodeError(t, rec), "gpt-5")
}

/* ───────── GET / ───────── */

func TestPageHandler(t *testing.T) {
	mux := newMux(t, &stubCompleter{})

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `name="files" accept=".pdf,.txt" multiple`)
	assert.Contains(t, body, `<option value="gpt-3.5-turbo" selected>gpt-3.5-turbo (free)</option>`)
	assert.Contains(t, body, `<option value="gpt-4">gpt-4 (pro)</option>`)
	assert.Contains(t, body, `action="/summaries/download"`)
	assert.Contains(t, body, `data-stream="/summaries/stream"`)
	assert.Contains(t, body, `progress.textContent = data.message`)
	assert.Contains(t, body, "<strong>3 papers</strong>")
}

func TestRegister_UnknownPath(t *testing.T) {
	mux := newMux(t, &stubCompleter{})

	assert.Equal(t, http.StatusNotFound, serve(mux, httptest.NewRequest(http.MethodGet, "/nope", nil)).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(mux, httptest.NewRequest(http.MethodGet, "/summaries", nil)).Code)
}
