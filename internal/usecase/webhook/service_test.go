package webhook_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarscope/internal/usecase/webhook"
)

type stubSink struct {
	records [][]byte
	err     error
}

func (s *stubSink) Append(_ context.Context, record []byte) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, append([]byte(nil), record...))
	return nil
}

func TestRecord_CompactsToOneLine(t *testing.T) {
	sink := &stubSink{}
	svc := webhook.NewService(sink)

	body := []byte("{\n  \"type\": \"checkout.session.completed\",\n  \"data\": {\"amount\": 500, \"note\": \"a  b\"}\n}")
	require.NoError(t, svc.Record(context.Background(), body))

	require.Len(t, sink.records, 1)
	assert.Equal(t, `{"type":"checkout.session.completed","data":{"amount":500,"note":"a  b"}}`+"\n", string(sink.records[0]))
}

func TestRecord_AcceptsAnyJSONValue(t *testing.T) {
	sink := &stubSink{}
	svc := webhook.NewService(sink)

	for _, body := range []string{`[]`, `"ping"`, `42`, `null`} {
		require.NoError(t, svc.Record(context.Background(), []byte(body)))
	}
	assert.Len(t, sink.records, 4)
}

func TestRecord_InvalidPayload(t *testing.T) {
	sink := &stubSink{}
	svc := webhook.NewService(sink)

	for _, body := range []string{``, `{`, `not json`, `{"a":1}{"b":2}`} {
		err := svc.Record(context.Background(), []byte(body))
		assert.ErrorIs(t, err, webhook.ErrInvalidPayload, body)
	}
	assert.Empty(t, sink.records)
}

func TestRecord_SinkFailure(t *testing.T) {
	diskFull := errors.New("no space left on device")
	svc := webhook.NewService(&stubSink{err: diskFull})

	err := svc.Record(context.Background(), []byte(`{"ok":true}`))
	assert.ErrorIs(t, err, diskFull)
	assert.NotErrorIs(t, err, webhook.ErrInvalidPayload)
}
