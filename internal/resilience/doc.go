// Package resilience groups the fault-tolerance helpers used around the
// completion providers.
//
//   - circuitbreaker stops calling a provider that keeps failing
//   - retry re-issues transient failures with exponential backoff
//
// Both are applied per completion call. A summarization run still stops at
// the first chunk whose call ultimately fails.
//
//	cb := circuitbreaker.New(circuitbreaker.CompletionAPIConfig("openai-api"))
//	err := retry.WithBackoff(ctx, retry.CompletionAPIConfig(3), func() error {
//	    _, err := cb.Execute(call)
//	    return err
//	})
package resilience
