package openapi

import (
	"fmt"
	"time"

	"github.com/specbind/specbind/pkg/log"
	"github.com/valyala/fasthttp"
)

const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultMaxRetries   = 3
	DefaultBackoffBase  = 200 * time.Millisecond
)

// fetcher retrieves remote documents and remote $ref targets over http/https.
// transient failures (network errors, 5xx, 429) are retried with exponential
// backoff up to maxRetries attempts.
type fetcher struct {
	client      *fasthttp.Client
	timeout     time.Duration
	maxRetries  int
	backoffBase time.Duration
}

func newFetcher(timeout time.Duration, maxRetries int, backoffBase time.Duration) *fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}
	if backoffBase <= 0 {
		backoffBase = DefaultBackoffBase
	}
	return &fetcher{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout:     timeout,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
	}
}

// Fetch retrieves the body at url. The returned slice is a copy and safe to
// retain after the underlying response is released.
func (f *fetcher) Fetch(url string) ([]byte, error) {
	var lastErr error
	backoff := f.backoffBase

	for i := 0; i < f.maxRetries; i++ {
		body, retryable, err := f.do(url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}

		log.Debug().Str("url", url).Int("attempt", i+1).Err(err).Msg("retrying document fetch")
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, lastErr
}

func (f *fetcher) do(url string) (body []byte, retryable bool, err error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := f.client.DoTimeout(req, resp, f.timeout); err != nil {
		return nil, true, fmt.Errorf("fetch %s: %w", url, err)
	}

	code := resp.StatusCode()
	switch {
	case code < 300:
		out := make([]byte, len(resp.Body()))
		copy(out, resp.Body())
		return out, false, nil
	case code >= 500 || code == fasthttp.StatusTooManyRequests:
		return nil, true, fmt.Errorf("fetch %s: transient http error %d", url, code)
	default:
		return nil, false, fmt.Errorf("fetch %s: http %d", url, code)
	}
}
