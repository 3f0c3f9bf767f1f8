package retryablehttp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Invicton-Labs/go-stackerr"
	"github.com/die-net/lrucache"
	"github.com/gregjones/httpcache"
	"github.com/hashicorp/go-cleanhttp"
	hashicorphttp "github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/http2"
)

type NewClientInput struct {
	// The maximum size, in bytes, of the cache. A cache will
	// only be used if this value is non-zero.
	CacheMaxSizeBytes int64
	// 0 for never expiring
	CacheMaxAgeSeconds int64
	// The base transport to use. Defaults to a pooled
	// transport from go-cleanhttp.
	RoundTripper http.RoundTripper
	// The maximum number of retries for each request. If less
	// than 0, it will be treated as unlimited (technically,
	// max int32)
	MaxRetries int
	// The minimum amount of time to wait between retries
	RetryWaitMin time.Duration
	// The maximum amount of time to wait between retries
	RetryWaitMax time.Duration
	// The logger to use. If not provided, one derived from the
	// default logger will be used.
	Logger hashicorphttp.LeveledLogger
	// A custom backoff function, if desired
	Backoff func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration
	// A custom retry function, if desired
	CheckRetry func(ctx context.Context, resp *http.Response, httpErr error) (bool, error)
}

// Messages of connection-level failures that only surface once the body
// is read, and that are safe to retry.
var retryableErrorMessages = []string{
	"http2: server sent GOAWAY",
	"http2: client connection force closed",
	"unexpected EOF",
}

func isRetryableConnectionError(err error) bool {
	var goAway http2.GoAwayError
	if errors.As(err, &goAway) {
		return true
	}
	var goAwayPtr *http2.GoAwayError
	if errors.As(err, &goAwayPtr) {
		return true
	}
	for unwrapped := err; unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		for _, msg := range retryableErrorMessages {
			if strings.Contains(unwrapped.Error(), msg) {
				return true
			}
		}
	}
	return false
}

// NewClient returns an http.Client backed by NewRoundTripper.
func NewClient(input *NewClientInput) *http.Client {
	return &http.Client{
		Transport: NewRoundTripper(input),
	}
}

// NewRoundTripper returns a transport that retries failed requests with
// backoff and, if configured, serves cacheable responses from memory.
func NewRoundTripper(input *NewClientInput) http.RoundTripper {
	if input == nil {
		input = &NewClientInput{}
	}
	retryableClient := hashicorphttp.NewClient()
	if input.RoundTripper != nil {
		retryableClient.HTTPClient.Transport = input.RoundTripper
	} else {
		retryableClient.HTTPClient.Transport = cleanhttp.DefaultPooledTransport()
	}

	logger := input.Logger
	if logger == nil {
		logger = GetRetryhttpLeveledLogger(nil)
	}
	retryableClient.Logger = logger

	if input.MaxRetries != 0 {
		if input.MaxRetries < 0 {
			retryableClient.RetryMax = math.MaxInt32
		} else {
			retryableClient.RetryMax = input.MaxRetries
		}
	}
	if input.RetryWaitMin != 0 {
		retryableClient.RetryWaitMin = input.RetryWaitMin
	}
	if input.RetryWaitMax != 0 {
		retryableClient.RetryWaitMax = input.RetryWaitMax
	}

	// If a cache should be used, wrap the transport in a cacher
	if input.CacheMaxSizeBytes > 0 {
		lcache := lrucache.New(input.CacheMaxSizeBytes, input.CacheMaxAgeSeconds)
		cacheTransport := httpcache.NewTransport(lcache)
		cacheTransport.Transport = retryableClient.HTTPClient.Transport
		retryableClient.HTTPClient.Transport = cacheTransport
	}

	retryableClient.Backoff = func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
		if resp == nil {
			logger.Debug("Failed HTTP request, cause unknown (response is nil)", "attempt_number", attemptNum)
		} else {
			body, _ := GetAndRewindHttpResponseBody(resp)
			logger.Debug(
				"Failed HTTP request",
				"url", resp.Request.URL.String(),
				"status_code", resp.StatusCode,
				"status", resp.Status,
				"body", string(body),
				"attempt_number", attemptNum,
			)
		}
		if input.Backoff != nil {
			return input.Backoff(min, max, attemptNum, resp)
		}
		return hashicorphttp.DefaultBackoff(min, max, attemptNum, resp)
	}

	retryableClient.CheckRetry = func(ctx context.Context, resp *http.Response, httpErr error) (shouldRetry bool, err error) {
		if input.CheckRetry != nil {
			shouldRetry, err = input.CheckRetry(ctx, resp, httpErr)
		} else {
			shouldRetry, err = hashicorphttp.DefaultRetryPolicy(ctx, resp, httpErr)
		}
		if err != nil {
			err = stackerr.Wrap(err)
		} else if httpErr != nil {
			// Describe the retry with the HTTP error if the policy gave no reason.
			err = stackerr.Wrap(httpErr)
		}

		if !shouldRetry {
			// GOAWAY frames from the server can appear only while the body
			// is read, so read it now while a retry is still possible.
			if err == nil {
				if _, berr := GetAndRewindHttpResponseBody(resp); berr != nil {
					err = berr
				}
			}
			if err != nil && ctx.Err() == nil && isRetryableConnectionError(err) {
				shouldRetry = true
			}
		}

		if shouldRetry && err == nil && resp != nil {
			err = stackerr.Errorf("%d: %s", resp.StatusCode, resp.Status)
		}
		return shouldRetry, err
	}
	return retryableClient.StandardClient().Transport
}

// GetAndRewindHttpResponseBody reads the whole response body and replaces
// it with an in-memory copy so it can be read again.
func GetAndRewindHttpResponseBody(resp *http.Response) ([]byte, stackerr.Error) {
	if resp == nil || resp.Body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if b == nil {
		b = []byte{}
	}
	// Rewind even on an error; the caller may still want what was read.
	resp.Body = io.NopCloser(bytes.NewBuffer(b))
	if err != nil {
		return nil, stackerr.Wrap(err)
	}
	return b, nil
}
