package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AngelCh415/sdr-funnel/internal/utils"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string { return fmt.Sprintf("non-2xx: %d body=%s", e.code, e.body) }

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// getBody performs one GET and hands the body to decode on 2xx. 404 maps to
// ErrNotFound; other non-2xx codes become a statusError.
func getBody(ctx context.Context, c HTTPClient, url string, decode func(io.Reader) error) error {
	if url == "" {
		return errors.New("empty url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &statusError{code: resp.StatusCode, body: string(b)}
	}
	return decode(resp.Body)
}

// GetWithRetry retries transport errors and 429/5xx responses with backoff.
// Not-found, other client errors and decode failures are returned at once.
func GetWithRetry(ctx context.Context, c HTTPClient, b utils.Backoff, url string, decode func(io.Reader) error) error {
	return b.Do(ctx, func(int) error {
		err := getBody(ctx, c, url, func(r io.Reader) error {
			if err := decode(r); err != nil {
				return utils.Permanent(err)
			}
			return nil
		})
		var se *statusError
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrNotFound):
			return utils.Permanent(err)
		case errors.As(err, &se) && !retryableStatus(se.code):
			return utils.Permanent(err)
		case ctx.Err() != nil:
			return utils.Permanent(err)
		}
		return err
	})
}
