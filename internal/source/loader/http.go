package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-schemagen/pkg/source"
)

// catalogAccept lists the media types catalogs and description files are
// served as.
const catalogAccept = "application/yaml, application/x-yaml, application/json;q=0.9, text/plain;q=0.5"

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration, limit int64) ([]byte, error) {
	if client == nil {
		return nil, errors.New("source loader: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("source loader: url is required")
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", catalogAccept)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source loader: fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("source loader: fetch %s: unexpected status %s", url, resp.Status)
	}
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: %s declares %d bytes, limit is %d", source.ErrDocumentTooLarge, url, resp.ContentLength, limit)
	}
	return readLimited(resp.Body, limit, url)
}
