package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkglog"
)

const maxBodyBytes = 32 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the scoring backend root, e.g. "http://localhost:8000".
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
}

// Client issues exactly one request per call to the scoring backend. It never
// retries and never caches.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("outbound: BaseURL is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("outbound: invalid BaseURL %q: %w", cfg.BaseURL, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return pkgerror.NewServer(err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cid := pkglog.GetCorrelationID(ctx); cid != "" {
		req.Header.Set("X-Correlation-ID", cid)
	}

	slog.InfoContext(ctx, "backend request", "method", method, "path", path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "backend request failed", "method", method, "path", path, "latency", time.Since(start).String(), "error", err)
		return pkgerror.NewUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		slog.ErrorContext(ctx, "backend response read failed", "method", method, "path", path, "error", err)
		return pkgerror.NewUnavailable(err)
	}

	slog.InfoContext(ctx, "backend response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency", time.Since(start).String(),
		"bytes", len(raw),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, detail := errorPayload(raw)
		slog.WarnContext(ctx, "backend error response", "path", path, "status", resp.StatusCode, "message", msg)
		return pkgerror.NewUpstream(resp.StatusCode, msg, detail)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return pkgerror.NewMalformed(errors.New("empty response body"))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerror.NewMalformed(err)
	}

	return nil
}

// errorPayload pulls the backend's own message out of an error body. FastAPI
// uses "detail", Flask handlers use "error".
func errorPayload(raw []byte) (string, any) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", string(raw)
	}

	for _, key := range []string{"detail", "error", "message"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s, payload
		}
	}

	return "", payload
}

func limitQuery(limit int) string {
	if limit <= 0 {
		return ""
	}
	return "?limit=" + strconv.Itoa(limit)
}

func multipartBody(field, filename string, r io.Reader) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	return pr, mw.FormDataContentType()
}
