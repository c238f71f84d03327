// Package api is the single chokepoint for every outbound request to the
// remote task API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskcli/internal/session"
)

// SessionExpiredHandler is invoked when the API rejects the stored
// credentials. The application shell subscribes to it; the gateway itself
// never drives navigation beyond clearing the session store.
type SessionExpiredHandler func()

// Gateway issues HTTP requests against the configured base URL, attaching
// the bearer token from the session store when one is present.
type Gateway struct {
	base             *url.URL
	client           *http.Client
	store            *session.Store
	log              *zap.Logger
	onSessionExpired SessionExpiredHandler
}

// New creates a Gateway for the given base URL.
func New(baseURL string, store *session.Store, log *zap.Logger, timeout time.Duration) (*Gateway, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{
		base:   base,
		client: &http.Client{Timeout: timeout},
		store:  store,
		log:    log,
	}, nil
}

// OnSessionExpired registers the handler fired on a 401 response.
func (g *Gateway) OnSessionExpired(fn SessionExpiredHandler) {
	g.onSessionExpired = fn
}

// GetJSON issues a GET and decodes the response into out.
func (g *Gateway) GetJSON(ctx context.Context, path string, out any) error {
	return g.do(ctx, http.MethodGet, path, "", nil, out)
}

// GetText issues a GET and returns the raw response body as a string.
// JSON-encoded string bodies are unquoted.
func (g *Gateway) GetText(ctx context.Context, path string) (string, error) {
	body, err := g.roundTrip(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return "", err
	}
	var s string
	if json.Unmarshal(body, &s) == nil {
		return s, nil
	}
	return strings.TrimSpace(string(body)), nil
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
func (g *Gateway) PostJSON(ctx context.Context, path string, in, out any) error {
	return g.doJSON(ctx, http.MethodPost, path, in, out)
}

// PutJSON issues a PUT with a JSON body and decodes the response into out.
func (g *Gateway) PutJSON(ctx context.Context, path string, in, out any) error {
	return g.doJSON(ctx, http.MethodPut, path, in, out)
}

// Delete issues a DELETE and discards any response body.
func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// PostMultipart issues a POST with a single multipart file field and decodes
// the response into out.
func (g *Gateway) PostMultipart(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return g.do(ctx, http.MethodPost, path, mw.FormDataContentType(), &buf, out)
}

func (g *Gateway) doJSON(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return g.do(ctx, method, path, "application/json", bytes.NewReader(payload), out)
}

func (g *Gateway) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	respBody, err := g.roundTrip(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (g *Gateway) roundTrip(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	u := *g.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := g.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	g.log.Debug("api request", zap.String("method", method), zap.String("path", path))

	res, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return respBody, nil
	}

	apiErr := &Error{StatusCode: res.StatusCode, Body: ParseErrorBody(respBody)}
	switch res.StatusCode {
	case http.StatusUnauthorized:
		// Fatal to the session, not the process: drop the stored
		// credentials, notify the shell, then still fail the call so the
		// caller's error path runs.
		if err := g.store.Clear(); err != nil {
			g.log.Error("clear session", zap.Error(err))
		}
		if g.onSessionExpired != nil {
			g.onSessionExpired()
		}
	case http.StatusForbidden:
		g.log.Warn("access forbidden",
			zap.String("method", method), zap.String("path", path))
	case http.StatusInternalServerError:
		g.log.Error("server error",
			zap.String("method", method), zap.String("path", path),
			zap.String("message", apiErr.Body.Display()))
	}
	return nil, apiErr
}
