// Package client talks to the blog REST backend. Every method issues exactly
// one HTTP request and never retries.
package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/blog-portal/internal/cache"
	"github.com/bobmcallan/blog-portal/internal/common"
	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
)

const maxResponseBytes = 10 << 20

// BlogClient communicates with the blog REST API.
type BlogClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.ResponseCache
	logger     *common.Logger
}

// Option configures a BlogClient.
type Option func(*BlogClient)

// WithCache enables GET response caching.
func WithCache(c *cache.ResponseCache) Option {
	return func(bc *BlogClient) { bc.cache = c }
}

// WithLogger sets the request logger.
func WithLogger(l *common.Logger) Option {
	return func(bc *BlogClient) { bc.logger = l }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(bc *BlogClient) { bc.httpClient = h }
}

// NewBlogClient creates a client targeting baseURL. A zero timeout means none.
func NewBlogClient(baseURL string, timeout time.Duration, opts ...Option) *BlogClient {
	c := &BlogClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend URL.
func (c *BlogClient) BaseURL() string {
	return c.baseURL
}

// roundTrip sends one request and returns the body of a 2xx response.
// An empty token sends no Authorization header.
func (c *BlogClient) roundTrip(ctx context.Context, token, method, path string, body []byte, contentType string) ([]byte, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Str("method", method).Str("path", path).Str("request_id", requestID).Err(err).Msg("backend unreachable")
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

func decode(method, path string, body []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// credentialKey scopes cached responses to the bearer token that fetched
// them. Anonymous requests share the empty key.
func credentialKey(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}

// send performs a JSON request. GETs go through the cache when enabled;
// successful mutations invalidate the affected resources.
func (c *BlogClient) send(ctx context.Context, token, method, path string, in, out interface{}) error {
	var key string
	if method == http.MethodGet && c.cache != nil {
		key = cache.MakeKey(credentialKey(token), method, path)
		if hit, ok := c.cache.Get(key); ok {
			return decode(method, path, hit.Body, out)
		}
	}

	var body []byte
	var contentType string
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = b
		contentType = "application/json"
	}

	respBody, err := c.roundTrip(ctx, token, method, path, body, contentType)
	if err != nil {
		return err
	}

	if err := decode(method, path, respBody, out); err != nil {
		return err
	}

	if key != "" {
		c.cache.Set(key, &cache.Response{StatusCode: http.StatusOK, Body: respBody})
	} else {
		c.invalidate(method, path)
	}
	return nil
}

func (c *BlogClient) authed(ctx context.Context, sess session.Session, method, path string, in, out interface{}) error {
	return c.send(ctx, sess.Token, method, path, in, out)
}

func (c *BlogClient) public(ctx context.Context, method, path string, in, out interface{}) error {
	return c.send(ctx, "", method, path, in, out)
}

type formField struct {
	name, value string
}

// sendMultipart posts form fields plus an optional image under the "image" field.
func (c *BlogClient) sendMultipart(ctx context.Context, sess session.Session, method, path string, fields []formField, img *models.ImageFile, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", f.name, err)
		}
	}
	if img != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, img.Filename))
		ct := img.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return fmt.Errorf("failed to write image part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}

	respBody, err := c.roundTrip(ctx, sess.Token, method, path, buf.Bytes(), w.FormDataContentType())
	if err != nil {
		return err
	}
	if err := decode(method, path, respBody, out); err != nil {
		return err
	}
	c.invalidate(method, path)
	return nil
}

// relatedResources lists extra cached resources a mutation makes stale.
var relatedResources = map[string][]string{
	"/api/comments": {"/api/posts"},
	"/api/users":    {"/api/posts"},
}

func (c *BlogClient) invalidate(method, path string) {
	if c.cache == nil || method == http.MethodGet {
		return
	}
	res := resourceOf(path)
	c.cache.InvalidateResource(res)
	for _, r := range relatedResources[res] {
		c.cache.InvalidateResource(r)
	}
}

// resourceOf returns the first two path segments, e.g. "/api/posts".
func resourceOf(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(parts) < 2 {
		return "/" + parts[0]
	}
	return "/" + parts[0] + "/" + parts[1]
}

// getUncached is an authenticated GET that bypasses the cache.
func (c *BlogClient) getUncached(ctx context.Context, sess session.Session, path string, out interface{}) error {
	respBody, err := c.roundTrip(ctx, sess.Token, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return decode(http.MethodGet, path, respBody, out)
}
