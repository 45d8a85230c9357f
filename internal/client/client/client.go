package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/dmitrijs2005/casiec/internal/logging"
)

// TokenStore is the session the client reads tokens from and writes renewed
// tokens to.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	Store(ctx context.Context, pair models.TokenPair) error
	Clear(ctx context.Context) error
}

// Redirector moves the user to the landing view after the session is lost.
type Redirector interface {
	RedirectHome()
}

type refreshResult struct {
	token string
	err   error
}

type HTTPClient struct {
	baseURL    string
	http       *http.Client
	tokens     TokenStore
	redirector Redirector
	logger     logging.Logger

	mu         sync.Mutex
	refreshing bool
	queue      []chan refreshResult
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithRedirector(r Redirector) Option {
	return func(c *HTTPClient) { c.redirector = r }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func New(baseURL string, tokens TokenStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		tokens:  tokens,
		logger:  logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type response struct {
	status int
	body   []byte
}

// Do sends method path with body (may be nil) and decodes a JSON response
// into out (may be nil).
func (c *HTTPClient) Do(ctx context.Context, method, path string, body *Body, out any) error {
	token := c.tokens.AccessToken()
	resp, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized {
		fresh, err := c.renew(ctx, token)
		if errors.Is(err, errNoRefreshToken) {
			return mapStatus(resp.status, resp.body)
		}
		if err != nil {
			return err
		}
		c.logger.Debug(ctx, "retrying after token refresh", "method", method, "path", path)
		if resp, err = c.send(ctx, method, path, body, fresh); err != nil {
			return err
		}
	}

	return decode(resp, out)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, body *Body, token string) (*response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body.Data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", body.ContentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	return &response{status: res.StatusCode, body: data}, nil
}

func decode(resp *response, out any) error {
	if resp.status < 200 || resp.status > 299 {
		return mapStatus(resp.status, resp.body)
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// renew returns an access token to retry with after a 401 for stale. It
// either reuses a token renewed since stale was sent, waits for the refresh
// in flight, or runs the refresh itself.
func (c *HTTPClient) renew(ctx context.Context, stale string) (string, error) {
	c.mu.Lock()

	if cur := c.tokens.AccessToken(); cur != "" && cur != stale {
		c.mu.Unlock()
		return cur, nil
	}

	refreshToken := c.tokens.RefreshToken()
	if refreshToken == "" {
		c.mu.Unlock()
		return "", errNoRefreshToken
	}

	if c.refreshing {
		wait := make(chan refreshResult, 1)
		c.queue = append(c.queue, wait)
		c.mu.Unlock()
		r := <-wait
		return r.token, r.err
	}

	c.refreshing = true
	c.mu.Unlock()

	// The refresh outlives the call that started it, since queued calls
	// depend on its outcome.
	rctx := context.WithoutCancel(ctx)
	token, err := c.refresh(rctx, refreshToken)
	if err != nil {
		c.logger.Warn(ctx, "session refresh failed", "error", err)
		if cerr := c.tokens.Clear(rctx); cerr != nil {
			c.logger.Error(ctx, "failed to clear session", "error", cerr)
		}
		err = fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	c.settle(token, err)

	if err != nil && c.redirector != nil {
		c.redirector.RedirectHome()
	}
	return token, err
}

// settle ends the refresh cycle and wakes the queued calls in arrival order.
func (c *HTTPClient) settle(token string, err error) {
	c.mu.Lock()
	queue := c.queue
	c.queue = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, wait := range queue {
		wait <- refreshResult{token: token, err: err}
	}
}

// refresh exchanges the refresh token for a new pair and persists it. The
// request goes straight to the transport and is never itself refreshed.
func (c *HTTPClient) refresh(ctx context.Context, refreshToken string) (string, error) {
	body, err := JSONBody(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return "", err
	}
	resp, err := c.send(ctx, http.MethodPost, "/auth/refresh", body, "")
	if err != nil {
		return "", err
	}

	var pair models.TokenPair
	if err := decode(resp, &pair); err != nil {
		return "", err
	}
	if pair.AccessToken == "" {
		return "", errors.New("refresh response has no access token")
	}
	if err := c.tokens.Store(ctx, pair); err != nil {
		return "", err
	}
	return pair.AccessToken, nil
}
