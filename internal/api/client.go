package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/HaByeong/WhaleStream/internal/session"
)

const maxResponseBytes = 1 << 20

// Client is the single HTTP client every service talks through. It injects the
// bearer token on each request and owns the 401 recovery protocol: one reissue
// attempt, one replay of the original request, never more.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
	logger     zerolog.Logger
	reissue    singleflight.Group
}

// New constructs a client for the given base URL. The session store is shared
// with the auth service; the reissue handler is the only other writer to it.
func New(baseURL string, sessions *session.Store, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sessions: sessions,
		logger:   logger,
	}
}

// SetHTTPClient sets the HTTP client for testing.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Sessions exposes the session store the client writes reissued tokens into.
func (c *Client) Sessions() *session.Store {
	return c.sessions
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE, discarding any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	status, data, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		if err := c.refreshSession(ctx); err != nil {
			return err
		}
		c.logger.Debug().Str("method", method).Str("path", path).Msg("replaying request after token reissue")
		status, data, err = c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			// The reissued token was rejected too. Single replay only; give
			// up instead of looping.
			c.sessions.Clear()
			return fmt.Errorf("%w: reissued token rejected", ErrSessionExpired)
		}
	}

	if status >= 400 {
		return newAPIError(status, data)
	}
	if out == nil {
		return nil
	}
	return decodeResponse(data, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.sessions.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// refreshSession exchanges the refresh token for a new token pair. Concurrent
// 401s share a single in-flight reissue so a one-time refresh token is never
// consumed twice. On any failure the session is cleared and ErrSessionExpired
// returned.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.reissue.Do("reissue", func() (any, error) {
		sess, err := c.sessions.Get()
		if err != nil {
			return nil, err
		}
		if sess == nil || sess.RefreshToken == "" {
			return nil, errors.New("no refresh token")
		}

		c.logger.Debug().Msg("access token rejected, attempting reissue")

		payload, err := json.Marshal(map[string]string{"refreshToken": sess.RefreshToken})
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/reissue", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("call reissue: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 400 {
			return nil, newAPIError(resp.StatusCode, data)
		}

		var pair struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		}
		if err := decodeResponse(data, &pair); err != nil {
			return nil, fmt.Errorf("parse reissue response: %w", err)
		}
		if pair.AccessToken == "" {
			return nil, errors.New("reissue returned no access token")
		}

		return nil, c.sessions.Set(session.Session{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			UserID:       sess.UserID,
		})
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("token reissue failed, clearing session")
		c.sessions.Clear()
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	return nil
}

// decodeResponse unmarshals a response body into out, unwrapping the
// {"data": ...} envelope domain endpoints use. Auth endpoints answer with bare
// objects, so a body without the envelope is decoded as-is.
func decodeResponse(data []byte, out any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err == nil && len(bytes.TrimSpace(env.Data)) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(data, out)
}

func newAPIError(status int, data []byte) error {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Code = body.Code
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Error != "":
			apiErr.Message = body.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
