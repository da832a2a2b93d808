// Package api is the HTTP transport for the health tracker backend. It owns
// the session cookie jar, CSRF echoing, and the uniform error shape; domain
// services in internal/health sit on top of it.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Options configures the transport.
type Options struct {
	BaseURL    string        // e.g. http://localhost:8080
	Timeout    time.Duration // per-request timeout
	CSRFCookie string        // cookie the backend sets with the CSRF token
	CSRFHeader string        // header the token is echoed in on mutating verbs
	Debug      bool          // enable resty request/response logging
}

// Client issues requests against the backend, attaching the session cookie
// and CSRF token automatically. All failures are normalized to *Error;
// a request that never receives a response reports status 0.
type Client struct {
	rc      *resty.Client
	session *SessionState
	base    *url.URL
	cookie  string
	header  string
	log     zerolog.Logger
}

// New builds a transport client. The session state is injected so other
// components (and tests) can observe validity transitions.
func New(opts Options, session *SessionState, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute with a host, got %q", opts.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	rc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetCookieJar(jar).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if opts.Debug {
		rc.SetDebug(true)
	}

	c := &Client{
		rc:      rc,
		session: session,
		base:    base,
		cookie:  opts.CSRFCookie,
		header:  opts.CSRFHeader,
		log:     log,
	}

	rc.OnBeforeRequest(c.attachCSRF)

	return c, nil
}

// Session returns the shared session validity state.
func (c *Client) Session() *SessionState {
	return c.session
}

// Get issues a GET and decodes the response into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE against the given path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// errorBody is the backend's error envelope. Older endpoints use "error",
// newer ones "message"; validation failures add per-field messages.
type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fieldErrors"`
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	req := c.rc.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed before response")
		return &Error{Status: 0, Message: err.Error()}
	}

	if resp.IsError() {
		status := resp.StatusCode()
		if status == http.StatusUnauthorized {
			c.session.MarkInvalid()
		}

		apiErr := &Error{Status: status, Message: http.StatusText(status)}
		var eb errorBody
		if jsonErr := json.Unmarshal(resp.Body(), &eb); jsonErr == nil {
			switch {
			case eb.Message != "":
				apiErr.Message = eb.Message
			case eb.Error != "":
				apiErr.Message = eb.Error
			}
			apiErr.Fields = eb.Fields
		}

		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Str("message", apiErr.Message).
			Msg("request returned error status")
		return apiErr
	}

	return nil
}

// attachCSRF echoes the CSRF token cookie into the configured header on
// mutating verbs. The backend ignores the header on safe verbs.
func (c *Client) attachCSRF(rc *resty.Client, req *resty.Request) error {
	switch req.Method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
	default:
		return nil
	}

	jar := rc.GetClient().Jar
	if jar == nil || c.cookie == "" {
		return nil
	}

	for _, ck := range jar.Cookies(c.base) {
		if ck.Name == c.cookie {
			req.SetHeader(c.header, ck.Value)
			break
		}
	}
	return nil
}
