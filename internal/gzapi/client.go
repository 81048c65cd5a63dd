// internal/gzapi/client.go
package gzapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenCookie is the session cookie GZCTF expects. The value is an
// opaque token taken from an already-authenticated browser session; the
// client never refreshes or inspects it.
const TokenCookie = "GZCTF_Token"

// Client is an authenticated session against one GZCTF instance. All
// calls are synchronous and none are retried; a transient failure
// surfaces as a *RemoteError for that single call.
type Client struct {
	base *url.URL
	http *http.Client
	log  logrus.FieldLogger
}

// NewClient builds a client for the given base URL, attaching the
// session token as a cookie scoped to the instance host. A trailing
// slash on the base URL is tolerated.
func NewClient(baseURL, token string, log logrus.FieldLogger) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	jar.SetCookies(base, []*http.Cookie{{Name: TokenCookie, Value: token}})

	return &Client{
		base: base,
		http: &http.Client{Jar: jar, Timeout: 60 * time.Second},
		log:  log.WithField("instance", base.Host),
	}, nil
}

// Host returns the instance host (with port, if any). Used for archive
// folder naming and log context.
func (c *Client) Host() string {
	return c.base.Host
}

// BaseURL returns the instance base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// resolve joins an API path (or an instance-relative asset path) to the
// base URL.
func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.base.String() + path
	}
	return c.base.String() + "/" + path
}

// doJSON performs one request with an optional JSON body, decodes an
// optional JSON response into out, and maps every failure mode to
// *RemoteError.
func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out interface{}) error {
	full := c.resolve(path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return remoteErr(op, full, 0, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, full, reader)
	if err != nil {
		return remoteErr(op, full, 0, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return remoteErr(op, full, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a little of the body for the log; GZCTF error payloads
		// are short JSON objects.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.WithFields(logrus.Fields{
			"op":     op,
			"status": resp.StatusCode,
			"body":   string(snippet),
		}).Debug("request rejected")
		return remoteErr(op, full, resp.StatusCode, nil)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return remoteErr(op, full, 0, fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}
