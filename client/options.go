package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Option configures a Client during construction in New.
//
// Options run in order, before the debug and API-key transports are
// installed, so they can be combined freely.
type Option func(*Client) error

// WithBaseURL points the client at another API root, e.g. a sandbox or a
// test server. A trailing slash is dropped.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid base url %q", raw)
		}
		c.baseURL = strings.TrimRight(raw, "/")
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// This bounds the total time spent on a single HTTP request (including
// connection, TLS handshake, redirects, and reading the response). A caller
// context deadline still applies on top. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient uses a copy of hc as the underlying client. Its timeout
// replaces the default unless zero.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		cp := *hc
		if cp.Timeout == 0 {
			cp.Timeout = c.http.Timeout
		}
		c.http = &cp
		return nil
	}
}

// WithDebugLogging logs every request/response through zerolog at debug
// level when enabled is true.
//
// Do not enable this option in production environments: bodies include
// phone numbers, account numbers and names.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}
