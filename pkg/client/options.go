package client

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout bounds a single request including retries' individual attempts.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.SetTimeout(d)
		return nil
	}
}

// WithRetries retries idempotent failures (connection errors and 5xx) up to n times.
func WithRetries(n int, wait time.Duration) Option {
	return func(c *Client) error {
		if n < 0 {
			return fmt.Errorf("retry count must be >= 0")
		}
		c.http.SetRetryCount(n).SetRetryWaitTime(wait)
		return nil
	}
}

// WithDebugLogging logs each request and response through resty.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.http.SetDebug(enabled)
		return nil
	}
}
