package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewOutboundHTTPClient creates an HTTPClient preconfigured for calls to a
// single external service: base URL, per-request timeout, and the
// User-Agent header the service expects.
func NewOutboundHTTPClient(baseURL, userAgent string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	return &HTTPClient{Client: client}
}
