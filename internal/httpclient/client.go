// Package httpclient builds the outbound HTTP clients used for catalog
// calls, with transport settings tuned for a small number of long-lived
// API connections.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// New returns an *http.Client with the given overall request timeout.
func New(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
