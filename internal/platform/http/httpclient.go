// Package http builds the outbound HTTP clients shared by the market adapters
// and the stock API client.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an *http.Client tuned for calling external APIs.
//
// Settings:
//   - Proxy: honours HTTP_PROXY / HTTPS_PROXY
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - Dialer.KeepAlive: lifetime of reusable TCP connections
//   - MaxIdleConns / MaxIdleConnsPerHost: pool sizes; market APIs are few hosts
//   - IdleConnTimeout: how long idle connections are kept
//   - TLSHandshakeTimeout: upper bound for the HTTPS handshake
//   - Client.Timeout: whole request timeout, passed by the caller
//
// http.DefaultClient has no timeout, so always use a client from here.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
