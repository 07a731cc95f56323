package httpx

import (
    "net"
    "net/http"
    "time"
)

// New returns an http.Client with sane defaults for a low-volume outbound
// API consumer: connection reuse across requests, bounded handshake and
// response-header waits, and an overall request timeout that caps how long
// a slow upstream can block a caller.
func New(timeout time.Duration) *http.Client {
    transport := &http.Transport{
        Proxy: http.ProxyFromEnvironment,
        DialContext: (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
        MaxIdleConns:          20,
        MaxIdleConnsPerHost:   10,
        ForceAttemptHTTP2:     true,
        IdleConnTimeout:       90 * time.Second,
        TLSHandshakeTimeout:   3 * time.Second,
        ExpectContinueTimeout: 1 * time.Second,
        ResponseHeaderTimeout: 5 * time.Second,
    }
    return &http.Client{Timeout: timeout, Transport: transport}
}
