package http

import (
	"crypto/tls"
	"net/http"
)

// TransportOption customizes the transport returned by GetHTTPTransport
type TransportOption func(*http.Transport)

// WithInsecure skips server certificate verification. Legacy Nexus 2 hosts are
// frequently fronted by self-signed certificates.
func WithInsecure(insecure bool) TransportOption {
	return func(t *http.Transport) {
		if t.TLSClientConfig == nil {
			t.TLSClientConfig = &tls.Config{}
		}
		t.TLSClientConfig.InsecureSkipVerify = insecure // nolint:gosec
	}
}

// GetHTTPTransport returns a clone of the default transport with opts applied
func GetHTTPTransport(opts ...TransportOption) http.RoundTripper {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}
