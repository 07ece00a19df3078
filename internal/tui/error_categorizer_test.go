package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"

	"github.com/studiowebux/resumedesk/internal/backend"
)

func TestCategorizeRequestError(t *testing.T) {
	tests := []struct {
		name     string
		errStr   string
		wantText string
	}{
		{"empty error", "", ""},
		{"context deadline exceeded", `Post "http://localhost:8000/upload-resume/": context deadline exceeded`, hintTimeout},
		{"client timeout", `Post "x": net/http: request canceled (Client.Timeout exceeded while awaiting headers)`, hintTimeout},
		{"DNS lookup failure", "dial tcp: lookup nonexistent.example.com: no such host", hintDNS},
		{"connection refused", "dial tcp 127.0.0.1:8000: connect: connection refused", hintRefused},
		{"connection reset", "read tcp 127.0.0.1:8000->127.0.0.1:54321: read: connection reset by peer", hintReset},
		{"network unreachable", "dial tcp: network is unreachable", hintUnreach},
		{"unknown authority", "x509: certificate signed by unknown authority", hintUntrusted},
		{"proxy error", "proxyconnect tcp: dial tcp 127.0.0.1:8080: connect: connection refused", "Proxy connection failed - check HTTPS_PROXY/HTTP_PROXY"},
		{"invalid URL", "unsupported protocol scheme", "Invalid api_url - use an absolute http:// or https:// URL"},
		{"EOF", "unexpected EOF", "Backend closed the connection before answering"},
		{"generic timeout", "i/o timeout", hintTimeout},
		{"context canceled", "context canceled", hintCancelled},
		{"unknown error", "something went wrong", "Request failed: something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorizeRequestError(tt.errStr); got != tt.wantText {
				t.Errorf("categorizeRequestError() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{"nil error", nil, ""},
		{"context deadline exceeded", context.DeadlineExceeded, hintTimeout},
		{"context canceled", context.Canceled, hintCancelled},
		{
			name:     "url error with timeout",
			err:      &url.Error{Op: "Post", URL: "http://localhost:8000", Err: context.DeadlineExceeded},
			wantText: hintTimeout,
		},
		{
			name: "transport error wrapping connection refused",
			err: &backend.TransportError{Op: "upload", Err: &url.Error{
				Op: "Post", URL: "http://localhost:8000",
				Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
			}},
			wantText: hintRefused,
		},
		{
			name:     "net op error with connection reset",
			err:      &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET},
			wantText: hintReset,
		},
		{
			name:     "backend 413",
			err:      &backend.BackendError{Op: "upload", Status: 413},
			wantText: "Document too large for the backend",
		},
		{
			name:     "backend 401 wrapped",
			err:      fmt.Errorf("upload: %w", &backend.BackendError{Op: "upload", Status: 401}),
			wantText: "Backend refused credentials - check api_token",
		},
		{
			name:     "backend 502",
			err:      &backend.BackendError{Op: "list", Status: 502, RequestID: "r1"},
			wantText: "Backend error - check the analysis service logs for request r1",
		},
		{
			name:     "missing analysis",
			err:      backend.ErrNoAnalysis,
			wantText: "Backend answered without an analysis object",
		},
		{
			name:     "plain text falls back to string matching",
			err:      errors.New("dial tcp: lookup nonexistent.example.com: no such host"),
			wantText: hintDNS,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorizeError(tt.err); got != tt.wantText {
				t.Errorf("categorizeError() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestCategorizeSSLError(t *testing.T) {
	tests := []struct {
		errStr   string
		wantText string
	}{
		{"x509: certificate signed by unknown authority", hintUntrusted},
		{"x509: certificate has expired", "TLS certificate has expired"},
		{"x509: certificate is valid for example.com, not example.org", "TLS hostname mismatch - the certificate does not cover the api_url host"},
		{"tls: handshake failure", "TLS handshake failed - check TLS version compatibility"},
		{"tls: certificate required", "Backend wants a client certificate - set tls.cert_file and tls.key_file"},
		{"tls: some other error", "TLS error: tls: some other error"},
	}

	for _, tt := range tests {
		t.Run(tt.errStr, func(t *testing.T) {
			if got := categorizeSSLError(tt.errStr); got != tt.wantText {
				t.Errorf("categorizeSSLError() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestCategorizeErrorKnownErrorsHaveNoGenericPrefix(t *testing.T) {
	for _, errStr := range []string{
		"context deadline exceeded",
		"no such host",
		"connection refused",
		"x509: certificate signed by unknown authority",
	} {
		if got := categorizeRequestError(errStr); strings.HasPrefix(got, "Request failed:") {
			t.Errorf("categorizeRequestError(%q) = %q, want a specific hint", errStr, got)
		}
	}
}
