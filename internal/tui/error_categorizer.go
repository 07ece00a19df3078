package tui

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"github.com/studiowebux/resumedesk/internal/backend"
)

const (
	hintTimeout   = "Backend timed out - raise request_timeout in config.yaml (0 disables it)"
	hintCancelled = "Request cancelled"
	hintRefused   = "Connection refused - is the analysis backend running at api_url?"
	hintReset     = "Connection reset by backend - it may have crashed while processing the document"
	hintUnreach   = "Network unreachable - check network connection and firewall settings"
	hintDNS       = "DNS resolution failed - check the host in api_url"
	hintUntrusted = "TLS certificate not trusted - set tls.ca_file or tls.insecure_skip_verify in config.yaml"
)

// categorizeBackendError turns a non-2xx status into an operator hint
func categorizeBackendError(e *backend.BackendError) string {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return "Backend refused credentials - check api_token"
	case e.Status == http.StatusNotFound:
		return "Upload route not found - check that api_url points at the analysis service"
	case e.Status == http.StatusRequestEntityTooLarge:
		return "Document too large for the backend"
	case e.Status == http.StatusUnsupportedMediaType || e.Status == http.StatusUnprocessableEntity:
		return "Backend rejected the document - check the file type"
	case e.Status >= 500:
		return "Backend error - check the analysis service logs for request " + e.RequestID
	default:
		return "Backend returned " + http.StatusText(e.Status)
	}
}

// categorizeRequestError maps transport error text to an actionable hint
func categorizeRequestError(errStr string) string {
	if errStr == "" {
		return ""
	}

	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "context canceled"),
		strings.Contains(errLower, "context cancelled"):
		return hintCancelled

	case strings.Contains(errLower, "deadline exceeded"),
		strings.Contains(errLower, "client.timeout exceeded"):
		return hintTimeout

	// before connection errors: proxy failures usually also say "connection refused"
	case strings.Contains(errLower, "proxy"):
		return "Proxy connection failed - check HTTPS_PROXY/HTTP_PROXY"

	case strings.Contains(errLower, "no such host"),
		strings.Contains(errLower, "dial tcp: lookup"):
		return hintDNS

	case strings.Contains(errLower, "connection refused"):
		return hintRefused

	case strings.Contains(errLower, "connection reset"):
		return hintReset

	case strings.Contains(errLower, "network is unreachable"),
		strings.Contains(errLower, "no route to host"):
		return hintUnreach

	case strings.Contains(errLower, "tls"),
		strings.Contains(errLower, "certificate"),
		strings.Contains(errLower, "x509"):
		return categorizeSSLError(errStr)

	case strings.Contains(errLower, "unsupported protocol"),
		strings.Contains(errLower, "invalid url"):
		return "Invalid api_url - use an absolute http:// or https:// URL"

	case strings.Contains(errLower, "eof"):
		return "Backend closed the connection before answering"

	case strings.Contains(errLower, "timeout"),
		strings.Contains(errLower, "timed out"):
		return hintTimeout
	}

	return "Request failed: " + errStr
}

// categorizeSSLError provides specific guidance for TLS certificate errors
func categorizeSSLError(errStr string) string {
	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "unknown authority"),
		strings.Contains(errLower, "not trusted"):
		return hintUntrusted
	case strings.Contains(errLower, "expired"):
		return "TLS certificate has expired"
	case strings.Contains(errLower, "certificate is valid for"),
		strings.Contains(errLower, "doesn't match"):
		return "TLS hostname mismatch - the certificate does not cover the api_url host"
	case strings.Contains(errLower, "handshake"):
		return "TLS handshake failed - check TLS version compatibility"
	case strings.Contains(errLower, "bad certificate"),
		strings.Contains(errLower, "certificate required"):
		return "Backend wants a client certificate - set tls.cert_file and tls.key_file"
	}

	return "TLS error: " + errStr
}

// categorizeError produces a short hint for the status bar and log.
// It never replaces the panel's own error text.
func categorizeError(err error) string {
	if err == nil {
		return ""
	}

	var be *backend.BackendError
	if errors.As(err, &be) {
		return categorizeBackendError(be)
	}
	if errors.Is(err, backend.ErrNoAnalysis) {
		return "Backend answered without an analysis object"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return hintTimeout
	}
	if errors.Is(err, context.Canceled) {
		return hintCancelled
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return hintTimeout
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return hintUntrusted
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return hintTimeout
		}
		var errno syscall.Errno
		if errors.As(opErr.Err, &errno) {
			switch errno {
			case syscall.ECONNREFUSED:
				return hintRefused
			case syscall.ECONNRESET:
				return hintReset
			case syscall.ENETUNREACH, syscall.EHOSTUNREACH:
				return hintUnreach
			}
		}
	}

	return categorizeRequestError(err.Error())
}
