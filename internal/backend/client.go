package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studiowebux/resumedesk/internal/types"
	"golang.org/x/oauth2"
)

const (
	uploadPath = "/upload-resume/"
	listPath   = "/resumes/"

	// FormField is the multipart field carrying the document
	FormField = "file"

	// RequestIDHeader correlates client logs with backend logs
	RequestIDHeader = "X-Request-ID"
)

// Uploader submits one resume document and returns the backend's analysis
type Uploader interface {
	Upload(ctx context.Context, file *types.ResumeFile) (*UploadResult, error)
}

// Lister fetches the full resume history
type Lister interface {
	ListResumes(ctx context.Context) ([]types.ResumeRecord, error)
}

// Service is the full backend capability
type Service interface {
	Uploader
	Lister
}

// UploadResult is a successful upload response
type UploadResult struct {
	Analysis  *types.AnalysisResult // nil when the body carried no analysis object
	Status    int
	RequestID string
	Duration  time.Duration
}

// Config configures a Client
type Config struct {
	BaseURL    string
	Token      string        // optional bearer token
	Timeout    time.Duration // zero means no client-side timeout
	TLS        *types.TLSConfig
	UserAgent  string
	HTTPClient *http.Client // overrides Timeout/TLS/Token when set
}

// Client talks to the resume-analysis backend
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

var _ Service = (*Client)(nil)

// New creates a client from cfg
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = buildHTTPClient(cfg.TLS, cfg.Timeout, cfg.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
		}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = "resumedesk"
	}

	return &Client{baseURL: base, userAgent: ua, http: httpClient}, nil
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload posts file as multipart form data to the upload route
func (c *Client) Upload(ctx context.Context, file *types.ResumeFile) (*UploadResult, error) {
	if file == nil {
		return nil, fmt.Errorf("no file to upload")
	}

	body, contentType, err := encodeMultipart(file)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + uploadPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	requestID := c.decorate(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "upload", URL: url, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "upload", URL: url, RequestID: requestID, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if !IsSuccessStatus(resp.StatusCode) {
		return nil, newBackendError("upload", resp.StatusCode, respBody, requestID)
	}

	result := &UploadResult{
		Status:    resp.StatusCode,
		RequestID: requestID,
		Duration:  time.Since(start),
	}

	// A 2xx body without a decodable analysis is still a completed upload
	var envelope struct {
		Analysis *types.AnalysisResult `json:"analysis"`
	}
	if err := json.Unmarshal(respBody, &envelope); err == nil {
		result.Analysis = envelope.Analysis
	}

	return result, nil
}

// ListResumes fetches every stored resume record
func (c *Client) ListResumes(ctx context.Context) ([]types.ResumeRecord, error) {
	url := c.baseURL + listPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	requestID := c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "list", URL: url, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "list", URL: url, RequestID: requestID, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if !IsSuccessStatus(resp.StatusCode) {
		return nil, newBackendError("list", resp.StatusCode, respBody, requestID)
	}

	var records []types.ResumeRecord
	if err := json.Unmarshal(respBody, &records); err != nil {
		return nil, fmt.Errorf("failed to decode resume list: %w", err)
	}
	if records == nil {
		records = []types.ResumeRecord{}
	}

	return records, nil
}

func (c *Client) decorate(req *http.Request) string {
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", c.userAgent)
	return requestID
}

func newBackendError(op string, status int, body []byte, requestID string) *BackendError {
	message, detail := parseErrorBody(body)
	return &BackendError{
		Op:        op,
		Status:    status,
		Message:   message,
		Detail:    detail,
		Body:      string(body),
		RequestID: requestID,
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart builds the form body with the document in the "file" field
func encodeMultipart(file *types.ResumeFile) (io.Reader, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer src.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FormField, quoteEscaper.Replace(file.Name)))
	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header.Set("Content-Type", mediaType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// buildHTTPClient creates an HTTP client with optional TLS/mTLS configuration and bearer auth
func buildHTTPClient(tlsConfig *types.TLSConfig, timeout time.Duration, token string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if tlsConfig != nil {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: tlsConfig.InsecureSkipVerify,
		}

		// Load client certificate if provided (for mTLS)
		if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}

		// Load CA certificate if provided (for server verification)
		if tlsConfig.CAFile != "" {
			caCert, err := os.ReadFile(tlsConfig.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	var rt http.RoundTripper = transport
	if token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   transport,
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: rt,
	}, nil
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}

// FormatDuration formats a duration to a short human-readable string
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.2fs", float64(ms)/1000.0)
}
