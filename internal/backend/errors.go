package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoAnalysis is returned by callers that require an analysis when a 2xx body carried none
var ErrNoAnalysis = errors.New("response contained no analysis")

// TransportError means the request could not complete
type TransportError struct {
	Op        string // "upload" or "list"
	URL       string
	RequestID string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BackendError means the request completed with a non-success status
type BackendError struct {
	Op        string
	Status    int
	Message   string // "message" field of the error body, if any
	Detail    string // "detail" field of the error body, if any
	Body      string
	RequestID string
}

func (e *BackendError) Error() string {
	text := e.Message
	if text == "" {
		text = e.Detail
	}
	if text == "" {
		text = strings.TrimSpace(e.Body)
	}
	if r := []rune(text); len(r) > 200 {
		text = string(r[:197]) + "..."
	}
	if text == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.Status, text)
}

// errorBody is the JSON error envelope; detail may be a non-string (validation lists)
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

// parseErrorBody extracts string "message" and "detail" fields; anything else is ignored
func parseErrorBody(body []byte) (message, detail string) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return "", ""
	}
	return rawString(eb.Message), rawString(eb.Detail)
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// MessageOr returns the backend "message" carried by err, or fallback
func MessageOr(err error, fallback string) string {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}

// DetailOr returns the backend "detail" carried by err, or fallback
func DetailOr(err error, fallback string) string {
	var be *BackendError
	if errors.As(err, &be) && be.Detail != "" {
		return be.Detail
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}

// RequestIDOf returns the request id carried by err, or ""
func RequestIDOf(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.RequestID
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.RequestID
	}
	return ""
}
