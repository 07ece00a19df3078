package mock

import (
	"time"

	"github.com/studiowebux/resumedesk/internal/types"
)

// Config represents the mock backend configuration
type Config struct {
	Port    int    `json:"port" yaml:"port"`       // Server port (default: 8000)
	Host    string `json:"host" yaml:"host"`       // Server host (default: localhost)
	Logging bool   `json:"logging" yaml:"logging"` // Keep a request log

	// Analysis is returned for every successful upload. Nil synthesizes one from the filename.
	Analysis *types.AnalysisResult `json:"analysis,omitempty" yaml:"analysis,omitempty"`

	Upload Behavior `json:"upload" yaml:"upload"`
	List   Behavior `json:"list" yaml:"list"`

	// Seed records are served by the list route before any upload happens
	Seed []SeedRecord `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Behavior controls how one route answers
type Behavior struct {
	Status  int    `json:"status,omitempty" yaml:"status,omitempty"`   // Non-2xx makes the route fail
	Message string `json:"message,omitempty" yaml:"message,omitempty"` // "message" field of the error body
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`   // "detail" field of the error body
	Delay   int    `json:"delay,omitempty" yaml:"delay,omitempty"`     // Response delay in milliseconds
}

// Fails reports whether the route is configured to fail
func (b Behavior) Fails() bool {
	return b.Status != 0 && (b.Status < 200 || b.Status >= 300)
}

// SeedRecord is a pre-populated resume record
type SeedRecord struct {
	Filename   string                `json:"filename" yaml:"filename"`
	UploadedAt string                `json:"uploaded_at,omitempty" yaml:"uploaded_at,omitempty"`
	Analysis   *types.AnalysisResult `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// RequestLog represents a logged request
type RequestLog struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Filename  string        `json:"filename,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
	Status    int           `json:"status"`
	Duration  time.Duration `json:"duration"`
}
