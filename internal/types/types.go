package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// NotAvailable is shown in place of a missing or empty scalar analysis field
const NotAvailable = "N/A"

// Accepted extensions per upload entry point. Only advisory: they feed the file picker filter.
var (
	UploadPanelExtensions = []string{".pdf", ".doc", ".docx"}
	ListPanelExtensions   = []string{".pdf"}
)

// ResumeFile is an opaque handle to a user-selected document
type ResumeFile struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	Size      int64  `json:"size"`
	MediaType string `json:"mediaType"`

	content []byte // in-memory content, used instead of Path when set
}

// NewResumeFile builds a handle for a file on disk
func NewResumeFile(path string) (*ResumeFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return &ResumeFile{
		Name:      filepath.Base(path),
		Path:      path,
		Size:      info.Size(),
		MediaType: DetectMediaType(path),
	}, nil
}

// NewResumeFileFromBytes builds a handle backed by an in-memory buffer
func NewResumeFileFromBytes(name string, data []byte) *ResumeFile {
	return &ResumeFile{
		Name:      name,
		Size:      int64(len(data)),
		MediaType: DetectMediaTypeBytes(name, data),
		content:   data,
	}
}

// Open returns a fresh reader over the document bytes
func (f *ResumeFile) Open() (io.ReadCloser, error) {
	if f.content != nil {
		return io.NopCloser(bytes.NewReader(f.content)), nil
	}
	if f.Path == "" {
		return nil, fmt.Errorf("resume file %q has no content", f.Name)
	}
	return os.Open(f.Path)
}

// HasExtension reports whether the file name ends with one of exts (case-insensitive)
func (f *ResumeFile) HasExtension(exts []string) bool {
	ext := strings.ToLower(filepath.Ext(f.Name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// AnalysisResult is the structured analysis attached to one resume
type AnalysisResult struct {
	Name         *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Email        *string  `json:"email,omitempty" yaml:"email,omitempty"`
	CoreSkills   []string `json:"core_skills,omitempty" yaml:"core_skills,omitempty"`
	SoftSkills   []string `json:"soft_skills,omitempty" yaml:"soft_skills,omitempty"`
	Rating       *string  `json:"rating,omitempty" yaml:"rating,omitempty"`
	Improvements *string  `json:"improvements,omitempty" yaml:"improvements,omitempty"`
	Upskill      *string  `json:"upskill,omitempty" yaml:"upskill,omitempty"`
}

// OrNA returns the value, or NotAvailable when it is nil or empty
func OrNA(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}

// JoinSkills renders a skill list comma-separated; empty input yields ""
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// RecordID is a server-assigned identifier. The backend may send it as a
// number or a string; it is written back in the form it arrived in.
type RecordID struct {
	Value   string
	Numeric bool
}

// StringID returns an id that encodes as a JSON string
func StringID(s string) RecordID {
	return RecordID{Value: s}
}

// NumberID returns an id that encodes as a JSON number
func NumberID(n int64) RecordID {
	return RecordID{Value: strconv.FormatInt(n, 10), Numeric: true}
}

func (id RecordID) String() string { return id.Value }

// UnmarshalJSON accepts both JSON strings and numbers
func (id *RecordID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = RecordID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid record id %s: %w", string(data), err)
	}
	*id = RecordID{Value: n.String(), Numeric: true}
	return nil
}

// MarshalJSON writes numbers back as numbers and strings as strings
func (id RecordID) MarshalJSON() ([]byte, error) {
	if id.Numeric && json.Valid([]byte(id.Value)) {
		return []byte(id.Value), nil
	}
	if id.Value == "" && !id.Numeric {
		return []byte("null"), nil
	}
	return json.Marshal(id.Value)
}

// MarshalYAML mirrors MarshalJSON
func (id RecordID) MarshalYAML() (any, error) {
	if id.Numeric {
		if n, err := strconv.ParseInt(id.Value, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(id.Value, 64); err == nil {
			return f, nil
		}
	}
	return id.Value, nil
}

// timestampLayouts are the ISO-ish layouts the backend is known to emit
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// DisplayTimeLayout is the human-readable form used in the resume list
const DisplayTimeLayout = "Jan 2, 2006 3:04:05 PM"

// Timestamp holds a parsed upload time; Raw keeps the original text when parsing fails
type Timestamp struct {
	Time time.Time
	Raw  string
}

// ParseTimestamp parses s with the known layouts. Text without a zone is
// local time, the way a browser reads it.
func ParseTimestamp(s string) Timestamp {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t, Raw: s}
		}
	}
	return Timestamp{Raw: s}
}

// UnmarshalJSON parses a timestamp string, keeping it raw if no layout matches
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", string(data), err)
	}
	*t = ParseTimestamp(s)
	return nil
}

// MarshalJSON writes the original text back when available
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Format renders the timestamp in local time
func (t Timestamp) Format() string {
	if t.Time.IsZero() {
		if t.Raw == "" {
			return "Invalid Date"
		}
		return t.Raw
	}
	return t.Time.Local().Format(DisplayTimeLayout)
}

// ResumeRecord is one entry of the backend's resume history
type ResumeRecord struct {
	ID         RecordID        `json:"id"`
	Filename   string          `json:"filename"`
	UploadedAt Timestamp       `json:"uploaded_at"`
	Analysis   *AnalysisResult `json:"analysis"`
}

// UploadPhase is the lifecycle state of an upload panel
type UploadPhase int

const (
	UploadIdle UploadPhase = iota
	UploadSelected
	UploadInFlight
	UploadSucceeded
	UploadFailed
)

func (p UploadPhase) String() string {
	switch p {
	case UploadIdle:
		return "idle"
	case UploadSelected:
		return "selected"
	case UploadInFlight:
		return "in-flight"
	case UploadSucceeded:
		return "succeeded"
	case UploadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ListPhase is the lifecycle state of the resume list panel
type ListPhase int

const (
	ListIdle ListPhase = iota
	ListLoading
	ListLoaded
	ListFailed
)

func (p ListPhase) String() string {
	switch p {
	case ListIdle:
		return "idle"
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TLSConfig holds TLS/mTLS settings for the backend connection
type TLSConfig struct {
	CertFile           string `json:"cert_file,omitempty" yaml:"cert_file,omitempty"`
	KeyFile            string `json:"key_file,omitempty" yaml:"key_file,omitempty"`
	CAFile             string `json:"ca_file,omitempty" yaml:"ca_file,omitempty"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty"`
}

// JournalEntry is one locally recorded upload attempt
type JournalEntry struct {
	ID        int64           `json:"id" yaml:"id"`
	Timestamp string          `json:"timestamp" yaml:"timestamp"`
	Source    string          `json:"source" yaml:"source"` // upload, list, cli
	Filename  string          `json:"filename" yaml:"filename"`
	Size      int64           `json:"size" yaml:"size"`
	MediaType string          `json:"mediaType" yaml:"mediaType"`
	Status    int             `json:"status" yaml:"status"`
	Error     string          `json:"error,omitempty" yaml:"error,omitempty"`
	RequestID string          `json:"requestId,omitempty" yaml:"requestId,omitempty"`
	Analysis  *AnalysisResult `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}
