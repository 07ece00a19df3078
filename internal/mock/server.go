package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/studiowebux/resumedesk/internal/types"
)

const (
	uploadRoute   = "/upload-resume/"
	listRoute     = "/resumes/"
	maxUploadSize = 32 << 20
	maxLogs       = 1000
	backendLayout = "2006-01-02T15:04:05.999999"
)

// Server is an in-memory stand-in for the resume-analysis backend
type Server struct {
	config     *Config
	log        zerolog.Logger
	httpServer *http.Server
	listener   net.Listener

	mu      sync.RWMutex
	records []types.ResumeRecord
	nextID  int
	logs    []RequestLog

	now func() time.Time
}

// NewServer creates a new mock backend
func NewServer(config *Config, log zerolog.Logger) *Server {
	if config.Port == 0 {
		config.Port = 8000
	}
	if config.Host == "" {
		config.Host = "localhost"
	}

	s := &Server{
		config:  config,
		log:     log,
		records: make([]types.ResumeRecord, 0, len(config.Seed)),
		nextID:  1,
		logs:    make([]RequestLog, 0),
		now:     time.Now,
	}

	for _, seed := range config.Seed {
		uploadedAt := seed.UploadedAt
		if uploadedAt == "" {
			uploadedAt = s.now().Format(backendLayout)
		}
		s.records = append(s.records, types.ResumeRecord{
			ID:         s.allocID(),
			Filename:   seed.Filename,
			UploadedAt: types.ParseTimestamp(uploadedAt),
			Analysis:   seed.Analysis,
		})
	}

	return s
}

// Handler returns the HTTP handler serving both backend routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(uploadRoute, s.handleUpload)
	mux.HandleFunc(listRoute, s.handleList)
	return mux
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("mock backend stopped")
		}
	}()

	s.log.Info().Str("addr", s.GetAddress()).Msg("mock backend listening")
	return nil
}

// Stop stops the mock backend
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// GetAddress returns the server base URL
func (s *Server) GetAddress() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port)))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	entry := RequestLog{Timestamp: start, Method: r.Method, Path: r.URL.Path, RequestID: r.Header.Get("X-Request-ID")}
	defer func() {
		entry.Duration = time.Since(start)
		s.logRequest(entry)
	}()

	if r.Method != http.MethodPost {
		entry.Status = http.StatusMethodNotAllowed
		writeError(w, entry.Status, "", "Method Not Allowed")
		return
	}

	delay(s.config.Upload.Delay)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		entry.Status = http.StatusUnprocessableEntity
		writeError(w, entry.Status, "", "field required: file")
		return
	}
	file.Close()
	entry.Filename = header.Filename

	if s.config.Upload.Fails() {
		entry.Status = s.config.Upload.Status
		writeError(w, entry.Status, s.config.Upload.Message, s.config.Upload.Detail)
		return
	}

	analysis := s.config.Analysis
	if analysis == nil {
		analysis = synthesizeAnalysis(header.Filename)
	}

	s.mu.Lock()
	s.records = append(s.records, types.ResumeRecord{
		ID:         s.allocID(),
		Filename:   header.Filename,
		UploadedAt: types.ParseTimestamp(s.now().Format(backendLayout)),
		Analysis:   analysis,
	})
	s.mu.Unlock()

	entry.Status = http.StatusOK
	writeJSON(w, entry.Status, map[string]any{"analysis": analysis})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	entry := RequestLog{Timestamp: start, Method: r.Method, Path: r.URL.Path, RequestID: r.Header.Get("X-Request-ID")}
	defer func() {
		entry.Duration = time.Since(start)
		s.logRequest(entry)
	}()

	if r.Method != http.MethodGet {
		entry.Status = http.StatusMethodNotAllowed
		writeError(w, entry.Status, "", "Method Not Allowed")
		return
	}

	delay(s.config.List.Delay)

	if s.config.List.Fails() {
		entry.Status = s.config.List.Status
		writeError(w, entry.Status, s.config.List.Message, s.config.List.Detail)
		return
	}

	entry.Status = http.StatusOK
	writeJSON(w, entry.Status, s.Records())
}

// Records returns a copy of the stored records
func (s *Server) Records() []types.ResumeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.ResumeRecord, len(s.records))
	copy(out, s.records)
	return out
}

// allocID must be called with mu held or before the server is shared
func (s *Server) allocID() types.RecordID {
	id := types.NumberID(int64(s.nextID))
	s.nextID++
	return id
}

// logRequest adds a request to the log
func (s *Server) logRequest(entry RequestLog) {
	s.log.Debug().
		Str("method", entry.Method).
		Str("path", entry.Path).
		Int("status", entry.Status).
		Str("request_id", entry.RequestID).
		Dur("duration", entry.Duration).
		Msg("mock request")

	if !s.config.Logging {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}
}

// GetLogs returns all logged requests
func (s *Server) GetLogs() []RequestLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

func delay(ms int) {
	if ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}

// synthesizeAnalysis builds a plausible analysis from the uploaded filename
func synthesizeAnalysis(filename string) *types.AnalysisResult {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	name := strings.Join(strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	}), " ")

	return &types.AnalysisResult{
		Name:         types.StringPtr(name),
		CoreSkills:   []string{},
		SoftSkills:   []string{},
		Rating:       types.StringPtr("5/10"),
		Improvements: types.StringPtr("Add measurable outcomes to each role"),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	body := map[string]string{}
	if message != "" {
		body["message"] = message
	}
	if detail != "" {
		body["detail"] = detail
	}
	writeJSON(w, status, body)
}
