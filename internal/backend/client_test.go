package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/resumedesk/internal/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return c, srv
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestUpload_SendsMultipartAndDecodesAnalysis(t *testing.T) {
	var gotName, gotContent, gotType, gotRequestID, gotAuth string

	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload-resume/", r.URL.Path)

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotName = hdr.Filename
		gotContent = string(data)
		gotType = hdr.Header.Get("Content-Type")
		gotRequestID = r.Header.Get(RequestIDHeader)
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"analysis":{"name":"Jane Doe","email":"jane@x.com","core_skills":["Go","SQL"],"soft_skills":["Leadership"],"rating":"8/10","improvements":"","upskill":"Cloud"}}`)
	})
	_ = srv

	file := types.NewResumeFileFromBytes("jane.pdf", []byte("%PDF-1.7 body"))
	result, err := c.Upload(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, "jane.pdf", gotName)
	assert.Equal(t, "%PDF-1.7 body", gotContent)
	assert.Equal(t, "application/pdf", gotType)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, gotRequestID, result.RequestID)
	assert.Empty(t, gotAuth)
	assert.Equal(t, http.StatusOK, result.Status)

	want := &types.AnalysisResult{
		Name:         types.StringPtr("Jane Doe"),
		Email:        types.StringPtr("jane@x.com"),
		CoreSkills:   []string{"Go", "SQL"},
		SoftSkills:   []string{"Leadership"},
		Rating:       types.StringPtr("8/10"),
		Improvements: types.StringPtr(""),
		Upskill:      types.StringPtr("Cloud"),
	}
	assert.Equal(t, want, result.Analysis)
}

func TestUpload_SuccessWithoutAnalysis(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": 3}`)
	})

	result, err := c.Upload(context.Background(), types.NewResumeFileFromBytes("a.pdf", []byte("x")))
	require.NoError(t, err)
	assert.Nil(t, result.Analysis)
}

func TestUpload_BackendErrorFields(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantDetail  string
	}{
		{"message field", 400, `{"message":"File too large"}`, "File too large", ""},
		{"detail field", 422, `{"detail":"Only PDF supported"}`, "", "Only PDF supported"},
		{"both fields", 500, `{"message":"m","detail":"d"}`, "m", "d"},
		{"validation list detail", 422, `{"detail":[{"loc":["body","file"],"msg":"field required"}]}`, "", ""},
		{"not json", 502, `<html>Bad Gateway</html>`, "", ""},
		{"empty body", 500, ``, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := c.Upload(context.Background(), types.NewResumeFileFromBytes("a.pdf", []byte("x")))
			require.Error(t, err)

			var be *BackendError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.status, be.Status)
			assert.Equal(t, tt.wantMessage, be.Message)
			assert.Equal(t, tt.wantDetail, be.Detail)
			assert.NotEmpty(t, be.RequestID)
			assert.Equal(t, tt.status, StatusOf(err))
		})
	}
}

func TestBackendError_LongBodyCutOnRuneBoundary(t *testing.T) {
	be := &BackendError{Op: "upload", Status: 500, Body: strings.Repeat("é", 300)}

	msg := be.Error()
	assert.True(t, utf8.ValidString(msg))
	text := strings.TrimPrefix(msg, "upload: backend returned status 500: ")
	assert.Equal(t, 200, utf8.RuneCountInString(text))
	assert.True(t, strings.HasSuffix(text, "é..."))

	short := &BackendError{Op: "upload", Status: 500, Body: strings.Repeat("é", 200)}
	assert.NotContains(t, short.Error(), "...")
}

func TestMessageOrDetailOr(t *testing.T) {
	be := &BackendError{Status: 400, Message: "X", Detail: "Y"}
	wrapped := errors.Join(errors.New("context"), be)

	assert.Equal(t, "X", MessageOr(wrapped, "fallback"))
	assert.Equal(t, "Y", DetailOr(wrapped, "fallback"))
	assert.Equal(t, "fallback", MessageOr(&BackendError{Detail: "Y"}, "fallback"))
	assert.Equal(t, "fallback", DetailOr(&BackendError{Message: "X"}, "fallback"))
	assert.Equal(t, "fallback", MessageOr(errors.New("boom"), "fallback"))
}

func TestUpload_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: url})
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), types.NewResumeFileFromBytes("a.pdf", []byte("x")))
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "upload", te.Op)
	assert.NotEmpty(t, RequestIDOf(err))
	assert.Equal(t, "fallback", MessageOr(err, "fallback"))
}

func TestUpload_NilFile(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := c.Upload(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestUpload_BearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"analysis":{}}`)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Token: "s3cret"})
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), types.NewResumeFileFromBytes("a.pdf", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "Bearer s3cret", gotAuth)
}

func TestUpload_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), types.NewResumeFileFromBytes("a.pdf", []byte("x")))
	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestListResumes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/resumes/", r.URL.Path)
		io.WriteString(w, `[{"id":1,"filename":"a.pdf","uploaded_at":"2024-03-01T09:00:00","analysis":null},
			{"id":2,"filename":"b.pdf","uploaded_at":"2024-03-02T09:00:00","analysis":{"name":"B"}}]`)
	})

	records, err := c.ListResumes(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a.pdf", records[0].Filename)
	assert.Nil(t, records[0].Analysis)
	assert.Equal(t, "B", types.OrNA(records[1].Analysis.Name))
}

func TestListResumes_EmptyAndNull(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		})
		records, err := c.ListResumes(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	}
}

func TestListResumes_Errors(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"detail":"db down"}`)
	})
	_, err := c.ListResumes(context.Background())
	var be *BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "db down", be.Detail)
	assert.Contains(t, err.Error(), "503")

	c, _ = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"not":"a list"}`)
	})
	_, err = c.ListResumes(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "decode"))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "512B", FormatSize(512))
	assert.Equal(t, "2.00KB", FormatSize(2048))
	assert.Equal(t, "2.00MB", FormatSize(2*1024*1024))
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "1.50s", FormatDuration(1500*time.Millisecond))
}
