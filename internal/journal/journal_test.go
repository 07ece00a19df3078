package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/migrations"
	"github.com/studiowebux/resumedesk/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_RefusesNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// reopening an up-to-date journal is fine
	s, err = Open(path)
	require.NoError(t, err)
	_, err = s.db.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", migrations.Latest()+1, "from the future")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path)
	assert.ErrorIs(t, err, ErrNewerSchema)
}

func TestStore_RecordAndList(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Record(types.JournalEntry{
		Timestamp: "2024-03-01T09:00:00Z",
		Source:    SourceCLI,
		Filename:  "old.pdf",
		Status:    500,
		Error:     "boom",
	})
	require.NoError(t, err)

	id, err := s.Record(types.JournalEntry{
		Timestamp: "2024-03-02T09:00:00Z",
		Source:    SourceUploadPanel,
		Filename:  "jane.pdf",
		Size:      42,
		MediaType: "application/pdf",
		Status:    200,
		RequestID: "req-1",
		Analysis:  &types.AnalysisResult{Name: types.StringPtr("Jane Doe"), CoreSkills: []string{"Go"}},
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	entries, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "jane.pdf", entries[0].Filename)
	assert.Equal(t, "req-1", entries[0].RequestID)
	assert.Equal(t, int64(42), entries[0].Size)
	require.NotNil(t, entries[0].Analysis)
	assert.Equal(t, "Jane Doe", types.OrNA(entries[0].Analysis.Name))
	assert.Empty(t, entries[0].Error)

	assert.Equal(t, "old.pdf", entries[1].Filename)
	assert.Equal(t, "boom", entries[1].Error)
	assert.Nil(t, entries[1].Analysis)

	limited, err := s.List(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStore_Clear(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.Record(types.JournalEntry{Source: SourceCLI, Filename: "a.pdf"})
		require.NoError(t, err)
	}

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, s.Clear())

	entries, err := s.List(0)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

type stubUploader struct {
	result *backend.UploadResult
	err    error
	calls  int
}

func (s *stubUploader) Upload(ctx context.Context, file *types.ResumeFile) (*backend.UploadResult, error) {
	s.calls++
	return s.result, s.err
}

type failingRecorder struct{}

func (failingRecorder) Record(types.JournalEntry) (int64, error) {
	return 0, errors.New("disk full")
}

func TestRecordingUploader_Success(t *testing.T) {
	s := openTestStore(t)
	next := &stubUploader{result: &backend.UploadResult{
		Status:    201,
		RequestID: "abc",
		Analysis:  &types.AnalysisResult{Email: types.StringPtr("j@x.com")},
	}}

	up := NewRecordingUploader(next, s, SourceUploadPanel, zerolog.Nop())
	res, err := up.Upload(context.Background(), types.NewResumeFileFromBytes("cv.pdf", []byte("%PDF")))
	require.NoError(t, err)
	assert.Same(t, next.result, res)

	entries, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, SourceUploadPanel, entries[0].Source)
	assert.Equal(t, 201, entries[0].Status)
	assert.Equal(t, "abc", entries[0].RequestID)
	assert.Equal(t, "application/pdf", entries[0].MediaType)
}

func TestRecordingUploader_Failure(t *testing.T) {
	s := openTestStore(t)
	next := &stubUploader{err: &backend.BackendError{Op: "upload", Status: 413, Message: "too big", RequestID: "r9"}}

	up := NewRecordingUploader(next, s, SourceListPanel, zerolog.Nop())
	_, err := up.Upload(context.Background(), types.NewResumeFileFromBytes("cv.pdf", []byte("x")))
	require.Error(t, err)

	entries, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 413, entries[0].Status)
	assert.Equal(t, "r9", entries[0].RequestID)
	assert.NotEmpty(t, entries[0].Error)
}

func TestRecordingUploader_JournalFailureDoesNotChangeOutcome(t *testing.T) {
	next := &stubUploader{result: &backend.UploadResult{Status: 200}}
	up := NewRecordingUploader(next, failingRecorder{}, SourceCLI, zerolog.Nop())

	res, err := up.Upload(context.Background(), types.NewResumeFileFromBytes("cv.pdf", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, 200, res.Status)
	assert.Equal(t, 1, next.calls)
}

func TestNewRecordingUploader_NilRecorder(t *testing.T) {
	next := &stubUploader{}
	assert.Same(t, backend.Uploader(next), NewRecordingUploader(next, nil, SourceCLI, zerolog.Nop()))
}
