package journal

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/types"
)

// Sources recorded in the journal
const (
	SourceUploadPanel = "upload"
	SourceListPanel   = "list"
	SourceCLI         = "cli"
)

// Recorder is the write side of the journal
type Recorder interface {
	Record(entry types.JournalEntry) (int64, error)
}

// RecordingUploader wraps an Uploader and journals every attempt.
// Journal failures are logged and never change the upload outcome.
type RecordingUploader struct {
	next   backend.Uploader
	rec    Recorder
	source string
	log    zerolog.Logger
}

var _ backend.Uploader = (*RecordingUploader)(nil)

// NewRecordingUploader decorates next. A nil rec returns next unchanged.
func NewRecordingUploader(next backend.Uploader, rec Recorder, source string, log zerolog.Logger) backend.Uploader {
	if rec == nil {
		return next
	}
	return &RecordingUploader{next: next, rec: rec, source: source, log: log}
}

func (u *RecordingUploader) Upload(ctx context.Context, file *types.ResumeFile) (*backend.UploadResult, error) {
	result, err := u.next.Upload(ctx, file)
	if file == nil {
		return result, err
	}

	entry := types.JournalEntry{
		Source:    u.source,
		Filename:  file.Name,
		Size:      file.Size,
		MediaType: file.MediaType,
	}
	if err != nil {
		entry.Error = err.Error()
		entry.Status = backend.StatusOf(err)
		entry.RequestID = backend.RequestIDOf(err)
	} else if result != nil {
		entry.Status = result.Status
		entry.RequestID = result.RequestID
		entry.Analysis = result.Analysis
		if result.Analysis == nil {
			entry.Error = backend.ErrNoAnalysis.Error()
		}
	}

	if _, jerr := u.rec.Record(entry); jerr != nil {
		u.log.Warn().Err(jerr).Str("file", file.Name).Msg("failed to journal upload")
	}

	return result, err
}
