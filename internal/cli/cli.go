package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/types"
	"golang.org/x/sync/errgroup"
)

// ErrUploadsFailed is returned when at least one file of a batch failed
var ErrUploadsFailed = errors.New("upload failed")

// OutputOptions are shared by every subcommand
type OutputOptions struct {
	Format   string // json, yaml, text
	Query    string // JMESPath applied to the JSON form before printing
	SavePath string
	Stdout   io.Writer
	Stderr   io.Writer
}

func (o OutputOptions) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o OutputOptions) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

// UploadOptions contains options for uploading documents in CLI mode
type UploadOptions struct {
	OutputOptions
	Files    []string
	Parallel int // concurrent uploads, minimum 1
}

// UploadOutcome is the result for one file of a batch
type UploadOutcome struct {
	File      string                `json:"file" yaml:"file"`
	Status    int                   `json:"status,omitempty" yaml:"status,omitempty"`
	RequestID string                `json:"requestId,omitempty" yaml:"requestId,omitempty"`
	Duration  string                `json:"duration,omitempty" yaml:"duration,omitempty"`
	Analysis  *types.AnalysisResult `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Error     string                `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the file produced no analysis
func (o UploadOutcome) Failed() bool {
	return o.Error != ""
}

// Upload sends every file and prints the outcomes in input order.
// All files are attempted; the error is ErrUploadsFailed if any failed.
func Upload(ctx context.Context, up backend.Uploader, opts UploadOptions, log zerolog.Logger) error {
	if len(opts.Files) == 0 {
		return fmt.Errorf("no files to upload")
	}

	outcomes := uploadAll(ctx, up, opts.Files, opts.Parallel, log)

	output, err := render(outcomes, opts.Format, opts.Query, func() string {
		return outcomesText(outcomes)
	})
	if err != nil {
		return err
	}
	if err := emit(opts.OutputOptions, output); err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(outcomes), ErrUploadsFailed)
	}
	return nil
}

// uploadAll runs at most parallel uploads at a time. Each outcome lands at
// its file's index, so output order does not depend on completion order.
func uploadAll(ctx context.Context, up backend.Uploader, paths []string, parallel int, log zerolog.Logger) []UploadOutcome {
	outcomes := make([]UploadOutcome, len(paths))

	var g errgroup.Group
	g.SetLimit(max(parallel, 1))

	for i, path := range paths {
		g.Go(func() error {
			outcomes[i] = uploadOne(ctx, up, path, log)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func uploadOne(ctx context.Context, up backend.Uploader, path string, log zerolog.Logger) UploadOutcome {
	outcome := UploadOutcome{File: path}

	file, err := types.NewResumeFile(path)
	if err != nil {
		outcome.Error = err.Error()
		log.Error().Err(err).Str("file", path).Msg("failed to open resume")
		return outcome
	}

	log.Debug().Str("file", file.Name).Int64("size", file.Size).Str("media_type", file.MediaType).Msg("uploading resume")

	result, err := up.Upload(ctx, file)
	if err != nil {
		outcome.Status = backend.StatusOf(err)
		outcome.RequestID = backend.RequestIDOf(err)
		outcome.Error = err.Error()
		log.Error().
			Err(err).
			Str("file", file.Name).
			Int("status", outcome.Status).
			Str("request_id", outcome.RequestID).
			Msg("failed to upload resume")
		return outcome
	}

	outcome.Status = result.Status
	outcome.RequestID = result.RequestID
	outcome.Duration = backend.FormatDuration(result.Duration)
	outcome.Analysis = result.Analysis
	if result.Analysis == nil {
		outcome.Error = backend.ErrNoAnalysis.Error()
	}

	log.Info().
		Str("file", file.Name).
		Int("status", result.Status).
		Str("request_id", result.RequestID).
		Dur("duration", result.Duration).
		Msg("resume uploaded")
	return outcome
}

// List fetches and prints the stored resume records
func List(ctx context.Context, lister backend.Lister, opts OutputOptions, log zerolog.Logger) error {
	records, err := lister.ListResumes(ctx)
	if err != nil {
		log.Error().
			Err(err).
			Int("status", backend.StatusOf(err)).
			Str("request_id", backend.RequestIDOf(err)).
			Msg("failed to fetch resumes")
		return fmt.Errorf("failed to fetch resumes: %w", err)
	}
	log.Debug().Int("count", len(records)).Msg("fetched resumes")

	output, err := render(records, opts.Format, opts.Query, func() string {
		return recordsText(records)
	})
	if err != nil {
		return err
	}
	return emit(opts, output)
}

// JournalStore is the part of the upload journal the CLI reads and clears
type JournalStore interface {
	List(limit int) ([]types.JournalEntry, error)
	Count() (int, error)
	Clear() error
}

// JournalOptions contains options for the journal command
type JournalOptions struct {
	OutputOptions
	Limit int
	Clear bool
}

// Journal prints recent upload attempts, or clears them
func Journal(store JournalStore, opts JournalOptions) error {
	if opts.Clear {
		count, err := store.Count()
		if err != nil {
			return fmt.Errorf("failed to count journal entries: %w", err)
		}
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear journal: %w", err)
		}
		fmt.Fprintf(opts.stderr(), "Cleared %d journal entries\n", count)
		return nil
	}

	entries, err := store.List(opts.Limit)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	output, err := render(entries, opts.Format, opts.Query, func() string {
		return journalText(entries)
	})
	if err != nil {
		return err
	}
	return emit(opts.OutputOptions, output)
}

// IsInteractive checks if stdin is a terminal (not piped)
func IsInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
