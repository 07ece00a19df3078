package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/studiowebux/resumedesk/internal/backend"
	"github.com/studiowebux/resumedesk/internal/cli"
	"github.com/studiowebux/resumedesk/internal/config"
	"github.com/studiowebux/resumedesk/internal/journal"
	"github.com/studiowebux/resumedesk/internal/keybinds"
	"github.com/studiowebux/resumedesk/internal/logging"
	"github.com/studiowebux/resumedesk/internal/mock"
	"github.com/studiowebux/resumedesk/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "resumedesk",
	Short: "Resume Desk - upload resumes and browse their analyses",
	Long: `Resume Desk is a terminal client for a resume-analysis backend.

Run without arguments to start the TUI. The subcommands work without a terminal.

Examples:
  resumedesk                                 # Start interactive TUI
  resumedesk upload cv.pdf                   # Upload and print the analysis
  resumedesk upload *.pdf --parallel 4 -o json
  resumedesk list -q "[].filename"           # Query the stored resumes
  resumedesk journal --limit 20              # Recent upload attempts
  resumedesk keybinds                        # Check ~/.resumedesk/keybinds.json
  resumedesk mock --config mock.yaml         # Serve a local fake backend`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload resumes and print their analyses",
	Long: `Upload one or more PDF or Word documents for analysis.

Without arguments on a terminal, pick the files from the current directory.
The exit status is non-zero if any upload failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(cmd, args)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded resumes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd)
	},
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show or clear the local upload journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJournal(cmd)
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Check the keybindings file",
	Long: `Validate ~/.resumedesk/keybinds.json and report conflicts.

--init writes the default bindings to that path when it does not exist yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeybinds(cmd)
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run an in-memory resume-analysis backend",
	Long: `Serve /upload-resume/ and /resumes/ from memory.

--config names a mock config file (.yaml or .json) setting the canned
analysis, seed records and failure modes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMock(cmd)
	},
}

// Persistent flags
var (
	flagAPIURL  string
	flagToken   string
	flagConfig  string
	flagVerbose bool
)

// Output flags for upload/list/journal
var (
	flagOutput string
	flagQuery  string
	flagSave   string
)

var (
	flagParallel     int
	flagJournalLimit int
	flagJournalClear bool
	flagMockPort     int
	flagMockExport   string
	flagKeybindsInit bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Backend base URL (default "+config.DefaultAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token for the backend")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Settings file (default ~/.resumedesk/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log to stderr at debug level")

	for _, cmd := range []*cobra.Command{uploadCmd, listCmd, journalCmd} {
		cmd.Flags().StringVarP(&flagOutput, "output", "o", cli.FormatText, "Output format (json/yaml/text)")
		cmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query applied to the JSON output")
		cmd.Flags().StringVarP(&flagSave, "save", "s", "", "Save output to file")
	}

	uploadCmd.Flags().IntVarP(&flagParallel, "parallel", "p", 1, "Number of concurrent uploads")

	journalCmd.Flags().IntVarP(&flagJournalLimit, "limit", "n", 50, "Number of entries to show (0 for all)")
	journalCmd.Flags().BoolVar(&flagJournalClear, "clear", false, "Delete every journal entry")

	mockCmd.Flags().IntVar(&flagMockPort, "port", 0, "Port to listen on (overrides the config file)")
	mockCmd.Flags().StringVar(&flagMockExport, "export", "", "Write the effective mock config to this file and exit")

	keybindsCmd.Flags().BoolVar(&flagKeybindsInit, "init", false, "Write the default keybindings file")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(mockCmd)
}

// app holds everything a command needs after startup
type app struct {
	settings *config.Settings
	log      zerolog.Logger
	client   *backend.Client
	journal  *journal.Store
	closers  []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}

// uploader wraps the client with the journal when it is enabled
func (a *app) uploader(source string) backend.Uploader {
	if a.journal == nil {
		return a.client
	}
	return journal.NewRecordingUploader(a.client, a.journal, source, a.log)
}

// setup loads settings, builds the logger, the backend client and the journal.
// Console logging is only used outside the TUI.
func setup(console bool) (*app, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	settingsPath := flagConfig
	if settingsPath == "" {
		settingsPath = config.GetSettingsFilePath()
	}

	overrides := config.Overrides{APIURL: flagAPIURL, APIToken: flagToken}
	if flagVerbose {
		overrides.LogLevel = "debug"
	}
	settings, err := config.Load(settingsPath, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	log, logCloser, err := logging.Setup(logging.Options{
		Level:   settings.LogLevel,
		File:    config.LogFile,
		Console: console && flagVerbose,
	})
	if err != nil {
		return nil, err
	}
	a := &app{settings: settings, log: log, closers: []io.Closer{logCloser}}

	a.client, err = backend.New(backend.Config{
		BaseURL:   settings.APIURL,
		Token:     settings.APIToken,
		Timeout:   settings.Timeout(),
		TLS:       settings.TLS,
		UserAgent: "resumedesk/" + version,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	if settings.JournalEnabled() {
		store, err := journal.Open(config.DatabasePath)
		if err != nil {
			// uploads still work without the journal
			log.Warn().Err(err).Str("path", config.DatabasePath).Msg("journal disabled")
		} else {
			a.journal = store
			a.closers = append(a.closers, store)
		}
	}

	log.Debug().
		Str("api_url", settings.APIURL).
		Dur("timeout", settings.Timeout()).
		Bool("journal", a.journal != nil).
		Msg("resumedesk started")

	return a, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func outputOptions() cli.OutputOptions {
	return cli.OutputOptions{
		Format:   flagOutput,
		Query:    flagQuery,
		SavePath: flagSave,
	}
}

// runTUI starts the interactive TUI
func runTUI(cmd *cobra.Command) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.Close()

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile, a.log)
	if err != nil {
		a.log.Warn().Err(err).Str("path", config.KeybindsFile).Msg("using default keybindings")
		registry = keybinds.NewDefaultRegistry()
	}

	ctx, cancel := signalContext()
	defer cancel()

	err = tui.Run(tui.Options{
		Context:      ctx,
		Uploader:     a.uploader(journal.SourceUploadPanel),
		ListUploader: a.uploader(journal.SourceListPanel),
		Lister:       a.client,
		Keybinds:     registry,
		Logger:       a.log,
		StartDir:     a.settings.ResolveStartDir(),
		BaseURL:      a.client.BaseURL(),
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runUpload uploads files in CLI mode
func runUpload(cmd *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		if !cli.IsInteractive() {
			return fmt.Errorf("no files given (pass paths or run on a terminal to pick them)")
		}
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		files, err = cli.PromptForResumes(wd)
		if err != nil {
			return err
		}
	}

	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext()
	defer cancel()

	return cli.Upload(ctx, a.uploader(journal.SourceCLI), cli.UploadOptions{
		OutputOptions: outputOptions(),
		Files:         files,
		Parallel:      flagParallel,
	}, a.log)
}

// runList prints the stored resumes
func runList(cmd *cobra.Command) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext()
	defer cancel()

	return cli.List(ctx, a.client, outputOptions(), a.log)
}

// runJournal shows or clears the upload journal
func runJournal(cmd *cobra.Command) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.journal == nil {
		return fmt.Errorf("journal is disabled (set journal: true in %s)", config.GetSettingsFilePath())
	}

	return cli.Journal(a.journal, cli.JournalOptions{
		OutputOptions: outputOptions(),
		Limit:         flagJournalLimit,
		Clear:         flagJournalClear,
	})
}

// runKeybinds validates the keybindings file, or creates it with --init
func runKeybinds(cmd *cobra.Command) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	out := cmd.OutOrStdout()

	if flagKeybindsInit {
		if err := keybinds.CreateExampleConfig(config.KeybindsFile); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote default keybindings to %s\n", config.KeybindsFile)
		return nil
	}

	result, err := keybinds.CheckFile(config.KeybindsFile)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(out, "%s does not exist, the defaults are in use (create it with --init)\n", config.KeybindsFile)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, result.String())
	return result.Err()
}

// runMock serves the in-memory backend until interrupted
func runMock(cmd *cobra.Command) error {
	level := "info"
	if flagVerbose {
		level = "debug"
	}
	log, closer, err := logging.Setup(logging.Options{Level: level, Console: true})
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg := &mock.Config{Logging: true}
	if flagConfig != "" {
		cfg, err = mock.LoadConfig(flagConfig)
		if err != nil {
			return err
		}
	}
	if flagMockPort != 0 {
		cfg.Port = flagMockPort
	}

	if flagMockExport != "" {
		if err := mock.SaveConfig(cfg, flagMockExport); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote mock config to %s\n", flagMockExport)
		return nil
	}

	server := mock.NewServer(cfg, log)
	if err := server.Start(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(os.Stderr, "Mock backend listening on %s (ctrl+c to stop)\n", server.GetAddress())
	<-ctx.Done()

	if err := server.Stop(); err != nil {
		return fmt.Errorf("failed to stop mock backend: %w", err)
	}
	log.Info().Int("requests", len(server.GetLogs())).Msg("mock backend stopped")
	return nil
}
