package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/handiism/playlist-generator/internal/app"
	"github.com/handiism/playlist-generator/internal/config"
	"github.com/handiism/playlist-generator/internal/logging"
	"github.com/handiism/playlist-generator/internal/progress"
)

// appContext is shared by all commands. It is filled in by the root
// command's PersistentPreRunE.
type appContext struct {
	configPath string
	library    string
	verbose    bool

	settings *config.Settings
	log      zerolog.Logger
	manager  *app.Manager
}

func newRootCommand() *cobra.Command {
	a := &appContext{}

	cmd := &cobra.Command{
		Use:           "playlistgen",
		Short:         "Generate weighted playlists from a local music library",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath(), "Path to config file (.yaml, .yml or .json)")
	cmd.PersistentFlags().StringVar(&a.library, "library", "", "Library root (overrides config)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Show verbose output")

	cmd.AddCommand(
		newListCommand(a),
		newGenresCommand(a),
		newPlaylistCommand(a),
		newPruneCommand(a),
		newConfigCommand(a),
	)
	return cmd
}

func (a *appContext) init(stderr io.Writer) error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := settings.ApplyEnv(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	// Apply flags
	if a.library != "" {
		settings.LibraryRoot = a.library
	}
	if a.verbose {
		settings.Verbose = true
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.settings = settings
	a.log = logging.New(stderr, settings.Verbose)
	a.manager = app.NewManager(settings, progressPrinter(stderr, settings.Verbose), a.log)
	return nil
}

// progressPrinter prints tracker events, hiding verbose ones unless asked.
func progressPrinter(w io.Writer, verbose bool) func(progress.Event) {
	return func(event progress.Event) {
		if event.Level == progress.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case progress.LevelError:
			prefix = "❌ "
		case progress.LevelWarning:
			prefix = "⚠️  "
		case progress.LevelSuccess:
			prefix = "✅ "
		case progress.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Fprintln(w, prefix+event.Message)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "playlistgen.yaml"
	}
	return filepath.Join(dir, "playlistgen", "config.yaml")
}

// printFailures prints itemised per-song failures under a heading.
func printFailures(w io.Writer, heading string, failures []string) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", heading, len(failures))
	for _, f := range failures {
		fmt.Fprintln(w, "  "+f)
	}
}
