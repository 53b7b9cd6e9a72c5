package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/handiism/playlist-generator/internal/app"
	"github.com/handiism/playlist-generator/internal/config"
	"github.com/handiism/playlist-generator/internal/logging"
	"github.com/handiism/playlist-generator/internal/tui"
)

func main() {
	var (
		configFlag  = flag.String("config", defaultConfigPath(), "Path to config file")
		libraryFlag = flag.String("library", "", "Library root (overrides config)")
		logFlag     = flag.String("log", "", "Write logs to this file")
	)
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := settings.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}
	if *libraryFlag != "" {
		settings.LibraryRoot = *libraryFlag
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	log := logging.New(logOut, settings.Verbose)

	if err := tui.Run(app.NewManager(settings, nil, log)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "playlistgen.yaml"
	}
	return filepath.Join(dir, "playlistgen", "config.yaml")
}
