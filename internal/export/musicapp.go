package export

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/handiism/playlist-generator/internal/model"
)

// ErrAutomationDenied is returned when macOS refuses to let this program
// control the Music application.
var ErrAutomationDenied = errors.New("automation permission denied: allow control of Music in System Settings > Privacy & Security > Automation")

// ErrEmptyPlaylist is returned when no row of the playlist is included.
var ErrEmptyPlaylist = errors.New("playlist has no included songs")

// appleEventNotPermitted is the AppleScript error number for a denied
// Apple Event (errAEEventNotPermitted).
const appleEventNotPermitted = "-1743"

// ScriptRunner executes an AppleScript source and returns its combined output.
type ScriptRunner func(ctx context.Context, script string) ([]byte, error)

// RunOSAScript runs script through osascript.
func RunOSAScript(ctx context.Context, script string) ([]byte, error) {
	return exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput()
}

// MusicApp creates a user playlist in the Music application.
type MusicApp struct {
	run ScriptRunner
	log zerolog.Logger
}

// NewMusicApp creates a MusicApp exporter. A nil run uses RunOSAScript.
func NewMusicApp(run ScriptRunner, log zerolog.Logger) *MusicApp {
	if run == nil {
		run = RunOSAScript
	}
	return &MusicApp{run: run, log: log}
}

// Export creates a playlist named p.Name holding the included songs, in order.
func (m *MusicApp) Export(ctx context.Context, p *model.Playlist) error {
	paths := p.IncludedPaths()
	if len(paths) == 0 {
		return ErrEmptyPlaylist
	}

	script := BuildScript(p.Name, paths)
	m.log.Debug().Str("playlist", p.Name).Int("songs", len(paths)).Msg("running AppleScript")

	out, err := m.run(ctx, script)
	if err != nil {
		if strings.Contains(string(out), appleEventNotPermitted) {
			return ErrAutomationDenied
		}
		return fmt.Errorf("create playlist %q in Music: %w: %s", p.Name, err, strings.TrimSpace(string(out)))
	}
	m.log.Info().Str("playlist", p.Name).Int("songs", len(paths)).Msg("playlist created in Music")
	return nil
}

// BuildScript returns the AppleScript that creates playlist name and adds
// the files at paths to it.
func BuildScript(name string, paths []string) string {
	var b strings.Builder
	b.WriteString("tell application \"Music\"\n")
	fmt.Fprintf(&b, "\tset newPlaylist to make new user playlist with properties {name:%s}\n", quote(name))
	b.WriteString("\ttry\n")
	for _, p := range paths {
		fmt.Fprintf(&b, "\t\tadd (POSIX file %s as alias) to newPlaylist\n", quote(p))
	}
	b.WriteString("\ton error errMsg\n")
	b.WriteString("\t\terror \"Error adding songs: \" & errMsg\n")
	b.WriteString("\tend try\n")
	b.WriteString("end tell\n")
	return b.String()
}

// quote returns s as an AppleScript string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
