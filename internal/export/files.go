package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/handiism/playlist-generator/internal/audio"
	ioutils "github.com/handiism/playlist-generator/internal/io"
	"github.com/handiism/playlist-generator/internal/model"
)

// Files writes playlists as files into a directory.
type Files struct {
	dir     string
	format  model.PlaylistFormat
	creator *audio.PlaylistCreator
	log     zerolog.Logger
}

// NewFiles creates a Files exporter writing format into dir. extended only
// affects M3U output.
func NewFiles(dir string, format model.PlaylistFormat, extended bool, log zerolog.Logger) *Files {
	return &Files{
		dir:     dir,
		format:  format,
		creator: audio.NewPlaylistCreator(format, extended),
		log:     log,
	}
}

// Path returns the file a playlist named name is written to.
func (f *Files) Path(name string) string {
	base := ioutils.SanitizeFileName(name)
	if base == "" {
		base = "Playlist"
	}
	return filepath.Join(f.dir, base+f.format.Extension())
}

// Export writes the included rows of p, replacing any earlier file of the
// same name.
func (f *Files) Export(ctx context.Context, p *model.Playlist) error {
	if len(p.Included()) == 0 {
		return ErrEmptyPlaylist
	}
	if err := ioutils.EnsureDir(f.dir); err != nil {
		return fmt.Errorf("create playlist directory: %w", err)
	}

	path := f.Path(p.Name)
	if err := ioutils.WriteFile(ctx, path, []byte(f.creator.CreatePlaylist(p))); err != nil {
		return fmt.Errorf("write playlist: %w", err)
	}
	f.log.Info().Str("path", path).Msg("playlist written")
	return nil
}
