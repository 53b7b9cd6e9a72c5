package export

import (
	"context"

	"github.com/handiism/playlist-generator/internal/model"
)

// Exporter delivers the included rows of a playlist.
type Exporter interface {
	Export(ctx context.Context, p *model.Playlist) error
}
