package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/playlist-generator/internal/model"
)

// PlaylistCreator renders a reviewed playlist in one of the supported
// file formats.
//
// Entries are written with absolute paths, since a generated playlist
// spans many album folders and lives outside the library.
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(playlist)
//	os.WriteFile("Road Trip.m3u", []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Artist - Song Title
//	// /music/Artist/Album/01 Song Title.mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only affects M3U output.
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist renders the included rows of p.
func (c *PlaylistCreator) CreatePlaylist(p *model.Playlist) string {
	rows := p.Included()
	switch c.format {
	case model.PlaylistFormatPLS:
		return c.createPLS(rows)
	case model.PlaylistFormatWPL:
		return c.createWPL(p.Name, rows)
	case model.PlaylistFormatZPL:
		return c.createZPL(p.Name, rows)
	default:
		return c.createM3U(rows)
	}
}

// createM3U generates an M3U playlist.
//
// Durations are not known without decoding the audio, so extended entries
// use -1, which players read as "unknown".
func (c *PlaylistCreator) createM3U(rows []model.PlaylistRow) string {
	var sb strings.Builder

	if c.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, row := range rows {
		if c.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", row.Artist, row.Title))
		}
		sb.WriteString(row.Path + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist:
//
//	[playlist]
//	File1=/music/Artist/Album/song.mp3
//	Title1=Artist - Song Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (c *PlaylistCreator) createPLS(rows []model.PlaylistRow) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, row := range rows {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, row.Path))
		sb.WriteString(fmt.Sprintf("Title%d=%s - %s\n", idx, row.Artist, row.Title))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(rows)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (c *PlaylistCreator) createWPL(name string, rows []model.PlaylistRow) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(row.Path)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune playlist, which adds per-entry metadata to
// the WPL layout.
func (c *PlaylistCreator) createZPL(name string, rows []model.PlaylistRow) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	sb.WriteString("    <meta name=\"Generator\" content=\"PlaylistGenerator\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(rows)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" albumArtist=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\"/>\n",
			escapeXML(row.Path),
			escapeXML(row.Album),
			escapeXML(row.Artist),
			escapeXML(row.Title),
			escapeXML(row.Artist)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes & < > " and ' for use in XML text and attributes.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
