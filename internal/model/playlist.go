package model

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps "m3u", "pls", "wpl" and "zpl" to a format.
// Anything else is M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch s {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	case "zpl":
		return PlaylistFormatZPL
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatM3U:
		return ".m3u"
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// PlaylistRow is one reviewed playlist entry.
type PlaylistRow struct {
	Title    string
	Album    string
	Artist   string
	Path     string
	Included bool
}

// Playlist is an ordered, reviewable list of songs.
type Playlist struct {
	Name string
	Rows []PlaylistRow
}

// NewPlaylist builds a playlist with every row included, titles read
// through r.
func NewPlaylist(name string, songs []*Song, r TitleReader) *Playlist {
	rows := make([]PlaylistRow, 0, len(songs))
	for _, s := range songs {
		rows = append(rows, PlaylistRow{
			Title:    s.Title(r),
			Album:    s.Album,
			Artist:   s.Artist,
			Path:     s.Path,
			Included: true,
		})
	}
	return &Playlist{Name: name, Rows: rows}
}

// Toggle flips the Included flag of row i. Out of range indexes are ignored.
func (p *Playlist) Toggle(i int) {
	if i < 0 || i >= len(p.Rows) {
		return
	}
	p.Rows[i].Included = !p.Rows[i].Included
}

// Add appends an extra song, included. It reports false, leaving the
// playlist unchanged, when a row already plays s.Path.
func (p *Playlist) Add(s *Song, r TitleReader) bool {
	for _, row := range p.Rows {
		if row.Path == s.Path {
			return false
		}
	}
	p.Rows = append(p.Rows, PlaylistRow{
		Title:    s.Title(r),
		Album:    s.Album,
		Artist:   s.Artist,
		Path:     s.Path,
		Included: true,
	})
	return true
}

// Included returns the rows still included, in order.
func (p *Playlist) Included() []PlaylistRow {
	var rows []PlaylistRow
	for _, r := range p.Rows {
		if r.Included {
			rows = append(rows, r)
		}
	}
	return rows
}

// IncludedPaths returns the file paths of the included rows, in order.
func (p *Playlist) IncludedPaths() []string {
	var paths []string
	for _, r := range p.Rows {
		if r.Included {
			paths = append(paths, r.Path)
		}
	}
	return paths
}
