package audio

import (
	"strings"
	"testing"

	"github.com/handiism/playlist-generator/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, false)

	content := creator.CreatePlaylist(createTestPlaylist())

	want := "/music/Test Artist/Test Album/track1.mp3\n/music/Test Artist/Other/track3.m4a\n"
	if content != want {
		t.Errorf("M3U content = %q, want %q", content, want)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)

	content := creator.CreatePlaylist(createTestPlaylist())

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,Test Artist - Track One\n") {
		t.Errorf("Extended M3U should contain #EXTINF for the first row, got %q", content)
	}
}

func TestPlaylistCreator_SkipsExcludedRows(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, false)

	content := creator.CreatePlaylist(createTestPlaylist())

	if strings.Contains(content, "track2.mp3") {
		t.Error("excluded rows should not be written")
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatPLS, false)

	content := creator.CreatePlaylist(createTestPlaylist())

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=/music/Test Artist/Test Album/track1.mp3") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should count only included rows")
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatWPL, false)

	content := creator.CreatePlaylist(createTestPlaylist())

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<title>Mix</title>") {
		t.Error("WPL should carry the playlist name")
	}
	if !strings.Contains(content, "<media src=") {
		t.Error("WPL should contain media elements")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatZPL, false)

	content := creator.CreatePlaylist(createTestPlaylist())

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, `albumTitle="Test Album"`) {
		t.Error("ZPL should contain albumTitle attribute")
	}
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	p := &model.Playlist{
		Name: "Rock & <Roll>",
		Rows: []model.PlaylistRow{{
			Title:    `Track & "Quote"`,
			Album:    "Album <Special>",
			Artist:   "Artist & Co",
			Path:     "/music/Artist & Co/Album <Special>/t.mp3",
			Included: true,
		}},
	}

	content := NewPlaylistCreator(model.PlaylistFormatZPL, false).CreatePlaylist(p)

	if strings.Contains(content, "<Special>") || strings.Contains(content, "<Roll>") {
		t.Error("ZPL should escape < and >")
	}
	if !strings.Contains(content, "Artist &amp; Co") {
		t.Error("ZPL should escape & as &amp;")
	}
	if !strings.Contains(content, "&quot;Quote&quot;") {
		t.Error("ZPL should escape quotes")
	}
}

func createTestPlaylist() *model.Playlist {
	return &model.Playlist{
		Name: "Mix",
		Rows: []model.PlaylistRow{
			{Title: "Track One", Album: "Test Album", Artist: "Test Artist", Path: "/music/Test Artist/Test Album/track1.mp3", Included: true},
			{Title: "Track Two", Album: "Test Album", Artist: "Test Artist", Path: "/music/Test Artist/Test Album/track2.mp3", Included: false},
			{Title: "Track Three", Album: "Other", Artist: "Test Artist", Path: "/music/Test Artist/Other/track3.m4a", Included: true},
		},
	}
}
