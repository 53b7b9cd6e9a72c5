// Package audio reads and writes audio file tags and renders playlist files.
//
// # Tags
//
// The Reader returns the title, artist, album and genre of a file:
//
//	r := audio.NewReader()
//	meta, err := r.ReadMetadata(path)
//
// The Tagger replaces the genre:
//
//	tagger := audio.NewTagger(logger)
//	err := tagger.WriteGenre(path, "Alternative Rock")
//
// Supported formats, chosen by file extension:
//   - MP3 (ID3v2)
//   - M4A and MP4 (iTunes atoms)
//   - AIFF and WAV (ID3v2 chunk)
//   - CAF (info chunk)
//
// Any other extension yields ErrUnsupportedFileType.
//
// # Playlist Generation
//
// Render a reviewed playlist in various formats:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(playlist)
//	os.WriteFile("Road Trip.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
