package audio

import (
	"context"
	"fmt"
	"os"

	"github.com/bogem/id3v2"
	"github.com/rs/zerolog"
	"github.com/zhaarey/go-mp4tag"

	ioutils "github.com/handiism/playlist-generator/internal/io"
)

// Tagger writes the genre tag of audio files.
//
// Files are never modified in place: each format writes a complete new
// file next to the original and moves it over the original, so a failed
// write leaves the original untouched.
//
// Supported formats:
//   - mp3: ID3v2 TCON frame
//   - m4a: iTunes ©gen atom
//   - aif/aiff/wav: ID3v2 TCON frame inside an "ID3 " chunk
//   - caf: "genre" entry of the info chunk
//
// Example:
//
//	tagger := NewTagger(logger)
//	if err := tagger.WriteGenre("/music/A/B/01.m4a", "Rock"); errors.Is(err, ErrUnsupportedFileType) {
//	    // report and continue
//	}
type Tagger struct {
	log zerolog.Logger
}

// NewTagger creates a new Tagger.
func NewTagger(log zerolog.Logger) *Tagger {
	return &Tagger{log: log}
}

// WriteGenre replaces the genre tag of path with genre.
//
// Returns ErrUnsupportedFileType (wrapped, with the extension) for formats
// other than mp3, m4a, aif, aiff, wav and caf.
func (t *Tagger) WriteGenre(path, genre string) error {
	var err error
	switch FormatOf(path) {
	case FormatMP3:
		err = writeMP3Genre(path, genre)
	case FormatM4A:
		err = writeM4AGenre(path, genre)
	case FormatAIFF:
		err = aiffLayout.writeGenre(path, genre)
	case FormatWAV:
		err = wavLayout.writeGenre(path, genre)
	case FormatCAF:
		err = writeCAFGenre(path, genre)
	default:
		return unsupported(path)
	}
	if err != nil {
		return err
	}

	t.log.Debug().Str("path", path).Str("genre", genre).Msg("genre written")
	return nil
}

// writeMP3Genre relies on id3v2's Save, which writes the tagged copy to a
// sibling file and renames it over the original.
func writeMP3Genre(path, genre string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetGenre(genre)
	return tag.Save()
}

// writeM4AGenre tags a copy of the file and moves it over the original.
// mp4tag rewrites its target through a truncating copy, so it must never be
// pointed at the library file itself.
func writeM4AGenre(path, genre string) error {
	tmp, err := ioutils.TempSibling(path)
	if err != nil {
		return err
	}
	if err := ioutils.CopyFile(context.Background(), path, tmp); err != nil {
		os.Remove(tmp)
		return err
	}

	mp4, err := mp4tag.Open(tmp)
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("open mp4: %w", err)
	}
	if err := mp4.Write(&mp4tag.MP4Tags{CustomGenre: genre}, nil); err != nil {
		mp4.Close()
		os.Remove(tmp)
		return fmt.Errorf("write mp4 tags: %w", err)
	}
	if err := mp4.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return ioutils.ReplaceFile(tmp, path)
}
