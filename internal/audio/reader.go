package audio

import (
	"errors"
	"os"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
)

// Metadata holds the tag fields the library works with.
type Metadata struct {
	Title  string
	Artist string
	Album  string
	Genre  string
}

// Reader reads tags from every supported format.
//
// A file without tags yields empty Metadata and a nil error.
//
// Example:
//
//	r := audio.NewReader()
//	meta, err := r.ReadMetadata("/music/Artist/Album/01 Song.aiff")
//	fmt.Println(meta.Genre) // "Rock; Indie"
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadMetadata reads title, artist, album and genre from path.
func (r *Reader) ReadMetadata(path string) (Metadata, error) {
	switch FormatOf(path) {
	case FormatMP3, FormatM4A:
		return readTagged(path)
	case FormatAIFF:
		return readChunked(aiffLayout, path)
	case FormatWAV:
		return readChunked(wavLayout, path)
	case FormatCAF:
		entries, err := readCAFInfo(path)
		if err != nil {
			return Metadata{}, err
		}
		return Metadata{
			Title:  cafValue(entries, "title"),
			Artist: cafValue(entries, "artist"),
			Album:  cafValue(entries, "album"),
			Genre:  cafValue(entries, "genre"),
		}, nil
	default:
		return Metadata{}, unsupported(path)
	}
}

// ReadTitle returns the title tag of path.
func (r *Reader) ReadTitle(path string) (string, error) {
	meta, err := r.ReadMetadata(path)
	return meta.Title, err
}

// ReadGenre returns the raw genre tag of path.
func (r *Reader) ReadGenre(path string) (string, error) {
	meta, err := r.ReadMetadata(path)
	return meta.Genre, err
}

func readTagged(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return Metadata{}, nil
	}
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Genre:  m.Genre(),
	}, nil
}

func readChunked(l riffLayout, path string) (Metadata, error) {
	t, err := l.readTag(path)
	if err != nil {
		return Metadata{}, err
	}
	if t == nil {
		return Metadata{}, nil
	}
	return fromID3(t), nil
}

func fromID3(t *id3v2.Tag) Metadata {
	return Metadata{
		Title:  t.Title(),
		Artist: t.Artist(),
		Album:  t.Album(),
		Genre:  t.Genre(),
	}
}
