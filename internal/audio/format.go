package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFileType is returned for files whose extension has no
	// tag reader or writer.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrInvalidContainer is returned when an AIFF, WAV or CAF file does not
	// have the expected chunk layout.
	ErrInvalidContainer = errors.New("invalid container")
)

// Format identifies how a file's tags are stored.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3            // ID3v2 at file start
	FormatM4A            // iTunes ilst atoms
	FormatAIFF           // ID3 chunk in a big-endian IFF container
	FormatWAV            // ID3 chunk in a little-endian RIFF container
	FormatCAF            // info chunk in a Core Audio container
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "mp3":
		return FormatMP3
	case "m4a", "mp4":
		return FormatM4A
	case "aif", "aiff":
		return FormatAIFF
	case "wav":
		return FormatWAV
	case "caf":
		return FormatCAF
	default:
		return FormatUnknown
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatM4A:
		return "m4a"
	case FormatAIFF:
		return "aiff"
	case FormatWAV:
		return "wav"
	case FormatCAF:
		return "caf"
	default:
		return "unknown"
	}
}

// IsAudio reports whether path has one of the supported audio extensions.
func IsAudio(path string) bool {
	return FormatOf(path) != FormatUnknown
}

func unsupported(path string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Ext(path))
}
