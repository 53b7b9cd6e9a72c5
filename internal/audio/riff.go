package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/bogem/id3v2"

	ioutils "github.com/handiism/playlist-generator/internal/io"
)

// riffLayout describes an IFF-style container: a 12 byte header followed
// by chunks of id[4] size[4] data, each padded to an even length.
type riffLayout struct {
	magic string
	forms []string
	order binary.ByteOrder
	id3ID string // id used when adding a tag chunk
}

var (
	aiffLayout = riffLayout{magic: "FORM", forms: []string{"AIFF", "AIFC"}, order: binary.BigEndian, id3ID: "ID3 "}
	wavLayout  = riffLayout{magic: "RIFF", forms: []string{"WAVE"}, order: binary.LittleEndian, id3ID: "id3 "}
)

type riffChunk struct {
	id     string
	offset int64 // start of chunk data
	size   int64
}

func isID3Chunk(id string) bool {
	return strings.EqualFold(id, "id3 ")
}

// scan returns the form type and the chunk table of r.
func (l riffLayout) scan(r io.ReadSeeker) (string, []riffChunk, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return "", nil, fmt.Errorf("read header: %w", ErrInvalidContainer)
	}
	form := string(hdr[8:12])
	if string(hdr[:4]) != l.magic || !slices.Contains(l.forms, form) {
		return "", nil, fmt.Errorf("not a %s file: %w", l.magic, ErrInvalidContainer)
	}

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return "", nil, err
	}

	var chunks []riffChunk
	pos := int64(12)
	for pos+8 <= end {
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return "", nil, err
		}
		var ch [8]byte
		if _, err := io.ReadFull(r, ch[:]); err != nil {
			return "", nil, err
		}
		size := int64(l.order.Uint32(ch[4:]))
		if pos+8+size > end {
			return "", nil, fmt.Errorf("chunk %q overruns file: %w", ch[:4], ErrInvalidContainer)
		}
		chunks = append(chunks, riffChunk{id: string(ch[:4]), offset: pos + 8, size: size})
		pos += 8 + size + size&1
	}
	return form, chunks, nil
}

// readTag returns the ID3 tag stored in the container, or nil if it has none.
func (l riffLayout) readTag(path string) (*id3v2.Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	_, chunks, err := l.scan(f)
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		if isID3Chunk(c.id) {
			return id3v2.ParseReader(io.NewSectionReader(f, c.offset, c.size), id3v2.Options{Parse: true})
		}
	}
	return nil, nil
}

// writeGenre rewrites the container with the genre set in its ID3 chunk.
//
// An existing tag keeps its other frames and its position; otherwise a new
// chunk is appended. The result is written next to path and moved over it.
func (l riffLayout) writeGenre(path, genre string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	form, chunks, err := l.scan(f)
	if err != nil {
		return err
	}

	tag := id3v2.NewEmptyTag()
	for _, c := range chunks {
		if isID3Chunk(c.id) {
			if parsed, err := id3v2.ParseReader(io.NewSectionReader(f, c.offset, c.size), id3v2.Options{Parse: true}); err == nil {
				tag = parsed
			}
			break
		}
	}
	tag.SetGenre(genre)

	var tagData bytes.Buffer
	if _, err := tag.WriteTo(&tagData); err != nil {
		return fmt.Errorf("encode id3: %w", err)
	}

	tmp, err := ioutils.TempSibling(path)
	if err != nil {
		return err
	}
	if err := l.writeContainer(tmp, f, form, chunks, tagData.Bytes()); err != nil {
		os.Remove(tmp)
		return err
	}
	return ioutils.ReplaceFile(tmp, path)
}

func (l riffLayout) writeContainer(tmp string, src io.ReaderAt, form string, chunks []riffChunk, tagData []byte) error {
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}

	w := &countingWriter{w: out}
	w.Write([]byte(l.magic))
	w.Write(make([]byte, 4)) // patched below
	w.Write([]byte(form))

	tagWritten := false
	for _, c := range chunks {
		if isID3Chunk(c.id) {
			if !tagWritten {
				l.writeChunk(w, c.id, bytes.NewReader(tagData), int64(len(tagData)))
				tagWritten = true
			}
			continue
		}
		l.writeChunk(w, c.id, io.NewSectionReader(src, c.offset, c.size), c.size)
	}
	if !tagWritten {
		l.writeChunk(w, l.id3ID, bytes.NewReader(tagData), int64(len(tagData)))
	}

	if w.err != nil {
		out.Close()
		return w.err
	}

	var size [4]byte
	l.order.PutUint32(size[:], uint32(w.n-8))
	if _, err := out.WriteAt(size[:], 4); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (l riffLayout) writeChunk(w *countingWriter, id string, data io.Reader, size int64) {
	var hdr [8]byte
	copy(hdr[:4], id)
	l.order.PutUint32(hdr[4:], uint32(size))
	w.Write(hdr[:])
	w.copyN(data, size)
	if size&1 == 1 {
		w.Write([]byte{0})
	}
}

// countingWriter remembers the first error and the bytes written.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}

func (cw *countingWriter) copyN(r io.Reader, n int64) {
	if cw.err != nil {
		return
	}
	written, err := io.CopyN(cw.w, r, n)
	cw.n += written
	cw.err = err
}
