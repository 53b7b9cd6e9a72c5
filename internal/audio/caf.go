package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	ioutils "github.com/handiism/playlist-generator/internal/io"
)

// Core Audio Format: an 8 byte file header ("caff", version, flags)
// followed by chunks of type[4] size[8], all big-endian. The audio data
// chunk may declare size -1, meaning it runs to the end of the file.
const (
	cafMagic     = "caff"
	cafHeaderLen = 8
	cafChunkLen  = 12
)

type cafChunk struct {
	typ    string
	offset int64 // start of chunk data
	size   int64
	toEnd  bool // declared size was -1
}

// cafEntry is one key/value pair of the info chunk.
type cafEntry struct {
	key, value string
}

func scanCAF(r io.ReadSeeker) ([]cafChunk, error) {
	var hdr [cafHeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil || string(hdr[:4]) != cafMagic {
		return nil, fmt.Errorf("not a caf file: %w", ErrInvalidContainer)
	}

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	var chunks []cafChunk
	pos := int64(cafHeaderLen)
	for pos+cafChunkLen <= end {
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return nil, err
		}
		var ch [cafChunkLen]byte
		if _, err := io.ReadFull(r, ch[:]); err != nil {
			return nil, err
		}
		typ := string(ch[:4])
		size := int64(binary.BigEndian.Uint64(ch[4:]))
		if size == -1 {
			if typ != "data" {
				return nil, fmt.Errorf("chunk %q has open size: %w", typ, ErrInvalidContainer)
			}
			chunks = append(chunks, cafChunk{typ: typ, offset: pos + cafChunkLen, size: end - pos - cafChunkLen, toEnd: true})
			break
		}
		if size < 0 || pos+cafChunkLen+size > end {
			return nil, fmt.Errorf("chunk %q overruns file: %w", typ, ErrInvalidContainer)
		}
		chunks = append(chunks, cafChunk{typ: typ, offset: pos + cafChunkLen, size: size})
		pos += cafChunkLen + size
	}
	return chunks, nil
}

func parseCAFInfo(data []byte) ([]cafEntry, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("short info chunk: %w", ErrInvalidContainer)
	}
	count := binary.BigEndian.Uint32(data)
	rest := data[4:]

	next := func() (string, bool) {
		i := bytes.IndexByte(rest, 0)
		if i < 0 {
			return "", false
		}
		s := string(rest[:i])
		rest = rest[i+1:]
		return s, true
	}

	entries := make([]cafEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		key, ok := next()
		if !ok {
			return nil, fmt.Errorf("truncated info chunk: %w", ErrInvalidContainer)
		}
		value, ok := next()
		if !ok {
			return nil, fmt.Errorf("truncated info chunk: %w", ErrInvalidContainer)
		}
		entries = append(entries, cafEntry{key: key, value: value})
	}
	return entries, nil
}

func encodeCAFInfo(entries []cafEntry) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(len(entries)))
	for _, e := range entries {
		buf.WriteString(e.key)
		buf.WriteByte(0)
		buf.WriteString(e.value)
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func setCAFEntry(entries []cafEntry, key, value string) []cafEntry {
	for i := range entries {
		if entries[i].key == key {
			entries[i].value = value
			return entries
		}
	}
	return append(entries, cafEntry{key: key, value: value})
}

// readCAFInfo returns the info entries of the file at path, or nil when it
// has no info chunk.
func readCAFInfo(path string) ([]cafEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	chunks, err := scanCAF(f)
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		if c.typ != "info" {
			continue
		}
		data := make([]byte, c.size)
		if _, err := f.ReadAt(data, c.offset); err != nil {
			return nil, err
		}
		return parseCAFInfo(data)
	}
	return nil, nil
}

func cafValue(entries []cafEntry, key string) string {
	for _, e := range entries {
		if e.key == key {
			return e.value
		}
	}
	return ""
}

// writeCAFGenre rewrites the file with the "genre" info entry set.
//
// An existing info chunk is replaced in place; otherwise one is inserted
// before the audio data.
func writeCAFGenre(path, genre string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	chunks, err := scanCAF(f)
	if err != nil {
		return err
	}

	var entries []cafEntry
	for _, c := range chunks {
		if c.typ == "info" {
			data := make([]byte, c.size)
			if _, err := f.ReadAt(data, c.offset); err != nil {
				return err
			}
			if entries, err = parseCAFInfo(data); err != nil {
				return err
			}
			break
		}
	}
	info := encodeCAFInfo(setCAFEntry(entries, "genre", genre))

	tmp, err := ioutils.TempSibling(path)
	if err != nil {
		return err
	}
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		os.Remove(tmp)
		return err
	}

	w := &countingWriter{w: out}
	w.copyN(io.NewSectionReader(f, 0, cafHeaderLen), cafHeaderLen)

	infoWritten := false
	writeInfo := func() {
		writeCAFChunk(w, "info", bytes.NewReader(info), int64(len(info)), false)
		infoWritten = true
	}
	for _, c := range chunks {
		switch {
		case c.typ == "info":
			if !infoWritten {
				writeInfo()
			}
			continue
		case c.typ == "data" && !infoWritten:
			writeInfo()
		}
		writeCAFChunk(w, c.typ, io.NewSectionReader(f, c.offset, c.size), c.size, c.toEnd)
	}
	if !infoWritten {
		writeInfo()
	}

	if w.err != nil {
		out.Close()
		os.Remove(tmp)
		return w.err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return ioutils.ReplaceFile(tmp, path)
}

func writeCAFChunk(w *countingWriter, typ string, data io.Reader, size int64, toEnd bool) {
	var hdr [cafChunkLen]byte
	copy(hdr[:4], typ)
	declared := uint64(size)
	if toEnd {
		declared = ^uint64(0)
	}
	binary.BigEndian.PutUint64(hdr[4:], declared)
	w.Write(hdr[:])
	w.copyN(data, size)
}
