package http

import "strings"

const upperHex = "0123456789ABCDEF"

// EncodeQuery percent-encodes s for use as a query parameter value.
//
// Letters, digits and ! $ ' * - . _ ~ ; pass through unchanged. Everything
// else, including space and the Lucene operators + " & = ( ) : / ? # @ [ ]
// { } | and comma, is written as UTF-8 percent escapes.
func EncodeQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '!', '$', '\'', '*', '-', '.', '_', '~', ';':
		return true
	}
	return false
}
