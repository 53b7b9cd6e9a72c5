package musicbrainz

import "strings"

var typography = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"‘", "'", // left single quotation mark
	"´", "'", // acute accent
	"`", "'",
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"«", `"`,
	"»", `"`,
	"–", "-", // en dash
	"—", "-", // em dash
	"‐", "-", // hyphen
	"\u00a0", " ", // no-break space
	"…", "...",
)

// Normalize replaces typographic punctuation with its ASCII equivalent.
func Normalize(s string) string {
	return typography.Replace(s)
}

// sameTitle compares two titles ignoring case and typographic punctuation.
func sameTitle(a, b string) bool {
	return Normalize(strings.ToLower(a)) == Normalize(strings.ToLower(b))
}
