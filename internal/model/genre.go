package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GenreSeparator separates multiple genres stored in one tag.
const GenreSeparator = "; "

// UnknownGenre is the placeholder some taggers write; it is never offered
// as a selectable genre.
const UnknownGenre = "Unknown"

// CapitalizeGenre title-cases each word: "alternative rock" becomes
// "Alternative Rock".
func CapitalizeGenre(genre string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.Und).String(strings.TrimSpace(genre))
}

// SplitGenres splits a raw genre tag into capitalized entries, dropping
// empty ones.
func SplitGenres(raw string) []string {
	var genres []string
	for _, g := range strings.Split(raw, GenreSeparator) {
		if g = CapitalizeGenre(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
