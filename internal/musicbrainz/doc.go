// Package musicbrainz resolves genres and ratings through the MusicBrainz
// web service.
//
// Both lookups are two-step: a Lucene search narrows the candidates, then
// a lookup by id fetches the detail.
//
// # Genres
//
//	client := musicbrainz.NewClient(httpClient, musicbrainz.DefaultBaseURL, reader, logger)
//	genre, err := client.ResolveGenre(ctx, "Radiohead", "OK Computer")
//	if errors.Is(err, musicbrainz.ErrNoGenre) {
//	    // record the failure and move on
//	}
//
// The first search result whose primary type is "Album" is used. Its genres
// are ordered by vote count and the most voted one wins.
//
// # Ratings
//
//	client.ResolveRating(ctx, song)
//	rating, _ := song.Rating() // always set afterwards
//
// A recording matches when its title equals the song title (ignoring case
// and typographic punctuation) and one of its releases is named like the
// album. Anything short of a rated match stores 0.0.
package musicbrainz
