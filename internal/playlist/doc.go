// Package playlist draws a bounded playlist from the songs matching a
// selection of artists, albums and genres.
//
// # Buckets
//
// Partition sorts every candidate into exactly one bucket. A song whose
// album is selected goes to the album bucket; otherwise one whose artist is
// selected goes to the artist bucket; otherwise one carrying a selected
// genre goes to the genre bucket. Songs matching nothing are dropped.
//
// # Sampling
//
//	sampler := playlist.NewSampler(mbClient, playlist.DefaultConfig(), tracker, logger)
//	songs, err := sampler.Generate(ctx, candidates, selection, 20, weights)
//
// When the candidates fit in the playlist they are returned as they are,
// without any rating lookup. Otherwise every unrated candidate is rated
// first, then songs are drawn round robin: one per album, then one per
// artist, then one per genre, until each category reaches its share of
// the playlist or runs out of songs. Within a group the first song rated at
// least the group's minimum is taken; when none qualifies the minimum is
// lowered by the rating step and the group is searched again.
package playlist
