// Package http provides the HTTP client used for MusicBrainz lookups.
//
// The Client in this package handles:
//   - User-Agent headers (MusicBrainz rejects anonymous clients)
//   - Timeout handling
//   - HTTP 503 back-off: wait a fixed cooldown and retry the same request
//   - JSON decoding of response bodies
//
// # Basic Usage
//
//	client := http.NewClient(http.Options{UserAgent: "playlistgen/1.0"})
//
//	var out dto.ReleaseGroupSearch
//	err := client.GetJSON(ctx, url, &out)
//
// # Query Encoding
//
// MusicBrainz search queries use Lucene syntax. EncodeQuery percent-encodes
// a query so that reserved characters such as '&', ':' and '"' survive the
// trip to the server:
//
//	http.EncodeQuery(`"Appetite" AND artist:"Guns & Roses"`)
//	// %22Appetite%22%20AND%20artist%3A%22Guns%20%26%20Roses%22
package http
