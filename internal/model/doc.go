// Package model defines the core data structures used throughout
// the playlist generator.
//
// # Song
//
// Song is one entry of the library tree. Depending on where it sits
// below the library root it stands for an artist folder, an album folder
// or an actual audio file:
//
//	song := model.NewSong("/music/Artist/Album/01 Song.mp3", "Artist", "Album", "Album - 01 Song.mp3")
//	song.Key()            // identity used in sets and maps
//	song.UpdateRating(7)  // true, the first write wins
//	song.UpdateRating(9)  // false, rating stays 7
//
// # Selection and Weights
//
// Selection holds the chosen artists, albums and genres. Weights holds
// the share of the playlist each category gets, in percent:
//
//	w := model.Weights{Artist: 50, Album: 30, Genre: 20}
//	c, _ := w.Counts(20) // {Artist: 10, Album: 6, Genre: 4}
//
// # Playlist
//
// Playlist is the reviewed result handed to an exporter. Rows can be
// excluded before export:
//
//	pl := model.NewPlaylist("Friday", songs, titles)
//	pl.Rows[2].Included = false
//	paths := pl.IncludedPaths()
package model
