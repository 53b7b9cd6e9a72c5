// Package library indexes a music folder laid out as artist/album/song.
//
// # Listing
//
//	idx := library.NewIndex("/Volumes/Music", []string{"Folder.jpg"}, logger)
//	artists, err := idx.ListSongs(ctx, library.ScopeArtists)
//	albums, err := idx.ListSongs(ctx, library.ScopeAlbums)
//	songs, err := idx.ListSongs(ctx, library.ScopeSongs)
//
// Every entry is a *model.Song keyed by its path. Hidden files are
// skipped, and a folder holding nothing but marker files (cover art left
// behind after the music was removed) is treated as empty. Listing never
// changes the library; Prune removes such folders on request.
//
// # Genre Tags
//
// LoadGenreTags reads each song's genre tag ahead of playlist generation,
// and Genres collects the distinct names for selection.
package library
