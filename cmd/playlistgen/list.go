package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/handiism/playlist-generator/internal/library"
	"github.com/handiism/playlist-generator/internal/model"
)

func newListCommand(a *appContext) *cobra.Command {
	return &cobra.Command{
		Use:       "list [artists|albums|songs|genres]",
		Short:     "List library artists, albums, songs or genres",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"artists", "albums", "songs", "genres"},
		RunE: func(cmd *cobra.Command, args []string) error {
			what := "artists"
			if len(args) == 1 {
				what = args[0]
			}
			out := cmd.OutOrStdout()

			if what == "genres" {
				failures, err := a.manager.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				genres, err := a.manager.Genres()
				if err != nil {
					return err
				}
				renderGenres(out, genres)
				a.log.Debug().Int("tag_errors", len(failures)).Msg("genre tags loaded")
				return nil
			}

			scope, err := library.ParseScope(what)
			if err != nil {
				return err
			}
			songs, err := a.manager.List(cmd.Context(), scope)
			if err != nil {
				return err
			}
			renderSongs(out, scope, songs)
			return nil
		},
	}
}

func renderSongs(w io.Writer, scope library.Scope, songs []*model.Song) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	switch scope {
	case library.ScopeArtists:
		table.SetHeader([]string{"Artist"})
		for _, s := range songs {
			table.Append([]string{s.Artist})
		}
	case library.ScopeAlbums:
		table.SetHeader([]string{"Artist", "Album"})
		for _, s := range songs {
			table.Append([]string{s.Artist, s.Album})
		}
	default:
		table.SetHeader([]string{"Artist", "Album", "File"})
		for _, s := range songs {
			table.Append([]string{s.Artist, s.Album, s.Name})
		}
	}
	table.Render()
	fmt.Fprintf(w, "%d %s\n", len(songs), scope)
}

func renderGenres(w io.Writer, genres []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Genre"})
	for _, g := range genres {
		table.Append([]string{g})
	}
	table.Render()
}
