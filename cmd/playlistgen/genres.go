package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/playlist-generator/internal/library"
)

type genresOptions struct {
	Artists []string
	Albums  []string
	All     bool
}

func newGenresCommand(a *appContext) *cobra.Command {
	opts := genresOptions{}

	cmd := &cobra.Command{
		Use:   "genres",
		Short: "Fill in genre tags from MusicBrainz",
		Long: `Looks up the top voted MusicBrainz genre of each selected album and
writes it into the genre tag of every song in it.

Songs whose genre could not be found or written are listed at the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			selection, err := libraryEntries(a.settings.LibraryRoot, opts.Artists, opts.Albums)
			if err != nil {
				return err
			}
			if opts.All {
				artists, err := a.manager.List(ctx, library.ScopeArtists)
				if err != nil {
					return err
				}
				selection = append(selection, artists...)
			}
			if len(selection) == 0 {
				return errors.New("nothing selected: use --artist, --album or --all")
			}

			failures, err := a.manager.UpdateGenres(ctx, selection)
			printFailures(cmd.OutOrStdout(), "Songs needing attention", failures)
			if err != nil {
				return err
			}
			if len(failures) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "All genres updated.")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&opts.Artists, "artist", nil, "Artist folder to update (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Albums, "album", nil, "Album to update as Artist/Album (repeatable)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Update the whole library")
	return cmd
}
