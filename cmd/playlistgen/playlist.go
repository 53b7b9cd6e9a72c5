package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/handiism/playlist-generator/internal/model"
)

type playlistOptions struct {
	Artists       []string
	Albums        []string
	Genres        []string
	Add           []string
	Size          int
	ArtistPercent int
	AlbumPercent  int
	GenrePercent  int
	Name          string
	Export        string
	Format        string
	Out           string
	DryRun        bool
}

func newPlaylistCommand(a *appContext) *cobra.Command {
	opts := playlistOptions{}

	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Generate a playlist from selected artists, albums and genres",
		Long: `Draws songs from the selected artists, albums and genres, favouring
highly rated songs, and exports the result to Music or a playlist file.

Songs given with --add are appended after the drawn ones.

Without percentage flags the configured weights are used, with the share
of any category that has no selection handed to the others.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			flags := cmd.Flags()

			sel := model.NewSelection(opts.Artists, opts.Albums, opts.Genres)
			weights := fitWeights(a.settings.Weights, sel.Active())
			if flags.Changed("artist-percent") || flags.Changed("album-percent") || flags.Changed("genre-percent") {
				weights = model.Weights{Artist: opts.ArtistPercent, Album: opts.AlbumPercent, Genre: opts.GenrePercent}
			}
			if err := weights.Validate(); err != nil {
				return err
			}

			size := a.settings.PlaylistSize
			if flags.Changed("size") {
				size = opts.Size
			}
			name := opts.Name
			if name == "" {
				name = "Playlist " + time.Now().Format("2006-01-02 15.04")
			}

			failures, err := a.manager.Refresh(ctx)
			if err != nil {
				return err
			}
			if len(failures) > 0 {
				a.log.Warn().Int("count", len(failures)).Msg("some genre tags could not be read")
			}

			a.log.Debug().Int("artist", weights.Artist).Int("album", weights.Album).Int("genre", weights.Genre).Int("size", size).Msg("generating")
			p, err := a.manager.Generate(ctx, name, sel, size, weights)
			if err != nil {
				return err
			}
			for _, path := range opts.Add {
				if _, err := a.manager.AddSong(p, path); err != nil {
					return err
				}
			}
			renderPlaylist(out, p)

			if opts.DryRun {
				fmt.Fprintln(out, "\n[Dry run - not exporting]")
				return nil
			}

			// Apply flags
			if opts.Export != "" {
				a.settings.Exporter = opts.Export
			}
			if opts.Format != "" {
				a.settings.PlaylistFormat = opts.Format
			}
			if opts.Out != "" {
				a.settings.PlaylistDir = opts.Out
			}

			if err := a.manager.Export(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nExported %q (%d songs)\n", p.Name, len(p.Included()))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&opts.Artists, "artist", nil, "Artist to draw from (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Albums, "album", nil, "Album to draw from (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Genres, "genre", nil, "Genre to draw from (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Add, "add", nil, "Song file to append to the playlist (repeatable)")
	cmd.Flags().IntVar(&opts.Size, "size", 0, "Number of songs (default from config)")
	cmd.Flags().IntVar(&opts.ArtistPercent, "artist-percent", 0, "Share of songs from the selected artists")
	cmd.Flags().IntVar(&opts.AlbumPercent, "album-percent", 0, "Share of songs from the selected albums")
	cmd.Flags().IntVar(&opts.GenrePercent, "genre-percent", 0, "Share of songs from the selected genres")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Playlist name")
	cmd.Flags().StringVar(&opts.Export, "export", "", "Exporter: music or files (overrides config)")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Playlist file format: m3u, pls, wpl or zpl (overrides config)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Directory for playlist files (overrides config)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the playlist without exporting")
	return cmd
}

func renderPlaylist(w io.Writer, p *model.Playlist) {
	fmt.Fprintf(w, "%s\n\n", p.Name)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Title", "Artist", "Album"})
	table.SetAutoWrapText(false)
	for i, row := range p.Rows {
		table.Append([]string{strconv.Itoa(i + 1), row.Title, row.Artist, row.Album})
	}
	table.Render()
}
