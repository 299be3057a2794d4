package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"genesis-tui/internal/bible"
	"genesis-tui/internal/render"
	"genesis-tui/internal/session"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [chapter]",
	Short: "Print a chapter to stdout",
	Long: `Prints every verse of a chapter in order. Favorite verses are marked with ★.
A chapter missing from the data prints a not-found message instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite verses in the order they were added",
	Args:  cobra.NoArgs,
	RunE:  runFavorites,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [chapter:verse]",
	Short: "Add or remove a favorite verse",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

// openLoaded builds a session and performs the dataset fetch.
func openLoaded(cmd *cobra.Command) (*session.Session, error) {
	s, err := newSession()
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.LoadDataset(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	chapter, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid chapter %q", args[0])
	}

	s, err := openLoaded(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	writeChapter(cmd.OutOrStdout(), s.RenderChapter(chapter))
	return nil
}

func writeChapter(w io.Writer, dm render.DisplayModel) {
	if dm.Empty {
		fmt.Fprintln(w, dm.Message)
		return
	}

	fmt.Fprintf(w, "Genesis %d\n\n", dm.Chapter)
	for _, line := range dm.Verses {
		marker := " "
		if line.Favorite {
			marker = "★"
		}
		fmt.Fprintf(w, "%s %3d  %s\n", marker, line.Number, line.Text)
	}
}

func runFavorites(cmd *cobra.Command, args []string) error {
	s, err := openLoaded(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	entries := s.Favorites()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No favorites yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%-7s %s\n", e.Ref, e.Text)
	}
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	ref, err := bible.ParseVerseRef(args[0])
	if err != nil {
		return err
	}

	s, err := openLoaded(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	on, err := s.ToggleFavorite(ref.Chapter, ref.Verse)
	if err != nil {
		return err
	}

	if on {
		fmt.Fprintf(cmd.OutOrStdout(), "★ %s added to favorites\n", ref)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s removed from favorites\n", ref)
	}
	return nil
}
