package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atharvakonge/tradedesk/internal/tutorials"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the trading assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}

			ex, err := c.Ask(cmd.Context(), session, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ex.Reply.Text)
			if session == "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "session: %s\n", ex.SessionID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "continue an existing conversation")
	return cmd
}

func newTutorialsCmd(opts *rootOptions) *cobra.Command {
	q := tutorials.DefaultQuery()
	var user string

	cmd := &cobra.Command{
		Use:   "tutorials",
		Short: "Browse the tutorial catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}

			list, err := c.Tutorials(cmd.Context(), q, user)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(w, "No tutorials found.")
				return nil
			}
			for _, t := range list {
				mark := " "
				if t.Bookmarked {
					mark = "*"
				}
				fmt.Fprintf(w, "%s%2d  %-14s %s\n     %s\n", mark, t.ID, t.Category, t.Title, t.URL)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", q.Search, "case-insensitive title search")
	cmd.Flags().StringVarP(&q.Category, "category", "c", q.Category, "All, Beginner, Intermediate or Advanced")
	cmd.Flags().StringVar(&q.Sort, "sort", q.Sort, "None, Title or Category")
	cmd.Flags().StringVarP(&user, "user", "u", "", "mark this user's bookmarks with *")
	return cmd
}

func newBookmarkCmd(opts *rootOptions) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "bookmark <tutorial-id>",
		Short: "Bookmark a tutorial, or remove the bookmark if already set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("--user is required")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid tutorial id %q", args[0])
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}

			on, err := c.ToggleBookmark(cmd.Context(), user, id)
			if err != nil {
				return err
			}
			if on {
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked tutorial %d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark for tutorial %d\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "username")
	return cmd
}
