package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"promptboard/internal/board/editor"
	"promptboard/internal/board/fs"
	"promptboard/internal/board/models"
)

const listPreviewLen = 60

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List cards in board order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cards := a.store.Cards()
			if len(cards) == 0 {
				fmt.Fprintln(out, "No cards.")
				return nil
			}

			for _, c := range cards {
				printCard(out, c)
			}

			fmt.Fprintf(out, "\n%d card(s), %d filled\n", a.store.Total(), a.store.Filled())
			return nil
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add [text...]",
		Aliases: []string{"a"},
		Short:   "Add a card at the front of the board",
		Example: `  promptboard add
  promptboard add "Summarize the following article in three bullets"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if err := models.ValidateText(text); err != nil {
				return err
			}

			card, err := a.store.AddCard()
			if err != nil {
				return err
			}

			if len(args) > 0 {
				if err := a.store.UpdateCard(card.ID, text); err != nil {
					return err
				}
				warnOverLimit(cmd.ErrOrStderr(), text)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added card %s\n", card.ID)
			return nil
		},
	}
}

func (a *app) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <card-id> <text...>",
		Short: "Replace the text of a card",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := findCardByPartialID(a.store.Cards(), args[0])
			if err != nil {
				return err
			}

			text := strings.Join(args[1:], " ")
			if err := models.ValidateText(text); err != nil {
				return err
			}
			if err := a.store.UpdateCard(card.ID, text); err != nil {
				return err
			}
			warnOverLimit(cmd.ErrOrStderr(), text)

			fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", shortID(card.ID))
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <card-id>",
		Aliases: []string{"delete", "del"},
		Short:   "Remove a card",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := findCardByPartialID(a.store.Cards(), args[0])
			if err != nil {
				return err
			}

			if err := a.store.RemoveCard(card.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", shortID(card.ID))
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show total and filled card counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total: %d\n", a.store.Total())
			fmt.Fprintf(out, "Filled: %d\n", a.store.Filled())
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every card to a markdown file in dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filenames, err := fs.ExportCards(a.store.Cards(), args[0])
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, name := range filenames {
				fmt.Fprintln(out, name)
			}
			fmt.Fprintf(out, "Exported %d card(s) to %s\n", len(filenames), args[0])
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Replace the board with the markdown cards in dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := fs.ImportCards(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			if err := a.store.Replace(cards); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d card(s)\n", len(cards))
			return nil
		},
	}
}

func printCard(out io.Writer, c models.Card) {
	preview := fs.ExtractPreview(c.Text, listPreviewLen)
	if !c.IsFilled() {
		preview = "(empty)"
	}
	fmt.Fprintf(out, "[%s] %4d  %s\n", shortID(c.ID), utf8.RuneCountInString(c.Text), preview)
}

func warnOverLimit(w io.Writer, text string) {
	if over := utf8.RuneCountInString(text) - editor.CharLimit; over > 0 {
		fmt.Fprintf(w, "Warning: %d over the limit\n", over)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func findCardByPartialID(cards []models.Card, partialID string) (models.Card, error) {
	var matches []models.Card
	for _, c := range cards {
		if c.ID == partialID {
			return c, nil
		}
		if len(partialID) >= 4 && strings.HasPrefix(c.ID, partialID) {
			matches = append(matches, c)
		}
	}

	if len(matches) == 0 {
		return models.Card{}, fmt.Errorf("no card found with ID: %s", partialID)
	}
	if len(matches) > 1 {
		return models.Card{}, fmt.Errorf("multiple cards match ID '%s', please be more specific", partialID)
	}

	return matches[0], nil
}
