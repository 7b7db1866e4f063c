package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"catalog/internal/app"
)

func (c *CLI) booksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage books",
	}
	cmd.AddCommand(
		c.booksListCmd(),
		c.booksShowCmd(),
		c.booksAddCmd(),
		c.booksEditCmd(),
		c.booksRemoveCmd(),
	)
	return cmd
}

func (c *CLI) booksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := c.app.ListBooks(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range books {
				fmt.Printf("%4d  %-40s  %s\n", b.ID, b.Title, b.Author)
			}
			return nil
		},
	}
}

func (c *CLI) booksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id: %s", args[0])
			}

			b, err := c.app.GetBook(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Title:     %s\n", b.Title)
			fmt.Printf("Author:    %s\n", b.Author)
			fmt.Printf("Genre:     %s\n", b.Genre)
			fmt.Printf("Published: %s\n", b.Published)
			fmt.Printf("Cover:     %s\n", b.CoverImageURL)
			fmt.Printf("\n%s\n", b.Description)
			return nil
		},
	}
}

func (c *CLI) booksAddCmd() *cobra.Command {
	var draft app.BookDraft
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new book (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}

			b, err := c.app.CreateBook(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Printf("Added book %d: %s\n", b.ID, b.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&draft.Title, "title", "", "book title")
	cmd.Flags().StringVar(&draft.Author, "author", "", "book author")
	cmd.Flags().StringVar(&draft.Genre, "genre", "", "book genre")
	cmd.Flags().StringVar(&draft.Published, "published", "", "publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.CoverImageURL, "cover-url", "", "cover image URL")
	cmd.Flags().StringVar(&draft.Description, "description", "", "book description")
	return cmd
}

func (c *CLI) booksEditCmd() *cobra.Command {
	var draft app.BookDraft
	var coverPath string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id: %s", args[0])
			}

			book, err := c.app.GetBook(cmd.Context(), id)
			if err != nil {
				return err
			}

			// Only flags that were set override the current record
			if cmd.Flags().Changed("title") {
				book.Title = draft.Title
			}
			if cmd.Flags().Changed("author") {
				book.Author = draft.Author
			}
			if cmd.Flags().Changed("genre") {
				book.Genre = draft.Genre
			}
			if cmd.Flags().Changed("published") {
				book.Published = draft.Published
			}
			if cmd.Flags().Changed("cover-url") {
				book.CoverImageURL = draft.CoverImageURL
			}
			if cmd.Flags().Changed("description") {
				book.Description = draft.Description
			}

			updated, err := c.app.UpdateBook(cmd.Context(), book, coverPath)
			if err != nil {
				return err
			}
			fmt.Printf("Updated book %d: %s\n", updated.ID, updated.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&draft.Title, "title", "", "book title")
	cmd.Flags().StringVar(&draft.Author, "author", "", "book author")
	cmd.Flags().StringVar(&draft.Genre, "genre", "", "book genre")
	cmd.Flags().StringVar(&draft.Published, "published", "", "publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&draft.CoverImageURL, "cover-url", "", "cover image URL")
	cmd.Flags().StringVar(&draft.Description, "description", "", "book description")
	cmd.Flags().StringVar(&coverPath, "cover", "", "path to a new cover image file")
	return cmd
}

func (c *CLI) booksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a book (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id: %s", args[0])
			}

			if err := c.app.DeleteBook(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted book %d\n", id)
			return nil
		},
	}
}
