package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/models"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book management commands",
	Long:  `Manage books: add, list, show, update, delete and count by category`,
}

var addBookCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to your list",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		pages, _ := cmd.Flags().GetInt("pages")
		category, _ := cmd.Flags().GetString("category")
		priority, _ := cmd.Flags().GetString("priority")

		book, err := newClient().AddBook(dto.CreateBookRequest{
			Title:      title,
			Author:     author,
			TotalPages: pages,
			Category:   category,
			Priority:   priority,
		})
		if err != nil {
			return fmt.Errorf("failed to add book: %w", err)
		}

		success("Book added!")
		printBook(book)
		return nil
	},
}

var listBooksCmd = &cobra.Command{
	Use:   "list",
	Short: "List books",
	RunE: func(cmd *cobra.Command, args []string) error {
		var query dto.BookListQuery
		query.Status, _ = cmd.Flags().GetString("status")
		query.Priority, _ = cmd.Flags().GetString("priority")
		query.Search, _ = cmd.Flags().GetString("search")
		query.Sort, _ = cmd.Flags().GetString("sort")

		resp, err := newClient().ListBooks(query)
		if err != nil {
			return fmt.Errorf("failed to list books: %w", err)
		}
		staleWarning(resp.Stale)

		if resp.Total == 0 {
			fmt.Println("No books found.")
			return nil
		}

		fmt.Printf("Found %d books:\n\n", resp.Total)
		for _, b := range resp.Data {
			fmt.Printf("%-14d %-32s %-20s %-9s %s %3.0f%%\n",
				b.ID, truncate(b.Title, 32), truncate(b.Author, 20), b.Status, progressBar(b.Progress(), 10), b.Progress())
		}
		return nil
	},
}

var showBookCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a book with its reading sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseBookID(args[0])
		if err != nil {
			return err
		}

		book, err := newClient().GetBook(id)
		if err != nil {
			return fmt.Errorf("failed to get book: %w", err)
		}

		printBook(book)
		if len(book.ReadingSessions) == 0 {
			fmt.Println("\nNo reading sessions yet.")
			return nil
		}
		fmt.Printf("\nSessions (%d):\n", len(book.ReadingSessions))
		for _, s := range book.ReadingSessions {
			fmt.Printf("  %s  %4d pages  %4d min\n", s.Date, s.Pages, s.Minutes)
		}
		return nil
	},
}

var updateBookCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update fields of a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseBookID(args[0])
		if err != nil {
			return err
		}

		var req dto.UpdateBookRequest
		flags := cmd.Flags()
		if flags.Changed("title") {
			v, _ := flags.GetString("title")
			req.Title = &v
		}
		if flags.Changed("author") {
			v, _ := flags.GetString("author")
			req.Author = &v
		}
		if flags.Changed("category") {
			v, _ := flags.GetString("category")
			req.Category = &v
		}
		if flags.Changed("priority") {
			v, _ := flags.GetString("priority")
			req.Priority = &v
		}
		if flags.Changed("status") {
			v, _ := flags.GetString("status")
			req.Status = &v
		}
		if flags.Changed("pages") {
			v, _ := flags.GetInt("pages")
			req.TotalPages = &v
		}
		if flags.Changed("current-page") {
			v, _ := flags.GetInt("current-page")
			req.CurrentPage = &v
		}

		book, err := newClient().UpdateBook(id, req)
		if err != nil {
			return fmt.Errorf("failed to update book: %w", err)
		}
		success("Book updated!")
		printBook(book)
		return nil
	},
}

var deleteBookCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a book and its sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseBookID(args[0])
		if err != nil {
			return err
		}
		if err := newClient().DeleteBook(id); err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		success("Book %d deleted", id)
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Count books per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		counts, err := newClient().Categories()
		if err != nil {
			return fmt.Errorf("failed to get categories: %w", err)
		}
		if len(counts) == 0 {
			fmt.Println("No books yet.")
			return nil
		}
		for name, count := range counts {
			fmt.Printf("%-24s %d\n", name, count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookCmd)
	bookCmd.AddCommand(addBookCmd, listBooksCmd, showBookCmd, updateBookCmd, deleteBookCmd, categoriesCmd)

	addBookCmd.Flags().String("title", "", "Book title (required)")
	addBookCmd.Flags().String("author", "", "Author (required)")
	addBookCmd.Flags().Int("pages", 0, "Total pages (required)")
	addBookCmd.Flags().String("category", "", "Category (required)")
	addBookCmd.Flags().String("priority", "medium", "Priority: low, medium, high")
	_ = addBookCmd.MarkFlagRequired("title")
	_ = addBookCmd.MarkFlagRequired("author")
	_ = addBookCmd.MarkFlagRequired("pages")
	_ = addBookCmd.MarkFlagRequired("category")

	listBooksCmd.Flags().String("status", "", "Filter by status: to-read, reading, completed")
	listBooksCmd.Flags().String("priority", "", "Filter by priority: low, medium, high")
	listBooksCmd.Flags().String("search", "", "Search title, author and category")
	listBooksCmd.Flags().String("sort", "", "Sort by: recent, title, author, progress, priority")

	updateBookCmd.Flags().String("title", "", "New title")
	updateBookCmd.Flags().String("author", "", "New author")
	updateBookCmd.Flags().String("category", "", "New category")
	updateBookCmd.Flags().String("priority", "", "New priority")
	updateBookCmd.Flags().String("status", "", "New status")
	updateBookCmd.Flags().Int("pages", 0, "New total pages")
	updateBookCmd.Flags().Int("current-page", 0, "New current page")
}

func parseBookID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid book ID: %w", err)
	}
	return id, nil
}

func printBook(b *models.Book) {
	fmt.Printf("ID: %d\n", b.ID)
	fmt.Printf("Title: %s\n", b.Title)
	fmt.Printf("Author: %s\n", b.Author)
	fmt.Printf("Category: %s\n", b.Category)
	fmt.Printf("Priority: %s\n", b.Priority)
	fmt.Printf("Status: %s\n", b.Status)
	fmt.Printf("Progress: %d/%d %s %.0f%%\n", b.CurrentPage, b.TotalPages, progressBar(b.Progress(), 20), b.Progress())
	if b.StartDate != nil {
		fmt.Printf("Started: %s\n", *b.StartDate)
	}
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
