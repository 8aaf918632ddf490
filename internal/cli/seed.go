// Package cli implements the command-line commands exposed by main.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/genres"
	"github.com/mrlokans/bookshelf/internal/database/users"
)

// SeedCommand populates a database with a demo user and a small
// public-domain catalog for local development.
type SeedCommand struct {
	DatabasePath string
	Username     string
	Password     string
}

type seedBook struct {
	title  string
	author string
	genre  string
}

var seedCatalog = []seedBook{
	{"Pride and Prejudice", "Jane Austen", "Romance"},
	{"Frankenstein", "Mary Shelley", "Gothic"},
	{"The Time Machine", "H. G. Wells", "Science Fiction"},
	{"The War of the Worlds", "H. G. Wells", "Science Fiction"},
	{"Dracula", "Bram Stoker", "Gothic"},
	{"Emma", "Jane Austen", "Romance"},
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file to seed")
	fs.StringVar(&cmd.Username, "username", "demo", "Username for the demo account")
	fs.StringVar(&cmd.Password, "password", "demopassword", "Password for the demo account")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate a database with a demo account and sample catalog data.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -db ./dev.db -username alice -password secretpassword\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	return nil
}

func (cmd *SeedCommand) Run() error {
	fmt.Println("Seeding database")
	fmt.Println("================")

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("Database: %s\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Demo account
	authService := auth.NewService(users.NewRepository(db.DB), config.Auth{
		BcryptCost: config.DefaultBcryptCost,
	})

	if _, err := authService.Register(cmd.Username, cmd.Password); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			fmt.Printf("User %q already exists, skipping\n", cmd.Username)
		} else {
			return fmt.Errorf("failed to create user: %w", err)
		}
	} else {
		fmt.Printf("Created user %q\n", cmd.Username)
	}

	// Catalog. Lookups go through the database so a second run does not
	// duplicate rows.
	authorsRepo := authors.NewRepository(db.DB)
	genresRepo := genres.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)

	var created int
	for _, entry := range seedCatalog {
		if _, err := booksRepo.GetBookByTitle(entry.title); err == nil {
			continue
		} else if !errors.Is(err, books.ErrNotFound) {
			return fmt.Errorf("failed to look up book %q: %w", entry.title, err)
		}

		author, err := authorsRepo.GetAuthorByName(entry.author)
		if errors.Is(err, authors.ErrNotFound) {
			author, err = authorsRepo.CreateAuthor(entry.author)
		}
		if err != nil {
			return fmt.Errorf("failed to resolve author %q: %w", entry.author, err)
		}

		genre, err := genresRepo.GetGenreByName(entry.genre)
		if errors.Is(err, genres.ErrNotFound) {
			genre, err = genresRepo.CreateGenre(entry.genre)
		}
		if err != nil {
			return fmt.Errorf("failed to resolve genre %q: %w", entry.genre, err)
		}

		if _, err := booksRepo.CreateBook(entry.title, author.ID, genre.ID); err != nil {
			return fmt.Errorf("failed to create book %q: %w", entry.title, err)
		}
		created++
	}

	fmt.Printf("Created %d books (%d already present)\n", created, len(seedCatalog)-created)
	fmt.Println("\nSeed complete!")
	return nil
}
