// libraryctl is the maintenance CLI: operations that should not be
// reachable through the HTTP API, currently just password resets.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	userrepo "elibrary/repository/user"
	"elibrary/util/database"
	"elibrary/util/hash"
)

var dbPath string

func main() {
	root := &cobra.Command{
		Use:           "libraryctl",
		Short:         "E-Library maintenance tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "library.db", "path to the library database file")

	root.AddCommand(resetPasswordCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <username>",
		Short: "Set a new password for an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			password, err := readPassword("New password: ")
			if err != nil {
				return err
			}
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}
			if len(password) < 6 {
				return errors.New("password must be at least 6 characters")
			}

			// Opening through database.New keeps the schema guarantees; the
			// seed is a no-op on an existing file.
			db, err := database.New(dbPath, "")
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			hashed, err := hash.HashPassword(password)
			if err != nil {
				return err
			}

			if err := userrepo.New(db).UpdatePassword(context.Background(), username, hashed); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("user %q not found", username)
				}
				return err
			}

			fmt.Printf("Password for user %q has been reset\n", username)
			return nil
		},
	}
}

// readPassword securely reads a password with masking
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}
