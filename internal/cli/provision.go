package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/example/stempeluhr/internal/application"
	"github.com/example/stempeluhr/internal/config"
	"github.com/example/stempeluhr/internal/persistence/sqlite"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func newProvisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision <login>",
		Short: "Create a credential record",
		Long: `provision creates a new user account in the configured database. The
password is read from the terminal without echo. Existing logins are
rejected; there is no way to change a password through this command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(args[0])
		},
	}
}

func runProvision(login string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", login)
	password, err := readPassword()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return fmt.Errorf("password must not be empty")
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return err
	}
	defer storage.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := storage.Migrate(ctx); err != nil {
		return err
	}

	credentials := application.NewCredentialService(storage.Users(), application.DefaultPBKDF2Params, time.Now, logger)
	if err := credentials.Provision(ctx, login, string(password)); err != nil {
		if errors.Is(err, application.ErrDuplicateLogin) {
			return fmt.Errorf("login %q already exists", login)
		}
		return err
	}

	fmt.Printf("provisioned %s\n", login)
	return nil
}
