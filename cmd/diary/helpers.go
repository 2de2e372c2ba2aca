package diary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fooddiary/internal/app"
	"github.com/saadjs/fooddiary/internal/db"
	"github.com/saadjs/fooddiary/internal/ledger"
	"github.com/saadjs/fooddiary/internal/logging"
	"github.com/saadjs/fooddiary/internal/store"
)

// withLedger opens the database, applies migrations and hands run a Ledger
// configured from the persistent flags.
func withLedger(cmd *cobra.Command, run func(context.Context, *ledger.Ledger) error) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	policy, err := ledger.ParseParsePolicy(onParseError)
	if err != nil {
		return err
	}
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}

	log := logging.New(cmd.ErrOrStderr(), level)
	l := ledger.New(store.NewSQLiteStore(sqldb, strings.TrimSpace(storeNamespace)), ledger.Options{
		Logger:      log,
		ParsePolicy: policy,
	})
	return run(cmd.Context(), l)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

// describeError turns ledger error kinds into one short line for the terminal.
func describeError(err error) string {
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("invalid input: %s", verr.Error())
	case errors.Is(err, ledger.ErrNotFound):
		return fmt.Sprintf("not found: %v", err)
	case errors.Is(err, ledger.ErrParse):
		return fmt.Sprintf("unreadable data: %v", err)
	case errors.Is(err, ledger.ErrStorage):
		return fmt.Sprintf("storage error: %v", err)
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
