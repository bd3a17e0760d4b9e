package main

import (
	"fmt"
	"os"

	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/localstore"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/validator"
	"github.com/spf13/cobra"
)

var version = "dev"

// app holds what every subcommand needs, loaded once before the command runs
type app struct {
	cfg    *config.Configuration
	logger *logger.Logger
	store  *localstore.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "paperstack",
		Short: "Create quotations, invoices and receipts offline and sync them to your account",
		Long: `paperstack keeps documents in a local cache so they can be created and
rendered without an account. Logging in uploads every unsynced document.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	root.AddCommand(
		newLocalCmd(a),
		newLoginCmd(a),
		newSyncCmd(a),
		newLogoutCmd(a),
	)

	root.SetErr(os.Stderr)
	cobra.OnFinalize(func() {
		if a.logger != nil {
			_ = a.logger.Sync()
		}
	})
	return root
}

func (a *app) load() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return reportError(err)
	}
	validator.NewValidator()

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return reportError(err)
	}

	store, err := localstore.NewStore(cfg, log)
	if err != nil {
		return reportError(err)
	}

	a.cfg = cfg
	a.logger = log
	a.store = store
	return nil
}

// reportError prints the user facing message of err and returns it so cobra
// exits non-zero
func reportError(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %s\n", ierr.GetDisplayMessage(err))
	return err
}
