// Package cli wires the brewstock commands onto a Session.
package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/brewstock/brewstock/internal/app"
)

// Options configures the command tree. Zero values fall back to the process
// streams and to configuration read from the environment.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Config overrides LoadConfig when set.
	Config *app.Config
	Mode   app.StoreMode
	// Now overrides the clock used to stamp sales.
	Now func() time.Time
}

type env struct {
	opts    Options
	logger  *slog.Logger
	session *app.Session
}

// NewRootCommand builds the brewstock command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	e := &env{opts: opts}

	root := &cobra.Command{
		Use:           "brewstock",
		Short:         "Coffee shop stock, sales and supplier records",
		Long:          "brewstock keeps the shop inventory, rings up sales against it and tracks suppliers, all in flat text files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if err := e.session.WriteMetrics(); err != nil {
				e.logger.Warn("metrics not written", slog.Any("error", err))
			}
			return nil
		},
	}
	root.SetIn(opts.Stdin)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	root.AddCommand(newInventoryCommand(e))
	root.AddCommand(newSellCommand(e))
	root.AddCommand(newSalesCommand(e))
	root.AddCommand(newSuppliersCommand(e))
	return root
}

func (e *env) open(cmd *cobra.Command) error {
	cfg := e.opts.Config
	if cfg == nil {
		loaded, err := app.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
	}
	e.logger = app.NewLogger(cfg, e.opts.Stderr)
	e.session = app.OpenSession(cmd.Context(), cfg, e.logger, e.opts.Mode)
	if e.opts.Now != nil {
		e.session.Now = e.opts.Now
	}
	return nil
}
