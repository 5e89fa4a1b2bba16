// Package cmd holds the assay cobra commands.
package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-multierror"
	"github.com/lithictech/go-assay/catalog"
	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/config"
	"github.com/lithictech/go-assay/logctx"
	"github.com/lithictech/go-assay/sqlw"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrInvalidValues is returned when a batch check found invalid values,
// so the process exits non-zero.
var ErrInvalidValues = errors.New("some values are invalid")

type app struct {
	envFiles []string
	cfg      config.Config
	logger   *slog.Logger
}

// NewRootCommand returns the assay command with every subcommand.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "assay",
		Short: "Validate barcodes and other values with composable validator chains",
		Long: `assay checks values against barcode symbologies and validator chains.

Configuration is read from ASSAY_ environment variables,
optionally preloaded from dotenv files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	root.AddCommand(
		a.barcodeCommand(),
		a.symbologiesCommand(),
		a.profileCommand(),
		a.serveCommand(),
	)
	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return err
	}
	if cfg.Log.File == "" {
		cfg.Log.Out = cmd.ErrOrStderr()
		if cfg.Log.Format == "" && logctx.IsTty() {
			cfg.Log.Format = "console"
		}
	}
	logger, err := logctx.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logctx.WithTracingLogger(logctx.WithTraceId(logctx.WithLogger(ctx, logger), logctx.ProcessTraceIdKey))
	cmd.SetContext(ctx)
	return nil
}

// batchLogger is the logrus logger stopwatch timings go to.
func (a *app) batchLogger(w io.Writer) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	if lvl, err := logrus.ParseLevel(a.cfg.Log.Level); err == nil {
		l.SetLevel(lvl)
	}
	if a.cfg.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return logrus.NewEntry(l)
}

// validators builds the catalog the configuration allows.
// The returned func releases the database, if one was opened.
func (a *app) validators() (*check.Registry, func() error, error) {
	opts := catalog.Options{Logger: a.logger}
	closer := func() error { return nil }
	if a.cfg.DatabaseURL != "" {
		db, err := sqlw.Open(a.cfg.DatabaseDriver, a.cfg.DatabaseURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening database")
		}
		opts.DB = sqlw.WithLogging(db, a.logger)
		closer = db.DBX().Close
	}
	if a.cfg.PasswordChecks {
		opts.HTTPClient = cleanhttp.DefaultPooledClient()
		opts.PasswordAPI = a.cfg.PasswordAPI
	}
	return catalog.New(opts), closer, nil
}

func closeAll(err error, closers ...func() error) error {
	for _, c := range closers {
		if cerr := c(); cerr != nil {
			err = multierror.Append(err, cerr)
		}
	}
	return err
}
