package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lithictech/go-assay/api"
	"github.com/lithictech/go-assay/logctx"
	"github.com/lithictech/go-assay/profile"
	"github.com/lithictech/go-assay/validationapi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCommand() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			reg, closer, err := a.validators()
			if err != nil {
				return err
			}
			defer func() { err = closeAll(err, closer) }()
			profiles := profile.Empty()
			if a.cfg.Profiles != "" {
				if profiles, err = profile.Load(a.cfg.Profiles, reg); err != nil {
					return err
				}
			}
			e := api.New(api.Config{
				Logger:         a.logger,
				CorsOrigins:    a.cfg.CorsOrigins,
				Debug:          a.cfg.Debug,
				StatusResponse: map[string]interface{}{"version": a.cfg.Version, "validators": reg.Names()},
			})
			validationapi.Register(e, validationapi.Config{Validators: reg, Profiles: profiles})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			addr := fmt.Sprintf(":%d", a.cfg.Port)
			errc := make(chan error, 1)
			go func() {
				errc <- e.Start(addr)
			}()
			logctx.Logger(ctx).Info("server_started", "addr", addr, "profiles", len(profiles.Profiles()))
			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logctx.Logger(ctx).Info("server_stopping")
			return e.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on (default ASSAY_PORT)")
	return cmd
}
