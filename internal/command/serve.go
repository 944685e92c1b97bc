package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stolasapp/janus/internal/app"
	"github.com/stolasapp/janus/internal/config"
	"github.com/stolasapp/janus/internal/server"
)

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the user-account HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, repo, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			if cfg.AdminKey == "" {
				return errors.New("admin_key must be configured before serving")
			}

			grp, ctx := errgroup.WithContext(cmd.Context())

			listener, err := server.Listen(ctx, cfg.ListenAddr)
			if err != nil {
				return err
			}

			srv := app.New(cfg, logger, repo)
			logger.InfoContext(ctx,
				"starting gateway...",
				slog.String("address", listener.Addr().String()),
			)
			server.Serve(ctx, grp, srv.Server, listener)
			return grp.Wait()
		},
	}
	// The flag default mirrors the config default so an unset flag does not
	// mask a value from the config file.
	cmd.Flags().String("listen_addr", config.Default().ListenAddr, "address for the HTTP gateway to bind")
	return cmd
}
