package cmd

import (
	"context"

	"github.com/kholland/moviedeck/config"
	"github.com/kholland/moviedeck/pkg/browse"
	"github.com/kholland/moviedeck/pkg/logger"
	"github.com/kholland/moviedeck/server"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the movie browsing server",
	Long:  `start the movie browsing server`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		client, err := newServiceClient(cfg)
		if err != nil {
			log.Fatal("failed to create movie service client", zap.Error(err))
		}

		ctx := logger.WithCtx(context.Background(), log)

		browser := browse.New(client)
		browser.State().SetPageSize(cfg.Catalog.PageSize)
		browser.LoadGenres(ctx)
		if err := browser.Refresh(ctx); err != nil {
			log.Warn("initial catalog refresh failed", zap.Error(err))
		}

		srv := server.New(log, browser)
		log.Error(srv.Serve(cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
