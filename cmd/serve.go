package cmd

import (
	"context"

	"github.com/seguido/seguido/config"
	"github.com/seguido/seguido/pkg/logger"
	"github.com/seguido/seguido/server"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the tracker server",
	Long:  `start the tracker server`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		ctx := logger.WithCtx(context.Background(), log)

		t, err := newTracker(ctx, cfg)
		if err != nil {
			log.Fatal("failed to create tracker", zap.Error(err))
		}

		if cfg.Tracker.SweepOnStart {
			if err := t.StartSweep(ctx, cfg.Tracker.User); err != nil {
				log.Error("startup sweep failed", zap.Error(err))
			}
		}

		srv := server.New(log, t, cfg.Tracker.User)
		log.Error(srv.Serve(cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
