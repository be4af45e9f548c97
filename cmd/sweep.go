package cmd

import (
	"context"

	"github.com/seguido/seguido/config"
	"github.com/seguido/seguido/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// sweepCmd reconciles the whole library against the metadata provider
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "reconcile tracked shows",
	Long:  `reconcile every tracked show against the metadata provider`,
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
		defer t.Close(ctx)

		result, err := t.Sweep(ctx, cfg.Tracker.User)
		if err != nil {
			log.Fatal("sweep failed", zap.Error(err))
		}

		fields := []zap.Field{
			zap.Int("checked", result.Checked),
			zap.Int("updated", result.Updated),
			zap.Int("failed", result.Failed),
		}
		if result.Review != nil {
			fields = append(fields, zap.String("finished", result.Review.Title))
		}
		log.Desugar().Info("sweep complete", fields...)
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
