package cmd

import (
	"context"
	"fmt"

	"github.com/seguido/seguido/config"
	"github.com/seguido/seguido/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// searchCmd searches the metadata catalog for shows
var searchCmd = &cobra.Command{
	Use:        "search",
	Short:      "search for a show",
	Long:       `search the metadata catalog for a show by name`,
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"query"},
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

		result, err := t.SearchTV(ctx, args[0])
		if err != nil {
			log.Fatal("failed to search", zap.Error(err))
		}

		for _, r := range result.Results {
			year := r.FirstAirDate
			if len(year) >= 4 {
				year = year[:4]
			}
			fmt.Printf("%8d  %s (%s)\n", r.ID, r.Name, year)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
