package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/seguido/seguido/config"
	"github.com/seguido/seguido/pkg/logger"
	"github.com/seguido/seguido/pkg/storage"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listStats bool

// listCmd prints the tracked library grouped by lifecycle state
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list tracked shows",
	Long:  `list tracked shows grouped by lifecycle state`,
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

		if listStats {
			stats, err := t.Stats(ctx, cfg.Tracker.User)
			if err != nil {
				log.Fatal("failed to compute stats", zap.Error(err))
			}

			fmt.Printf("shows: %d\n", stats.TotalShows)
			fmt.Printf("episodes watched: %d\n", stats.EpisodesWatched)
			fmt.Printf("time watched: %s\n", formatMinutes(stats.MinutesWatched))
			for _, g := range stats.TopGenres {
				fmt.Printf("  %-24s %d\n", g.Genre, g.Count)
			}
			return
		}

		grouped, err := t.ListShowsGrouped(ctx, cfg.Tracker.User)
		if err != nil {
			log.Fatal("failed to list shows", zap.Error(err))
		}

		printGroup("watching", grouped.Watching)
		printGroup("up to date", grouped.UpToDate)
		printGroup("pending", grouped.Pending)
		printGroup("finished", grouped.Finished)
	},
}

func printGroup(name string, shows []*storage.Show) {
	if len(shows) == 0 {
		return
	}

	fmt.Printf("%s:\n", name)
	for _, show := range shows {
		watched := 0
		if l, err := show.Ledger(); err == nil {
			watched = l.TotalWatched()
		}

		line := fmt.Sprintf("  %-40s %d/%d", show.Title, watched, show.AiredEpisodes)
		if show.UpdatedAt != nil {
			line += fmt.Sprintf("  (updated %s)", humanize.Time(*show.UpdatedAt))
		}
		fmt.Println(line)
	}
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func init() {
	listCmd.Flags().BoolVar(&listStats, "stats", false, "print aggregate stats instead of the listing")
	rootCmd.AddCommand(listCmd)
}
