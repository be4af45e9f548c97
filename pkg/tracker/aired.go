package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/seguido/seguido/pkg/logger"
	"github.com/seguido/seguido/pkg/tmdb"
	"go.uber.org/zap"
)

const airDateLayout = "2006-01-02"

// specialSeasonNames are season titles that hold extras rather than official
// episodes. Matched case-insensitively against season_number > 0 seasons;
// season 0 is always excluded.
var specialSeasonNames = map[string]struct{}{
	"especiales": {},
	"specials":   {},
	"extras":     {},
	"especial":   {},
}

func isSpecialSeason(s tmdb.SeasonSummary) bool {
	if s.SeasonNumber <= 0 {
		return true
	}
	_, denied := specialSeasonNames[lowerCase.String(s.Name)]
	return denied
}

// officialSeasons filters out specials and extras
func officialSeasons(seasons []tmdb.SeasonSummary) []tmdb.SeasonSummary {
	official := make([]tmdb.SeasonSummary, 0, len(seasons))
	for _, s := range seasons {
		if !isSpecialSeason(s) {
			official = append(official, s)
		}
	}
	return official
}

// declaredEpisodeTotal sums the per-season declared counts. Declared counts
// may include episodes that have not aired yet.
func declaredEpisodeTotal(seasons []tmdb.SeasonSummary) int {
	total := 0
	for _, s := range seasons {
		total += s.EpisodeCount
	}
	return total
}

// countAired computes how many official episodes have aired as of now.
//
// For shows in a terminal remote state the declared totals are taken as
// authoritative and no per-season fetches happen. Otherwise every official
// season's episode list is fetched and episodes with an air date on or before
// now are counted; a season whose fetch fails falls back to its declared
// count so one flaky response never zeroes the tally.
func (t *Tracker) countAired(ctx context.Context, details *tmdb.SeriesDetails, now time.Time) int {
	log := logger.FromCtx(ctx, zap.Int64("tmdb_id", details.ID))
	seasons := officialSeasons(details.Seasons)

	if MapRemoteStatus(details.Status).Terminal() {
		return declaredEpisodeTotal(seasons)
	}

	aired := 0
	for _, season := range seasons {
		detail, err := t.seasonDetails(ctx, details.ID, season.SeasonNumber)
		if err != nil {
			log.Warn("season fetch failed, using declared count",
				zap.Int("season", season.SeasonNumber), zap.Error(err))
			aired += season.EpisodeCount
			continue
		}

		for _, ep := range detail.Episodes {
			if ep.AirDate == "" {
				continue
			}
			airDate, err := time.Parse(airDateLayout, ep.AirDate)
			if err != nil {
				continue
			}
			if !airDate.After(now) {
				aired++
			}
		}
	}

	return aired
}

// seasonDetails fetches one season's episode list through a short-lived cache
// so a sweep over many shows does not refetch the same season.
func (t *Tracker) seasonDetails(ctx context.Context, tmdbID int64, seasonNumber int) (*tmdb.SeasonDetails, error) {
	key := fmt.Sprintf("season/%d/%d", tmdbID, seasonNumber)
	if cached, ok := t.seasons.Get(key); ok {
		return cached.(*tmdb.SeasonDetails), nil
	}

	detail, err := t.tmdb.SeasonDetails(ctx, tmdbID, seasonNumber)
	if err != nil {
		return nil, err
	}

	t.seasons.SetDefault(key, detail)
	return detail, nil
}
