package ledger

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strconv"
)

// Ledger is the per-show record of watched episodes, keyed by season number.
// It is the sole source of truth for what the user has seen. Persistence is a
// separate concern; every operation here is a total function over the
// in-memory structure.
type Ledger map[int]EpisodeSet

// EpisodeSet holds watched episode numbers for one season.
type EpisodeSet map[int]struct{}

// New returns an empty ledger.
func New() Ledger {
	return make(Ledger)
}

// Toggle flips membership of episode in season and reports whether the
// episode is watched afterwards.
func (l Ledger) Toggle(season, episode int) bool {
	set, ok := l[season]
	if !ok {
		set = make(EpisodeSet)
		l[season] = set
	}

	if _, watched := set[episode]; watched {
		delete(set, episode)
		return false
	}

	set[episode] = struct{}{}
	return true
}

// SetSeason overwrites season with either the full set {1..episodeCount} or
// the empty set. It never merges with previous contents.
func (l Ledger) SetSeason(season, episodeCount int, watched bool) {
	set := make(EpisodeSet, episodeCount)
	if watched {
		for i := 1; i <= episodeCount; i++ {
			set[i] = struct{}{}
		}
	}
	l[season] = set
}

// Watched reports whether episode of season is marked watched.
func (l Ledger) Watched(season, episode int) bool {
	_, ok := l[season][episode]
	return ok
}

// SeasonCount returns how many episodes of season are watched.
func (l Ledger) SeasonCount(season int) int {
	return len(l[season])
}

// TotalWatched sums watched episodes across all seasons.
func (l Ledger) TotalWatched() int {
	l.Normalize()

	var total int
	for _, set := range l {
		total += len(set)
	}
	return total
}

// Normalize drops entries that cannot be episode numbers. Season and episode
// numbers are positive; anything else is a decoding artifact. Normalize is
// idempotent.
func (l Ledger) Normalize() {
	for season, set := range l {
		if season <= 0 {
			delete(l, season)
			continue
		}
		for episode := range set {
			if episode <= 0 {
				delete(set, episode)
			}
		}
	}
}

// Seasons returns the season numbers present in the ledger, ascending.
func (l Ledger) Seasons() []int {
	seasons := make([]int, 0, len(l))
	for season := range l {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons
}

// Episodes returns the watched episode numbers of season, ascending.
func (l Ledger) Episodes(season int) []int {
	episodes := make([]int, 0, len(l[season]))
	for episode := range l[season] {
		episodes = append(episodes, episode)
	}
	sort.Ints(episodes)
	return episodes
}

// Clone returns a deep copy of the ledger.
func (l Ledger) Clone() Ledger {
	clone := make(Ledger, len(l))
	for season, set := range l {
		copied := make(EpisodeSet, len(set))
		for episode := range set {
			copied[episode] = struct{}{}
		}
		clone[season] = copied
	}
	return clone
}

// MarshalJSON encodes the ledger in its wire form, a JSON object keyed by
// season number with sorted episode arrays: {"1": [1, 2, 3]}.
func (l Ledger) MarshalJSON() ([]byte, error) {
	wire := make(map[string][]int, len(l))
	for _, season := range l.Seasons() {
		wire[strconv.Itoa(season)] = l.Episodes(season)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the wire form. Episode entries may arrive as numbers
// or numeric strings from older records; both are coerced to ints and
// deduplicated so a season never counts the same episode twice.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var wire map[string][]any
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	out := make(Ledger, len(wire))
	for key, entries := range wire {
		season, err := strconv.Atoi(key)
		if err != nil || season <= 0 {
			continue
		}

		set := make(EpisodeSet, len(entries))
		for _, entry := range entries {
			episode, ok := coerceEpisode(entry)
			if !ok || episode <= 0 {
				continue
			}
			set[episode] = struct{}{}
		}
		out[season] = set
	}

	*l = out
	return nil
}

func coerceEpisode(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// Equal reports whether two ledgers mark the same episodes watched.
func (l Ledger) Equal(other Ledger) bool {
	seasons := l.Seasons()
	if !slices.Equal(seasons, other.Seasons()) {
		return false
	}
	for _, season := range seasons {
		if !slices.Equal(l.Episodes(season), other.Episodes(season)) {
			return false
		}
	}
	return true
}

// String renders the ledger wire form, for logging.
func (l Ledger) String() string {
	b, err := l.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("ledger(%d seasons)", len(l))
	}
	return string(b)
}
