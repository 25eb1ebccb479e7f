package player

import (
	"cmp"
	"slices"
)

// Standing is one leaderboard row.
type Standing struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Wins     int     `json:"wins"`
	Games    int     `json:"games"`
	WinRate  float64 `json:"winRate"`
}

// Rank orders users by wins descending, ties broken by username.
// A non-positive limit returns every user.
func Rank(records map[string]*Record, limit int) []Standing {
	names := make([]string, 0, len(records))
	for n := range records {
		names = append(names, n)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(records[b].Wins, records[a].Wins); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	out := make([]Standing, len(names))
	for i, n := range names {
		r := records[n]
		out[i] = Standing{
			Rank:     i + 1,
			Username: n,
			Wins:     r.Wins,
			Games:    r.Games,
			WinRate:  r.WinRate(),
		}
	}
	return out
}
