package redis

// LeaderboardEntry is one row of the global leaderboard sorted set. The
// player name is the set member and the lifetime score its numeric score.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
