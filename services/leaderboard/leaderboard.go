package leaderboard

import (
	game_models "Scrawl/models/game"
	redis_models "Scrawl/models/redis"
	"Scrawl/services/redis"
	"fmt"
	"log"
)

// Key of the global sorted set: member = player name, score = lifetime points.
const leaderboardKey = "leaderboard:global"

// Leaderboard accumulates final scores across sessions in a Redis sorted
// set. Names are the aggregation key, so the board survives reconnects where
// connection ids do not.
type Leaderboard struct {
	rc *redis.RedisClient
}

func NewLeaderboard(rc *redis.RedisClient) *Leaderboard {
	return &Leaderboard{rc: rc}
}

// AddScore folds one finished-game score into a player's lifetime total.
func (lb *Leaderboard) AddScore(name string, score int) error {
	if err := lb.rc.Client.ZIncrBy(lb.rc.Ctx, leaderboardKey, float64(score), name).Err(); err != nil {
		return fmt.Errorf("error updating leaderboard for %s: %v", name, err)
	}
	return nil
}

// Top returns the n highest lifetime scores, best first.
func (lb *Leaderboard) Top(n int) ([]redis_models.LeaderboardEntry, error) {
	rows, err := lb.rc.Client.ZRevRangeWithScores(lb.rc.Ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading leaderboard: %v", err)
	}
	entries := make([]redis_models.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		name, _ := row.Member.(string)
		entries = append(entries, redis_models.LeaderboardEntry{Name: name, Score: int(row.Score)})
	}
	return entries, nil
}

// GameFinished implements game.ResultSink.
func (lb *Leaderboard) GameFinished(sess game_models.GameSession, players []game_models.Player, winner game_models.Player) {
	for _, p := range players {
		if err := lb.AddScore(p.Name, p.Score); err != nil {
			log.Printf("[LEADERBOARD-ERROR] session %s: %v", sess.Id, err)
		}
	}
}
