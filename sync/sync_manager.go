package sync

import (
	game_models "Scrawl/models/game"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// SyncManager archives finished matches from the in-memory game state to
// PostgreSQL. Live sessions are never written; only terminal scoreboards.
type SyncManager struct {
	db *sql.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *sql.DB) *SyncManager {
	return &SyncManager{db: db}
}

type scoreboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ArchiveMatch inserts one match_results row for a finished session.
func (sm *SyncManager) ArchiveMatch(sess game_models.GameSession, players []game_models.Player, winner game_models.Player) error {
	scoreboard := make([]scoreboardEntry, 0, len(players))
	for _, p := range players {
		scoreboard = append(scoreboard, scoreboardEntry{Name: p.Name, Score: p.Score})
	}
	scoreboardJSON, err := json.Marshal(scoreboard)
	if err != nil {
		return fmt.Errorf("error marshaling scoreboard: %v", err)
	}

	// The session's round counter sits one past the last played round once
	// the game is over
	roundsPlayed := sess.Round - 1

	query := `
		INSERT INTO match_results (session_id, winner, winner_score, rounds, scoreboard, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = sm.db.Exec(query,
		sess.Id,
		winner.Name,
		winner.Score,
		roundsPlayed,
		scoreboardJSON,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error archiving match for session %s: %v", sess.Id, err)
	}
	return nil
}

// RecentMatches returns the most recently finished matches, newest first.
func (sm *SyncManager) RecentMatches(limit int) ([]MatchSummary, error) {
	rows, err := sm.db.Query(`
		SELECT session_id, winner, winner_score, rounds, finished_at
		FROM match_results
		ORDER BY finished_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying match results: %v", err)
	}
	defer rows.Close()

	var matches []MatchSummary
	for rows.Next() {
		var m MatchSummary
		if err := rows.Scan(&m.SessionID, &m.Winner, &m.WinnerScore, &m.Rounds, &m.FinishedAt); err != nil {
			return nil, fmt.Errorf("error scanning match result: %v", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// MatchSummary is one archived match as served by the REST API.
type MatchSummary struct {
	SessionID   string    `json:"session_id"`
	Winner      string    `json:"winner"`
	WinnerScore int       `json:"winner_score"`
	Rounds      int       `json:"rounds"`
	FinishedAt  time.Time `json:"finished_at"`
}

// GameFinished implements game.ResultSink.
func (sm *SyncManager) GameFinished(sess game_models.GameSession, players []game_models.Player, winner game_models.Player) {
	if err := sm.ArchiveMatch(sess, players, winner); err != nil {
		log.Printf("[SYNC-ERROR] %v", err)
	}
}
