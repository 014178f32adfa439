package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'MatchResult' archives one finished game: who won, how many rounds were
 * played and the final scoreboard as JSON. Live session state is never
 * persisted; only terminal results land here.
 */
type MatchResult struct {
	ID          uint           `gorm:"primaryKey"`
	SessionID   string         `gorm:"size:50;not null;index:idx_match_results_session"`
	Winner      string         `gorm:"size:50;not null"`
	WinnerScore int            `gorm:"default:0"`
	Rounds      int            `gorm:"default:0"`
	Scoreboard  datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	FinishedAt  time.Time      `gorm:"default:CURRENT_TIMESTAMP;index:idx_match_results_finished"`
}
