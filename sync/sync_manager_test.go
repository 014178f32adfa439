package sync

import (
	game_models "Scrawl/models/game"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finishedFixture() (game_models.GameSession, []game_models.Player, game_models.Player) {
	sess := game_models.GameSession{
		Id:    "party",
		Phase: game_models.PhaseGameOver,
		Round: 4,
	}
	players := []game_models.Player{
		{Id: "c1", Name: "alice", Score: 7200},
		{Id: "c2", Name: "bob", Score: 5400},
		{Id: "c3", Name: "carol", Score: 4100},
	}
	return sess, players, players[0]
}

func TestArchiveMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sess, players, winner := finishedFixture()
	expectedScoreboard := `[{"name":"alice","score":7200},{"name":"bob","score":5400},{"name":"carol","score":4100}]`

	mock.ExpectExec("INSERT INTO match_results").
		WithArgs("party", "alice", 7200, 3, []byte(expectedScoreboard), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	sm := NewSyncManager(db)
	err = sm.ArchiveMatch(sess, players, winner)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveMatchExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sess, players, winner := finishedFixture()

	mock.ExpectExec("INSERT INTO match_results").
		WillReturnError(assert.AnError)

	sm := NewSyncManager(db)
	err = sm.ArchiveMatch(sess, players, winner)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error archiving match for session party")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGameFinishedSwallowsErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sess, players, winner := finishedFixture()
	mock.ExpectExec("INSERT INTO match_results").
		WillReturnError(assert.AnError)

	// the sink callback must never panic or propagate database failures
	sm := NewSyncManager(db)
	sm.GameFinished(sess, players, winner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newest := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"session_id", "winner", "winner_score", "rounds", "finished_at"}).
		AddRow("party", "alice", 7200, 3, newest).
		AddRow("other", "dave", 3100, 3, newest.Add(-time.Hour))

	mock.ExpectQuery("SELECT session_id, winner, winner_score, rounds, finished_at").
		WithArgs(2).
		WillReturnRows(rows)

	sm := NewSyncManager(db)
	matches, err := sm.RecentMatches(2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "party", matches[0].SessionID)
	assert.Equal(t, "alice", matches[0].Winner)
	assert.Equal(t, 7200, matches[0].WinnerScore)
	assert.Equal(t, 3, matches[0].Rounds)
	assert.Equal(t, newest, matches[0].FinishedAt)
	assert.Equal(t, "other", matches[1].SessionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentMatchesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT session_id, winner, winner_score, rounds, finished_at").
		WillReturnError(assert.AnError)

	sm := NewSyncManager(db)
	_, err = sm.RecentMatches(5)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
