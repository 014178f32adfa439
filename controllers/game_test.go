package controllers

import (
	"Scrawl/services/store"
	syncmanager "Scrawl/sync"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(gc *GameController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/sessions/:id", gc.GetSessionInfo)
	r.GET("/api/v1/matches/recent", gc.GetRecentMatches)
	r.GET("/api/v1/leaderboard", gc.GetLeaderboard)
	return r
}

func TestGetSessionInfo(t *testing.T) {
	st := store.NewGameStore(rand.New(rand.NewSource(1)))
	st.AddPlayer("c1", "alice", "party")
	st.AddPlayer("c2", "bob", "party")

	r := setupRouter(&GameController{Store: st})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/sessions/party", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Id          string   `json:"id"`
		Phase       string   `json:"phase"`
		Active      bool     `json:"active"`
		Round       int      `json:"round"`
		PlayerCount int      `json:"player_count"`
		Players     []string `json:"players"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "party", body.Id)
	assert.Equal(t, "lobby", body.Phase)
	assert.False(t, body.Active)
	assert.Equal(t, 1, body.Round)
	assert.Equal(t, 2, body.PlayerCount)
	assert.Equal(t, []string{"alice", "bob"}, body.Players)
}

func TestGetSessionInfoNotFound(t *testing.T) {
	st := store.NewGameStore(rand.New(rand.NewSource(1)))
	r := setupRouter(&GameController{Store: st})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/sessions/nope", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "session not found")
}

func TestGetRecentMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	finished := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT session_id, winner, winner_score, rounds, finished_at").
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "winner", "winner_score", "rounds", "finished_at"}).
			AddRow("party", "alice", 7200, 3, finished))

	r := setupRouter(&GameController{SyncManager: syncmanager.NewSyncManager(db)})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/matches/recent", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"winner":"alice"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentMatchesLimitValidation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := setupRouter(&GameController{SyncManager: syncmanager.NewSyncManager(db)})

	for _, raw := range []string{"0", "101", "-3", "abc"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/matches/recent?limit="+raw, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", raw)
	}
}

func TestGetRecentMatchesCustomLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT session_id, winner, winner_score, rounds, finished_at").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "winner", "winner_score", "rounds", "finished_at"}))

	r := setupRouter(&GameController{SyncManager: syncmanager.NewSyncManager(db)})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/matches/recent?limit=5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentMatchesArchiveNotConfigured(t *testing.T) {
	r := setupRouter(&GameController{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/matches/recent", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "match archive not configured")
}

func TestGetRecentMatchesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT session_id, winner, winner_score, rounds, finished_at").
		WillReturnError(assert.AnError)

	r := setupRouter(&GameController{SyncManager: syncmanager.NewSyncManager(db)})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/matches/recent", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetLeaderboardNotConfigured(t *testing.T) {
	r := setupRouter(&GameController{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/leaderboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "leaderboard not configured")
}
