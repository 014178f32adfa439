package game

import (
	game_constants "Scrawl/constants/game"
	game_models "Scrawl/models/game"
	"Scrawl/services/store"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ResultSink receives the final scoreboard of a finished game. Wired to the
// match archive and the global leaderboard in production.
type ResultSink interface {
	GameFinished(sess game_models.GameSession, players []game_models.Player, winner game_models.Player)
}

// TurnScheduler orchestrates phase transitions, drawer selection, scoring
// and the per-session countdown. Every inbound event and timer tick runs to
// completion under its session's mutex before the next event touching that
// session is applied; independent sessions proceed concurrently.
type TurnScheduler struct {
	store     *store.GameStore
	transport Transport
	words     *WordList
	rng       *Rng

	// tickInterval <= 0 disables the background countdown goroutines; tests
	// drive the clock through Tick instead
	tickInterval time.Duration

	sinks []ResultSink

	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	timers map[string]*TurnTimer
}

func NewTurnScheduler(st *store.GameStore, transport Transport, words *WordList, rng *Rng) *TurnScheduler {
	return &TurnScheduler{
		store:        st,
		transport:    transport,
		words:        words,
		rng:          rng,
		tickInterval: time.Second,
		locks:        make(map[string]*sync.Mutex),
		timers:       make(map[string]*TurnTimer),
	}
}

// SetTickInterval overrides the one-second countdown cadence.
func (ts *TurnScheduler) SetTickInterval(d time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tickInterval = d
}

func (ts *TurnScheduler) AddResultSink(sink ResultSink) {
	ts.sinks = append(ts.sinks, sink)
}

// ---------------------------------------------------------------
// Per-session serialization and timer handles
// ---------------------------------------------------------------

func (ts *TurnScheduler) sessionLock(sessionID string) *sync.Mutex {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	lock, ok := ts.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		ts.locks[sessionID] = lock
	}
	return lock
}

// installTimer cancels any live handle before installing the new one, so at
// most one countdown per session is ever running.
func (ts *TurnScheduler) installTimer(sessionID string) {
	ts.mu.Lock()
	if old := ts.timers[sessionID]; old != nil {
		old.Cancel()
	}
	timer := newTurnTimer()
	ts.timers[sessionID] = timer
	interval := ts.tickInterval
	ts.mu.Unlock()

	if interval <= 0 {
		return
	}
	go timer.run(interval, func() bool {
		return ts.tick(sessionID, timer)
	})
}

func (ts *TurnScheduler) cancelTimer(sessionID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if timer := ts.timers[sessionID]; timer != nil {
		timer.Cancel()
		delete(ts.timers, sessionID)
	}
}

// ownsTimer reports whether the handle is still the session's live countdown.
func (ts *TurnScheduler) ownsTimer(sessionID string, timer *TurnTimer) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.timers[sessionID] == timer
}

// releaseSession drops the lock entry and timer of a session that no longer
// exists in the registry.
func (ts *TurnScheduler) releaseSession(sessionID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if timer := ts.timers[sessionID]; timer != nil {
		timer.Cancel()
		delete(ts.timers, sessionID)
	}
	delete(ts.locks, sessionID)
}

// ---------------------------------------------------------------
// Inbound events
// ---------------------------------------------------------------

// HandleJoin registers the player and starts the first turn on the join that
// brings a lobby to the player minimum. Returns store.ErrNameTaken when the
// name is already present in the session. The session is resolved before the
// lock is taken and the roster insert happens under it, so a join can never
// land in the middle of another event's transition.
func (ts *TurnScheduler) HandleJoin(connID, name, targetSessionID string) (game_models.Player, game_models.GameSession, error) {
	sessionID := ts.store.ResolveSession(targetSessionID)

	lock := ts.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	player, sess, err := ts.store.AddPlayer(connID, name, sessionID)
	if err != nil {
		log.Printf("[JOIN-ERROR] %s could not join (target %q): %v", name, targetSessionID, err)
		return game_models.Player{}, game_models.GameSession{}, err
	}

	ts.transport.JoinSession(connID, sess.Id)
	ts.transport.ToSessionExcept(sess.Id, connID, "chat", gin.H{
		"player": "admin",
		"text":   fmt.Sprintf("%s has joined the game", player.Name),
	})

	players := ts.store.ListPlayers(sess.Id)

	log.Printf("[JOIN] %s joined session %s (%d players, phase %s)",
		player.Name, sess.Id, len(players), sess.Phase)

	if sess.Phase == game_models.PhaseLobby {
		if len(players) >= game_constants.MinPlayersToStart {
			// Leaving the lobby phase is what marks the session as playing;
			// this fires exactly once because the phase never returns to lobby
			ts.advanceTurn(sess.Id)
		} else {
			ts.transport.ToSession(sess.Id, "alert", gin.H{
				"text": fmt.Sprintf("waiting for %d more players", game_constants.MinPlayersToStart-len(players)),
			})
			ts.transport.ToSession(sess.Id, "players", players)
		}
	} else {
		ts.transport.ToSession(sess.Id, "players", players)
	}

	sess, _ = ts.store.GetSession(sess.Id)
	return player, sess, nil
}

// HandlePickWord moves the session from picking to drawing once the
// designated drawer chooses one of the offered words.
func (ts *TurnScheduler) HandlePickWord(connID, word string) error {
	player, err := ts.store.GetPlayer(connID)
	if err != nil {
		log.Printf("[PICK-ERROR] pick_word from unknown connection %s", connID)
		return ErrUnknownPlayer
	}

	lock := ts.sessionLock(player.SessionId)
	lock.Lock()
	defer lock.Unlock()

	sess, err := ts.store.GetSession(player.SessionId)
	if err != nil {
		return ErrUnknownSession
	}
	if sess.Phase != game_models.PhasePicking {
		log.Printf("[PICK-ERROR] %s picked %q outside picking phase (%s)", player.Name, word, sess.Phase)
		return ErrInvalidPhase
	}
	if sess.DrawerId != connID {
		log.Printf("[PICK-ERROR] %s picked a word but is not the drawer", player.Name)
		return ErrNotDrawer
	}
	offered := false
	for _, option := range sess.OfferedWords {
		if option == word {
			offered = true
			break
		}
	}
	if !offered {
		log.Printf("[PICK-ERROR] %s picked %q which was not offered", player.Name, word)
		return ErrWordNotOffered
	}

	masked := MaskWord(word)
	sess, _ = ts.store.UpdateSession(sess.Id, func(gs *game_models.GameSession) {
		gs.Phase = game_models.PhaseDrawing
		gs.CurrentWord = word
		gs.MaskedWord = masked
		gs.SecondsRemaining = game_constants.TurnDuration
	})
	ts.store.UpdatePlayer(sess.Id, connID, func(p *game_models.Player) {
		p.Drawing = true
	})

	log.Printf("[TURN] %s picked a word in session %s, countdown started", player.Name, sess.Id)

	ts.transport.ToPlayer(connID, "word", gin.H{"value": word})
	ts.transport.ToSessionExcept(sess.Id, connID, "word", gin.H{"value": masked})
	ts.transport.ToSession(sess.Id, "timer", gin.H{"seconds_remaining": sess.SecondsRemaining})

	ts.installTimer(sess.Id)
	return nil
}

// HandleDraw relays an opaque drawing payload to everyone else in the
// session while the sender is the live drawer.
func (ts *TurnScheduler) HandleDraw(connID string, lines interface{}) {
	player, err := ts.store.GetPlayer(connID)
	if err != nil {
		return
	}

	lock := ts.sessionLock(player.SessionId)
	lock.Lock()
	defer lock.Unlock()

	player, err = ts.store.GetPlayer(connID)
	if err != nil || !player.Drawing {
		return
	}
	sess, err := ts.store.GetSession(player.SessionId)
	if err != nil || sess.Phase != game_models.PhaseDrawing {
		return
	}
	ts.transport.ToSessionExcept(sess.Id, connID, "draw", lines)
}

// HandleChat treats a message matching the current word as a correct guess
// during the drawing phase and relays everything else as plain chat.
func (ts *TurnScheduler) HandleChat(connID, message string) {
	player, err := ts.store.GetPlayer(connID)
	if err != nil {
		log.Printf("[CHAT] dropping message from unknown connection %s", connID)
		return
	}

	lock := ts.sessionLock(player.SessionId)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock so a guess racing a tick sees a settled record
	player, err = ts.store.GetPlayer(connID)
	if err != nil {
		return
	}
	sess, err := ts.store.GetSession(player.SessionId)
	if err != nil {
		return
	}

	isGuess := sess.Phase == game_models.PhaseDrawing &&
		message == sess.CurrentWord && !player.Drawing && !player.Locked
	if !isGuess {
		ts.transport.ToSession(sess.Id, "chat", gin.H{"player": player.Name, "text": message})
		return
	}

	guessPoints := GuesserReward(sess.SecondsRemaining)
	drawPoints := DrawerReward(sess.SecondsRemaining)

	// Lock and score in one atomic update so a repeated identical guess can
	// never award points twice
	players, err := ts.store.UpdatePlayer(sess.Id, player.Id, func(p *game_models.Player) {
		p.Locked = true
		p.Score += guessPoints
	})
	if err != nil {
		return
	}
	if sess.DrawerId != "" {
		if updated, err := ts.store.UpdatePlayer(sess.Id, sess.DrawerId, func(p *game_models.Player) {
			p.Score += drawPoints
		}); err == nil {
			players = updated
		}
	}

	log.Printf("[GUESS] %s guessed the word in session %s (+%d, drawer +%d)",
		player.Name, sess.Id, guessPoints, drawPoints)

	ts.transport.ToSession(sess.Id, "chat", gin.H{
		"player": "admin",
		"text":   fmt.Sprintf("%s guessed the word!", player.Name),
	})
	ts.transport.ToSession(sess.Id, "players", players)

	if turnOver(players) {
		ts.advanceTurn(sess.Id)
	}
}

// HandleDisconnect removes the player and cleans up. Disconnection never
// fails the session: the roster shrinks, the turn-over predicate is
// re-evaluated, and a drawerless turn ends immediately. The removal itself
// happens under the session lock, after any in-flight transition settles.
func (ts *TurnScheduler) HandleDisconnect(connID string) {
	player, err := ts.store.GetPlayer(connID)
	if err != nil {
		return
	}

	lock := ts.sessionLock(player.SessionId)
	lock.Lock()
	defer lock.Unlock()

	player, ok := ts.store.RemovePlayer(connID)
	if !ok {
		// a concurrent disconnect for the same connection won the race
		return
	}

	ts.transport.LeaveSession(connID, player.SessionId)

	sess, err := ts.store.GetSession(player.SessionId)
	if err != nil {
		// Last member left; the session is gone
		log.Printf("[DISCONNECT] %s left and session %s was released", player.Name, player.SessionId)
		defer ts.releaseSession(player.SessionId)
		return
	}

	log.Printf("[DISCONNECT] %s left session %s", player.Name, sess.Id)

	players := ts.store.ListPlayers(sess.Id)
	ts.transport.ToSession(sess.Id, "chat", gin.H{
		"player": "admin",
		"text":   fmt.Sprintf("%s has left the game", player.Name),
	})
	ts.transport.ToSession(sess.Id, "players", players)

	switch sess.Phase {
	case game_models.PhasePicking:
		if sess.DrawerId == connID {
			ts.advanceTurn(sess.Id)
		}
	case game_models.PhaseDrawing:
		// Drawer leaving ends the turn and reselects; otherwise the leaver
		// may have been the last unlocked guesser
		if sess.DrawerId == connID || turnOver(players) {
			ts.advanceTurn(sess.Id)
		}
	}
}

// Tick advances the countdown of a session by one second. The background
// timer calls this once per interval; tests call it directly.
func (ts *TurnScheduler) Tick(sessionID string) {
	ts.tick(sessionID, nil)
}

func (ts *TurnScheduler) tick(sessionID string, owner *TurnTimer) bool {
	if owner != nil && !ts.ownsTimer(sessionID, owner) {
		return false
	}

	lock := ts.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	// Re-check under the lock: the turn may have ended while we waited
	if owner != nil && !ts.ownsTimer(sessionID, owner) {
		return false
	}

	sess, err := ts.store.GetSession(sessionID)
	if err != nil || sess.Phase != game_models.PhaseDrawing {
		return false
	}

	sess, _ = ts.store.UpdateSession(sessionID, func(gs *game_models.GameSession) {
		gs.SecondsRemaining--
	})

	if sess.SecondsRemaining < 0 {
		log.Printf("[TIMER] session %s ran out of time", sessionID)
		ts.advanceTurn(sessionID)
		return false
	}

	ts.transport.ToSession(sessionID, "timer", gin.H{"seconds_remaining": sess.SecondsRemaining})
	ts.revealDueLetters(sess)
	return true
}

// revealDueLetters discloses letters until the mask catches up with the
// even-spacing schedule for the current clock.
func (ts *TurnScheduler) revealDueLetters(sess game_models.GameSession) {
	wordLen := len([]rune(sess.CurrentWord))
	target := RevealTarget(wordLen, sess.SecondsRemaining, game_constants.TurnDuration)
	revealed := RevealedCount(sess.MaskedWord)
	if target <= revealed {
		return
	}

	mask := sess.MaskedWord
	for i := revealed; i < target; i++ {
		mask = RevealLetter(sess.CurrentWord, mask, ts.rng)
	}
	sess, err := ts.store.UpdateSession(sess.Id, func(gs *game_models.GameSession) {
		gs.MaskedWord = mask
	})
	if err != nil {
		return
	}
	ts.transport.ToSessionExcept(sess.Id, sess.DrawerId, "word", gin.H{"value": mask})
}

// ---------------------------------------------------------------
// Turn/round rotation
// ---------------------------------------------------------------

// turnOver reports whether every non-drawing player has guessed correctly.
func turnOver(players []game_models.Player) bool {
	for _, p := range players {
		if !p.Drawing && !p.Locked {
			return false
		}
	}
	return true
}

// advanceTurn ends the current turn (if any) and either starts the next one
// or finishes the game. Callers hold the session lock.
func (ts *TurnScheduler) advanceTurn(sessionID string) {
	ts.cancelTimer(sessionID)

	players := ts.store.ListPlayers(sessionID)
	if len(players) == 0 {
		return
	}

	eligible := undrawnPlayers(players)
	if len(eligible) == 0 {
		// Every player drew this round: reset per-round flags and advance
		players, _ = ts.store.UpdatePlayers(sessionID, func(p *game_models.Player) {
			p.Drawing = false
			p.HasDrawn = false
			p.Locked = false
		})
		sess, err := ts.store.UpdateSession(sessionID, func(gs *game_models.GameSession) {
			gs.Phase = game_models.PhaseRoundEnd
			gs.Round++
		})
		if err != nil {
			return
		}
		if sess.Round > game_constants.MaxGameRounds {
			ts.finishGame(sess, players)
			return
		}
		log.Printf("[ROUND] session %s advanced to round %d", sessionID, sess.Round)
		ts.transport.ToSession(sessionID, "round", gin.H{"round": sess.Round})
		eligible = undrawnPlayers(players)
	} else {
		players, _ = ts.store.UpdatePlayers(sessionID, func(p *game_models.Player) {
			p.Drawing = false
			p.Locked = false
		})
		eligible = undrawnPlayers(players)
	}
	if len(eligible) == 0 {
		return
	}

	drawer := eligible[ts.rng.Intn(len(eligible))]
	if updated, err := ts.store.UpdatePlayer(sessionID, drawer.Id, func(p *game_models.Player) {
		p.HasDrawn = true
	}); err == nil {
		players = updated
	}

	options := ts.words.Sample(ts.rng, game_constants.WordOptionsPerTurn)
	ts.store.UpdateSession(sessionID, func(gs *game_models.GameSession) {
		gs.Phase = game_models.PhasePicking
		gs.DrawerId = drawer.Id
		gs.OfferedWords = options
		gs.CurrentWord = ""
		gs.MaskedWord = ""
		gs.SecondsRemaining = game_constants.TurnDuration
	})

	log.Printf("[TURN] session %s: %s is picking a word", sessionID, drawer.Name)

	ts.transport.ToPlayer(drawer.Id, "words", options)
	ts.transport.ToSessionExcept(sessionID, drawer.Id, "alert", gin.H{
		"text": fmt.Sprintf("%s is picking a word", drawer.Name),
	})
	ts.transport.ToSession(sessionID, "timer", gin.H{"seconds_remaining": game_constants.TurnDuration})
	ts.transport.ToSession(sessionID, "players", players)
}

func undrawnPlayers(players []game_models.Player) []game_models.Player {
	var out []game_models.Player
	for _, p := range players {
		if !p.HasDrawn {
			out = append(out, p)
		}
	}
	return out
}

// finishGame moves the session to its terminal phase. The winner is the
// first player in join order holding the maximal score.
func (ts *TurnScheduler) finishGame(sess game_models.GameSession, players []game_models.Player) {
	winner := players[0]
	for _, p := range players[1:] {
		if p.Score > winner.Score {
			winner = p
		}
	}

	sess, err := ts.store.UpdateSession(sess.Id, func(gs *game_models.GameSession) {
		gs.Phase = game_models.PhaseGameOver
		gs.DrawerId = ""
		gs.OfferedWords = nil
	})
	if err != nil {
		return
	}

	log.Printf("[GAME-END] session %s finished, %s won with %d points", sess.Id, winner.Name, winner.Score)

	ts.transport.ToSession(sess.Id, "alert", gin.H{
		"text": fmt.Sprintf("%s has won the game!", winner.Name),
	})
	ts.transport.ToSession(sess.Id, "game_end", gin.H{
		"winner":  winner.Name,
		"score":   winner.Score,
		"players": players,
	})

	for _, sink := range ts.sinks {
		sink.GameFinished(sess, players, winner)
	}
}
