package game_models

// Phase is the lifecycle stage of a game session
type Phase string

const (
	PhaseLobby    Phase = "lobby"     // waiting for enough players
	PhasePicking  Phase = "picking"   // drawer is choosing one of the offered words
	PhaseDrawing  Phase = "drawing"   // countdown running, guesses accepted
	PhaseRoundEnd Phase = "round_end" // transient, folded into the next picking phase
	PhaseGameOver Phase = "game_over" // terminal, session lives until everyone leaves
)

// GameSession is the whole-record state of one running game. The registry
// hands out copies, never pointers into its own maps.
type GameSession struct {
	Id               string   `json:"id"`
	Phase            Phase    `json:"phase"`
	Round            int      `json:"round"`
	SecondsRemaining int      `json:"seconds_remaining"`
	CurrentWord      string   `json:"current_word"`
	MaskedWord       string   `json:"masked_word"`
	DrawerId         string   `json:"drawer_id"`
	OfferedWords     []string `json:"offered_words"`
	// Members holds player ids in join order
	Members []string `json:"members"`
}

// Active reports whether the session has left the lobby and is not finished.
func (gs *GameSession) Active() bool {
	return gs.Phase != PhaseLobby && gs.Phase != PhaseGameOver
}

// Clone returns a deep copy safe to hand to callers.
func (gs *GameSession) Clone() GameSession {
	out := *gs
	out.OfferedWords = append([]string(nil), gs.OfferedWords...)
	out.Members = append([]string(nil), gs.Members...)
	return out
}
