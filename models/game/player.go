package game_models

// Player represents one connected participant. Id doubles as the transport
// connection id, like the socket id in the original protocol.
type Player struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	SessionId string `json:"session_id"`
	Score     int    `json:"score"`
	Drawing   bool   `json:"drawing"`
	HasDrawn  bool   `json:"has_drawn"`
	// Locked is set once the player has guessed correctly in the current
	// turn, so a repeated guess can never score twice
	Locked bool `json:"locked"`
}
