package game_constants

// Turn/round pacing
const TurnDuration = 80 // seconds on the clock when a drawer picks a word
const MaxGameRounds = 3
const MinPlayersToStart = 3

// Words offered to the drawer at the start of each turn
const WordOptionsPerTurn = 3

// Score multipliers applied to the seconds remaining at the moment of a
// correct guess
const GUESSER_POINTS_MULTIPLIER = 10
const DRAWER_POINTS_MULTIPLIER = 5
