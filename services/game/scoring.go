package game

import game_constants "Scrawl/constants/game"

// GuesserReward is the score awarded to a player guessing correctly with
// secondsRemaining left on the clock.
func GuesserReward(secondsRemaining int) int {
	if secondsRemaining <= 0 {
		return 0
	}
	return game_constants.GUESSER_POINTS_MULTIPLIER * secondsRemaining
}

// DrawerReward is the score awarded to the drawer for each correct guess.
func DrawerReward(secondsRemaining int) int {
	if secondsRemaining <= 0 {
		return 0
	}
	return game_constants.DRAWER_POINTS_MULTIPLIER * secondsRemaining
}
