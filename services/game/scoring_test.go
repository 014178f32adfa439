package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuesserReward(t *testing.T) {
	assert.Equal(t, 450, GuesserReward(45))
	assert.Equal(t, 800, GuesserReward(80))
	assert.Equal(t, 10, GuesserReward(1))
}

func TestDrawerReward(t *testing.T) {
	assert.Equal(t, 225, DrawerReward(45))
	assert.Equal(t, 400, DrawerReward(80))
}

func TestRewardsNeverNegative(t *testing.T) {
	assert.Equal(t, 0, GuesserReward(0))
	assert.Equal(t, 0, GuesserReward(-1))
	assert.Equal(t, 0, DrawerReward(0))
	assert.Equal(t, 0, DrawerReward(-1))
}
