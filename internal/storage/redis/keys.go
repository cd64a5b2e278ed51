package redis

import (
	"fmt"

	"github.com/avaskin/glitchbet/internal/model"
)

// Key prefix for all engine data
const keyPrefix = "glitchbet"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playerIndexKey returns the Redis key for the SET of all player keys
func playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// coinflipKey returns the Redis key for a player's coinflip session
func coinflipKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:session:coinflip:%s", keyPrefix, playerID)
}

// coinflipIndexKey returns the Redis key for the SET of coinflip session keys
func coinflipIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions:coinflip", keyPrefix)
}

// minesKey returns the Redis key for a player's mines session
func minesKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:session:mines:%s", keyPrefix, playerID)
}

// minesIndexKey returns the Redis key for the SET of mines session keys
func minesIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions:mines", keyPrefix)
}

// pendingBetKey returns the Redis key for a player's pending bet
func pendingBetKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:pending_bet:%s", keyPrefix, playerID)
}
