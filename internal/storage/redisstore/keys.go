package redisstore

import "fmt"

// bestKey returns the Redis key for a named best score.
func (s *Store) bestKey(name string) string {
	return fmt.Sprintf("%s:best:%s", s.cfg.KeyPrefix, name)
}

// leaderboardKey returns the Redis key for a game's sorted set of player bests.
func (s *Store) leaderboardKey(gameID string) string {
	return fmt.Sprintf("%s:leaderboard:%s", s.cfg.KeyPrefix, gameID)
}
