package balls

// maxDeltaExponent caps the per-match award at 2^16 = 65536.
const maxDeltaExponent = 16

// MatchDelta returns the score award for removing a group of n pieces:
// 2^min(n, 16). Non-positive sizes award nothing.
func MatchDelta(n int) int {
	if n <= 0 {
		return 0
	}
	return 1 << min(n, maxDeltaExponent)
}

// ScoreTracker holds the running score and the best score seen so far.
type ScoreTracker struct {
	score int
	best  int
}

// NewScoreTracker starts at score 0 with a previously persisted best.
func NewScoreTracker(best int) *ScoreTracker {
	return &ScoreTracker{best: max(best, 0)}
}

// Score returns the current score.
func (t *ScoreTracker) Score() int {
	return t.score
}

// Best returns the best score.
func (t *ScoreTracker) Best() int {
	return t.best
}

// ApplyMatch adds the award for a group of groupSize pieces and returns it.
// Whether a group qualifies is the caller's decision.
func (t *ScoreTracker) ApplyMatch(groupSize int) int {
	delta := MatchDelta(groupSize)
	t.score += delta
	return delta
}

// MaybeUpdateBest raises the best score to the current score when exceeded.
// A true result means the new best should be persisted.
func (t *ScoreTracker) MaybeUpdateBest() bool {
	if t.score <= t.best {
		return false
	}
	t.best = t.score
	return true
}

// Reset zeroes the current score. The best score is never reset here.
func (t *ScoreTracker) Reset() {
	t.score = 0
}
