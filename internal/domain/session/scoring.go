package session

import "github.com/phrazzld/lexiplay/internal/domain"

// ScoringRules define the points awarded per answer.
type ScoringRules struct {
	// Base points for a correct answer
	Base int
	// Extra points per answer already in the current streak
	StreakStep int
	// Points removed for an incorrect answer
	Penalty int

	// EmotionBonus enables the emotion-congruence adjustment, added to every
	// answer according to the emotion observed at the time of the answer.
	EmotionBonus bool
	BonusTable   map[domain.EmotionLabel]int
}

// DefaultScoringRules returns 10 base points, 2 per streak step, a penalty
// of 2 and no emotion bonus.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		Base:       10,
		StreakStep: 2,
		Penalty:    2,
		BonusTable: map[domain.EmotionLabel]int{
			domain.EmotionHappy: 5,
			domain.EmotionAngry: -2,
			domain.EmotionSad:   -2,
		},
	}
}

// CorrectPoints returns the points for a correct answer given the streak
// length before the answer.
func (r ScoringRules) CorrectPoints(streak int, emotion domain.EmotionLabel) int {
	return r.Base + r.StreakStep*streak + r.bonus(emotion)
}

// IncorrectPoints returns the (usually negative) adjustment for an incorrect
// answer.
func (r ScoringRules) IncorrectPoints(emotion domain.EmotionLabel) int {
	return -r.Penalty + r.bonus(emotion)
}

func (r ScoringRules) bonus(emotion domain.EmotionLabel) int {
	if !r.EmotionBonus {
		return 0
	}
	return r.BonusTable[emotion]
}

// applyAdjustment adds delta to score and floors the total at zero.
func applyAdjustment(score, delta int) int {
	score += delta
	if score < 0 {
		return 0
	}
	return score
}
