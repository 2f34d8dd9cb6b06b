package leveling

import (
	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/domain/affect"
)

// blendedMetric combines the affect score and the raw session score.
//
// Parameters:
//   - affectScore: mean valence of the session's emotion samples
//   - score: the session's final score, not clamped
//   - params: Configuration parameters for the leveling engine
//
// Returns:
//   - AffectWeight * ((affectScore + AffectOffset) / AffectRange) +
//     ScoreWeight * (score / ScoreScale)
//
// With the defaults this is 0.4 * ((affect + 3) / 6) + 0.6 * (score / 100).
// Scores above ScoreScale push the score term beyond its weight; negative
// scores pull it below zero.
func blendedMetric(affectScore, score float64, params *Params) float64 {
	affectTerm := (affectScore + params.AffectOffset) / params.AffectRange
	scoreTerm := score / params.ScoreScale
	return params.AffectWeight*affectTerm + params.ScoreWeight*scoreTerm
}

// clampLevel keeps a level inside the configured range.
func clampLevel(level int, params *Params) int {
	if level < params.MinLevel {
		return params.MinLevel
	}
	if level > params.MaxLevel {
		return params.MaxLevel
	}
	return level
}

// nextLevel applies the hysteresis rule to a blended metric.
//
// Algorithm behavior:
//   - blended > RaiseThreshold: one level up, capped at MaxLevel
//   - blended < LowerThreshold: one level down, floored at MinLevel
//   - otherwise the level is held
//
// The current level is clamped first, so out of range input still produces
// an in range result.
func nextLevel(currentLevel int, blended float64, params *Params) (int, domain.LevelDirection) {
	level := clampLevel(currentLevel, params)

	switch {
	case blended > params.RaiseThreshold:
		next := clampLevel(level+1, params)
		if next == level {
			return level, domain.LevelHold
		}
		return next, domain.LevelUp
	case blended < params.LowerThreshold:
		next := clampLevel(level-1, params)
		if next == level {
			return level, domain.LevelHold
		}
		return next, domain.LevelDown
	default:
		return level, domain.LevelHold
	}
}

// decide is the pure decision function behind Service.Decide.
func decide(
	emotions domain.EmotionSeries,
	score float64,
	currentLevel int,
	params *Params,
) domain.LevelDecision {
	summary := affect.Aggregate(emotions)
	blended := blendedMetric(summary.AffectScore, score, params)
	level, direction := nextLevel(currentLevel, blended, params)

	return domain.LevelDecision{
		NewLevel:   level,
		MaxEmotion: summary.MaxEmotion,
		MinEmotion: summary.MinEmotion,
		Blended:    blended,
		Direction:  direction,
	}
}

// Decide runs the level adjustment with the default parameters.
func Decide(emotions domain.EmotionSeries, score float64, currentLevel int) domain.LevelDecision {
	return decide(emotions, score, currentLevel, NewDefaultParams())
}
