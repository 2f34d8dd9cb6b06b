// Package affect reduces a session's emotion samples to a dominant and a
// least frequent emotion plus a signed average affect score.
package affect

import "github.com/phrazzld/lexiplay/internal/domain"

// Summary is the reduction of one emotion series.
type Summary struct {
	MaxEmotion  domain.EmotionLabel `json:"max_emotion"`
	MinEmotion  domain.EmotionLabel `json:"min_emotion"`
	AffectScore float64             `json:"affect_score"`
}

// Aggregate summarizes an emotion series.
//
// Parameters:
//   - series: the emotion samples of one session, possibly empty
//
// Returns:
//   - MaxEmotion: the most frequent label
//   - MinEmotion: the least frequent label among those that occur
//   - AffectScore: the arithmetic mean of the label valences
//
// Behavior:
//   - An empty series yields {neutral, neutral, 0}
//   - Count ties are broken by lexicographic order of the label name, the
//     smallest name winning for both the maximum and the minimum
//   - Labels outside the closed set are folded into unknown before counting,
//     so MaxEmotion and MinEmotion always belong to the set
//
// Aggregate never panics and is safe for concurrent use.
func Aggregate(series domain.EmotionSeries) Summary {
	if len(series) == 0 {
		return Summary{
			MaxEmotion:  domain.EmotionNeutral,
			MinEmotion:  domain.EmotionNeutral,
			AffectScore: 0,
		}
	}

	normalized := make(domain.EmotionSeries, len(series))
	for i, label := range series {
		normalized[i] = domain.ParseEmotionLabel(string(label))
	}
	counts := normalized.Counts()

	// Labels() is sorted, so strict comparisons keep the lexicographically
	// smallest label of every tied group.
	var maxLabel, minLabel domain.EmotionLabel
	maxCount, minCount := 0, len(series)+1
	for _, label := range normalized.Labels() {
		c := counts[label]
		if c > maxCount {
			maxLabel, maxCount = label, c
		}
		if c < minCount {
			minLabel, minCount = label, c
		}
	}

	total := 0.0
	for _, label := range normalized {
		total += Valence(label)
	}

	return Summary{
		MaxEmotion:  maxLabel,
		MinEmotion:  minLabel,
		AffectScore: total / float64(len(series)),
	}
}
