package affect

import "github.com/phrazzld/lexiplay/internal/domain"

// valence maps each emotion label to its signed affect weight.
var valence = map[domain.EmotionLabel]float64{
	domain.EmotionHappy:     2,
	domain.EmotionSurprised: 1.5,
	domain.EmotionNeutral:   0.5,
	domain.EmotionSad:       -0.5,
	domain.EmotionFear:      -0.5,
	domain.EmotionAngry:     -0.5,
	domain.EmotionDisgust:   -0.5,
	domain.EmotionContempt:  -0.5,
	domain.EmotionUnknown:   0,
}

// Valence returns the affect weight of a label. Labels outside the table
// weigh 0.
func Valence(label domain.EmotionLabel) float64 {
	return valence[label]
}
