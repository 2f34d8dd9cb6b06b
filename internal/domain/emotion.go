package domain

import (
	"sort"
	"strings"
)

// EmotionLabel is one categorical emotion reading produced by an upstream
// classifier. The set of labels is closed; anything else becomes EmotionUnknown.
type EmotionLabel string

// Supported emotion labels
const (
	EmotionHappy     EmotionLabel = "happy"
	EmotionSurprised EmotionLabel = "surprised"
	EmotionNeutral   EmotionLabel = "neutral"
	EmotionSad       EmotionLabel = "sad"
	EmotionFear      EmotionLabel = "fear"
	EmotionAngry     EmotionLabel = "angry"
	EmotionDisgust   EmotionLabel = "disgust"
	EmotionContempt  EmotionLabel = "contempt"
	EmotionUnknown   EmotionLabel = "unknown"
)

var emotionLabels = []EmotionLabel{
	EmotionHappy,
	EmotionSurprised,
	EmotionNeutral,
	EmotionSad,
	EmotionFear,
	EmotionAngry,
	EmotionDisgust,
	EmotionContempt,
	EmotionUnknown,
}

// Some classifiers report "anger" rather than "angry".
var emotionAliases = map[string]EmotionLabel{
	"anger":    EmotionAngry,
	"surprise": EmotionSurprised,
}

// AllEmotionLabels returns every label of the closed set, in declaration order.
func AllEmotionLabels() []EmotionLabel {
	labels := make([]EmotionLabel, len(emotionLabels))
	copy(labels, emotionLabels)
	return labels
}

// ParseEmotionLabel normalizes a raw classifier label. Matching is
// case-insensitive and ignores surrounding whitespace. Labels outside the
// vocabulary map to EmotionUnknown rather than producing an error.
func ParseEmotionLabel(raw string) EmotionLabel {
	s := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := emotionAliases[s]; ok {
		return alias
	}
	label := EmotionLabel(s)
	if label.Valid() {
		return label
	}
	return EmotionUnknown
}

// Valid reports whether the label belongs to the closed label set.
func (e EmotionLabel) Valid() bool {
	for _, l := range emotionLabels {
		if e == l {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (e EmotionLabel) String() string {
	return string(e)
}

// EmotionSeries is the ordered sequence of emotion samples observed during one
// session, one entry per sampling tick. An empty series is valid.
type EmotionSeries []EmotionLabel

// ParseEmotionSeries converts raw labels into a series using ParseEmotionLabel.
func ParseEmotionSeries(raw []string) EmotionSeries {
	series := make(EmotionSeries, 0, len(raw))
	for _, r := range raw {
		series = append(series, ParseEmotionLabel(r))
	}
	return series
}

// Counts returns the number of occurrences of each label present in the series.
func (s EmotionSeries) Counts() map[EmotionLabel]int {
	counts := make(map[EmotionLabel]int, len(emotionLabels))
	for _, label := range s {
		counts[label]++
	}
	return counts
}

// Labels returns the distinct labels of the series in lexicographic order.
func (s EmotionSeries) Labels() []EmotionLabel {
	counts := s.Counts()
	labels := make([]EmotionLabel, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}
