// Package leveling decides whether a child's level for a game rises, falls
// or holds after a session, by blending emotional affect with task score.
package leveling

import (
	"github.com/phrazzld/lexiplay/internal/domain"
)

// Service defines the interface for level adjustment operations
type Service interface {
	// Decide computes the level decision for a finished session. It never
	// fails: empty emotion series degrade to neutral affect and out of range
	// levels are clamped.
	Decide(emotions domain.EmotionSeries, score float64, currentLevel int) domain.LevelDecision

	// DecideOutcome is Decide applied to a session outcome.
	DecideOutcome(outcome domain.SessionOutcome) domain.LevelDecision

	// Params returns a copy of the parameters in use.
	Params() Params
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new leveling service with default parameters
func NewDefaultService() (Service, error) {
	return NewServiceWithParams(NewDefaultParams())
}

// NewServiceWithParams creates a new leveling service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		params = NewDefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	p := *params
	return &defaultService{params: &p}, nil
}

// Decide implements Service.
func (s *defaultService) Decide(
	emotions domain.EmotionSeries,
	score float64,
	currentLevel int,
) domain.LevelDecision {
	return decide(emotions, score, currentLevel, s.params)
}

// DecideOutcome implements Service.
func (s *defaultService) DecideOutcome(outcome domain.SessionOutcome) domain.LevelDecision {
	return decide(outcome.Emotions, float64(outcome.FinalScore), outcome.CurrentLevel, s.params)
}

// Params implements Service.
func (s *defaultService) Params() Params {
	return *s.params
}
