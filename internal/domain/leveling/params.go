package leveling

import (
	"errors"
	"fmt"

	"github.com/phrazzld/lexiplay/internal/domain"
)

// ErrInvalidParams is returned by Params.Validate for unusable settings.
var ErrInvalidParams = errors.New("invalid leveling params")

// Params defines all configurable parameters of the level adjustment engine
type Params struct {
	// Blend weights
	AffectWeight float64
	ScoreWeight  float64

	// Affect rescaling: (affect + AffectOffset) / AffectRange. The valence
	// table only spans [-0.5, 2] but the rescaling assumes [-3, 3].
	AffectOffset float64
	AffectRange  float64

	// Score normalization divisor
	ScoreScale float64

	// Decision thresholds; the band between them holds the level
	RaiseThreshold float64
	LowerThreshold float64

	// Level range, a subrange of domain.MinLevel..domain.MaxLevel
	MinLevel int
	MaxLevel int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	AffectWeight   float64
	ScoreWeight    float64
	AffectOffset   float64
	AffectRange    float64
	ScoreScale     float64
	RaiseThreshold float64
	LowerThreshold float64
	// MaxLevel may only narrow the range; Validate rejects values above 4.
	MaxLevel       int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		AffectWeight: 0.4,
		ScoreWeight:  0.6,

		AffectOffset: 3,
		AffectRange:  6,

		ScoreScale: 100,

		RaiseThreshold: 0.6,
		LowerThreshold: 0.3,

		MinLevel: domain.MinLevel,
		MaxLevel: domain.MaxLevel,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero values keep the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.AffectWeight > 0 {
		params.AffectWeight = config.AffectWeight
	}
	if config.ScoreWeight > 0 {
		params.ScoreWeight = config.ScoreWeight
	}
	if config.AffectOffset != 0 {
		params.AffectOffset = config.AffectOffset
	}
	if config.AffectRange > 0 {
		params.AffectRange = config.AffectRange
	}
	if config.ScoreScale > 0 {
		params.ScoreScale = config.ScoreScale
	}
	if config.RaiseThreshold > 0 {
		params.RaiseThreshold = config.RaiseThreshold
	}
	if config.LowerThreshold > 0 {
		params.LowerThreshold = config.LowerThreshold
	}
	if config.MaxLevel > 0 {
		params.MaxLevel = config.MaxLevel
	}

	return params
}

// Validate checks that the parameters describe a usable decision rule.
func (p *Params) Validate() error {
	if p.AffectRange <= 0 {
		return fmt.Errorf("%w: affect range must be positive", ErrInvalidParams)
	}
	if p.ScoreScale <= 0 {
		return fmt.Errorf("%w: score scale must be positive", ErrInvalidParams)
	}
	if p.RaiseThreshold <= p.LowerThreshold {
		return fmt.Errorf("%w: raise threshold %.2f must be above lower threshold %.2f",
			ErrInvalidParams, p.RaiseThreshold, p.LowerThreshold)
	}
	if p.MinLevel < domain.MinLevel || p.MaxLevel > domain.MaxLevel {
		return fmt.Errorf("%w: level range %d..%d exceeds supported range %d..%d",
			ErrInvalidParams, p.MinLevel, p.MaxLevel, domain.MinLevel, domain.MaxLevel)
	}
	if p.MinLevel >= p.MaxLevel {
		return fmt.Errorf("%w: min level %d must be below max level %d",
			ErrInvalidParams, p.MinLevel, p.MaxLevel)
	}
	return nil
}
