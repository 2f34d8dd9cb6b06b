package play

import (
	"context"

	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/domain/session"
)

// gameRunner is a session.Runner with its item type erased.
type gameRunner interface {
	Submit(candidate []string) (session.AnswerResult, error)
	Tick() (domain.EmotionLabel, bool)
	Quit() (domain.SessionOutcome, error)
	Outcome() (domain.SessionOutcome, bool)
	State() session.State
	Stream() *session.EmotionStream
	Snapshot() session.Snapshot
	Prompt() *Prompt
}

type runnerAdapter[T session.Item] struct {
	*session.Runner[T]
}

func (a runnerAdapter[T]) Prompt() *Prompt {
	item, ok := a.Current()
	if !ok {
		return nil
	}
	return promptFor(item)
}

func loadRunner[T session.Item](cfg session.Config, pool []T) (gameRunner, error) {
	r := session.NewRunner[T](cfg)
	if err := r.Load(pool); err != nil {
		return nil, err
	}
	return runnerAdapter[T]{Runner: r}, nil
}

// newRunner builds the runner for the game and loads it from the catalog.
func newRunner(ctx context.Context, catalog Catalog, cfg session.Config) (gameRunner, error) {
	switch cfg.Game {
	case domain.GameMathQuest:
		return loadRunner(cfg, catalog.MathPool(cfg.Level))
	case domain.GameWordWizard:
		return loadRunner(cfg, catalog.WordPool(ctx, cfg.Level))
	case domain.GameShapePattern:
		return loadRunner(cfg, catalog.PatternPool(cfg.Level))
	case domain.GameMemoryMatrix:
		return loadRunner(cfg, catalog.TilePool(cfg.Level))
	default:
		return nil, ErrUnknownGame
	}
}
