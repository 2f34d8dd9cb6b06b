package content

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/phrazzld/lexiplay/internal/domain"
	"github.com/phrazzld/lexiplay/internal/generation"
)

// Catalog defaults
const (
	DefaultWordsPerLevel   = 10
	DefaultGenerateTimeout = 15 * time.Second
	DefaultFailureBackoff  = time.Minute
)

// Config tunes word generation. Zero values take the defaults.
type Config struct {
	// WordsPerLevel is how many words to request from the generator.
	WordsPerLevel int
	// GenerateTimeout bounds one generator call.
	GenerateTimeout time.Duration
	// FailureBackoff is how long a level waits after a failed generation
	// before it is tried again.
	FailureBackoff time.Duration
}

// Catalog serves the level pools of every game. It is safe for concurrent use.
type Catalog struct {
	generator generation.WordGenerator
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time

	math     [domain.MaxLevel + 1][]domain.MathQuestion
	words    [domain.MaxLevel + 1][]domain.ScrambledWord
	patterns [domain.MaxLevel + 1][]domain.ShapePattern
	tiles    [domain.MaxLevel + 1][]domain.TilePattern

	mu         sync.Mutex
	generated  map[int][]domain.ScrambledWord
	retryAfter map[int]time.Time
	inflight   map[int]bool
}

// NewCatalog builds the built-in pools. generator may be nil, in which case
// only built-in words are served.
func NewCatalog(generator generation.WordGenerator, cfg Config, logger *slog.Logger) *Catalog {
	if cfg.WordsPerLevel <= 0 {
		cfg.WordsPerLevel = DefaultWordsPerLevel
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = DefaultGenerateTimeout
	}
	if cfg.FailureBackoff <= 0 {
		cfg.FailureBackoff = DefaultFailureBackoff
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Catalog{
		generator:  generator,
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "content_catalog")),
		now:        time.Now,
		generated:  make(map[int][]domain.ScrambledWord),
		retryAfter: make(map[int]time.Time),
		inflight:   make(map[int]bool),
	}
	for level := domain.MinLevel; level <= domain.MaxLevel; level++ {
		c.math[level] = buildMathPool(level)
		c.words[level] = buildWordPool(level)
		c.patterns[level] = buildPatternPool(level)
		c.tiles[level] = buildTilePool(level)
	}
	return c
}

// MathPool returns the arithmetic questions for a level.
func (c *Catalog) MathPool(level int) []domain.MathQuestion {
	return slices.Clone(c.math[domain.ClampLevel(level)])
}

// PatternPool returns the shape sequences for a level.
func (c *Catalog) PatternPool(level int) []domain.ShapePattern {
	return slices.Clone(c.patterns[domain.ClampLevel(level)])
}

// TilePool returns the memory grid patterns for a level.
func (c *Catalog) TilePool(level int) []domain.TilePattern {
	return slices.Clone(c.tiles[domain.ClampLevel(level)])
}

// WordPool returns the built-in words for a level plus any generated words.
// The first call for a level triggers generation when a generator is
// configured; a failure is logged and the level falls back to the built-in
// list until the backoff has passed.
func (c *Catalog) WordPool(ctx context.Context, level int) []domain.ScrambledWord {
	level = domain.ClampLevel(level)
	pool := slices.Clone(c.words[level])

	if c.generator != nil {
		c.ensureGenerated(ctx, level)
	}

	c.mu.Lock()
	extra := c.generated[level]
	c.mu.Unlock()

	seen := make(map[string]struct{}, len(pool)+len(extra))
	for _, w := range pool {
		seen[w.Word] = struct{}{}
	}
	for _, w := range extra {
		if _, dup := seen[w.Word]; dup {
			continue
		}
		seen[w.Word] = struct{}{}
		pool = append(pool, w)
	}
	return pool
}

func (c *Catalog) ensureGenerated(ctx context.Context, level int) {
	c.mu.Lock()
	if len(c.generated[level]) > 0 || c.inflight[level] || c.now().Before(c.retryAfter[level]) {
		c.mu.Unlock()
		return
	}
	c.inflight[level] = true
	c.mu.Unlock()

	genCtx, cancel := context.WithTimeout(ctx, c.cfg.GenerateTimeout)
	defer cancel()
	words, err := c.generator.GenerateWords(genCtx, level, c.cfg.WordsPerLevel)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[level] = false
	if err != nil {
		c.retryAfter[level] = c.now().Add(c.cfg.FailureBackoff)
		c.logger.WarnContext(ctx, "word generation failed, using built-in words",
			slog.Int("level", level),
			slog.String("error", err.Error()),
			slog.Duration("retry_after", c.cfg.FailureBackoff))
		return
	}
	c.generated[level] = words
	c.logger.InfoContext(ctx, "cached generated words",
		slog.Int("level", level),
		slog.Int("count", len(words)))
}
