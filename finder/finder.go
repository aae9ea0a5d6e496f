package finder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"market-scout/config"
	"market-scout/models"
	"market-scout/utils"
)

var (
	// ErrNoQuery marks the normal, non-fatal empty outcome of a run that
	// never produced a usable query (unintelligible voice input, empty text).
	ErrNoQuery = errors.New("no valid query provided")

	// ErrNoCandidates marks a run where no video survived the search filter.
	ErrNoCandidates = errors.New("no videos found matching the criteria")
)

// SearchService returns video candidates for an English query.
type SearchService interface {
	Search(ctx context.Context, query string) ([]models.VideoCandidate, error)
}

// Ranker asks an external model which candidate best fits the query and
// returns the model's free-text analysis.
type Ranker interface {
	Rank(ctx context.Context, query string, candidates []models.VideoCandidate) (string, error)
}

// Normalizer detects the query language and translates to English when
// needed; the search API is constrained to English-language relevance.
type Normalizer interface {
	Normalize(ctx context.Context, query string) (string, error)
}

// Finder drives the full search → filter → rank → select pipeline.
type Finder struct {
	cfg        *config.Config
	logger     *utils.Logger
	search     SearchService
	ranker     Ranker
	normalizer Normalizer
}

// New assembles a Finder from its collaborators.
func New(cfg *config.Config, logger *utils.Logger, search SearchService, ranker Ranker, normalizer Normalizer) *Finder {
	return &Finder{
		cfg:        cfg,
		logger:     logger,
		search:     search,
		ranker:     ranker,
		normalizer: normalizer,
	}
}

// Run executes the pipeline for one query and returns the selection.
// Returns ErrNoQuery or ErrNoCandidates for the documented empty outcomes;
// other errors are upstream-service failures and terminate the run.
func (f *Finder) Run(ctx context.Context, query string) (models.Selection, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Selection{}, ErrNoQuery
	}

	normalized, err := f.normalize(ctx, query)
	if err != nil {
		return models.Selection{}, fmt.Errorf("normalize query: %w", err)
	}

	f.logger.Info("Searching for: %s", normalized)

	candidates, err := f.runSearch(ctx, normalized)
	if err != nil {
		return models.Selection{}, fmt.Errorf("search: %w", err)
	}

	candidates = FilterByDuration(candidates, Bounds{
		MinSeconds: f.cfg.MinDurationSec,
		MaxSeconds: f.cfg.MaxDurationSec,
		MaxKept:    f.cfg.MaxCandidates,
	}, f.logger)

	if len(candidates) == 0 {
		return models.Selection{}, ErrNoCandidates
	}

	f.logger.Info("Found %d videos matching criteria", len(candidates))
	f.logger.Info("Ranking candidates...")

	analysis, err := f.rank(ctx, normalized, candidates)
	if err != nil {
		return models.Selection{}, fmt.Errorf("rank candidates: %w", err)
	}

	return SelectBest(candidates, analysis), nil
}

// stageCtx caps one external call at the configured request timeout.
func (f *Finder) stageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.cfg.RequestTimeoutSec <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(f.cfg.RequestTimeoutSec)*time.Second)
}

func (f *Finder) normalize(ctx context.Context, query string) (string, error) {
	ctx, cancel := f.stageCtx(ctx)
	defer cancel()
	return f.normalizer.Normalize(ctx, query)
}

func (f *Finder) runSearch(ctx context.Context, query string) ([]models.VideoCandidate, error) {
	ctx, cancel := f.stageCtx(ctx)
	defer cancel()
	return f.search.Search(ctx, query)
}

func (f *Finder) rank(ctx context.Context, query string, candidates []models.VideoCandidate) (string, error) {
	ctx, cancel := f.stageCtx(ctx)
	defer cancel()
	return f.ranker.Rank(ctx, query, candidates)
}
