// Package tagger runs the sequential tagging pass over every bookmark.
package tagger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aryannaik/lw-tagger/internal/linkwarden"
	"github.com/aryannaik/lw-tagger/internal/vocab"
)

// LinkService is the subset of the bookmark API the runner needs.
type LinkService interface {
	ListLinks(ctx context.Context) ([]linkwarden.Link, error)
	UpdateTags(ctx context.Context, link linkwarden.Link, tags []string) error
}

// TagSuggester proposes tags for a piece of text.
type TagSuggester interface {
	Suggest(ctx context.Context, text string, v *vocab.Vocabulary) []string
}

type Config struct {
	SkipTagged bool
	Policy     Policy
	DryRun     bool
}

// Summary reports the outcome of one run.
type Summary struct {
	RunID       string
	Total       int
	Skipped     int
	Updated     int
	WouldUpdate int
	Unchanged   int
	Failed      int
	FetchFailed bool
	Interrupted bool
	Elapsed     time.Duration
}

type Runner struct {
	links     LinkService
	suggester TagSuggester
	vocab     *vocab.Vocabulary
	cfg       Config
	logger    *zap.Logger
}

func NewRunner(links LinkService, suggester TagSuggester, v *vocab.Vocabulary, cfg Config, logger *zap.Logger) *Runner {
	if cfg.Policy == "" {
		cfg.Policy = PolicyReplace
	}
	return &Runner{
		links:     links,
		suggester: suggester,
		vocab:     v,
		cfg:       cfg,
		logger:    logger.With(zap.String("component", "tagger")),
	}
}

// Run processes every link once, in the order the service returns them. A failure on
// one link is logged and counted; it never stops the run.
func (r *Runner) Run(ctx context.Context) Summary {
	start := time.Now()
	sum := Summary{RunID: uuid.NewString()}
	logger := r.logger.With(zap.String("run_id", sum.RunID))

	logger.Info("Approved tags loaded", zap.Int("count", r.vocab.Len()))

	links, err := r.links.ListLinks(ctx)
	if err != nil {
		logger.Error("Error fetching links", zap.Error(err))
		sum.FetchFailed = true
		sum.Elapsed = time.Since(start)
		return sum
	}
	sum.Total = len(links)
	logger.Info("Found links", zap.Int("count", len(links)))

	for i, link := range links {
		if ctx.Err() != nil {
			logger.Warn("Run interrupted", zap.Int("processed", i), zap.Int("total", len(links)))
			sum.Interrupted = true
			break
		}
		r.process(ctx, logger, link, &sum)

		if (i+1)%10 == 0 || i+1 == len(links) {
			logger.Info("Progress", zap.Int("done", i+1), zap.Int("total", len(links)))
		}
	}

	sum.Elapsed = time.Since(start)
	return sum
}

func (r *Runner) process(ctx context.Context, logger *zap.Logger, link linkwarden.Link, sum *Summary) {
	logger = logger.With(zap.Int("link_id", link.ID), zap.String("name", link.Name))
	existing := link.TagNames()

	if r.cfg.SkipTagged && len(existing) > 0 {
		logger.Info("Skipping link with existing tags", zap.Int("tags", len(existing)))
		sum.Skipped++
		return
	}

	text := AnalysisText(link)
	logger.Debug("Analyzing link", zap.Int("text_len", len(text)))

	suggested := r.suggester.Suggest(ctx, text, r.vocab)
	if len(suggested) == 0 {
		logger.Warn("No tags suggested")
		sum.Unchanged++
		return
	}

	tags := r.cfg.Policy.Apply(existing, suggested)

	if r.cfg.DryRun {
		logger.Info("Dry run: would update tags", zap.Strings("tags", tags))
		sum.WouldUpdate++
		return
	}

	if err := r.links.UpdateTags(ctx, link, tags); err != nil {
		logger.Error("Failed to update tags", zap.Error(err))
		sum.Failed++
		return
	}

	logger.Info("Updated tags", zap.Strings("tags", tags))
	sum.Updated++
}

// AnalysisText picks the text to analyze, preferring extracted page content, then the
// description, then the name.
func AnalysisText(link linkwarden.Link) string {
	switch {
	case link.TextContent != "":
		return link.TextContent
	case link.Description != "":
		return link.Description
	default:
		return link.Name
	}
}
