// Package suggest turns bookmark text into tags drawn from an approved vocabulary.
package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/aryannaik/lw-tagger/internal/ollama"
	"github.com/aryannaik/lw-tagger/internal/vocab"
)

// Generator produces raw model output for a prompt.
type Generator interface {
	Generate(ctx context.Context, req ollama.GenerateRequest) (string, error)
}

type Options struct {
	MaxTags     int
	MinTextLen  int
	ExcerptLen  int
	Temperature float64
	NumPredict  int
	Timeout     time.Duration
}

// DefaultOptions are deterministic, short and bounded.
func DefaultOptions() Options {
	return Options{
		MaxTags:     5,
		MinTextLen:  10,
		ExcerptLen:  500,
		Temperature: 0.1,
		NumPredict:  50,
		Timeout:     10 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxTags <= 0 {
		o.MaxTags = d.MaxTags
	}
	if o.MinTextLen <= 0 {
		o.MinTextLen = d.MinTextLen
	}
	if o.ExcerptLen <= 0 {
		o.ExcerptLen = d.ExcerptLen
	}
	if o.NumPredict <= 0 {
		o.NumPredict = d.NumPredict
	}
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	return o
}

type Suggester struct {
	gen    Generator
	opts   Options
	logger *zap.Logger
}

func New(gen Generator, opts Options, logger *zap.Logger) *Suggester {
	return &Suggester{
		gen:    gen,
		opts:   opts.withDefaults(),
		logger: logger.With(zap.String("component", "suggest")),
	}
}

// Suggest asks the model for tags and returns at most MaxTags vocabulary entries.
// It never fails: any error is logged and yields an empty result.
func (s *Suggester) Suggest(ctx context.Context, text string, v *vocab.Vocabulary) (tags []string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Unexpected error getting tags", zap.Any("panic", r), zap.Stack("stack"))
			tags = nil
		}
	}()

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < s.opts.MinTextLen {
		s.logger.Warn("Text too short for tag suggestion", zap.String("text", text))
		return nil
	}

	prompt := BuildPrompt(text, v, s.opts.ExcerptLen, s.opts.MaxTags)
	s.logger.Debug("Prompt built",
		zap.String("text_size", humanize.Bytes(uint64(len(text)))),
		zap.String("prompt", prompt))

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	raw, err := s.gen.Generate(ctx, ollama.GenerateRequest{
		Prompt:      prompt,
		Temperature: s.opts.Temperature,
		NumPredict:  s.opts.NumPredict,
	})
	if err != nil {
		s.logger.Error("Getting tags from model failed", zap.Error(err))
		return nil
	}

	s.logger.Debug("Raw model response", zap.String("response", raw))
	tags = Normalize(raw, v, s.opts.MaxTags)
	s.logger.Debug("Filtered tags", zap.Strings("tags", tags))
	return tags
}

// Normalize reduces raw model output to at most limit vocabulary entries in response
// order. Matching is case-insensitive; the returned value is the vocabulary's spelling.
func Normalize(raw string, v *vocab.Vocabulary, limit int) []string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, candidate := range strings.Split(raw, ",") {
		candidate = strings.TrimSpace(candidate)
		tag, ok := v.Lookup(candidate)
		if !ok || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
		if len(out) == limit {
			break
		}
	}
	return out
}

// String describes the options for logging.
func (o Options) String() string {
	return fmt.Sprintf("max_tags=%d temperature=%.2f num_predict=%d timeout=%s", o.MaxTags, o.Temperature, o.NumPredict, o.Timeout)
}
