package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aryannaik/lw-tagger/internal/linkwarden"
	"github.com/aryannaik/lw-tagger/internal/tagger"
	"github.com/aryannaik/lw-tagger/internal/ui"
	"github.com/aryannaik/lw-tagger/internal/vocab"
)

func (a *app) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Suggest and write tags for every bookmark",
		Long: `Fetches every bookmark from Linkwarden and, one at a time, asks Ollama for
tags from the approved list. Bookmarks with a non-empty suggestion get their tags
replaced (or merged, with --policy merge). Failures are logged and skipped.`,
		Args: cobra.NoArgs,
		RunE: a.runBatch,
	}
	a.addRunFlags(cmd)
	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, args []string) error {
	policy, err := tagger.ParsePolicy(a.cfg.Tagging.Policy)
	if err != nil {
		return err
	}
	a.warnMissingKey()

	v := vocab.Load(a.cfg.Tagging.TagsFile, a.logger)

	suggester, err := a.newSuggester()
	if err != nil {
		return err
	}
	links := linkwarden.NewClient(a.cfg.Linkwarden.BaseURL, a.cfg.Linkwarden.APIKey, a.logger)

	runner := tagger.NewRunner(links, suggester, v, tagger.Config{
		SkipTagged: a.cfg.Tagging.SkipTagged,
		Policy:     policy,
		DryRun:     a.dryRun,
	}, a.logger)

	sum := runner.Run(cmd.Context())
	a.logger.Info("Run finished",
		zap.String("run_id", sum.RunID),
		zap.Int("updated", sum.Updated),
		zap.Int("failed", sum.Failed),
		zap.Duration("elapsed", sum.Elapsed))

	fmt.Fprint(cmd.OutOrStdout(), ui.FormatSummary(sum))
	return nil
}
