package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aryannaik/lw-tagger/internal/linkwarden"
	"github.com/aryannaik/lw-tagger/internal/ollama"
	"github.com/aryannaik/lw-tagger/internal/ui"
)

const statusTimeout = 5 * time.Second

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that Ollama and Linkwarden are reachable",
		Args:  cobra.NoArgs,
		RunE:  a.runStatus,
	}
}

func (a *app) runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
	defer cancel()

	var ollamaErr error
	if !ollama.NewClient(a.cfg.Ollama.BaseURL, a.cfg.Ollama.Model).IsHealthy(ctx) {
		ollamaErr = errors.New("unreachable")
	}
	lwErr := linkwarden.NewClient(a.cfg.Linkwarden.BaseURL, a.cfg.Linkwarden.APIKey, a.logger).Ping(ctx)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.FormatStatus("Ollama", a.cfg.Ollama.BaseURL, ollamaErr))
	fmt.Fprintln(out, ui.FormatStatus("Linkwarden", a.cfg.Linkwarden.BaseURL, lwErr))

	if ollamaErr != nil || lwErr != nil {
		return errors.New("one or more services are unavailable")
	}
	return nil
}
