package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryannaik/lw-tagger/internal/vocab"
)

func (a *app) newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [text...]",
		Short: "Suggest tags for a piece of text",
		Long: `Asks Ollama for approved tags for the given text, or for standard input when
no text is given. Bookmarks are not touched.

Example:
  lw-tagger suggest "A tour of Go generics and the type checker"
  curl -s https://go.dev/blog | lw-tagger suggest`,
		RunE: a.runSuggest,
	}
	cmd.Flags().StringVar(&a.tagsFile, "tags-file", "", "approved tags file (default from TAGS_FILE or tags.txt)")
	cmd.Flags().StringVar(&a.model, "model", "", "Ollama model to use")
	return cmd
}

func (a *app) runSuggest(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	v := vocab.Load(a.cfg.Tagging.TagsFile, a.logger)
	suggester, err := a.newSuggester()
	if err != nil {
		return err
	}

	tags := suggester.Suggest(cmd.Context(), text, v)
	if len(tags) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No tags suggested.")
		return nil
	}
	for _, t := range tags {
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}
	return nil
}
