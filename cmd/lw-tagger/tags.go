package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aryannaik/lw-tagger/internal/ui"
	"github.com/aryannaik/lw-tagger/internal/vocab"
)

func (a *app) newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the approved tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := vocab.Load(a.cfg.Tagging.TagsFile, a.logger)
			if v.Len() == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No approved tags in %s.\n", a.cfg.Tagging.TagsFile)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.FormatTagList(v.Tags()))
			return nil
		},
	}
	cmd.Flags().StringVar(&a.tagsFile, "tags-file", "", "approved tags file (default from TAGS_FILE or tags.txt)")
	return cmd
}
