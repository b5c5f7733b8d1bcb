package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aryannaik/lw-tagger/internal/config"
	"github.com/aryannaik/lw-tagger/internal/logging"
	"github.com/aryannaik/lw-tagger/internal/ollama"
	"github.com/aryannaik/lw-tagger/internal/suggest"
)

// app carries the state shared by every command: configuration, the logger and the
// raw flag values that override configuration.
type app struct {
	configPath string
	verbose    bool
	logFormat  string

	tagsFile   string
	skipTagged bool
	policy     string
	model      string
	dryRun     bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "lw-tagger",
		Short: "Tag Linkwarden bookmarks from an approved vocabulary using a local Ollama model",
		Long: `lw-tagger reads an approved tag list, asks a local Ollama model to pick tags
for each Linkwarden bookmark, and writes the accepted tags back.

Only tags from the approved list are ever written. Run without a subcommand to
process every bookmark once.`,
		Version:           fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runBatch,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.logFormat, "log-format", "", "log output format: console or json")
	a.addRunFlags(root)

	root.AddCommand(
		a.newRunCmd(),
		a.newSuggestCmd(),
		a.newTagsCmd(),
		a.newStatusCmd(),
	)
	return root
}

func (a *app) addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&a.tagsFile, "tags-file", "", "approved tags file (default from TAGS_FILE or tags.txt)")
	f.BoolVar(&a.skipTagged, "skip-tagged", false, "skip bookmarks that already have tags")
	f.StringVar(&a.policy, "policy", "", "how to apply suggestions: replace or merge")
	f.StringVar(&a.model, "model", "", "Ollama model to use")
	f.BoolVar(&a.dryRun, "dry-run", false, "suggest tags without updating bookmarks")
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("tags-file") {
		cfg.Tagging.TagsFile = a.tagsFile
	}
	if flags.Changed("skip-tagged") {
		cfg.Tagging.SkipTagged = a.skipTagged
	}
	if flags.Changed("policy") {
		cfg.Tagging.Policy = a.policy
	}
	if flags.Changed("model") {
		cfg.Ollama.Model = a.model
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) newSuggester() (*suggest.Suggester, error) {
	timeout, err := a.cfg.InferenceTimeout()
	if err != nil {
		return nil, err
	}
	opts := suggest.DefaultOptions()
	opts.Timeout = timeout

	client := ollama.NewClient(a.cfg.Ollama.BaseURL, a.cfg.Ollama.Model)
	a.logger.Debug("Suggester configured", zap.String("model", client.Model()), zap.Stringer("options", opts))
	return suggest.New(client, opts, a.logger), nil
}

func (a *app) warnMissingKey() {
	if a.cfg.Linkwarden.APIKey == "" {
		a.logger.Warn("LINKWARDEN_API_KEY is not set; requests will be unauthenticated")
	}
}
