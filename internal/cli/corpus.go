package cli

import (
	"fmt"

	"bookcheck/config"
	"bookcheck/internal/adapter/analyzer"
	"bookcheck/internal/adapter/fs"
	"bookcheck/internal/adapter/memstore"
	"bookcheck/internal/adapter/similarity"
	"bookcheck/internal/adapter/store"
	"bookcheck/internal/port"
	"bookcheck/internal/usecase"
	"github.com/spf13/cobra"
)

func newCorpusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "corpus [sources-dir]",
		Short: "Build or refresh the reference source cache",
		Long: `Tokenize every reference source and store its n-grams and fingerprint in
the corpus cache (.bookcheck/corpus.db by default). Unchanged sources are
reused on later runs; sources deleted from disk are dropped from the cache.

Examples:
  bookcheck corpus                 # Use plagiarism.sources_dir (./references)
  bookcheck corpus research/refs   # Specific directory`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.cfg.Plagiarism.SourcesDir
			if len(args) > 0 {
				dir = args[0]
			}
			return runCorpus(cmd, opts, dir)
		},
	}
}

func runCorpus(cmd *cobra.Command, opts *options, dir string) error {
	if !opts.cfg.Cache.Enabled {
		opts.logger.Info("Cache is disabled; the corpus will not be persisted")
	}

	result, err := loadCorpus(cmd, opts, dir, !opts.jsonOut)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), "corpus", len(result.Errors) == 0, struct {
			Dir     string   `json:"dir"`
			Sources int      `json:"sources"`
			Added   int      `json:"added"`
			Reused  int      `json:"reused"`
			Removed int      `json:"removed"`
			Errors  []string `json:"errors,omitempty"`
		}{dir, result.Corpus.Len(), result.Added, result.Reused, result.Removed, result.Errors})
	}

	p := newPrinter(cmd, opts.noColor)
	p.printf("Corpus ready: %d sources from %s\n", result.Corpus.Len(), dir)
	p.printf("  Added: %d\n", result.Added)
	p.printf("  Reused: %d\n", result.Reused)
	p.printf("  Removed: %d\n", result.Removed)
	if len(result.Errors) > 0 {
		p.printf("  %s\n", p.warn(fmt.Sprintf("Unreadable sources: %d", len(result.Errors))))
	}
	return nil
}

// newDetector builds the similarity detector from the plagiarism settings.
func newDetector(cfg *config.Config) *similarity.Detector {
	stopwords := analyzer.DefaultStopWords().With(cfg.Plagiarism.ExtraStopWords...)
	return similarity.NewDetector(analyzer.NewTokenizer(stopwords), cfg.Plagiarism.NGramSize, cfg.Plagiarism.Threshold)
}

// loadCorpus prepares the known sources under dir, going through the bbolt
// cache when it is enabled. announce prints cache maintenance messages.
func loadCorpus(cmd *cobra.Command, opts *options, dir string, announce bool) (*usecase.CorpusResult, error) {
	cfg := opts.cfg

	st := openCorpusStore(cmd, opts, announce)
	defer st.Close()

	walker := fs.NewWalker(cfg.Plagiarism.SourceIncludes, cfg.Plagiarism.Excludes)
	corpusUC := usecase.NewCorpusUseCase(st, walker, fs.NewReader(), newDetector(cfg), opts.logger)

	progress := newProgress(cmd.ErrOrStderr(), cfg.Batch.Progress && announce, "Loading sources")
	result, err := corpusUC.Load(dir, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}
	return result, nil
}

// openCorpusStore returns the bbolt corpus cache, or an in-memory store when
// the cache is disabled or cannot be opened.
func openCorpusStore(cmd *cobra.Command, opts *options, announce bool) port.CorpusStore {
	if !opts.cfg.Cache.Enabled {
		return memstore.NewMemoryStore()
	}

	st, err := openBoltStore(cmd, opts, announce)
	if err != nil {
		opts.logger.Error("corpus cache unavailable, continuing without it: %v", err)
		return memstore.NewMemoryStore()
	}
	return st
}

func openBoltStore(cmd *cobra.Command, opts *options, announce bool) (*store.BoltStore, error) {
	cfg := opts.cfg

	if err := config.EnsureCacheDir(opts.rootDir, cfg); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	st, err := store.NewBoltStore(config.CorpusDBPath(opts.rootDir, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus cache: %w", err)
	}

	migration, err := st.CheckMigration(cfg)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to check migration: %w", err)
	}

	if migration.NeedsRebuild {
		if announce {
			fmt.Fprintf(cmd.ErrOrStderr(), "Corpus cache rebuild required: %s\n", migration.Reason)
		}
		if err := st.Clear(); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to clear corpus cache: %w", err)
		}
	} else if migration.NeedsMigration {
		opts.logger.Debug("running schema migration: %s", migration.Reason)
	}

	if migration.NeedsRebuild || migration.NeedsMigration {
		if err := st.Migrate(cfg); err != nil {
			st.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	return st, nil
}
