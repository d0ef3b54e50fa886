package cli

import (
	"bookcheck/internal/adapter/fs"
	"bookcheck/internal/domain"
	"bookcheck/internal/usecase"
	"github.com/spf13/cobra"
)

func newPlagiarismCmd(opts *options) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "plagiarism <path> [sources-dir]",
		Short: "Detect text reused from reference sources",
		Long: `Compare markdown and text files against a directory of reference sources
using word n-gram Jaccard similarity and exact fingerprints.

sources-dir defaults to plagiarism.sources_dir (./references). A missing
sources directory means an empty corpus. Exits with status 1 when any file
is flagged or cannot be read.

Examples:
  bookcheck plagiarism docs/
  bookcheck plagiarism docs/ research/refs --threshold 0.4`,
		Args: targetArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("threshold") {
				opts.cfg.Plagiarism.Threshold = threshold
				if err := opts.cfg.Validate(); err != nil {
					return err
				}
			}
			sourcesDir := opts.cfg.Plagiarism.SourcesDir
			if len(args) > 1 {
				sourcesDir = args[1]
			}
			return runPlagiarism(cmd, opts, args[0], sourcesDir)
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "similarity threshold (default from config)")
	return cmd
}

func runPlagiarism(cmd *cobra.Command, opts *options, target, sourcesDir string) error {
	cfg := opts.cfg

	loaded, err := loadCorpus(cmd, opts, sourcesDir, !opts.jsonOut)
	if err != nil {
		return err
	}

	p := newPrinter(cmd, opts.noColor)
	if !opts.jsonOut {
		p.printf("Using %d reference sources from %s\n", loaded.Corpus.Len(), sourcesDir)
	}

	walker := fs.NewWalker(cfg.Plagiarism.Includes, cfg.Plagiarism.Excludes)
	plagiarismUC := usecase.NewPlagiarismUseCase(walker, fs.NewReader(), newDetector(cfg), cfg.Batch.Workers, opts.logger)

	progress := newProgress(cmd.ErrOrStderr(), cfg.Batch.Progress && !opts.jsonOut, "Checking")
	summary, err := plagiarismUC.Run(cmd.Context(), target, loaded.Corpus, progress)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), "plagiarism", summary.Clean(), summary); err != nil {
			return err
		}
	} else {
		printPlagiarismReport(p, summary)
	}

	if !summary.Clean() {
		return domain.ErrChecksFailed
	}
	return nil
}

func printPlagiarismReport(p *printer, summary *usecase.PlagiarismSummary) {
	for _, r := range summary.Reports {
		if r.Error != "" {
			p.fileError(r.Path, r.Error)
			continue
		}

		detected := "NO"
		if r.IsPlagiarized {
			detected = p.warn("YES")
		}

		p.printf("\n%s %s\n", p.heading("File:"), r.Path)
		p.printf("  Overall Similarity: %s\n", percent(r.OverallSimilarity))
		p.printf("  Plagiarism Detected: %s\n", detected)
		p.printf("  Fingerprint: %s...\n", shortFingerprint(r.Fingerprint))

		if len(r.Matches) > 0 {
			p.printf("  Matches found:\n")
			for _, m := range r.Matches {
				p.printf("    - Type: %s, Similarity: %s, Source: %s\n", m.Kind, percent(m.Similarity), m.SourcePath)
			}
		}
	}

	status := p.render(passStyle, "✓ Clean")
	if summary.Flagged > 0 {
		status = p.warn("⚠ Issues detected")
	}

	p.printf("\n%s\n", p.heading("Summary:"))
	p.printf("  Files analyzed: %d\n", summary.FilesAnalyzed)
	p.printf("  Potential plagiarism: %d/%d\n", summary.Flagged, summary.FilesAnalyzed)
	p.printf("  Status: %s\n", status)
}

func shortFingerprint(fp string) string {
	if len(fp) > 16 {
		return fp[:16]
	}
	return fp
}
