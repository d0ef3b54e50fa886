package cli

import (
	"fmt"

	"bookcheck/internal/adapter/fs"
	"bookcheck/internal/adapter/readability"
	"bookcheck/internal/domain"
	"bookcheck/internal/usecase"
	"github.com/spf13/cobra"
)

func newReadabilityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "readability <path>",
		Short: "Score readability against the target grade range",
		Long: `Compute Flesch-Kincaid grade level and Flesch reading ease for markdown
files. Markdown syntax is stripped before scoring.

Exits with status 1 when any file falls outside the target grade range
(readability.min_grade..readability.max_grade, default 6-12) or cannot be read.

Examples:
  bookcheck readability docs/
  bookcheck readability docs/intro.md`,
		Args: targetArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReadability(cmd, opts, args[0])
		},
	}
}

func runReadability(cmd *cobra.Command, opts *options, target string) error {
	cfg := opts.cfg

	walker := fs.NewWalker(cfg.Readability.Includes, cfg.Readability.Excludes)
	scorer := readability.NewScorer(cfg.Readability.MinGrade, cfg.Readability.MaxGrade)
	readabilityUC := usecase.NewReadabilityUseCase(walker, fs.NewReader(), scorer, cfg.Batch.Workers, opts.logger)

	progress := newProgress(cmd.ErrOrStderr(), cfg.Batch.Progress && !opts.jsonOut, "Scoring")
	summary, err := readabilityUC.Run(cmd.Context(), target, progress)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), "readability", summary.Clean(), summary); err != nil {
			return err
		}
	} else {
		rangeLabel := fmt.Sprintf("(%s-%s)", number(cfg.Readability.MinGrade), number(cfg.Readability.MaxGrade))
		printReadabilityReport(newPrinter(cmd, opts.noColor), summary, rangeLabel)
	}

	if !summary.Clean() {
		return domain.ErrChecksFailed
	}
	return nil
}

func printReadabilityReport(p *printer, summary *usecase.ReadabilitySummary, rangeLabel string) {
	for _, r := range summary.Reports {
		if r.Error != "" {
			p.fileError(r.Path, r.Error)
			continue
		}

		p.printf("\n%s %s\n", p.heading("File:"), r.Path)
		p.printf("  Sentences: %d\n", r.Sentences)
		p.printf("  Words: %d\n", r.Words)
		p.printf("  Syllables: %d\n", r.Syllables)
		p.printf("  Grade Level: %s\n", number(r.GradeLevel))
		p.printf("  Reading Ease: %s\n", number(r.ReadingEase))
		p.printf("  Target Range %s: %s\n", rangeLabel, p.mark(r.Valid))
	}

	if summary.FilesAnalyzed == 0 {
		return
	}
	p.printf("\n%s\n", p.heading("Summary:"))
	p.printf("  Files analyzed: %d\n", summary.FilesAnalyzed)
	p.printf("  Files within target range %s: %d/%d\n", rangeLabel, summary.WithinRange, summary.FilesAnalyzed)
	p.printf("  Average Grade Level: %s\n", number(summary.AverageGrade))
	p.printf("  Overall target compliance: %s\n", p.mark(summary.WithinRange == summary.FilesAnalyzed))
}
