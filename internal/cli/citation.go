package cli

import (
	"bookcheck/internal/adapter/fs"
	"bookcheck/internal/domain"
	"bookcheck/internal/usecase"
	"github.com/spf13/cobra"
)

func newCitationCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "citations <path>",
		Aliases: []string{"citation"},
		Short:   "Validate APA citations and references",
		Long: `Validate in-text citations, parenthetical citations and reference-list
entries in markdown files against APA patterns.

Exits with status 1 when any file cannot be read or any item is invalid.

Examples:
  bookcheck citations docs/
  bookcheck citations docs/chapter-01.md --json`,
		Args: targetArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCitations(cmd, opts, args[0])
		},
	}
}

func runCitations(cmd *cobra.Command, opts *options, target string) error {
	cfg := opts.cfg

	walker := fs.NewWalker(cfg.Citation.Includes, cfg.Citation.Excludes)
	citationUC := usecase.NewCitationUseCase(walker, fs.NewReader(), cfg.Batch.Workers, opts.logger)

	progress := newProgress(cmd.ErrOrStderr(), cfg.Batch.Progress && !opts.jsonOut, "Validating")
	summary, err := citationUC.Run(cmd.Context(), target, progress)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), "citations", summary.Clean(), summary); err != nil {
			return err
		}
	} else {
		printCitationReport(newPrinter(cmd, opts.noColor), summary)
	}

	if !summary.Clean() {
		return domain.ErrChecksFailed
	}
	return nil
}

func printCitationReport(p *printer, summary *usecase.CitationSummary) {
	for _, r := range summary.Reports {
		if r.Error != "" {
			p.fileError(r.Path, r.Error)
			continue
		}

		p.printf("\n%s %s\n", p.heading("Validating:"), r.Path)
		p.printf("  Citations found: %d\n", len(r.Citations))
		p.printf("  References found: %d\n", len(r.References))
		p.printf("  Valid: %s\n", p.mark(r.Valid))

		if len(r.Citations) > 0 {
			p.printf("  Citation details:\n")
			for _, c := range r.Citations {
				p.printf("    %s [Line %d] %s: %s\n", p.mark(c.Valid), c.Line, c.Kind, c.Text)
			}
		}
		if len(r.References) > 0 {
			p.printf("  Reference details:\n")
			for _, c := range r.References {
				p.printf("    %s [Line %d] %s: %s\n", p.mark(c.Valid), c.Line, c.Kind, c.Text)
			}
		}
	}

	p.printf("\nValidation complete. Total errors found: %d\n", summary.TotalErrors)
}
