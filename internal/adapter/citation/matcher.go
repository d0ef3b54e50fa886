package citation

import (
	"regexp"
	"strings"

	"bookcheck/internal/domain"
)

// Author-list grammar shared by the in-text and parenthetical shapes:
// capitalized surnames with optional initials, joined by "&" or "and",
// optionally closed by "et al." (period required). Inside parentheses a bare
// comma also joins authors.
const (
	surname           = `[A-Z][a-z]+(?:\s+[A-Z]\.)*`
	etAl              = `(?:\s+et\s+al\.)?`
	inTextJoiner      = `(?:\s*,\s*(?:&|and)\s*|\s*&\s*|\s+and\s+)`
	parentheticJoiner = `(?:\s*,\s*(?:(?:&|and)\s*)?|\s*&\s*|\s+and\s+)`

	inTextExpr        = surname + `(?:` + inTextJoiner + surname + `)*` + etAl + `\s*\(\d{4}\)`
	parentheticalExpr = `\(` + surname + `(?:` + parentheticJoiner + surname + `)*` + etAl + `\s*,\s*\d{4}(?:,\s*s\d{2})?\)`
	referenceExpr     = `[A-Z][a-z]+,\s*[A-Z]\.(?:\s*[A-Z]\.)*\s*\(\d{4}\)\.\s*.+`
)

var (
	inTextPattern        = regexp.MustCompile(inTextExpr)
	parentheticalPattern = regexp.MustCompile(parentheticalExpr)
	referenceLinePattern = regexp.MustCompile(`(?m)^` + referenceExpr)

	// A line that opens like "Surname, I." is a bibliography entry and is
	// never scanned for in-text citations.
	referenceStart = regexp.MustCompile(`^\s*[A-Z][a-z]+,\s*[A-Z]\.`)

	inTextCanonical        = regexp.MustCompile(`^` + inTextExpr + `$`)
	parentheticalCanonical = regexp.MustCompile(`^` + parentheticalExpr + `$`)
	referenceCanonical     = regexp.MustCompile(`^` + referenceExpr + `$`)
)

// ValidateInText reports whether text is exactly an "Author (Year)" citation.
func ValidateInText(text string) bool {
	return inTextCanonical.MatchString(text)
}

// ValidateParenthetical reports whether text is exactly an "(Author, Year)" citation.
func ValidateParenthetical(text string) bool {
	return parentheticalCanonical.MatchString(text)
}

// ValidateReference reports whether text is exactly one reference-list entry.
func ValidateReference(text string) bool {
	return referenceCanonical.MatchString(text)
}

// Validate dispatches to the validator for the candidate's shape.
func Validate(c domain.Citation) bool {
	switch c.Kind {
	case domain.KindInText:
		return ValidateInText(c.Text)
	case domain.KindParenthetical:
		return ValidateParenthetical(c.Text)
	case domain.KindReference:
		return ValidateReference(c.Text)
	default:
		return false
	}
}

// ExtractCitations finds parenthetical citations anywhere in text, then
// in-text citations line by line, skipping lines that start a reference entry.
// Parenthetical candidates come first in the result.
func ExtractCitations(text string) []domain.Citation {
	var citations []domain.Citation

	for _, m := range parentheticalPattern.FindAllString(text, -1) {
		citations = append(citations, domain.Citation{Text: m, Kind: domain.KindParenthetical})
	}

	for _, line := range strings.Split(text, "\n") {
		if referenceStart.MatchString(strings.TrimSpace(line)) {
			continue
		}
		for _, m := range inTextPattern.FindAllString(line, -1) {
			citations = append(citations, domain.Citation{Text: m, Kind: domain.KindInText})
		}
	}

	return citations
}

// ExtractReferences finds reference-list entries anchored at line starts.
func ExtractReferences(text string) []domain.Citation {
	matches := referenceLinePattern.FindAllString(text, -1)
	refs := make([]domain.Citation, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, domain.Citation{Text: m, Kind: domain.KindReference})
	}
	return refs
}

// ValidateDocument extracts and validates every citation and reference in
// text. Each item's line is the first line containing its text, so a
// repeated citation is attributed to its earliest occurrence.
func ValidateDocument(path, text string) domain.CitationReport {
	report := domain.CitationReport{
		Path:       path,
		Citations:  []domain.Citation{},
		References: []domain.Citation{},
		Valid:      true,
	}

	lines := strings.Split(text, "\n")

	for _, c := range ExtractCitations(text) {
		c.Valid = Validate(c)
		c.Line = lineOf(lines, c.Text)
		if !c.Valid {
			report.Valid = false
		}
		report.Citations = append(report.Citations, c)
	}

	for _, r := range ExtractReferences(text) {
		r.Valid = Validate(r)
		r.Line = lineOf(lines, r.Text)
		if !r.Valid {
			report.Valid = false
		}
		report.References = append(report.References, r)
	}

	return report
}

// lineOf returns the 1-based index of the first line containing s, or 0.
func lineOf(lines []string, s string) int {
	for i, line := range lines {
		if strings.Contains(line, s) {
			return i + 1
		}
	}
	return 0
}
