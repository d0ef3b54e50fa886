package citation

import (
	"strings"
	"testing"

	"bookcheck/internal/domain"
)

func TestExtractCitations_InText(t *testing.T) {
	citations := ExtractCitations("Smith (2020) found results.")

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d: %+v", len(citations), citations)
	}
	c := citations[0]
	if c.Kind != domain.KindInText || c.Text != "Smith (2020)" {
		t.Errorf("expected in-text %q, got %s %q", "Smith (2020)", c.Kind, c.Text)
	}
	if !Validate(c) {
		t.Error("expected citation to validate")
	}
}

func TestExtractCitations_Parenthetical(t *testing.T) {
	citations := ExtractCitations("(Smith & Jones, 2020)")

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d: %+v", len(citations), citations)
	}
	if citations[0].Kind != domain.KindParenthetical {
		t.Errorf("expected parenthetical, got %s", citations[0].Kind)
	}
	if !Validate(citations[0]) {
		t.Error("expected citation to validate")
	}
}

func TestExtractCitations_Malformed(t *testing.T) {
	for _, c := range ExtractCitations("As argued (smith, 20), balance is hard.") {
		if Validate(c) {
			t.Errorf("malformed text produced a valid citation: %+v", c)
		}
	}
}

func TestExtractCitations_Shapes(t *testing.T) {
	tests := []struct {
		line string
		kind domain.CitationKind
		want string
	}{
		{"Smith and Jones (2020) built a biped.", domain.KindInText, "Smith and Jones (2020)"},
		{"Kajita et al. (2003) introduced preview control.", domain.KindInText, "Kajita et al. (2003)"},
		{"Raibert, & Brown (1986) studied hopping.", domain.KindInText, "Raibert, & Brown (1986)"},
		{"Hopping is stable (Raibert, 1986).", domain.KindParenthetical, "(Raibert, 1986)"},
		{"Gait varies (Kajita et al., 2003).", domain.KindParenthetical, "(Kajita et al., 2003)"},
		{"Torque matters (Pratt, Chew, and Torres, 2001).", domain.KindParenthetical, "(Pratt, Chew, and Torres, 2001)"},
		{"See the proof (Vukobratovic, 2004, s12).", domain.KindParenthetical, "(Vukobratovic, 2004, s12)"},
		{"As Hirai J. (1998) showed.", domain.KindInText, "Hirai J. (1998)"},
	}

	for _, tt := range tests {
		citations := ExtractCitations(tt.line)
		if len(citations) != 1 {
			t.Errorf("%q: expected 1 citation, got %+v", tt.line, citations)
			continue
		}
		if citations[0].Kind != tt.kind || citations[0].Text != tt.want {
			t.Errorf("%q: expected %s %q, got %s %q", tt.line, tt.kind, tt.want, citations[0].Kind, citations[0].Text)
		}
		if !Validate(citations[0]) {
			t.Errorf("%q: expected extracted citation to validate", tt.line)
		}
	}
}

func TestExtractCitations_EtAlRequiresPeriod(t *testing.T) {
	for _, line := range []string{
		"Smith et al (2020) found the same drift.",
		"The drift recurs (Smith et al, 2020).",
	} {
		if citations := ExtractCitations(line); len(citations) != 0 {
			t.Errorf("%q: expected no citation, got %+v", line, citations)
		}
	}
	if ValidateInText("Smith et al (2020)") {
		t.Error("expected et al without period to be invalid")
	}
}

func TestExtractCitations_SkipsReferenceLines(t *testing.T) {
	text := "Body cites Smith (2020).\n\nSmith, J. (2020). Walking robots. Press."

	citations := ExtractCitations(text)
	if len(citations) != 1 {
		t.Fatalf("expected the bibliography line to be skipped, got %+v", citations)
	}
	refs := ExtractReferences(text)
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(refs))
	}
	if refs[0].Text != "Smith, J. (2020). Walking robots. Press." {
		t.Errorf("unexpected reference text %q", refs[0].Text)
	}
}

func TestExtractReferences(t *testing.T) {
	text := strings.Join([]string{
		"## References",
		"Kajita, S. K. (2003). Biped walking pattern generation. ICRA.",
		"  Indented, A. (2001). Not anchored.",
		"Raibert, M.(1986). Legged robots that balance.",
		"Lowercase, m. (1999). Wrong initial.",
	}, "\n")

	refs := ExtractReferences(text)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d: %+v", len(refs), refs)
	}
	for _, r := range refs {
		if !ValidateReference(r.Text) {
			t.Errorf("expected %q to validate", r.Text)
		}
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) bool
		input string
		want  bool
	}{
		{"in-text valid", ValidateInText, "Smith (2020)", true},
		{"in-text trailing text", ValidateInText, "Smith (2020) found", false},
		{"in-text short year", ValidateInText, "Smith (20)", false},
		{"in-text lowercase", ValidateInText, "smith (2020)", false},
		{"parenthetical valid", ValidateParenthetical, "(Smith, 2020)", true},
		{"parenthetical ampersand", ValidateParenthetical, "(Smith & Jones, 2020)", true},
		{"parenthetical page", ValidateParenthetical, "(Smith, 2020, s12)", true},
		{"parenthetical malformed", ValidateParenthetical, "(smith, 20)", false},
		{"parenthetical no comma", ValidateParenthetical, "(Smith 2020)", false},
		{"reference valid", ValidateReference, "Smith, J. A. (2020). Title.", true},
		{"reference no period", ValidateReference, "Smith, J. (2020) Title.", false},
		{"reference no initial", ValidateReference, "Smith, (2020). Title.", false},
	}

	for _, tt := range tests {
		if got := tt.fn(tt.input); got != tt.want {
			t.Errorf("%s: validate(%q) = %v, want %v", tt.name, tt.input, got, tt.want)
		}
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	if Validate(domain.Citation{Text: "Smith (2020)", Kind: "footnote"}) {
		t.Error("expected unknown kind to be invalid")
	}
}

func TestValidateDocument(t *testing.T) {
	text := strings.Join([]string{
		"# Balance",
		"Early work (Vukobratovic, 1972) defined the ZMP.",
		"Kajita et al. (2003) extended it.",
		"Later, Kajita et al. (2003) revisited it.",
		"",
		"Kajita, S. (2003). Biped walking. ICRA.",
	}, "\n")

	report := ValidateDocument("chapter.md", text)

	if !report.Valid {
		t.Errorf("expected document to be valid: %+v", report)
	}
	if report.Path != "chapter.md" {
		t.Errorf("expected path to be carried, got %s", report.Path)
	}
	if len(report.Citations) != 3 {
		t.Fatalf("expected 3 citations, got %d: %+v", len(report.Citations), report.Citations)
	}
	if report.Citations[0].Line != 2 {
		t.Errorf("expected parenthetical on line 2, got %d", report.Citations[0].Line)
	}
	// Both occurrences of the repeated citation are attributed to the first line containing it.
	if report.Citations[1].Line != 3 || report.Citations[2].Line != 3 {
		t.Errorf("expected repeated citation attributed to line 3, got %d and %d", report.Citations[1].Line, report.Citations[2].Line)
	}
	if len(report.References) != 1 || report.References[0].Line != 6 {
		t.Errorf("expected one reference on line 6, got %+v", report.References)
	}
	if report.InvalidCount() != 0 {
		t.Errorf("expected no invalid items, got %d", report.InvalidCount())
	}
}

func TestValidateDocument_Empty(t *testing.T) {
	report := ValidateDocument("empty.md", "")
	if !report.Valid {
		t.Error("expected empty document to be valid")
	}
	if len(report.Citations) != 0 || len(report.References) != 0 {
		t.Errorf("expected no items, got %+v", report)
	}
}

func TestLineOf_SpanningMatch(t *testing.T) {
	lines := []string{"first (Smith,", "2020) second"}
	if got := lineOf(lines, "(Smith,\n2020)"); got != 0 {
		t.Errorf("expected 0 for a match spanning lines, got %d", got)
	}
}
