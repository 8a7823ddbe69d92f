package render

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"

	"resume-chat-backend/internal/resume"
)

func extractText(t *testing.T, path string) string {
	t.Helper()
	f, r, err := pdf.Open(path)
	if err != nil {
		t.Fatalf("open pdf: %v", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		t.Fatalf("read text: %v", err)
	}
	return buf.String()
}

func sampleRecord() *resume.Record {
	return &resume.Record{
		Name:    "Jane Doe",
		Title:   "Software Engineer",
		Contact: &resume.Contact{Email: "jane@example.com", Phone: "555-0101"},
		Summary: "Backend engineer with a focus on reliability.",
		Skills:  resume.StringList{"Go", "SQL"},
		Experience: []resume.Experience{
			{Job: &resume.Job{
				Position:     "Engineer",
				Company:      "Acme",
				StartDate:    "2020",
				Location:     "Remote",
				Description:  "Built internal services.",
				Achievements: resume.StringList{"Cut deploy time in half"},
			}},
		},
		Education: []resume.Education{
			{Study: &resume.Study{Degree: "BSc Computer Science", Institution: "State University", StartDate: "2014", EndDate: "2018"}},
		},
		Certifications: resume.StringList{"AWS Certified Developer"},
	}
}

func TestRichRendersAllSections(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if err := Rich(sampleRecord(), t.TempDir(), outPath); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := extractText(t, outPath)
	for _, want := range []string{
		"Jane Doe",
		"Software Engineer",
		"Professional Summary",
		"Go, SQL",
		"Engineer at Acme",
		"2020 - Present",
		"Work Experience",
		"Education",
		"BSc Computer Science, State University",
		"Certifications",
		"AWS Certified Developer",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered text missing %q", want)
		}
	}
}

func TestRichOmitsEmptySections(t *testing.T) {
	record := &resume.Record{Name: "Jane Doe", Summary: "Short summary."}

	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if err := Rich(record, t.TempDir(), outPath); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := extractText(t, outPath)
	for _, absent := range []string{"Work Experience", "Education", "Certifications", "Skills"} {
		if strings.Contains(text, absent) {
			t.Errorf("rendered text should not contain %q", absent)
		}
	}
}

func TestRichDefaultsMissingName(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if err := Rich(&resume.Record{}, t.TempDir(), outPath); err != nil {
		t.Fatalf("render: %v", err)
	}

	if text := extractText(t, outPath); !strings.Contains(text, "Unknown Name") {
		t.Fatal("expected placeholder name")
	}
}

func TestRichRendersFreeformEntries(t *testing.T) {
	record := &resume.Record{
		Name:       "Jane Doe",
		Experience: []resume.Experience{{Freeform: "Various consulting work since 2019"}},
		Education:  []resume.Education{{Freeform: "Self taught"}},
	}

	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if err := Rich(record, t.TempDir(), outPath); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := extractText(t, outPath)
	if !strings.Contains(text, "Various consulting work since 2019") {
		t.Error("freeform experience missing")
	}
	if !strings.Contains(text, "Self taught") {
		t.Error("freeform education missing")
	}
}

func TestRichRendersWholeStringSections(t *testing.T) {
	var record resume.Record
	raw := `{"name":"Jane Doe","experience":"Various freelance work","education":"Self taught since 2015"}`
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if err := Rich(&record, t.TempDir(), outPath); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := extractText(t, outPath)
	if !strings.Contains(text, "Work Experience") || !strings.Contains(text, "Various freelance work") {
		t.Error("whole-string experience should render as one block under its heading")
	}
	if !strings.Contains(text, "Education") || !strings.Contains(text, "Self taught since 2015") {
		t.Error("whole-string education should render as one block under its heading")
	}
	// No structured entry exists, so no job header or date line appears.
	if strings.Contains(text, " at ") || strings.Contains(text, "Present") {
		t.Error("whole-string sections must not get structured-entry formatting")
	}
}

func TestRichContactEmailOnly(t *testing.T) {
	record := &resume.Record{
		Name:    "Jane Doe",
		Contact: &resume.Contact{Email: "a@b.com"},
	}

	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if err := Rich(record, t.TempDir(), outPath); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := extractText(t, outPath)
	if !strings.Contains(text, "Email: a@b.com") {
		t.Error("expected email entry")
	}
	if strings.Contains(text, "Phone:") {
		t.Error("absent phone must not render an entry")
	}
}

func TestRichNoContactRendersNoContactLine(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if err := Rich(&resume.Record{Name: "Jane Doe"}, t.TempDir(), outPath); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := extractText(t, outPath)
	for _, absent := range []string{"Email:", "Phone:", "LinkedIn:", "Website:"} {
		if strings.Contains(text, absent) {
			t.Errorf("rendered text should not contain %q", absent)
		}
	}
}

func TestRichDeterministicText(t *testing.T) {
	dir := t.TempDir()
	fontDir := t.TempDir()

	first := filepath.Join(dir, "a.pdf")
	second := filepath.Join(dir, "b.pdf")
	if err := Rich(sampleRecord(), fontDir, first); err != nil {
		t.Fatalf("first render: %v", err)
	}
	if err := Rich(sampleRecord(), fontDir, second); err != nil {
		t.Fatalf("second render: %v", err)
	}

	if extractText(t, first) != extractText(t, second) {
		t.Fatal("identical records should render identical text")
	}
}

func TestSimpleRendersCoreContent(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if err := Simple(sampleRecord(), outPath); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := extractText(t, outPath)
	for _, want := range []string{"Jane Doe", "Summary", "Skills", "Experience", "Engineer at Acme"} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered text missing %q", want)
		}
	}
	if strings.Contains(text, "LinkedIn") {
		t.Error("simple layout should only show email and phone")
	}
}

func TestGeneratorSucceedsWithoutFonts(t *testing.T) {
	g := &Generator{FontDir: t.TempDir()}

	outPath := filepath.Join(t.TempDir(), "out.pdf")
	strategy, err := g.Generate(context.Background(), sampleRecord(), outPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strategy != StrategyRich {
		t.Fatalf("expected rich strategy, got %q", strategy)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestGeneratorSurvivesCorruptFontFiles(t *testing.T) {
	fontDir := t.TempDir()
	for _, name := range []string{fontRegular, fontBold} {
		if err := os.WriteFile(filepath.Join(fontDir, name), []byte("not a font"), 0o644); err != nil {
			t.Fatalf("write fake font: %v", err)
		}
	}

	g := &Generator{FontDir: fontDir}
	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if _, err := g.Generate(context.Background(), sampleRecord(), outPath); err != nil {
		t.Fatalf("generate with corrupt fonts: %v", err)
	}

	if text := extractText(t, outPath); !strings.Contains(text, "Jane Doe") {
		t.Fatal("fallback render missing content")
	}
}
