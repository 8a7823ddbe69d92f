package render

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"resume-chat-backend/internal/resume"
)

// Simple renders a plain, core-font-only layout to outPath. It depends on
// nothing outside the fpdf core fonts and serves as the fallback when the
// rich layout fails.
func Simple(record *resume.Record, outPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	name := record.Name
	if strings.TrimSpace(name) == "" {
		name = "Unknown Name"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(name), "", 1, "C", false, 0, "")

	if record.Title != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 10, tr(record.Title), "", 1, "C", false, 0, "")
	}

	if record.Contact != nil {
		var parts []string
		if record.Contact.Email != "" {
			parts = append(parts, "Email: "+record.Contact.Email)
		}
		if record.Contact.Phone != "" {
			parts = append(parts, "Phone: "+record.Contact.Phone)
		}
		if len(parts) > 0 {
			pdf.Ln(5)
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(0, 5, tr(strings.Join(parts, "   ")), "", 1, "C", false, 0, "")
		}
	}

	heading := func(title string) {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}

	if record.Summary != "" {
		heading("Summary")
		pdf.MultiCell(0, 5, tr(record.Summary), "", "L", false)
	}

	if len(record.Skills) > 0 {
		heading("Skills")
		pdf.MultiCell(0, 5, tr(strings.Join(record.Skills, ", ")), "", "L", false)
	}

	if len(record.Experience) > 0 {
		heading("Experience")
		for _, entry := range record.Experience {
			if entry.Job != nil {
				pdf.SetFont("Helvetica", "B", 10)
				pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s at %s", entry.Job.Position, entry.Job.Company)), "", 1, "L", false, 0, "")
				pdf.SetFont("Helvetica", "", 10)

				endDate := entry.Job.EndDate
				if endDate == "" {
					endDate = "Present"
				}
				pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s - %s", entry.Job.StartDate, endDate)), "", 1, "L", false, 0, "")

				if entry.Job.Description != "" {
					pdf.MultiCell(0, 5, tr(entry.Job.Description), "", "L", false)
				}
			} else {
				pdf.MultiCell(0, 5, tr(entry.Freeform), "", "L", false)
			}
			pdf.Ln(3)
		}
	}

	if len(record.Education) > 0 {
		heading("Education")
		for _, entry := range record.Education {
			if entry.Study != nil {
				pdf.SetFont("Helvetica", "B", 10)
				pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s, %s", entry.Study.Degree, entry.Study.Institution)), "", 1, "L", false, 0, "")
				pdf.SetFont("Helvetica", "", 10)

				pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s - %s", entry.Study.StartDate, entry.Study.EndDate)), "", 1, "L", false, 0, "")

				if entry.Study.Description != "" {
					pdf.MultiCell(0, 5, tr(entry.Study.Description), "", "L", false)
				}
			} else {
				pdf.MultiCell(0, 5, tr(entry.Freeform), "", "L", false)
			}
			pdf.Ln(3)
		}
	}

	if len(record.Certifications) > 0 {
		heading("Certifications")
		for _, cert := range record.Certifications {
			pdf.CellFormat(5, 5, "-", "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 5, tr(" "+cert), "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
