package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"resume-chat-backend/internal/resume"
)

const fontFamily = "DejaVu"

type theme struct {
	text   [3]int
	accent [3]int
}

func defaultTheme() theme {
	return theme{
		text:   [3]int{0, 0, 0},
		accent: [3]int{70, 130, 180}, // steel blue
	}
}

// doc wraps an fpdf document with the font fallback decision made once at
// construction time. When the unicode fonts are unavailable or fail to load,
// the document falls back to the Helvetica core font and translates text to
// its cp1252 repertoire.
type doc struct {
	pdf     *fpdf.Fpdf
	unicode bool
	tr      func(string) string
	theme   theme
}

func newDoc(fontDir string) *doc {
	pdf := fpdf.New("P", "mm", "A4", "")
	unicode := false

	if fontsPresent(fontDir) {
		pdf.AddUTF8Font(fontFamily, "", filepath.Join(fontDir, fontRegular))
		pdf.AddUTF8Font(fontFamily, "B", filepath.Join(fontDir, fontBold))
		if pdf.Err() {
			// A bad font file poisons the whole document. Start over
			// without unicode support.
			pdf = fpdf.New("P", "mm", "A4", "")
		} else {
			unicode = true
		}
	}

	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	d := &doc{pdf: pdf, unicode: unicode, theme: defaultTheme()}
	if unicode {
		d.tr = func(s string) string { return s }
	} else {
		d.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	return d
}

func (d *doc) setFont(style string, size float64) {
	if d.unicode {
		d.pdf.SetFont(fontFamily, style, size)
		return
	}
	d.pdf.SetFont("Helvetica", style, size)
}

func (d *doc) bullet() string {
	return d.tr("•")
}

func (d *doc) header(name, title string) {
	if strings.TrimSpace(name) == "" {
		name = "Unknown Name"
	}

	d.setFont("B", 24)
	d.pdf.SetTextColor(d.theme.accent[0], d.theme.accent[1], d.theme.accent[2])
	d.pdf.CellFormat(0, 10, d.tr(name), "", 1, "C", false, 0, "")

	d.setFont("", 16)
	d.pdf.SetTextColor(d.theme.text[0], d.theme.text[1], d.theme.text[2])
	if title != "" {
		d.pdf.CellFormat(0, 10, d.tr(title), "", 1, "C", false, 0, "")
	}

	pageWidth, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY()
	d.pdf.Line(10, y+2, pageWidth-10, y+2)
	d.pdf.Ln(5)
}

func (d *doc) contact(c *resume.Contact) {
	var parts []string
	if c.Email != "" {
		parts = append(parts, "Email: "+c.Email)
	}
	if c.Phone != "" {
		parts = append(parts, "Phone: "+c.Phone)
	}
	if c.LinkedIn != "" {
		parts = append(parts, "LinkedIn: "+c.LinkedIn)
	}
	if c.Website != "" {
		parts = append(parts, "Website: "+c.Website)
	}
	if len(parts) == 0 {
		return
	}

	d.setFont("", 10)
	d.pdf.CellFormat(0, 5, d.tr(strings.Join(parts, "   ")), "", 1, "C", false, 0, "")
	d.pdf.Ln(5)
}

func (d *doc) sectionHeading(title string) {
	d.setFont("B", 14)
	d.pdf.SetTextColor(d.theme.accent[0], d.theme.accent[1], d.theme.accent[2])
	d.pdf.CellFormat(0, 10, d.tr(title), "", 1, "L", false, 0, "")
	d.pdf.SetTextColor(d.theme.text[0], d.theme.text[1], d.theme.text[2])

	y := d.pdf.GetY()
	d.pdf.Line(10, y, 60, y)
	d.pdf.Ln(3)
}

func (d *doc) summary(summary string) {
	if summary == "" {
		return
	}
	d.sectionHeading("Professional Summary")
	d.setFont("", 11)
	d.pdf.MultiCell(0, 5, d.tr(summary), "", "L", false)
	d.pdf.Ln(5)
}

func (d *doc) skills(skills resume.StringList) {
	if len(skills) == 0 {
		return
	}
	d.sectionHeading("Skills")
	d.setFont("", 11)
	d.pdf.MultiCell(0, 5, d.tr(strings.Join(skills, ", ")), "", "L", false)
	d.pdf.Ln(5)
}

func (d *doc) experience(entries []resume.Experience) {
	if len(entries) == 0 {
		return
	}
	d.sectionHeading("Work Experience")

	for _, entry := range entries {
		if entry.Job != nil {
			d.job(entry.Job)
		} else {
			d.setFont("", 11)
			d.pdf.MultiCell(0, 5, d.tr(entry.Freeform), "", "L", false)
		}
		d.pdf.Ln(5)
	}
	d.pdf.Ln(5)
}

func (d *doc) job(job *resume.Job) {
	d.setFont("B", 12)
	d.pdf.CellFormat(0, 6, d.tr(fmt.Sprintf("%s at %s", job.Position, job.Company)), "", 1, "L", false, 0, "")

	d.setFont("", 10)
	endDate := job.EndDate
	if endDate == "" {
		endDate = "Present"
	}
	dateLine := fmt.Sprintf("%s - %s", job.StartDate, endDate)
	if job.Location != "" {
		dateLine += " | " + job.Location
	}
	d.pdf.CellFormat(0, 5, d.tr(dateLine), "", 1, "L", false, 0, "")

	d.pdf.Ln(2)
	d.setFont("", 11)
	if job.Description != "" {
		d.pdf.MultiCell(0, 5, d.tr(job.Description), "", "L", false)
	}

	if len(job.Achievements) > 0 {
		d.pdf.Ln(2)
		for _, achievement := range job.Achievements {
			d.pdf.CellFormat(5, 5, d.bullet(), "", 0, "L", false, 0, "")
			d.pdf.MultiCell(0, 5, d.tr(" "+achievement), "", "L", false)
		}
	}
}

func (d *doc) education(entries []resume.Education) {
	if len(entries) == 0 {
		return
	}
	d.sectionHeading("Education")

	for _, entry := range entries {
		if entry.Study != nil {
			d.study(entry.Study)
		} else {
			d.setFont("", 11)
			d.pdf.MultiCell(0, 5, d.tr(entry.Freeform), "", "L", false)
		}
		d.pdf.Ln(5)
	}
	d.pdf.Ln(5)
}

func (d *doc) study(study *resume.Study) {
	d.setFont("B", 12)
	d.pdf.CellFormat(0, 6, d.tr(fmt.Sprintf("%s, %s", study.Degree, study.Institution)), "", 1, "L", false, 0, "")

	d.setFont("", 10)
	dateLine := fmt.Sprintf("%s - %s", study.StartDate, study.EndDate)
	if study.Location != "" {
		dateLine += " | " + study.Location
	}
	d.pdf.CellFormat(0, 5, d.tr(dateLine), "", 1, "L", false, 0, "")

	if study.Description != "" {
		d.pdf.Ln(2)
		d.setFont("", 11)
		d.pdf.MultiCell(0, 5, d.tr(study.Description), "", "L", false)
	}
}

func (d *doc) certifications(certs resume.StringList) {
	if len(certs) == 0 {
		return
	}
	d.sectionHeading("Certifications")
	d.setFont("", 11)
	for _, cert := range certs {
		d.pdf.CellFormat(5, 5, d.bullet(), "", 0, "L", false, 0, "")
		d.pdf.MultiCell(0, 5, d.tr(" "+cert), "", "L", false)
	}
	d.pdf.Ln(5)
}

// Rich renders the full themed layout to outPath. Unicode fonts are used
// when present under fontDir, with Helvetica as the per-document fallback.
func Rich(record *resume.Record, fontDir, outPath string) error {
	d := newDoc(fontDir)

	d.header(record.Name, record.Title)
	if record.Contact != nil {
		d.contact(record.Contact)
	}
	d.summary(record.Summary)
	d.skills(record.Skills)
	d.experience(record.Experience)
	d.education(record.Education)
	d.certifications(record.Certifications)

	if err := d.pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
