package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"resume-chat-backend/internal/render"
	"resume-chat-backend/internal/resume"
)

// renderdemo renders a sample resume so layout changes can be eyeballed
// without driving the whole API.
func main() {
	out := flag.String("out", "demo_resume.pdf", "output path")
	fontDir := flag.String("fonts", "static/fonts", "font directory")
	fetch := flag.Bool("fetch", true, "download fonts if missing")
	flag.Parse()

	ctx := context.Background()

	if *fetch {
		fontCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		if err := render.EnsureFonts(fontCtx, http.DefaultClient, *fontDir); err != nil {
			log.Printf("fonts unavailable, falling back to core fonts: %v", err)
		}
		cancel()
	}

	record := &resume.Record{
		Name:    "Jane Doe",
		Title:   "Senior Software Engineer",
		Contact: &resume.Contact{Email: "jane@example.com", Phone: "555-0101", LinkedIn: "linkedin.com/in/janedoe"},
		Summary: "Backend engineer with ten years of experience building data-heavy services.",
		Skills:  resume.StringList{"Go", "PostgreSQL", "AWS", "Distributed systems"},
		Experience: []resume.Experience{
			{Job: &resume.Job{
				Position:     "Senior Engineer",
				Company:      "Acme Corp",
				StartDate:    "2020",
				Location:     "Remote",
				Description:  "Leads the storage platform team.",
				Achievements: resume.StringList{"Cut p99 latency by 40%", "Migrated the fleet to managed Postgres"},
			}},
			{Freeform: "Independent consulting, 2017-2020"},
		},
		Education: []resume.Education{
			{Study: &resume.Study{Degree: "BSc Computer Science", Institution: "State University", StartDate: "2010", EndDate: "2014"}},
		},
		Certifications: resume.StringList{"AWS Certified Solutions Architect"},
	}

	g := &render.Generator{FontDir: *fontDir}
	strategy, err := g.Generate(ctx, record, *out)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	log.Printf("wrote %s using %s layout", *out, strategy)
}
