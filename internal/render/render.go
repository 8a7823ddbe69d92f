package render

import (
	"context"
	"fmt"

	"resume-chat-backend/internal/resume"
	"resume-chat-backend/internal/shared/metrics"
	"resume-chat-backend/internal/shared/telemetry"
)

// Render strategies in preference order.
const (
	StrategyRich   = "rich"
	StrategySimple = "simple"
)

// Generator renders resume PDFs, trying the rich layout first and falling
// back to the simple layout when it fails.
type Generator struct {
	FontDir string
}

// Generate renders record to outPath and reports which strategy produced
// the file. A rich-layout failure downgrades to the simple layout; only a
// failure of both is an error.
func (g *Generator) Generate(ctx context.Context, record *resume.Record, outPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := metrics.NowMillis()

	richErr := renderRich(record, g.FontDir, outPath)
	if richErr == nil {
		metrics.IncRender(StrategyRich)
		metrics.ObserveRenderDurationMs(metrics.NowMillis() - start)
		return StrategyRich, nil
	}
	telemetry.Error("render.rich_failed", map[string]any{"error": richErr.Error()})

	if err := renderSimple(record, outPath); err != nil {
		metrics.IncRenderFailed()
		return "", fmt.Errorf("render resume: %w", err)
	}

	metrics.IncRender(StrategySimple)
	metrics.ObserveRenderDurationMs(metrics.NowMillis() - start)
	return StrategySimple, nil
}

// renderRich converts layout panics into errors so a malformed record can
// never take down the caller.
func renderRich(record *resume.Record, fontDir, outPath string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rich layout panic: %v", r)
		}
	}()
	return Rich(record, fontDir, outPath)
}

func renderSimple(record *resume.Record, outPath string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simple layout panic: %v", r)
		}
	}()
	return Simple(record, outPath)
}
