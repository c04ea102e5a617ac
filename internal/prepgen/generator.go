// Package prepgen produces the short list of preparation steps attached to
// every new task. Generation is best-effort: when no model is configured, or
// the model call or its output fails in any way, the fixed fallback steps
// are returned instead. Generate never fails.
package prepgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"task-tracker/internal/model"
)

// Completer is the single call consumed from the AI collaborator: text
// prompt in, text out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator builds prep steps for a task, via the model when one is
// available.
type Generator struct {
	ai Completer
}

// New returns a Generator. A nil completer is valid and means every call
// yields the fallback steps.
func New(ai Completer) *Generator {
	return &Generator{ai: ai}
}

// Fallback returns the fixed three-step list used whenever AI generation is
// unavailable or fails. The offsets are load-bearing: -60/-30/-15 minutes
// before the due date.
func Fallback() []model.PrepStep {
	return []model.PrepStep{
		{Title: "Gather materials needed", OffsetMinutes: -60},
		{Title: "Set up workspace and environment", OffsetMinutes: -30},
		{Title: "Final check and mental preparation", OffsetMinutes: -15},
	}
}

// Generate returns 2-3 prep steps for the task. Model failures are absorbed
// here and downgraded to the fallback; task creation never fails because of
// the AI path.
func (g *Generator) Generate(ctx context.Context, title string, due time.Time, category string) []model.PrepStep {
	if g.ai == nil {
		return Fallback()
	}
	steps, err := g.fromModel(ctx, title, due, category)
	if err != nil {
		log.Printf("prep step generation failed, using fallback: %v", err)
		return Fallback()
	}
	return steps
}

func (g *Generator) fromModel(ctx context.Context, title string, due time.Time, category string) ([]model.PrepStep, error) {
	raw, err := g.ai.Complete(ctx, buildPrompt(title, due, category))
	if err != nil {
		return nil, err
	}
	return parseSteps(raw)
}

func buildPrompt(title string, due time.Time, category string) string {
	return fmt.Sprintf(`You are an ADHD productivity coach. For this task:
Title: %s
Due: %s
Category: %s

Generate 2-3 preparation steps to help someone with ADHD complete this task successfully.
Consider common ADHD challenges like time blindness, executive dysfunction, and task initiation.

Return ONLY a JSON array with this exact format:
[
  {"title": "Step description", "offset_minutes": -60},
  {"title": "Step description", "offset_minutes": -30},
  {"title": "Step description", "offset_minutes": -15}
]

Use negative offset_minutes (time before due date). Keep titles concise and actionable.`,
		title, due.UTC().Format(time.RFC3339), category)
}

// stepPayload mirrors one element of the JSON array the model is asked to
// produce. Pointers distinguish missing fields from zero values.
type stepPayload struct {
	Title         *string `json:"title"`
	OffsetMinutes *int    `json:"offset_minutes"`
	Completed     *bool   `json:"completed"`
}

func parseSteps(raw string) ([]model.PrepStep, error) {
	text := stripFences(strings.TrimSpace(raw))
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, fmt.Errorf("response is not a JSON array")
	}

	var payload []stepPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("parse steps: %w", err)
	}
	if len(payload) < 2 || len(payload) > 3 {
		return nil, fmt.Errorf("expected 2-3 steps, got %d", len(payload))
	}

	steps := make([]model.PrepStep, 0, len(payload))
	for i, p := range payload {
		if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
			return nil, fmt.Errorf("step %d: missing title", i)
		}
		if p.OffsetMinutes == nil {
			return nil, fmt.Errorf("step %d: missing offset_minutes", i)
		}
		step := model.PrepStep{
			Title:         strings.TrimSpace(*p.Title),
			OffsetMinutes: *p.OffsetMinutes,
		}
		if p.Completed != nil {
			step.Completed = *p.Completed
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// stripFences removes a surrounding markdown code fence, which models add
// despite being told not to.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
