// Package narrative turns a structured fact set into a one-line explanation
// using a text-generation backend, degrading to a fixed string when every
// attempt fails.
package narrative

import (
	"context"
	"fmt"
	"log"
	"strings"

	"itisinvest/internal/model"
)

// FallbackText is returned when all backend attempts are exhausted.
const FallbackText = "Análise automática indisponível de momento."

// DefaultMaxLen caps the displayed narrative length.
const DefaultMaxLen = 600

// Facts is the closed, structured input for one explanation. Prompt
// construction only ever uses these fields, keeping it deterministic and
// testable without a live backend.
type Facts struct {
	Symbol       string
	VariationPct float64
	Price        float64
	Context      []string // e.g. recent headlines, may be empty
}

// Backend is a stateless text-completion service.
type Backend interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
	Name() string
}

// Limiter gates each backend call. *rate.Limiter satisfies it; tests inject
// a no-op.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Engine tries an ordered list of backend models and falls back to
// FallbackText. Explain never returns an error.
type Engine struct {
	backend Backend
	models  []string
	limiter Limiter
	maxLen  int
}

// NewEngine creates an Engine. backend may be nil when no credential is
// configured, in which case every Explain returns the fallback.
func NewEngine(backend Backend, models []string, limiter Limiter) *Engine {
	return &Engine{backend: backend, models: models, limiter: limiter, maxLen: DefaultMaxLen}
}

// Explain produces a narrative for the given facts. Each model in order gets
// one rate-limited attempt; transient and permanent failures are treated the
// same (move on to the next model).
func (e *Engine) Explain(ctx context.Context, facts Facts) model.NarrativeResult {
	if e.backend == nil {
		return model.NarrativeResult{Text: FallbackText, Source: model.SourceFallback}
	}

	prompt := BuildPrompt(facts)
	for _, m := range e.models {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				log.Printf("[WARN] narrative: limiter wait: %v", err)
				break
			}
		}
		text, err := e.backend.Generate(ctx, m, prompt)
		if err != nil {
			log.Printf("[WARN] narrative: %s model %s: %v", e.backend.Name(), m, err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			log.Printf("[WARN] narrative: %s model %s returned empty text", e.backend.Name(), m)
			continue
		}
		return model.NarrativeResult{Text: clip(text, e.maxLen), Source: m}
	}
	return model.NarrativeResult{Text: FallbackText, Source: model.SourceFallback}
}

// BuildPrompt renders the bounded prompt template from the fact set.
func BuildPrompt(f Facts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analisa a ação %s. Preço: $%.2f. Variação: %+.2f%%.\n", f.Symbol, f.Price, f.VariationPct)
	if len(f.Context) > 0 {
		b.WriteString("Notícias recentes:\n")
		for _, c := range f.Context {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	b.WriteString("Explica numa frase curta se vale a pena atenção hoje. Responde em Português.")
	return b.String()
}

func clip(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
