package llm

import (
	"context"

	"legal-backend/internal/shared/metrics"
	"legal-backend/internal/shared/telemetry"
)

// Provider is a named Generator in a Chain.
type Provider struct {
	Name      string
	Generator Generator
}

// Chain tries providers in order. It moves to the next provider only when
// the current one fails with a quota error.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	kept := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p.Generator != nil {
			kept = append(kept, p)
		}
	}
	return &Chain{providers: kept}
}

// Names lists provider names in fallback order.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name)
	}
	return names
}

// Generate returns the first successful completion. Non-quota errors and the
// last provider's error are returned unchanged.
func (c *Chain) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if len(c.providers) == 0 {
		return "", ErrNoProviders
	}
	for i, p := range c.providers {
		text, err := p.Generator.Generate(ctx, systemPrompt, userPrompt)
		if err == nil {
			return text, nil
		}
		last := i == len(c.providers)-1
		if last || !IsQuotaError(err) {
			return "", err
		}
		next := c.providers[i+1]
		telemetry.Warn("llm.fallback", map[string]any{
			"from":  p.Name,
			"to":    next.Name,
			"error": telemetry.Err(err),
		})
		metrics.IncLLMFallback(p.Name, next.Name)
	}
	return "", ErrNoProviders
}

var _ Generator = (*Chain)(nil)
