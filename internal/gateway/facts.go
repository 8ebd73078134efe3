package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/voyageplan/trip-planner/internal/llm"
	"github.com/voyageplan/trip-planner/internal/model"
	"github.com/voyageplan/trip-planner/pkg/metrics"
)

// DestinationFact returns one short sentence about the place. Generative
// backend first when configured, then the curated table, then a generic
// template. Never fails.
func (g *Gateway) DestinationFact(ctx context.Context, place string) string {
	if g.factClient != nil {
		if fact, ok := g.generativeFact(ctx, place); ok {
			return fact
		}
		metrics.RecordFallback("fact")
	}

	key := strings.ToLower(strings.TrimSpace(place))
	if facts := g.funFacts[key]; len(facts) > 0 {
		return facts[rand.Intn(len(facts))]
	}

	return fmt.Sprintf("%s has a rich culture and popular local spots worth exploring.", model.TitleCase(place))
}

func (g *Gateway) generativeFact(ctx context.Context, place string) (string, bool) {
	prompt := fmt.Sprintf(
		"Give one short, accurate fun fact about %s for travelers. One sentence only, no emojis.",
		place,
	)

	resp, err := g.factClient.Complete(ctx, &llm.CompletionRequest{
		Messages:    []llm.ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   60,
		Temperature: 0.7,
	})
	if err != nil {
		g.logger.Warn("generative fact lookup failed",
			zap.String("place", place),
			zap.String("provider", g.factClient.Name()),
			zap.Error(err),
		)
		return "", false
	}

	fact := strings.TrimSpace(resp.Content)
	if fact == "" {
		return "", false
	}
	return fact, true
}
