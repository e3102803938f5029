package bot

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/blindattack4/backend/internal/domain"
)

const meterName = "github.com/blindattack4/backend/internal/service/bot"

var (
	decisionCounter metric.Int64Counter
	searchNodes     metric.Int64Histogram
)

func init() {
	meter := otel.Meter(meterName)

	var err error
	decisionCounter, err = meter.Int64Counter("bot.decisions",
		metric.WithDescription("AI moves chosen, by difficulty and strategy rule"))
	if err != nil {
		otel.Handle(err)
	}
	searchNodes, err = meter.Int64Histogram("bot.search.nodes",
		metric.WithDescription("Positions visited by one alpha-beta search"),
		metric.WithUnit("{node}"))
	if err != nil {
		otel.Handle(err)
	}
}

func recordDecision(ctx context.Context, difficulty domain.Difficulty, d Decision) {
	attrs := metric.WithAttributes(
		attribute.String("difficulty", string(difficulty)),
		attribute.String("reason", string(d.Reason)),
	)
	if decisionCounter != nil {
		decisionCounter.Add(ctx, 1, attrs)
	}
	if d.Reason == ReasonSearch && searchNodes != nil {
		searchNodes.Record(ctx, int64(d.Nodes), metric.WithAttributes(attribute.String("difficulty", string(difficulty))))
	}
}
