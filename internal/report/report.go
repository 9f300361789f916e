package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/artifact"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
)

type EventSource interface {
	GetAllEvents(ctx context.Context) ([]*domain.OrderEvent, error)
}

// Summary is the analytics report document written to the artifact
// store, one per generation day.
type Summary struct {
	GeneratedAt    time.Time            `json:"generatedAt"`
	TotalEvents    int                  `json:"totalEvents"`
	CountsByStatus map[string]int       `json:"countsByStatus"`
	Events         []*domain.OrderEvent `json:"events"`
}

// Generator scans the full order event log and writes an aggregated
// analytics report.
type Generator struct {
	events    EventSource
	artifacts artifact.Store
	logger    *zap.Logger
	now       func() time.Time
}

func NewGenerator(events EventSource, artifacts artifact.Store, l *zap.Logger) *Generator {
	return &Generator{
		events:    events,
		artifacts: artifacts,
		logger:    l,
		now:       time.Now,
	}
}

func ReportKey(t time.Time) string {
	return fmt.Sprintf("reports/analytics-report-%s.json", t.UTC().Format("2006-01-02"))
}

// Generate builds the report from every event recorded so far and
// stores it. It returns the artifact key the report was written under.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	events, err := g.events.GetAllEvents(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to scan order events: %w", err)
	}

	now := g.now().UTC()
	summary := Summary{
		GeneratedAt:    now,
		TotalEvents:    len(events),
		CountsByStatus: make(map[string]int),
		Events:         events,
	}
	for _, e := range events {
		summary.CountsByStatus[string(e.Status)]++
	}

	data, err := json.MarshalIndent(&summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode analytics report: %w", err)
	}

	key := ReportKey(now)
	if err := g.artifacts.Put(ctx, key, data); err != nil {
		return "", fmt.Errorf("failed to store analytics report: %w", err)
	}

	g.logger.Info("Analytics report generated",
		zap.String("key", key),
		zap.Int("total_events", len(events)))
	return key, nil
}
