package pool

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/RobRipley/curveLP/internal/domain"
)

var tracer = otel.Tracer("github.com/RobRipley/curveLP/internal/pool")

// PoolFetcher retrieves the raw indexer payload for one pool.
type PoolFetcher interface {
	FetchPool(ctx context.Context, poolID string) (domain.PoolData, error)
}

// Service builds pool summaries from freshly fetched indexer data.
type Service struct {
	fetcher PoolFetcher
}

// NewService creates a new pool Service.
func NewService(fetcher PoolFetcher) *Service {
	return &Service{fetcher: fetcher}
}

// GetPoolInfo fetches the pool and runs the summary pipeline over it.
// Fetch errors are returned as-is (wrapped) and no partial summary is produced.
func (s *Service) GetPoolInfo(ctx context.Context, poolID string) (domain.PoolSummary, error) {
	ctx, span := tracer.Start(ctx, "pool.GetPoolInfo")
	defer span.End()
	span.SetAttributes(attribute.String("pool.id", poolID))

	data, err := s.fetcher.FetchPool(ctx, poolID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetching pool")
		return domain.PoolSummary{}, fmt.Errorf("fetching pool %s: %w", poolID, err)
	}

	summary := Build(data)
	span.SetAttributes(
		attribute.Int("pool.deposits", len(data.Deposits)),
		attribute.Int("pool.withdraws", len(data.Withdraws)),
		attribute.Int("pool.top_providers", len(summary.TopProviders)),
	)
	slog.Debug("built pool summary",
		"pool", poolID,
		"tokens", len(summary.Tokens),
		"deposits", len(data.Deposits),
		"withdraws", len(data.Withdraws),
		"providers", len(summary.TopProviders))

	return summary, nil
}
