package subgraph

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/RobRipley/curveLP/internal/domain"
)

// maxSnapshots is the number of most recent daily snapshots kept per pool.
const maxSnapshots = 2

//go:embed queries/pool_info.graphql
var poolInfoQuery string

var tracer = otel.Tracer("github.com/RobRipley/curveLP/internal/subgraph")

// FetchLiquidityPool retrieves a pool with its tokens, snapshots and recent ledger events.
// Returns domain.ErrPoolNotFound when the subgraph has no pool with that ID.
func (c *Client) FetchLiquidityPool(ctx context.Context, poolID string) (*LiquidityPool, error) {
	ctx, span := tracer.Start(ctx, "subgraph.FetchLiquidityPool")
	defer span.End()
	span.SetAttributes(attribute.String("pool.id", poolID))

	var resp struct {
		LiquidityPool *LiquidityPool `json:"liquidityPool"`
	}
	if err := c.query(ctx, poolInfoQuery, map[string]any{"poolId": poolID}, &resp); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: fetching liquidity pool: %w", domain.ErrUpstreamUnavailable, err)
	}
	if resp.LiquidityPool == nil {
		return nil, domain.ErrPoolNotFound
	}
	return resp.LiquidityPool, nil
}

// FetchPool implements pool.PoolFetcher.
func (c *Client) FetchPool(ctx context.Context, poolID string) (domain.PoolData, error) {
	lp, err := c.FetchLiquidityPool(ctx, poolID)
	if err != nil {
		return domain.PoolData{}, err
	}
	return lp.ToDomain(), nil
}

// ToDomain converts the subgraph entity into the pipeline input. Balances and weights are
// joined to tokens by index; a missing entry becomes an empty string.
func (lp LiquidityPool) ToDomain() domain.PoolData {
	tokens := lo.Map(lp.InputTokens, func(t InputToken, i int) domain.Token {
		return domain.Token{
			Address:    t.ID,
			Symbol:     t.Symbol,
			Decimals:   t.Decimals.String(),
			RawBalance: at(lp.InputTokenBalances, i),
			Weight:     at(lp.InputTokenWeights, i),
			PriceUSD:   lo.FromPtr(t.LastPriceUSD),
		}
	})

	snapshots := lo.Map(lo.Slice(lp.DailySnapshots, 0, maxSnapshots), func(s DailySnapshot, _ int) domain.Snapshot {
		return domain.Snapshot{
			TotalValueLockedUSD: s.TotalValueLockedUSD,
			DailyVolumeUSD:      s.DailyVolumeUSD,
			Timestamp:           s.Timestamp,
		}
	})

	return domain.PoolData{
		ID:                               lp.ID,
		Name:                             lp.Name,
		Symbol:                           lp.Symbol,
		IsMetapool:                       lp.IsMetapool,
		TotalValueLockedUSD:              lp.TotalValueLockedUSD,
		CumulativeVolumeUSD:              lp.CumulativeVolumeUSD,
		CumulativeSupplySideRevenueUSD:   lp.CumulativeSupplySideRevenueUSD,
		CumulativeProtocolSideRevenueUSD: lp.CumulativeProtocolSideRevenueUSD,
		Tokens:                           tokens,
		Fees: lo.Map(lp.Fees, func(f PoolFee, _ int) domain.Fee {
			return domain.Fee{Percentage: f.FeePercentage, Type: f.FeeType}
		}),
		Snapshots: snapshots,
		Deposits:  toLedgerEvents(lp.Deposits, domain.EventDeposit),
		Withdraws: toLedgerEvents(lp.Withdraws, domain.EventWithdraw),
	}
}

func toLedgerEvents(entries []LedgerEntry, kind domain.EventKind) []domain.LedgerEvent {
	return lo.Map(entries, func(e LedgerEntry, _ int) domain.LedgerEvent {
		return domain.LedgerEvent{
			ProviderAddress: e.From,
			AmountUSD:       e.AmountUSD,
			Timestamp:       e.Timestamp,
			Kind:            kind,
		}
	})
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
