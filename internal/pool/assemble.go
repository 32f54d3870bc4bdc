package pool

import (
	"time"

	"github.com/samber/lo"

	"github.com/RobRipley/curveLP/internal/domain"
)

// lastActiveLayout renders Unix timestamps as ISO-8601 UTC with millisecond precision.
const lastActiveLayout = "2006-01-02T15:04:05.000Z"

// Build runs the full summary pipeline over an already-fetched pool payload.
// It never fails: malformed numeric fields are reported as zero.
func Build(data domain.PoolData) domain.PoolSummary {
	tokens := lo.Map(data.Tokens, func(t domain.Token, _ int) valuedToken {
		return valueToken(t)
	})
	providers := AggregateProviders(data.Deposits, data.Withdraws, TopProvidersLimit)
	return assemble(data, calculateMetrics(data), tokens, providers)
}

// assemble merges the computed parts of a summary into the output structure.
func assemble(data domain.PoolData, metrics domain.PoolMetrics, tokens []valuedToken, providers []domain.ProviderAccount) domain.PoolSummary {
	base := shareBase(data)

	return domain.PoolSummary{
		PoolID:     data.ID,
		PoolName:   data.Name,
		PoolSymbol: data.Symbol,
		IsMetapool: data.IsMetapool,
		Metrics:    metrics,
		Tokens: lo.Map(tokens, func(t valuedToken, _ int) domain.TokenSummary {
			return domain.TokenSummary{
				Address:     t.Address,
				Symbol:      t.Symbol,
				Balance:     t.Balance,
				Weight:      t.Weight,
				PriceUSD:    t.PriceUSD,
				ValueUSD:    t.ValueUSD.StringFixed(2),
				ShareOfPool: domain.ShareOfPool(t.ValueUSD, base),
			}
		}),
		Fees: lo.Map(data.Fees, func(f domain.Fee, _ int) domain.FeeSummary {
			return domain.FeeSummary{Percentage: f.Percentage, Type: f.Type}
		}),
		TopProviders: lo.Map(providers, func(p domain.ProviderAccount, _ int) domain.ProviderSummary {
			return domain.ProviderSummary{
				Address:        p.Address,
				NetPositionUSD: p.NetPosition.StringFixed(2),
				ShareOfPool:    domain.ShareOfPool(p.NetPosition, base),
				TotalDeposited: p.TotalDeposited.StringFixed(2),
				TotalWithdrawn: p.TotalWithdrawn.StringFixed(2),
				Transactions:   p.TransactionCount,
				LastActive:     time.Unix(p.LastActivity, 0).UTC().Format(lastActiveLayout),
			}
		}),
	}
}
