package pool

import (
	"github.com/shopspring/decimal"

	"github.com/RobRipley/curveLP/internal/domain"
)

// valuedToken is a token after balance normalization and USD valuation.
type valuedToken struct {
	domain.Token
	Balance  string
	ValueUSD decimal.Decimal
}

// valueToken normalizes a token balance and values it at the token's last USD price.
// The value is rounded to cents so that shares are computed from the displayed figure.
func valueToken(t domain.Token) valuedToken {
	balance := domain.NormalizeBalance(t.RawBalance, t.Decimals)
	return valuedToken{
		Token:    t,
		Balance:  balance,
		ValueUSD: domain.SafeMultiply(balance, t.PriceUSD).Round(2),
	}
}

// calculateMetrics derives the pool-level metrics from the pool fields and its daily snapshots.
// Snapshots must be ordered by timestamp descending.
func calculateMetrics(data domain.PoolData) domain.PoolMetrics {
	tvlChange := "0"
	if len(data.Snapshots) >= 2 {
		tvlChange = domain.PercentChange(data.Snapshots[0].TotalValueLockedUSD, data.Snapshots[1].TotalValueLockedUSD)
	}

	dailyVolume := "0"
	if len(data.Snapshots) > 0 {
		dailyVolume = domain.FormatUSD(data.Snapshots[0].DailyVolumeUSD)
	}

	return domain.PoolMetrics{
		TVL:                         domain.FormatUSD(data.TotalValueLockedUSD),
		TVLChange:                   tvlChange + "%",
		CumulativeVolume:            domain.FormatUSD(data.CumulativeVolumeUSD),
		CumulativeSupplySideRevenue: domain.FormatUSD(data.CumulativeSupplySideRevenueUSD),
		CumulativeProtocolRevenue:   domain.FormatUSD(data.CumulativeProtocolSideRevenueUSD),
		DailyVolume:                 dailyVolume,
	}
}

// shareBase returns the TVL used as the denominator of pool share percentages:
// the most recent snapshot's TVL, or the pool-level TVL when no usable snapshot exists.
func shareBase(data domain.PoolData) decimal.Decimal {
	if len(data.Snapshots) > 0 {
		if tvl := domain.SafeParse(data.Snapshots[0].TotalValueLockedUSD); !tvl.IsZero() {
			return tvl
		}
	}
	return domain.SafeParse(data.TotalValueLockedUSD)
}
