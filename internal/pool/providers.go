package pool

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/RobRipley/curveLP/internal/domain"
)

// TopProvidersLimit is the maximum number of providers in a pool summary.
const TopProvidersLimit = 20

// AggregateProviders folds deposit and withdraw events into one account per address and returns
// the accounts with a positive net position, ordered by net position descending and then by
// address ascending, truncated to limit entries. A non-positive limit disables truncation.
func AggregateProviders(deposits, withdraws []domain.LedgerEvent, limit int) []domain.ProviderAccount {
	accounts := make(map[string]*domain.ProviderAccount)

	apply := func(e domain.LedgerEvent) {
		ts := domain.SafeParseInt(e.Timestamp)
		acc, ok := accounts[e.ProviderAddress]
		if !ok {
			acc = &domain.ProviderAccount{
				Address:      e.ProviderAddress,
				LastActivity: ts,
			}
			accounts[e.ProviderAddress] = acc
		}

		amount := domain.SafeParse(e.AmountUSD)
		switch e.Kind {
		case domain.EventDeposit:
			acc.TotalDeposited = acc.TotalDeposited.Add(amount)
		case domain.EventWithdraw:
			acc.TotalWithdrawn = acc.TotalWithdrawn.Add(amount)
		}
		acc.TransactionCount++
		acc.LastActivity = max(acc.LastActivity, ts)
	}

	for _, e := range deposits {
		e.Kind = domain.EventDeposit
		apply(e)
	}
	for _, e := range withdraws {
		e.Kind = domain.EventWithdraw
		apply(e)
	}

	ranked := make([]domain.ProviderAccount, 0, len(accounts))
	for _, acc := range accounts {
		acc.NetPosition = acc.TotalDeposited.Sub(acc.TotalWithdrawn)
		if acc.NetPosition.GreaterThan(decimal.Zero) {
			ranked = append(ranked, *acc)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].NetPosition.Cmp(ranked[j].NetPosition); c != 0 {
			return c > 0
		}
		return ranked[i].Address < ranked[j].Address
	})

	if limit > 0 {
		ranked = lo.Slice(ranked, 0, limit)
	}
	return ranked
}
