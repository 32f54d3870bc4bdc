package pool

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobRipley/curveLP/internal/domain"
)

func deposit(addr, amount string, ts int64) domain.LedgerEvent {
	return domain.LedgerEvent{ProviderAddress: addr, AmountUSD: amount, Timestamp: fmt.Sprint(ts), Kind: domain.EventDeposit}
}

func withdraw(addr, amount string, ts int64) domain.LedgerEvent {
	return domain.LedgerEvent{ProviderAddress: addr, AmountUSD: amount, Timestamp: fmt.Sprint(ts), Kind: domain.EventWithdraw}
}

func TestAggregateProvidersScenario(t *testing.T) {
	deposits := []domain.LedgerEvent{deposit("A", "100", 1), deposit("B", "50", 2)}
	withdraws := []domain.LedgerEvent{withdraw("A", "30", 3)}

	got := AggregateProviders(deposits, withdraws, TopProvidersLimit)
	require.Len(t, got, 2)

	a, b := got[0], got[1]
	assert.Equal(t, "A", a.Address)
	assert.Equal(t, "70", a.NetPosition.String())
	assert.Equal(t, "100", a.TotalDeposited.String())
	assert.Equal(t, "30", a.TotalWithdrawn.String())
	assert.Equal(t, 2, a.TransactionCount)
	assert.Equal(t, int64(3), a.LastActivity)

	assert.Equal(t, "B", b.Address)
	assert.Equal(t, "50", b.NetPosition.String())
	assert.Equal(t, "50", b.TotalDeposited.String())
	assert.True(t, b.TotalWithdrawn.IsZero())
	assert.Equal(t, 1, b.TransactionCount)
	assert.Equal(t, int64(2), b.LastActivity)
}

func TestAggregateProvidersExcludesNonPositive(t *testing.T) {
	deposits := []domain.LedgerEvent{
		deposit("even", "100", 1),
		deposit("loser", "10", 1),
		deposit("keeper", "0.01", 1),
	}
	withdraws := []domain.LedgerEvent{
		withdraw("even", "100", 2),
		withdraw("loser", "25", 2),
		withdraw("outsider", "5", 2),
	}

	got := AggregateProviders(deposits, withdraws, TopProvidersLimit)
	require.Len(t, got, 1)
	assert.Equal(t, "keeper", got[0].Address)
}

func TestAggregateProvidersNetPositionIsExact(t *testing.T) {
	deposits := []domain.LedgerEvent{
		deposit("A", "0.1", 1),
		deposit("A", "0.2", 2),
		deposit("A", "1000000000000.000000000001", 3),
	}
	withdraws := []domain.LedgerEvent{withdraw("A", "0.3", 4)}

	got := AggregateProviders(deposits, withdraws, TopProvidersLimit)
	require.Len(t, got, 1)
	acc := got[0]
	assert.True(t, acc.NetPosition.Equal(acc.TotalDeposited.Sub(acc.TotalWithdrawn)))
	assert.Equal(t, "1000000000000.000000000001", acc.NetPosition.String())
	assert.Equal(t, 4, acc.TransactionCount)
}

func TestAggregateProvidersRankingAndLimit(t *testing.T) {
	var deposits []domain.LedgerEvent
	for i := 1; i <= 30; i++ {
		deposits = append(deposits, deposit(fmt.Sprintf("0x%02d", i), fmt.Sprint(i*10), int64(i)))
	}

	got := AggregateProviders(deposits, nil, TopProvidersLimit)
	require.Len(t, got, TopProvidersLimit)
	assert.Equal(t, "0x30", got[0].Address)
	assert.Equal(t, "0x11", got[len(got)-1].Address)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].NetPosition.GreaterThan(got[i].NetPosition), "entry %d not strictly below entry %d", i, i-1)
		assert.True(t, got[i].NetPosition.IsPositive())
	}
}

func TestAggregateProvidersTieBreakByAddress(t *testing.T) {
	deposits := []domain.LedgerEvent{
		deposit("0xccc", "10", 1),
		deposit("0xaaa", "10", 1),
		deposit("0xbbb", "10", 1),
	}

	for range 5 {
		got := AggregateProviders(deposits, nil, TopProvidersLimit)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"0xaaa", "0xbbb", "0xccc"}, []string{got[0].Address, got[1].Address, got[2].Address})
	}
}

func TestAggregateProvidersMalformedValues(t *testing.T) {
	deposits := []domain.LedgerEvent{
		deposit("A", "not-a-number", 5),
		deposit("A", "40", 1),
		{ProviderAddress: "A", AmountUSD: "10", Timestamp: "garbage"},
	}

	got := AggregateProviders(deposits, nil, TopProvidersLimit)
	require.Len(t, got, 1)
	assert.Equal(t, "50", got[0].NetPosition.String())
	assert.Equal(t, 3, got[0].TransactionCount)
	assert.Equal(t, int64(5), got[0].LastActivity)
}

func TestAggregateProvidersKindFollowsStream(t *testing.T) {
	// Events are classified by the stream they arrive in, not by their Kind field.
	mislabeled := domain.LedgerEvent{ProviderAddress: "A", AmountUSD: "10", Timestamp: "1", Kind: domain.EventWithdraw}

	got := AggregateProviders([]domain.LedgerEvent{mislabeled}, nil, TopProvidersLimit)
	require.Len(t, got, 1)
	assert.Equal(t, "10", got[0].TotalDeposited.String())
}

func TestAggregateProvidersEmpty(t *testing.T) {
	got := AggregateProviders(nil, nil, TopProvidersLimit)
	assert.Empty(t, got)
}

func TestAggregateProvidersNoLimit(t *testing.T) {
	var deposits []domain.LedgerEvent
	for i := range 25 {
		deposits = append(deposits, deposit(fmt.Sprintf("p%d", i), "1", 1))
	}

	got := AggregateProviders(deposits, nil, 0)
	assert.Len(t, got, 25)
}
