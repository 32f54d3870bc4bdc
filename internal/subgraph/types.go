package subgraph

import "encoding/json"

// LiquidityPool is the liquidityPool entity returned by the pool info query.
// BigInt and BigDecimal fields arrive as JSON strings.
type LiquidityPool struct {
	ID                               string          `json:"id"`
	Name                             string          `json:"name"`
	Symbol                           string          `json:"symbol"`
	TotalValueLockedUSD              string          `json:"totalValueLockedUSD"`
	CumulativeVolumeUSD              string          `json:"cumulativeVolumeUSD"`
	CumulativeSupplySideRevenueUSD   string          `json:"cumulativeSupplySideRevenueUSD"`
	CumulativeProtocolSideRevenueUSD string          `json:"cumulativeProtocolSideRevenueUSD"`
	InputTokens                      []InputToken    `json:"inputTokens"`
	InputTokenBalances               []string        `json:"inputTokenBalances"`
	InputTokenWeights                []string        `json:"inputTokenWeights"`
	Fees                             []PoolFee       `json:"fees"`
	IsMetapool                       bool            `json:"_isMetapool"`
	DailySnapshots                   []DailySnapshot `json:"dailySnapshots"`
	Deposits                         []LedgerEntry   `json:"deposits"`
	Withdraws                        []LedgerEntry   `json:"withdraws"`
}

// InputToken is a token held by the pool.
type InputToken struct {
	ID       string      `json:"id"`
	Symbol   string      `json:"symbol"`
	Decimals json.Number `json:"decimals"`
	// LastPriceUSD is null until the indexer has priced the token.
	LastPriceUSD *string `json:"lastPriceUSD"`
}

// PoolFee is a fee entry of the pool.
type PoolFee struct {
	FeePercentage string `json:"feePercentage"`
	FeeType       string `json:"feeType"`
}

// DailySnapshot is a liquidityPoolDailySnapshot entity.
type DailySnapshot struct {
	DailyVolumeUSD      string `json:"dailyVolumeUSD"`
	TotalValueLockedUSD string `json:"totalValueLockedUSD"`
	Timestamp           string `json:"timestamp"`
}

// LedgerEntry is a deposit or withdraw entity.
type LedgerEntry struct {
	From      string `json:"from"`
	AmountUSD string `json:"amountUSD"`
	Timestamp string `json:"timestamp"`
}
