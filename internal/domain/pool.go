package domain

import "github.com/shopspring/decimal"

// EventKind distinguishes the two ledger event streams of a pool.
type EventKind int

const (
	EventDeposit EventKind = iota
	EventWithdraw
)

func (k EventKind) String() string {
	switch k {
	case EventDeposit:
		return "deposit"
	case EventWithdraw:
		return "withdraw"
	default:
		return "unknown"
	}
}

// Token is one input token of a pool with its raw on-chain balance.
// Balance, decimals and price are kept as strings exactly as the indexer reports them.
type Token struct {
	Address    string
	Symbol     string
	Decimals   string
	RawBalance string
	Weight     string
	PriceUSD   string
}

// Snapshot is a daily pool snapshot.
type Snapshot struct {
	TotalValueLockedUSD string
	DailyVolumeUSD      string
	Timestamp           string
}

// LedgerEvent is a single deposit into or withdrawal from the pool.
type LedgerEvent struct {
	ProviderAddress string
	AmountUSD       string
	Timestamp       string
	Kind            EventKind
}

// Fee is a pool fee entry.
type Fee struct {
	Percentage string
	Type       string
}

// PoolData is the raw indexer payload for a single pool, the input of the summary pipeline.
// Snapshots are ordered by timestamp descending.
type PoolData struct {
	ID                               string
	Name                             string
	Symbol                           string
	IsMetapool                       bool
	TotalValueLockedUSD              string
	CumulativeVolumeUSD              string
	CumulativeSupplySideRevenueUSD   string
	CumulativeProtocolSideRevenueUSD string
	Tokens                           []Token
	Fees                             []Fee
	Snapshots                        []Snapshot
	Deposits                         []LedgerEvent
	Withdraws                        []LedgerEvent
}

// ProviderAccount accumulates all ledger activity of one liquidity provider address.
type ProviderAccount struct {
	Address          string
	TotalDeposited   decimal.Decimal
	TotalWithdrawn   decimal.Decimal
	NetPosition      decimal.Decimal
	TransactionCount int
	LastActivity     int64
}

// PoolMetrics holds the pool-level figures of a summary. All values are decimal strings.
type PoolMetrics struct {
	TVL                         string `json:"tvl"`
	TVLChange                   string `json:"tvlChange"`
	CumulativeVolume            string `json:"cumulativeVolume"`
	CumulativeSupplySideRevenue string `json:"cumulativeSupplySideRevenue"`
	CumulativeProtocolRevenue   string `json:"cumulativeProtocolRevenue"`
	DailyVolume                 string `json:"dailyVolume"`
}

// TokenSummary is a normalized and valued pool token.
type TokenSummary struct {
	Address     string `json:"address"`
	Symbol      string `json:"symbol"`
	Balance     string `json:"balance"`
	Weight      string `json:"weight"`
	PriceUSD    string `json:"priceUSD"`
	ValueUSD    string `json:"valueUSD"`
	ShareOfPool string `json:"shareOfPool"`
}

// FeeSummary is a pool fee as exposed by the API.
type FeeSummary struct {
	Percentage string `json:"percentage"`
	Type       string `json:"type"`
}

// ProviderSummary is one entry of the top liquidity providers list.
type ProviderSummary struct {
	Address        string `json:"address"`
	NetPositionUSD string `json:"netPositionUSD"`
	ShareOfPool    string `json:"shareOfPool"`
	TotalDeposited string `json:"totalDeposited"`
	TotalWithdrawn string `json:"totalWithdrawn"`
	Transactions   int    `json:"transactions"`
	LastActive     string `json:"lastActive"`
}

// PoolSummary is the top-level output of the pool summary pipeline.
type PoolSummary struct {
	PoolID       string            `json:"poolId"`
	PoolName     string            `json:"poolName"`
	PoolSymbol   string            `json:"poolSymbol"`
	IsMetapool   bool              `json:"isMetapool"`
	Metrics      PoolMetrics       `json:"metrics"`
	Tokens       []TokenSummary    `json:"tokens"`
	Fees         []FeeSummary      `json:"fees"`
	TopProviders []ProviderSummary `json:"topProviders"`
}
