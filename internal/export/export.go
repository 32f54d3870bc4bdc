package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/RobRipley/curveLP/internal/domain"
)

// Sheet names written for each pool summary.
const (
	SheetOverview  = "Overview"
	SheetTokens    = "Tokens"
	SheetProviders = "Providers"
)

// Sheet is one named table of cell values; the first row is the header.
type Sheet struct {
	Name string
	Rows [][]any
}

// SheetWriter writes sheets to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, sheets []Sheet) error
}

// PoolInfoService produces a summary for one pool.
type PoolInfoService interface {
	GetPoolInfo(ctx context.Context, poolID string) (domain.PoolSummary, error)
}

// Service fetches a pool summary and delegates writing to a SheetWriter.
type Service struct {
	pools  PoolInfoService
	writer SheetWriter
}

// NewService creates a new export Service.
func NewService(pools PoolInfoService, writer SheetWriter) *Service {
	return &Service{pools: pools, writer: writer}
}

// Export builds the summary of poolID and writes it as Overview, Tokens and Providers sheets.
func (s *Service) Export(ctx context.Context, poolID string) error {
	summary, err := s.pools.GetPoolInfo(ctx, poolID)
	if err != nil {
		return fmt.Errorf("getting pool summary: %w", err)
	}

	if err := s.writer.Write(ctx, BuildSheets(summary)); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	slog.Info("pool summary exported",
		"pool", summary.PoolID,
		"tokens", len(summary.Tokens),
		"providers", len(summary.TopProviders))
	return nil
}

// BuildSheets lays out a pool summary as spreadsheet tables.
func BuildSheets(summary domain.PoolSummary) []Sheet {
	return []Sheet{
		{Name: SheetOverview, Rows: buildOverview(summary)},
		{Name: SheetTokens, Rows: buildTokens(summary.Tokens)},
		{Name: SheetProviders, Rows: buildProviders(summary.TopProviders)},
	}
}

// buildOverview builds a two-column Field | Value table of pool identity, metrics and fees.
func buildOverview(s domain.PoolSummary) [][]any {
	m := s.Metrics
	data := [][]any{
		{"Field", "Value"},
		{"Pool ID", s.PoolID},
		{"Name", s.PoolName},
		{"Symbol", s.PoolSymbol},
		{"Metapool", s.IsMetapool},
		{"TVL (USD)", toFloat(m.TVL)},
		{"TVL Change", m.TVLChange},
		{"Daily Volume (USD)", toFloat(m.DailyVolume)},
		{"Cumulative Volume (USD)", toFloat(m.CumulativeVolume)},
		{"Supply Side Revenue (USD)", toFloat(m.CumulativeSupplySideRevenue)},
		{"Protocol Revenue (USD)", toFloat(m.CumulativeProtocolRevenue)},
	}
	for _, f := range s.Fees {
		data = append(data, []any{"Fee " + f.Type, toFloat(f.Percentage)})
	}
	return data
}

// buildTokens builds the Tokens sheet.
// Columns: Symbol | Address | Balance | Weight | Price USD | Value USD | Share
func buildTokens(tokens []domain.TokenSummary) [][]any {
	header := []any{"Symbol", "Address", "Balance", "Weight", "Price USD", "Value USD", "Share"}
	rows := lo.Map(tokens, func(t domain.TokenSummary, _ int) []any {
		return []any{
			t.Symbol, t.Address,
			toFloat(t.Balance), toFloat(t.Weight),
			toFloat(t.PriceUSD), toFloat(t.ValueUSD),
			t.ShareOfPool,
		}
	})
	return append([][]any{header}, rows...)
}

// buildProviders builds the Providers sheet, ranked as in the summary.
// Columns: Rank | Address | Net Position USD | Share | Deposited | Withdrawn | Transactions | Last Active
func buildProviders(providers []domain.ProviderSummary) [][]any {
	header := []any{"Rank", "Address", "Net Position USD", "Share", "Deposited", "Withdrawn", "Transactions", "Last Active"}
	rows := lo.Map(providers, func(p domain.ProviderSummary, i int) []any {
		return []any{
			i + 1, p.Address,
			toFloat(p.NetPositionUSD), p.ShareOfPool,
			toFloat(p.TotalDeposited), toFloat(p.TotalWithdrawn),
			p.Transactions, p.LastActive,
		}
	})
	return append([][]any{header}, rows...)
}

func toFloat(s string) float64 {
	f, _ := domain.SafeParse(s).Float64()
	return f
}
