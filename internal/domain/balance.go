package domain

import (
	"log/slog"
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// NormalizeBalance converts a raw on-chain balance in smallest units into a token amount
// by dividing by 10^decimals. The division truncates toward zero, so any sub-unit remainder
// is dropped. Returns "0" when either input cannot be parsed.
func NormalizeBalance(raw, decimals string) string {
	exp, err := strconv.Atoi(decimals)
	if err != nil || exp < 0 || exp > math.MaxInt32 {
		slog.Debug("invalid token decimals, using zero balance", "decimals", decimals, "balance", raw)
		return "0"
	}

	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		slog.Debug("invalid raw balance, using zero balance", "balance", raw)
		return "0"
	}

	return decimal.NewFromBigInt(n, -int32(exp)).Truncate(0).String()
}
