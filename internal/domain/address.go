package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NormalizePoolAddress validates a pool contract address and returns it in the
// lower-case hex form the indexer uses for entity IDs.
func NormalizePoolAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", ErrMissingParameter
	}
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q is not a hex address", ErrMissingParameter, address)
	}
	return strings.ToLower(common.HexToAddress(address).Hex()), nil
}
