// Package coin renders amounts for the base coin and known tokens and maps
// token contracts to their coin.
package coin

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Coin describes one coin. Address is zero for the base coin.
type Coin struct {
	Address  common.Address
	Code     string
	Title    string
	Decimals uint8
}

// Service formats amounts of a single coin.
type Service struct {
	coin Coin
}

func NewService(c Coin) *Service {
	return &Service{coin: c}
}

func (s *Service) Coin() Coin {
	return s.coin
}

// FormatAmount renders a base-unit amount as "1.5 CODE".
func (s *Service) FormatAmount(value *big.Int) string {
	return s.withCode(formatUnits(value, s.coin.Decimals))
}

// FormatDecimal renders an already-scaled amount as "1.5 CODE", rounded to
// the coin's decimals.
func (s *Service) FormatDecimal(value *big.Rat) string {
	if value == nil {
		return s.withCode("0")
	}
	return s.withCode(trimFraction(value.FloatString(int(s.coin.Decimals))))
}

func (s *Service) withCode(amount string) string {
	if s.coin.Code == "" {
		return amount
	}
	return amount + " " + s.coin.Code
}

func formatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	if decimals == 0 {
		return value.String()
	}
	sign := value.Sign()
	abs := new(big.Int).Abs(value)
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	rat := new(big.Rat).SetFrac(abs, denom)
	text := trimFraction(rat.FloatString(int(decimals)))
	if sign < 0 {
		return "-" + text
	}
	return text
}

func trimFraction(text string) string {
	if !strings.Contains(text, ".") {
		return text
	}
	text = strings.TrimRight(text, "0")
	return strings.TrimSuffix(text, ".")
}
