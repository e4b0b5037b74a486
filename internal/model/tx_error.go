package model

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/core/vm"
)

var (
	// ErrInsufficientBalanceWithFee means the balance covers the value but not the fee.
	ErrInsufficientBalanceWithFee = errors.New("insufficient balance with fee")
	// ErrExecutionReverted means a gas estimate or call hit a revert.
	ErrExecutionReverted = errors.New("execution reverted")
)

// Node error messages as returned over JSON-RPC by geth-compatible nodes.
const (
	rpcInsufficientFunds = "insufficient funds for gas * price + value"
	rpcExecutionReverted = "execution reverted"
)

// InsufficientBalanceError reports the balance needed to send, in base units.
type InsufficientBalanceError struct {
	Required *big.Int
}

func (e *InsufficientBalanceError) Error() string {
	if e.Required == nil {
		return "insufficient balance"
	}
	return fmt.Sprintf("insufficient balance: required %s", e.Required.String())
}

// ConvertError maps raw node errors onto the typed errors above. Errors it
// does not recognize are returned unchanged.
func ConvertError(err error) error {
	if err == nil {
		return nil
	}

	var balanceErr *InsufficientBalanceError
	if errors.As(err, &balanceErr) ||
		errors.Is(err, ErrInsufficientBalanceWithFee) ||
		errors.Is(err, ErrExecutionReverted) {
		return err
	}
	if errors.Is(err, vm.ErrExecutionReverted) {
		return fmt.Errorf("%w: %v", ErrExecutionReverted, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, rpcInsufficientFunds):
		return fmt.Errorf("%w: %v", ErrInsufficientBalanceWithFee, err)
	case strings.Contains(msg, rpcExecutionReverted):
		return fmt.Errorf("%w: %v", ErrExecutionReverted, err)
	default:
		return err
	}
}
