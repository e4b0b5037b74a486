package model

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/stretchr/testify/require"
)

func TestConvertError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"node insufficient funds", errors.New("insufficient funds for gas * price + value: address 0x1 have 1 want 2"), ErrInsufficientBalanceWithFee},
		{"node revert message", errors.New("execution reverted: TransferHelper: TRANSFER_FROM_FAILED"), ErrExecutionReverted},
		{"vm revert", fmt.Errorf("estimate gas: %w", vm.ErrExecutionReverted), ErrExecutionReverted},
		{"already typed", ErrExecutionReverted, ErrExecutionReverted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, ConvertError(tt.err), tt.want)
		})
	}
}

func TestConvertErrorPassThrough(t *testing.T) {
	require.Nil(t, ConvertError(nil))

	plain := errors.New("nonce too low")
	require.Equal(t, plain, ConvertError(plain))

	balance := &InsufficientBalanceError{Required: big.NewInt(100)}
	var got *InsufficientBalanceError
	require.ErrorAs(t, ConvertError(balance), &got)
	require.Equal(t, "100", got.Required.String())
}

func TestInsufficientBalanceErrorMessage(t *testing.T) {
	require.Equal(t, "insufficient balance", (&InsufficientBalanceError{}).Error())
	require.Equal(t, "insufficient balance: required 42", (&InsufficientBalanceError{Required: big.NewInt(42)}).Error())
}
