package txview

import (
	"errors"
	"fmt"

	"evmconfirm/internal/locale"
	"evmconfirm/internal/model"
)

// FormatError renders err for display. The result is never empty.
func (vm *ViewModel) FormatError(err error) string {
	if err == nil {
		return vm.localize(locale.KeyErrUnknown)
	}

	err = model.ConvertError(err)
	base := vm.coins.BaseCoinService()

	var balanceErr *model.InsufficientBalanceError
	switch {
	case errors.As(err, &balanceErr):
		return vm.localize(locale.KeyErrInsufficientBalance, base.FormatAmount(balanceErr.Required))
	case errors.Is(err, model.ErrInsufficientBalanceWithFee):
		return vm.localize(locale.KeyErrInsufficientBalanceWithFee, base.Coin().Code)
	case errors.Is(err, model.ErrExecutionReverted):
		return vm.localize(locale.KeyErrExecutionReverted, base.Coin().Code)
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return typeName(err)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
