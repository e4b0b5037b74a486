package txview

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"evmconfirm/internal/coin"
	"evmconfirm/internal/locale"
	"evmconfirm/internal/model"
)

// Items renders a decorated transaction. It reports false when the
// decoration kind is not supported or a coin it references cannot be
// resolved; nothing partial is returned in that case.
func (vm *ViewModel) Items(decoration model.Decoration, tx model.TransactionData, info *model.AdditionalInfo) ([]SectionViewItem, bool) {
	switch d := decoration.(type) {
	case model.TransferDecoration:
		return vm.transferItems(d, tx, info)
	case model.ApproveDecoration:
		return vm.approveItems(d, tx)
	case model.SwapDecoration:
		return vm.swapItems(d, info)
	case model.RecognizedMethodDecoration:
		return vm.recognizedMethodItems(d, tx), true
	case model.UnknownMethodDecoration:
		return vm.unknownMethodItems(tx), true
	default:
		return nil, false
	}
}

func (vm *ViewModel) transferItems(d model.TransferDecoration, tx model.TransactionData, info *model.AdditionalInfo) ([]SectionViewItem, bool) {
	svc, ok := vm.coins.CoinService(tx.To)
	if !ok {
		return nil, false
	}

	label := ""
	if send := info.SendInfo(); send != nil {
		label = send.Domain
	}
	if label == "" {
		label = vm.labels.AddressLabel(d.To.Hex())
	}

	return []SectionViewItem{{ViewItems: []ViewItem{
		Subhead{Title: vm.localize(locale.KeySendYouSend), Value: svc.Coin().Title},
		vm.amountItem(locale.KeySendAmount, svc, d.Value, ValueOutgoing),
		Address{Title: vm.localize(locale.KeySendTo), Value: label, ValueTitle: d.To.Hex()},
	}}}, true
}

func (vm *ViewModel) approveItems(d model.ApproveDecoration, tx model.TransactionData) ([]SectionViewItem, bool) {
	svc, ok := vm.coins.CoinService(tx.To)
	if !ok {
		return nil, false
	}

	return []SectionViewItem{{ViewItems: []ViewItem{
		Subhead{Title: vm.localize(locale.KeyApproveYouApprove), Value: svc.Coin().Title},
		vm.amountItem(locale.KeyApproveAmount, svc, d.Value, ValueRegular),
		vm.labeledAddressItem(locale.KeyApproveSpender, d.Spender),
	}}}, true
}

func (vm *ViewModel) swapItems(d model.SwapDecoration, info *model.AdditionalInfo) ([]SectionViewItem, bool) {
	svcIn, ok := vm.tokenCoinService(d.TokenIn)
	if !ok {
		return nil, false
	}
	svcOut, ok := vm.tokenCoinService(d.TokenOut)
	if !ok {
		return nil, false
	}

	swap := info.SwapInfo()
	if swap == nil {
		swap = &model.SwapInfo{}
	}

	var inItems, outItems []ViewItem
	switch trade := d.Trade.(type) {
	case model.ExactIn:
		inItems = []ViewItem{
			Subhead{Title: vm.localize(locale.KeySwapYouPay), Value: svcIn.Coin().Title},
			vm.amountItem(locale.KeySwapAmount, svcIn, trade.AmountIn, ValueOutgoing),
		}
		outItems = []ViewItem{
			Subhead{Title: vm.localize(locale.KeySwapYouGet), Value: svcOut.Coin().Title},
			vm.estimatedAmountItem(locale.KeySwapEstimated, svcOut, swap.EstimatedOut, ValueIncoming),
			vm.amountItem(locale.KeySwapGuaranteed, svcOut, trade.AmountOutMin, ValueRegular),
		}
	case model.ExactOut:
		inItems = []ViewItem{
			Subhead{Title: vm.localize(locale.KeySwapYouPay), Value: svcIn.Coin().Title},
			vm.estimatedAmountItem(locale.KeySwapEstimated, svcIn, swap.EstimatedIn, ValueOutgoing),
			vm.amountItem(locale.KeySwapMaximum, svcIn, trade.AmountInMax, ValueRegular),
		}
		outItems = []ViewItem{
			Subhead{Title: vm.localize(locale.KeySwapYouGet), Value: svcOut.Coin().Title},
			vm.amountItem(locale.KeySwapAmount, svcOut, trade.AmountOut, ValueIncoming),
		}
	default:
		return nil, false
	}

	sections := []SectionViewItem{{ViewItems: inItems}, {ViewItems: outItems}}

	var other []ViewItem
	if swap.Slippage != "" {
		other = append(other, Value{Title: vm.localize(locale.KeySwapSlippage), Value: swap.Slippage, Type: ValueRegular})
	}
	if swap.Deadline != "" {
		other = append(other, Value{Title: vm.localize(locale.KeySwapDeadline), Value: swap.Deadline, Type: ValueRegular})
	}
	if d.To != vm.service.OwnAddress() {
		label := swap.RecipientDomain
		if label == "" {
			label = vm.labels.AddressLabel(d.To.Hex())
		}
		other = append(other, Address{Title: vm.localize(locale.KeySwapRecipient), Value: label, ValueTitle: d.To.Hex()})
	}
	if swap.Price != "" {
		other = append(other, Value{Title: vm.localize(locale.KeySwapPrice), Value: swap.Price, Type: ValueRegular})
	}
	if swap.PriceImpact != "" {
		other = append(other, Value{Title: vm.localize(locale.KeySwapPriceImpact), Value: swap.PriceImpact, Type: ValueRegular})
	}
	if len(other) > 0 {
		sections = append(sections, SectionViewItem{ViewItems: other})
	}

	return sections, true
}

func (vm *ViewModel) recognizedMethodItems(d model.RecognizedMethodDecoration, tx model.TransactionData) []SectionViewItem {
	to := tx.To.Hex()
	return []SectionViewItem{{ViewItems: []ViewItem{
		vm.amountItem(locale.KeySendAmount, vm.coins.BaseCoinService(), tx.Value, ValueOutgoing),
		Address{Title: vm.localize(locale.KeySendContract), Value: to, ValueTitle: to},
		Value{Title: vm.localize(locale.KeySendMethod), Value: d.Method, Type: ValueRegular},
		Input{Value: hexutil.Encode(tx.Input)},
	}}}
}

func (vm *ViewModel) unknownMethodItems(tx model.TransactionData) []SectionViewItem {
	return vm.fallbackItems(tx)
}

// fallbackItems renders a transaction nothing was decoded for.
func (vm *ViewModel) fallbackItems(tx model.TransactionData) []SectionViewItem {
	return []SectionViewItem{{ViewItems: []ViewItem{
		vm.amountItem(locale.KeySendAmount, vm.coins.BaseCoinService(), tx.Value, ValueOutgoing),
		vm.labeledAddressItem(locale.KeySendTo, tx.To),
		Input{Value: hexutil.Encode(tx.Input)},
	}}}
}

func (vm *ViewModel) tokenCoinService(token model.Token) (*coin.Service, bool) {
	switch t := token.(type) {
	case model.NativeToken:
		return vm.coins.BaseCoinService(), true
	case model.EIP20Token:
		return vm.coins.CoinService(t.Address)
	default:
		return nil, false
	}
}

func (vm *ViewModel) amountItem(titleKey string, svc *coin.Service, value *big.Int, typ ValueType) Value {
	return Value{Title: vm.localize(titleKey), Value: svc.FormatAmount(value), Type: typ}
}

// estimatedAmountItem shows a quote estimate, or a disabled placeholder when
// the service supplied none.
func (vm *ViewModel) estimatedAmountItem(titleKey string, svc *coin.Service, value *big.Rat, typ ValueType) Value {
	if value == nil {
		return Value{Title: vm.localize(titleKey), Value: vm.localize(locale.KeyNotAvailable), Type: ValueDisabled}
	}
	return Value{Title: vm.localize(titleKey), Value: svc.FormatDecimal(value), Type: typ}
}

func (vm *ViewModel) labeledAddressItem(titleKey string, addr common.Address) Address {
	return Address{Title: vm.localize(titleKey), Value: vm.labels.AddressLabel(addr.Hex()), ValueTitle: addr.Hex()}
}

func (vm *ViewModel) localize(key string, args ...any) string {
	return vm.localizer.Localize(key, args...)
}
