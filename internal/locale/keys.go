package locale

// Message keys used by the confirmation screen.
const (
	KeySendYouSend  = "send.confirmation.you_send"
	KeySendAmount   = "send.confirmation.amount"
	KeySendTo       = "send.confirmation.to"
	KeySendContract = "send.confirmation.contract"
	KeySendMethod   = "send.confirmation.method"

	KeyApproveYouApprove = "approve.confirmation.you_approve"
	KeyApproveAmount     = "approve.confirmation.amount"
	KeyApproveSpender    = "approve.confirmation.spender"

	KeySwapYouPay      = "swap.you_pay"
	KeySwapYouGet      = "swap.you_get"
	KeySwapAmount      = "swap.confirmation.amount"
	KeySwapEstimated   = "swap.confirmation.estimated"
	KeySwapGuaranteed  = "swap.confirmation.guaranteed"
	KeySwapMaximum     = "swap.confirmation.maximum"
	KeySwapSlippage    = "swap.advanced_settings.slippage"
	KeySwapDeadline    = "swap.advanced_settings.deadline"
	KeySwapRecipient   = "swap.advanced_settings.recipient_address"
	KeySwapPrice       = "swap.price"
	KeySwapPriceImpact = "swap.price_impact"

	KeyNotAvailable = "not_available"

	KeyErrInsufficientBalance        = "ethereum_transaction.error.insufficient_balance"
	KeyErrInsufficientBalanceWithFee = "ethereum_transaction.error.insufficient_balance_with_fee"
	KeyErrExecutionReverted          = "ethereum_transaction.error.execution_reverted"
	KeyErrUnknown                    = "error.unknown"
)

// formatKeys take a single %s argument. Messages for every other key are
// literal text.
var formatKeys = map[string]bool{
	KeyErrInsufficientBalance:        true,
	KeyErrInsufficientBalanceWithFee: true,
	KeyErrExecutionReverted:          true,
}

// english is the built-in fallback table; every key has an entry.
var english = map[string]string{
	KeySendYouSend:  "You Send",
	KeySendAmount:   "Amount",
	KeySendTo:       "To",
	KeySendContract: "Contract",
	KeySendMethod:   "Method",

	KeyApproveYouApprove: "You Approve",
	KeyApproveAmount:     "Amount",
	KeyApproveSpender:    "Spender",

	KeySwapYouPay:      "You Pay",
	KeySwapYouGet:      "You Get",
	KeySwapAmount:      "Amount",
	KeySwapEstimated:   "Estimated",
	KeySwapGuaranteed:  "Guaranteed",
	KeySwapMaximum:     "Maximum",
	KeySwapSlippage:    "Slippage",
	KeySwapDeadline:    "Deadline",
	KeySwapRecipient:   "Recipient",
	KeySwapPrice:       "Price",
	KeySwapPriceImpact: "Price Impact",

	KeyNotAvailable: "Not Available",

	KeyErrInsufficientBalance:        "Insufficient balance. You need at least %s to send this transaction.",
	KeyErrInsufficientBalanceWithFee: "Insufficient %s balance to cover the fee.",
	KeyErrExecutionReverted:          "The transaction would revert. Make sure you have enough %s for the fee.",
	KeyErrUnknown:                    "Unknown error",
}
