package model

import "math/big"

// AdditionalInfo carries data the preparation service looked up out of band.
// Empty string fields and nil pointers mean "not supplied".
type AdditionalInfo struct {
	Send *SendInfo
	Swap *SwapInfo
}

// SendInfo enriches a transfer.
type SendInfo struct {
	Domain string
}

// SwapInfo enriches a swap with quote details.
type SwapInfo struct {
	EstimatedOut    *big.Rat
	EstimatedIn     *big.Rat
	Slippage        string
	Deadline        string
	RecipientDomain string
	Price           string
	PriceImpact     string
}

// SendInfo returns the send enrichment, or nil.
func (a *AdditionalInfo) SendInfo() *SendInfo {
	if a == nil {
		return nil
	}
	return a.Send
}

// SwapInfo returns the swap enrichment, or nil.
func (a *AdditionalInfo) SwapInfo() *SwapInfo {
	if a == nil {
		return nil
	}
	return a.Swap
}
