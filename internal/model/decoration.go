package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TransactionData is the raw call a decoration was derived from.
type TransactionData struct {
	To    common.Address
	Value *big.Int
	Input []byte
}

// Decoration classifies a transaction's calldata into a known method shape.
// The set of variants is closed.
type Decoration interface {
	decoration()
}

// TransferDecoration is an ERC20 transfer(to, value) on the contract at TransactionData.To.
type TransferDecoration struct {
	To    common.Address
	Value *big.Int
}

// ApproveDecoration is an ERC20 approve(spender, value).
type ApproveDecoration struct {
	Spender common.Address
	Value   *big.Int
}

// SwapDecoration is a DEX router swap.
type SwapDecoration struct {
	Trade    Trade
	TokenIn  Token
	TokenOut Token
	To       common.Address
	Deadline *big.Int
}

// RecognizedMethodDecoration is a call whose method signature is known but
// has no dedicated layout.
type RecognizedMethodDecoration struct {
	Method    string
	Arguments []any
}

// UnknownMethodDecoration is a call nothing could be inferred about.
type UnknownMethodDecoration struct{}

func (TransferDecoration) decoration()         {}
func (ApproveDecoration) decoration()          {}
func (SwapDecoration) decoration()             {}
func (RecognizedMethodDecoration) decoration() {}
func (UnknownMethodDecoration) decoration()    {}

// Trade is the amount side of a swap: ExactIn or ExactOut.
type Trade interface {
	trade()
}

// ExactIn spends exactly AmountIn and receives at least AmountOutMin.
type ExactIn struct {
	AmountIn     *big.Int
	AmountOutMin *big.Int
}

// ExactOut receives exactly AmountOut and spends at most AmountInMax.
type ExactOut struct {
	AmountOut   *big.Int
	AmountInMax *big.Int
}

func (ExactIn) trade()  {}
func (ExactOut) trade() {}

// Token is one leg of a swap: the chain's native coin or an EIP20 token.
type Token interface {
	token()
}

// NativeToken is the chain's base coin.
type NativeToken struct{}

// EIP20Token is a token contract.
type EIP20Token struct {
	Address common.Address
}

func (NativeToken) token() {}
func (EIP20Token) token()  {}
