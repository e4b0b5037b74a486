// Package fixture replays scripted preparation-service events from JSONL.
package fixture

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"evmconfirm/internal/model"
)

// Event kinds.
const (
	KindState = "state"
	KindData  = "data"
	KindSend  = "send"
)

// Record is one JSONL line. Kind selects which other fields apply.
type Record struct {
	Kind string `json:"kind"`

	// state
	Ready  bool          `json:"ready,omitempty"`
	Errors []ErrorRecord `json:"errors,omitempty"`

	// data and send
	Status string       `json:"status,omitempty"`
	Error  *ErrorRecord `json:"error,omitempty"`

	// data
	Tx             *TxRecord             `json:"tx,omitempty"`
	Decoration     *DecorationRecord     `json:"decoration,omitempty"`
	AdditionalInfo *AdditionalInfoRecord `json:"additional_info,omitempty"`

	// send
	Hash string `json:"hash,omitempty"`
}

// ErrorRecord is a typed service error or a raw node message.
type ErrorRecord struct {
	Type     string `json:"type,omitempty"`
	Required string `json:"required,omitempty"`
	Message  string `json:"message,omitempty"`
}

type TxRecord struct {
	To    string `json:"to"`
	Value string `json:"value,omitempty"`
	Input string `json:"input,omitempty"`
}

// DecorationRecord carries one decoration. Amounts are base-unit integers,
// decimal or 0x-prefixed hex. Tokens are "native" or a contract address.
type DecorationRecord struct {
	Type string `json:"type"`

	To      string `json:"to,omitempty"`
	Value   string `json:"value,omitempty"`
	Spender string `json:"spender,omitempty"`

	Trade    *TradeRecord `json:"trade,omitempty"`
	TokenIn  string       `json:"token_in,omitempty"`
	TokenOut string       `json:"token_out,omitempty"`
	Deadline string       `json:"deadline,omitempty"`

	Method    string `json:"method,omitempty"`
	Arguments []any  `json:"arguments,omitempty"`
}

type TradeRecord struct {
	Type         string `json:"type"`
	AmountIn     string `json:"amount_in,omitempty"`
	AmountOutMin string `json:"amount_out_min,omitempty"`
	AmountOut    string `json:"amount_out,omitempty"`
	AmountInMax  string `json:"amount_in_max,omitempty"`
}

type AdditionalInfoRecord struct {
	Send *SendInfoRecord `json:"send,omitempty"`
	Swap *SwapInfoRecord `json:"swap,omitempty"`
}

type SendInfoRecord struct {
	Domain string `json:"domain,omitempty"`
}

// SwapInfoRecord estimates are decimal amounts already scaled to the coin.
type SwapInfoRecord struct {
	EstimatedOut    string `json:"estimated_out,omitempty"`
	EstimatedIn     string `json:"estimated_in,omitempty"`
	Slippage        string `json:"slippage,omitempty"`
	Deadline        string `json:"deadline,omitempty"`
	RecipientDomain string `json:"recipient_domain,omitempty"`
	Price           string `json:"price,omitempty"`
	PriceImpact     string `json:"price_impact,omitempty"`
}

// State converts a state record.
func (r Record) State() (model.State, error) {
	if r.Ready {
		return model.StateReady{}, nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, rec := range r.Errors {
		err, convErr := rec.toError()
		if convErr != nil {
			return nil, convErr
		}
		errs = append(errs, err)
	}
	return model.StateNotReady{Errors: errs}, nil
}

// DataStatus converts a data record.
func (r Record) DataStatus() (model.DataStatus, error) {
	switch r.Status {
	case "loading":
		return model.DataLoading{}, nil
	case "failed":
		err, convErr := r.Error.toError()
		if convErr != nil {
			return nil, convErr
		}
		return model.DataFailed{Err: err}, nil
	case "completed", "":
	default:
		return nil, fmt.Errorf("unknown data status: %s", r.Status)
	}

	var data model.DataState
	if r.Tx != nil {
		tx, err := r.Tx.toModel()
		if err != nil {
			return nil, err
		}
		data.TransactionData = &tx
	}
	if r.Decoration != nil {
		decoration, err := r.Decoration.toModel()
		if err != nil {
			return nil, err
		}
		data.Decoration = decoration
	}
	if r.AdditionalInfo != nil {
		info, err := r.AdditionalInfo.toModel()
		if err != nil {
			return nil, err
		}
		data.AdditionalInfo = info
	}
	return model.DataCompleted{Data: data}, nil
}

// SendState converts a send record.
func (r Record) SendState() (model.SendState, error) {
	switch r.Status {
	case "idle":
		return model.SendIdle{}, nil
	case "sending":
		return model.SendSending{}, nil
	case "sent":
		data, err := hexutil.Decode(r.Hash)
		if err != nil || len(data) != common.HashLength {
			return nil, fmt.Errorf("invalid tx hash: %s", r.Hash)
		}
		return model.SendSent{Hash: common.BytesToHash(data)}, nil
	case "failed":
		err, convErr := r.Error.toError()
		if convErr != nil {
			return nil, convErr
		}
		return model.SendFailed{Err: err}, nil
	default:
		return nil, fmt.Errorf("unknown send status: %s", r.Status)
	}
}

func (e *ErrorRecord) toError() (error, error) {
	if e == nil {
		return errors.New("unspecified error"), nil
	}
	switch e.Type {
	case "insufficient_balance":
		required, err := parseOptionalBigInt(e.Required)
		if err != nil {
			return nil, fmt.Errorf("parse required: %w", err)
		}
		return &model.InsufficientBalanceError{Required: required}, nil
	case "insufficient_balance_with_fee":
		return model.ErrInsufficientBalanceWithFee, nil
	case "execution_reverted":
		return model.ErrExecutionReverted, nil
	case "":
		return errors.New(e.Message), nil
	default:
		return nil, fmt.Errorf("unknown error type: %s", e.Type)
	}
}

func (t *TxRecord) toModel() (model.TransactionData, error) {
	to, err := parseAddress(t.To)
	if err != nil {
		return model.TransactionData{}, fmt.Errorf("tx to: %w", err)
	}
	value, err := parseOptionalBigInt(t.Value)
	if err != nil {
		return model.TransactionData{}, fmt.Errorf("tx value: %w", err)
	}
	if value == nil {
		value = new(big.Int)
	}
	var input []byte
	if t.Input != "" {
		input, err = hexutil.Decode(t.Input)
		if err != nil {
			return model.TransactionData{}, fmt.Errorf("tx input: %w", err)
		}
	}
	return model.TransactionData{To: to, Value: value, Input: input}, nil
}

func (d *DecorationRecord) toModel() (model.Decoration, error) {
	switch d.Type {
	case "transfer":
		to, err := parseAddress(d.To)
		if err != nil {
			return nil, fmt.Errorf("transfer to: %w", err)
		}
		value, err := parseBigInt(d.Value)
		if err != nil {
			return nil, fmt.Errorf("transfer value: %w", err)
		}
		return model.TransferDecoration{To: to, Value: value}, nil
	case "approve":
		spender, err := parseAddress(d.Spender)
		if err != nil {
			return nil, fmt.Errorf("approve spender: %w", err)
		}
		value, err := parseBigInt(d.Value)
		if err != nil {
			return nil, fmt.Errorf("approve value: %w", err)
		}
		return model.ApproveDecoration{Spender: spender, Value: value}, nil
	case "swap":
		return d.swap()
	case "method":
		if d.Method == "" {
			return nil, fmt.Errorf("method name is required")
		}
		return model.RecognizedMethodDecoration{Method: d.Method, Arguments: d.Arguments}, nil
	case "unknown":
		return model.UnknownMethodDecoration{}, nil
	default:
		return nil, fmt.Errorf("unknown decoration type: %s", d.Type)
	}
}

func (d *DecorationRecord) swap() (model.Decoration, error) {
	if d.Trade == nil {
		return nil, fmt.Errorf("swap trade is required")
	}
	trade, err := d.Trade.toModel()
	if err != nil {
		return nil, err
	}
	tokenIn, err := parseToken(d.TokenIn)
	if err != nil {
		return nil, fmt.Errorf("swap token_in: %w", err)
	}
	tokenOut, err := parseToken(d.TokenOut)
	if err != nil {
		return nil, fmt.Errorf("swap token_out: %w", err)
	}
	to, err := parseAddress(d.To)
	if err != nil {
		return nil, fmt.Errorf("swap to: %w", err)
	}
	deadline, err := parseOptionalBigInt(d.Deadline)
	if err != nil {
		return nil, fmt.Errorf("swap deadline: %w", err)
	}
	return model.SwapDecoration{
		Trade:    trade,
		TokenIn:  tokenIn,
		TokenOut: tokenOut,
		To:       to,
		Deadline: deadline,
	}, nil
}

func (t *TradeRecord) toModel() (model.Trade, error) {
	switch t.Type {
	case "exact_in":
		in, err := parseBigInt(t.AmountIn)
		if err != nil {
			return nil, fmt.Errorf("amount_in: %w", err)
		}
		outMin, err := parseBigInt(t.AmountOutMin)
		if err != nil {
			return nil, fmt.Errorf("amount_out_min: %w", err)
		}
		return model.ExactIn{AmountIn: in, AmountOutMin: outMin}, nil
	case "exact_out":
		out, err := parseBigInt(t.AmountOut)
		if err != nil {
			return nil, fmt.Errorf("amount_out: %w", err)
		}
		inMax, err := parseBigInt(t.AmountInMax)
		if err != nil {
			return nil, fmt.Errorf("amount_in_max: %w", err)
		}
		return model.ExactOut{AmountOut: out, AmountInMax: inMax}, nil
	default:
		return nil, fmt.Errorf("unknown trade type: %s", t.Type)
	}
}

func (a *AdditionalInfoRecord) toModel() (*model.AdditionalInfo, error) {
	info := &model.AdditionalInfo{}
	if a.Send != nil {
		info.Send = &model.SendInfo{Domain: a.Send.Domain}
	}
	if s := a.Swap; s != nil {
		estimatedOut, err := parseOptionalRat(s.EstimatedOut)
		if err != nil {
			return nil, fmt.Errorf("estimated_out: %w", err)
		}
		estimatedIn, err := parseOptionalRat(s.EstimatedIn)
		if err != nil {
			return nil, fmt.Errorf("estimated_in: %w", err)
		}
		info.Swap = &model.SwapInfo{
			EstimatedOut:    estimatedOut,
			EstimatedIn:     estimatedIn,
			Slippage:        s.Slippage,
			Deadline:        s.Deadline,
			RecipientDomain: s.RecipientDomain,
			Price:           s.Price,
			PriceImpact:     s.PriceImpact,
		}
	}
	return info, nil
}

func parseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid address: %q", input)
	}
	return common.HexToAddress(input), nil
}

func parseToken(input string) (model.Token, error) {
	if strings.EqualFold(strings.TrimSpace(input), "native") {
		return model.NativeToken{}, nil
	}
	addr, err := parseAddress(input)
	if err != nil {
		return nil, err
	}
	return model.EIP20Token{Address: addr}, nil
}

func parseBigInt(input string) (*big.Int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty value")
	}
	if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
		return hexutil.DecodeBig(input)
	}
	value, ok := new(big.Int).SetString(input, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer: %q", input)
	}
	return value, nil
}

func parseOptionalBigInt(input string) (*big.Int, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	return parseBigInt(input)
}

func parseOptionalRat(input string) (*big.Rat, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(input)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal: %q", input)
	}
	return value.Rat(), nil
}
