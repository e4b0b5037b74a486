// Package txview turns a prepared EVM transaction into confirmation-screen
// rows and keeps them in sync with the preparation service.
package txview

import (
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"evmconfirm/internal/coin"
	"evmconfirm/internal/model"
	"evmconfirm/internal/observable"
)

// TransactionService prepares and sends the transaction being confirmed.
type TransactionService interface {
	State() observable.Observable[model.State]
	DataState() observable.Observable[model.DataStatus]
	SendState() observable.Observable[model.SendState]
	Send(logger *zap.Logger)
	OwnAddress() common.Address
}

// CoinFactory resolves coin services for the base coin and token contracts.
type CoinFactory interface {
	BaseCoinService() *coin.Service
	CoinService(contract common.Address) (*coin.Service, bool)
}

// AddressLabeler names addresses.
type AddressLabeler interface {
	AddressLabel(address string) string
}

// Localizer resolves message keys.
type Localizer interface {
	Localize(key string, args ...any) string
}

// SendEventKind identifies a send lifecycle event.
type SendEventKind uint8

const (
	SendEventSending SendEventKind = iota
	SendEventSuccess
	SendEventFailed
)

func (k SendEventKind) String() string {
	switch k {
	case SendEventSending:
		return "sending"
	case SendEventSuccess:
		return "success"
	case SendEventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SendEvent is emitted once per send lifecycle transition. Hash is set for
// SendEventSuccess, Message for SendEventFailed.
type SendEvent struct {
	Kind    SendEventKind
	Hash    common.Hash
	Message string
}

// ViewModel mirrors the preparation service into display state.
type ViewModel struct {
	service   TransactionService
	coins     CoinFactory
	labels    AddressLabeler
	localizer Localizer
	logger    *zap.Logger

	sendEnabled *observable.Relay[bool]
	errorText   *observable.Relay[string]
	sections    *observable.Relay[[]SectionViewItem]
	events      *observable.Signal[SendEvent]

	bag *observable.DisposeBag
}

// New subscribes to the service. The current values of the service's
// channels are applied before New returns.
func New(service TransactionService, coins CoinFactory, labels AddressLabeler, localizer Localizer, logger *zap.Logger) *ViewModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	vm := &ViewModel{
		service:     service,
		coins:       coins,
		labels:      labels,
		localizer:   localizer,
		logger:      logger,
		sendEnabled: observable.NewRelayWith(false),
		errorText:   observable.NewRelayWith(""),
		sections:    observable.NewRelay[[]SectionViewItem](),
		events:      observable.NewSignal[SendEvent](),
		bag:         observable.NewDisposeBag(),
	}

	vm.bag.Add(service.State().Subscribe(vm.syncState))
	vm.bag.Add(service.DataState().Subscribe(vm.syncDataState))
	vm.bag.Add(service.SendState().Subscribe(vm.syncSendState))

	return vm
}

// SendEnabled reports whether the send button is active.
func (vm *ViewModel) SendEnabled() observable.Observable[bool] {
	return vm.sendEnabled
}

// ErrorText is the readiness error to display. Empty means none.
func (vm *ViewModel) ErrorText() observable.Observable[string] {
	return vm.errorText
}

// Sections is the latest rendered screen.
func (vm *ViewModel) Sections() observable.Observable[[]SectionViewItem] {
	return vm.sections
}

// Events delivers send lifecycle events. It does not replay.
func (vm *ViewModel) Events() observable.Observable[SendEvent] {
	return vm.events
}

// Send asks the service to send. The outcome arrives through Events.
func (vm *ViewModel) Send(logger *zap.Logger) {
	if logger == nil {
		logger = vm.logger
	}
	vm.service.Send(logger)
}

// Close releases all subscriptions to the service.
func (vm *ViewModel) Close() {
	vm.bag.Dispose()
}

func (vm *ViewModel) syncState(state model.State) {
	switch s := state.(type) {
	case model.StateReady:
		vm.sendEnabled.Accept(true)
		vm.errorText.Accept("")
	case model.StateNotReady:
		vm.sendEnabled.Accept(false)
		if len(s.Errors) == 0 {
			vm.errorText.Accept("")
			return
		}
		vm.errorText.Accept(vm.FormatError(s.Errors[0]))
	default:
		vm.logger.Warn("unexpected state", zap.String("type", typeName(state)))
	}
}

func (vm *ViewModel) syncDataState(status model.DataStatus) {
	completed, ok := status.(model.DataCompleted)
	if !ok {
		if failed, isFailed := status.(model.DataFailed); isFailed {
			vm.logger.Debug("data state failed", zap.Error(failed.Err))
		}
		return
	}

	data := completed.Data
	switch {
	case data.Decoration != nil && data.TransactionData != nil:
		sections, ok := vm.Items(data.Decoration, *data.TransactionData, data.AdditionalInfo)
		if !ok {
			vm.logger.Debug("decoration not rendered", zap.String("decoration", typeName(data.Decoration)))
			return
		}
		vm.sections.Accept(sections)
	case data.TransactionData != nil:
		vm.sections.Accept(vm.fallbackItems(*data.TransactionData))
	}
}

func (vm *ViewModel) syncSendState(state model.SendState) {
	switch s := state.(type) {
	case model.SendIdle:
	case model.SendSending:
		vm.sendEnabled.Accept(false)
		vm.events.Emit(SendEvent{Kind: SendEventSending})
	case model.SendSent:
		vm.logger.Info("transaction sent", zap.String("hash", s.Hash.Hex()))
		vm.events.Emit(SendEvent{Kind: SendEventSuccess, Hash: s.Hash})
	case model.SendFailed:
		vm.logger.Warn("send failed", zap.Error(s.Err))
		vm.events.Emit(SendEvent{Kind: SendEventFailed, Message: vm.FormatError(s.Err)})
	default:
		vm.logger.Warn("unexpected send state", zap.String("type", typeName(state)))
	}
}
