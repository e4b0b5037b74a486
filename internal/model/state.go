package model

import "github.com/ethereum/go-ethereum/common"

// State is the preparation service's readiness.
type State interface {
	state()
}

// StateReady means the transaction can be sent.
type StateReady struct{}

// StateNotReady lists what currently blocks sending.
type StateNotReady struct {
	Errors []error
}

func (StateReady) state()    {}
func (StateNotReady) state() {}

// DataState is the decoded transaction snapshot.
type DataState struct {
	TransactionData *TransactionData
	Decoration      Decoration
	AdditionalInfo  *AdditionalInfo
}

// DataStatus is the load/error/success envelope around DataState.
type DataStatus interface {
	dataStatus()
}

// DataLoading means decoding is in progress.
type DataLoading struct{}

// DataFailed means the service could not prepare the data.
type DataFailed struct {
	Err error
}

// DataCompleted holds a prepared snapshot.
type DataCompleted struct {
	Data DataState
}

func (DataLoading) dataStatus()   {}
func (DataFailed) dataStatus()    {}
func (DataCompleted) dataStatus() {}

// SendState is the send lifecycle.
type SendState interface {
	sendState()
}

// SendIdle means nothing has been sent.
type SendIdle struct{}

// SendSending means a send is in flight.
type SendSending struct{}

// SendSent means the transaction was broadcast.
type SendSent struct {
	Hash common.Hash
}

// SendFailed means the send attempt failed.
type SendFailed struct {
	Err error
}

func (SendIdle) sendState()    {}
func (SendSending) sendState() {}
func (SendSent) sendState()    {}
func (SendFailed) sendState()  {}
