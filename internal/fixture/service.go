package fixture

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"evmconfirm/internal/model"
	"evmconfirm/internal/observable"
)

// ErrNoSendScripted is the send failure reported when the fixture has no
// send records.
var ErrNoSendScripted = errors.New("fixture has no send events")

// Service plays a Script through the preparation-service channels.
type Service struct {
	script *Script
	own    common.Address
	logger *zap.Logger

	state     *observable.Relay[model.State]
	dataState *observable.Relay[model.DataStatus]
	sendState *observable.Relay[model.SendState]

	wg sync.WaitGroup
}

// NewService starts in the not-ready, loading and idle states.
func NewService(script *Script, own common.Address, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if script == nil {
		script = &Script{}
	}

	return &Service{
		script:    script,
		own:       own,
		logger:    logger,
		state:     observable.NewRelayWith[model.State](model.StateNotReady{}),
		dataState: observable.NewRelayWith[model.DataStatus](model.DataLoading{}),
		sendState: observable.NewRelayWith[model.SendState](model.SendIdle{}),
	}
}

func (s *Service) State() observable.Observable[model.State] {
	return s.state
}

func (s *Service) DataState() observable.Observable[model.DataStatus] {
	return s.dataState
}

func (s *Service) SendState() observable.Observable[model.SendState] {
	return s.sendState
}

func (s *Service) OwnAddress() common.Address {
	return s.own
}

// Replay publishes every scripted step in order. It stops early when ctx is
// cancelled.
func (s *Service) Replay(ctx context.Context) error {
	for i, step := range s.script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if step.State != nil {
			s.state.Accept(step.State)
		}
		if step.DataState != nil {
			s.dataState.Accept(step.DataState)
		}
		s.logger.Debug("fixture step replayed", zap.Int("step", i))
	}
	return nil
}

// Send plays the scripted send events on a separate goroutine.
func (s *Service) Send(logger *zap.Logger) {
	if logger == nil {
		logger = s.logger
	}

	sends := s.script.Sends
	if len(sends) == 0 {
		sends = []model.SendState{model.SendSending{}, model.SendFailed{Err: ErrNoSendScripted}}
	}

	logger.Info("send requested", zap.Int("events", len(sends)))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for _, state := range sends {
			s.sendState.Accept(state)
		}
	}()
}

// Wait blocks until every Send goroutine has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}
