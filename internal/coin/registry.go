package coin

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Registry maps token contracts to coin services on top of a base coin.
type Registry struct {
	base *Service

	mu     sync.RWMutex
	tokens map[common.Address]*Service
}

func NewRegistry(base Coin, tokens ...Coin) *Registry {
	r := &Registry{
		base:   NewService(base),
		tokens: make(map[common.Address]*Service, len(tokens)),
	}
	for _, token := range tokens {
		r.Register(token)
	}
	return r
}

// BaseCoinService returns the chain's native coin service.
func (r *Registry) BaseCoinService() *Service {
	return r.base
}

// CoinService returns the service for the token at contract.
func (r *Registry) CoinService(contract common.Address) (*Service, bool) {
	r.mu.RLock()
	svc, ok := r.tokens[contract]
	r.mu.RUnlock()
	return svc, ok
}

// Register adds or replaces a token.
func (r *Registry) Register(token Coin) {
	r.mu.Lock()
	r.tokens[token.Address] = NewService(token)
	r.mu.Unlock()
}

// Prefetch resolves unknown contracts over RPC and registers them. Lookups
// that fail are logged and skipped, so those contracts stay unresolvable.
func (r *Registry) Prefetch(ctx context.Context, caller ContractCaller, contracts []common.Address, logger *zap.Logger) int {
	if logger == nil {
		logger = zap.NewNop()
	}

	var added int
	for _, contract := range contracts {
		if _, ok := r.CoinService(contract); ok {
			continue
		}
		meta, err := FetchTokenMeta(ctx, caller, contract, logger)
		if err != nil {
			logger.Warn("token metadata fetch failed", zap.String("token", contract.Hex()), zap.Error(err))
			continue
		}
		r.Register(meta.Coin())
		added++
		logger.Debug("token registered", zap.String("token", contract.Hex()), zap.String("code", meta.Symbol))
	}
	return added
}
