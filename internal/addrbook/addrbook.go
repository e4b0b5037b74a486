// Package addrbook labels addresses with human-readable names.
package addrbook

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Book is a static address → label table.
type Book struct {
	mu     sync.RWMutex
	labels map[common.Address]string
}

func New() *Book {
	return &Book{labels: make(map[common.Address]string)}
}

// FromMap builds a book from hex address keys.
func FromMap(labels map[string]string) (*Book, error) {
	b := New()
	for addr, label := range labels {
		addr = strings.TrimSpace(addr)
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid address: %s", addr)
		}
		b.Set(common.HexToAddress(addr), label)
	}
	return b, nil
}

func (b *Book) Set(addr common.Address, label string) {
	b.mu.Lock()
	b.labels[addr] = strings.TrimSpace(label)
	b.mu.Unlock()
}

// AddressLabel returns the label for a hex address, or the address itself in
// EIP-55 form when it has none.
func (b *Book) AddressLabel(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	addr := common.HexToAddress(address)

	b.mu.RLock()
	label, ok := b.labels[addr]
	b.mu.RUnlock()
	if ok && label != "" {
		return label
	}
	return addr.Hex()
}
