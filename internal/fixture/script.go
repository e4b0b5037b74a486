package fixture

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"

	"evmconfirm/internal/model"
)

// Step is one scripted update on the state or data channel.
type Step struct {
	State     model.State
	DataState model.DataStatus
}

// Script is a decoded fixture. Steps replay in file order; Sends are held
// until the service is asked to send.
type Script struct {
	Steps []Step
	Sends []model.SendState
}

// LoadFile reads a fixture from path.
func LoadFile(path string) (*Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer file.Close()

	return Load(file)
}

// Load decodes JSONL records. Blank lines are skipped.
func Load(r io.Reader) (*Script, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	script := &Script{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("line %d: decode record: %w", lineNo, err)
		}
		if err := script.add(record); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan fixture: %w", err)
	}

	return script, nil
}

func (s *Script) add(record Record) error {
	switch record.Kind {
	case KindState:
		state, err := record.State()
		if err != nil {
			return err
		}
		s.Steps = append(s.Steps, Step{State: state})
	case KindData:
		status, err := record.DataStatus()
		if err != nil {
			return err
		}
		s.Steps = append(s.Steps, Step{DataState: status})
	case KindSend:
		state, err := record.SendState()
		if err != nil {
			return err
		}
		s.Sends = append(s.Sends, state)
	default:
		return fmt.Errorf("unknown record kind: %q", record.Kind)
	}
	return nil
}

// TokenContracts lists the token contracts the script's decorations need a
// coin for, without duplicates and in first-seen order.
func (s *Script) TokenContracts() []common.Address {
	seen := make(map[common.Address]struct{})
	var out []common.Address
	add := func(addr common.Address) {
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}

	for _, step := range s.Steps {
		completed, ok := step.DataState.(model.DataCompleted)
		if !ok {
			continue
		}
		data := completed.Data
		switch d := data.Decoration.(type) {
		case model.TransferDecoration, model.ApproveDecoration:
			if data.TransactionData != nil {
				add(data.TransactionData.To)
			}
		case model.SwapDecoration:
			for _, token := range []model.Token{d.TokenIn, d.TokenOut} {
				if eip20, ok := token.(model.EIP20Token); ok {
					add(eip20.Address)
				}
			}
		}
	}
	return out
}
