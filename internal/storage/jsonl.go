package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrFrameOrder is returned when a batch holds a frame without a run id or
// one whose sequence number does not advance its run.
var ErrFrameOrder = errors.New("frame out of order")

// JsonlStorage appends frames to a JSONL file. A batch is checked and encoded
// as a whole before anything touches the file, so a rejected batch leaves it
// unchanged.
type JsonlStorage struct {
	path string

	mu      sync.Mutex
	lastSeq map[string]int
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path, lastSeq: make(map[string]int)}
}

// PutFrameBatch appends frames as JSON lines. Within a run, sequence numbers
// must strictly increase across calls.
func (s *JsonlStorage) PutFrameBatch(frames []Frame) error {
	if len(frames) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	advanced, err := s.checkOrder(frames)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, frame := range frames {
		if err := enc.Encode(frame); err != nil {
			return fmt.Errorf("encode frame %s#%d: %w", frame.RunID, frame.Seq, err)
		}
	}

	if err := s.append(buf.Bytes()); err != nil {
		return err
	}
	for run, seq := range advanced {
		s.lastSeq[run] = seq
	}
	return nil
}

// LastSeq reports the highest sequence number written for a run.
func (s *JsonlStorage) LastSeq(runID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeq[runID]
}

func (s *JsonlStorage) checkOrder(frames []Frame) (map[string]int, error) {
	advanced := make(map[string]int)
	for _, frame := range frames {
		if frame.RunID == "" {
			return nil, fmt.Errorf("%w: frame %d has no run id", ErrFrameOrder, frame.Seq)
		}
		last, ok := advanced[frame.RunID]
		if !ok {
			last = s.lastSeq[frame.RunID]
		}
		if frame.Seq <= last {
			return nil, fmt.Errorf("%w: run %s seq %d after %d", ErrFrameOrder, frame.RunID, frame.Seq, last)
		}
		advanced[frame.RunID] = frame.Seq
	}
	return advanced, nil
}

func (s *JsonlStorage) append(data []byte) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("write frames: %w", err)
	}
	return file.Close()
}
