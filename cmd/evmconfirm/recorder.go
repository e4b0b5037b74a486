package main

import (
	"context"
	"reflect"
	"sync"

	"evmconfirm/internal/observable"
	"evmconfirm/internal/storage"
	"evmconfirm/internal/txview"
)

// recorder turns view model updates into frames. A frame is produced when
// the visible screen changes and for every send event.
type recorder struct {
	ctx    context.Context
	runID  string
	frames chan<- storage.Frame
	bag    *observable.DisposeBag

	mu          sync.Mutex
	seq         int
	closed      bool
	sendEnabled bool
	errorText   string
	sections    []txview.SectionViewItem
	last        *storage.Frame
	terminal    chan txview.SendEvent
}

func newRecorder(ctx context.Context, runID string, vm *txview.ViewModel, frames chan<- storage.Frame) *recorder {
	r := &recorder{
		ctx:      ctx,
		runID:    runID,
		frames:   frames,
		bag:      observable.NewDisposeBag(),
		terminal: make(chan txview.SendEvent, 1),
	}

	r.bag.Add(vm.SendEnabled().Subscribe(func(enabled bool) {
		r.update(func() { r.sendEnabled = enabled })
	}))
	r.bag.Add(vm.ErrorText().Subscribe(func(text string) {
		r.update(func() { r.errorText = text })
	}))
	r.bag.Add(vm.Sections().Subscribe(func(sections []txview.SectionViewItem) {
		r.update(func() { r.sections = sections })
	}))
	r.bag.Add(vm.Events().Subscribe(r.event))

	return r
}

// Terminal delivers the first success or failure event.
func (r *recorder) Terminal() <-chan txview.SendEvent {
	return r.terminal
}

// SendEnabled reports the last observed send-enabled flag.
func (r *recorder) SendEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sendEnabled
}

// Close stops recording and closes the frame channel.
func (r *recorder) Close() {
	r.bag.Dispose()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.frames)
}

func (r *recorder) update(apply func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apply()
	frame := r.snapshot()
	if r.last != nil && sameScreen(*r.last, frame) {
		return
	}
	r.push(frame)
}

func (r *recorder) event(e txview.SendEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frame := r.snapshot()
	frame.Event = storage.NewEvent(e)
	r.push(frame)

	if e.Kind == txview.SendEventSuccess || e.Kind == txview.SendEventFailed {
		select {
		case r.terminal <- e:
		default:
		}
	}
}

func (r *recorder) snapshot() storage.Frame {
	return storage.Frame{
		RunID:       r.runID,
		SendEnabled: r.sendEnabled,
		ErrorText:   r.errorText,
		Sections:    r.sections,
	}
}

// push must be called with mu held.
func (r *recorder) push(frame storage.Frame) {
	if r.closed {
		return
	}
	r.seq++
	frame.Seq = r.seq
	r.last = &frame

	select {
	case r.frames <- frame:
	case <-r.ctx.Done():
	}
}

func sameScreen(a, b storage.Frame) bool {
	return a.SendEnabled == b.SendEnabled &&
		a.ErrorText == b.ErrorText &&
		reflect.DeepEqual(a.Sections, b.Sections)
}
