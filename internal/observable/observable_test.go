package observable

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRelayReplaysLatestValue(t *testing.T) {
	relay := NewRelay[int]()
	relay.Accept(1)
	relay.Accept(2)

	var got []int
	sub := relay.Subscribe(func(v int) { got = append(got, v) })
	relay.Accept(3)

	require.Equal(t, []int{2, 3}, got)

	sub.Dispose()
	relay.Accept(4)
	require.Equal(t, []int{2, 3}, got)
	require.Zero(t, relay.Subscribers())
}

func TestRelayWithoutValueDoesNotReplay(t *testing.T) {
	relay := NewRelay[string]()
	calls := 0
	relay.Subscribe(func(string) { calls++ })
	require.Zero(t, calls)

	_, ok := relay.Value()
	require.False(t, ok)

	seeded := NewRelayWith("ready")
	v, ok := seeded.Value()
	require.True(t, ok)
	require.Equal(t, "ready", v)
}

func TestSignalDoesNotReplay(t *testing.T) {
	signal := NewSignal[string]()
	signal.Emit("missed")

	var got []string
	signal.Subscribe(func(v string) { got = append(got, v) })
	signal.Emit("seen")

	require.Equal(t, []string{"seen"}, got)
	require.Equal(t, 1, signal.Subscribers())
}

func TestDisposeBag(t *testing.T) {
	relay := NewRelay[int]()
	signal := NewSignal[int]()

	bag := NewDisposeBag()
	bag.Add(relay.Subscribe(func(int) {}))
	bag.Add(signal.Subscribe(func(int) {}))
	require.Equal(t, 1, relay.Subscribers())
	require.Equal(t, 1, signal.Subscribers())

	bag.Dispose()
	require.Zero(t, relay.Subscribers())
	require.Zero(t, signal.Subscribers())

	bag.Add(relay.Subscribe(func(int) {}))
	require.Zero(t, relay.Subscribers(), "late additions are disposed immediately")

	bag.Dispose()
}

func TestRelayConcurrentAccept(t *testing.T) {
	relay := NewRelay[int]()

	var mu sync.Mutex
	count := 0
	relay.Subscribe(func(int) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			relay.Accept(v)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 50, count)
	_, ok := relay.Value()
	require.True(t, ok)
}

func TestRelaySubscriberEndsOnLatestValue(t *testing.T) {
	for round := 0; round < 500; round++ {
		relay := NewRelayWith(-1)

		var mu sync.Mutex
		last := -2
		observe := func(v int) {
			time.Sleep(time.Duration(v%3) * 20 * time.Microsecond)
			mu.Lock()
			last = v
			mu.Unlock()
		}

		var wg sync.WaitGroup
		wg.Add(5)
		go func() {
			defer wg.Done()
			relay.Subscribe(observe)
		}()
		for i := 0; i < 4; i++ {
			go func(v int) {
				defer wg.Done()
				relay.Accept(v)
			}(i)
		}
		wg.Wait()

		want, ok := relay.Value()
		require.True(t, ok)
		mu.Lock()
		require.Equal(t, want, last, "round %d", round)
		mu.Unlock()
	}
}
