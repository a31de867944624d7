package actor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxFIFO(t *testing.T) {
	mb := newMailbox()
	for i := 0; i < 5; i++ {
		require.True(t, mb.push(Envelope{Payload: i}))
	}
	assert.Equal(t, 5, mb.len())

	for i := 0; i < 5; i++ {
		env, err := mb.pop(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i, env.Payload)
	}
	assert.Equal(t, 0, mb.len())

	_, ok := mb.tryPop()
	assert.False(t, ok)
}

func TestMailboxPopBlocksUntilPush(t *testing.T) {
	mb := newMailbox()

	got := make(chan Envelope, 1)
	go func() {
		env, err := mb.pop(context.Background())
		if err == nil {
			got <- env
		}
	}()

	select {
	case <-got:
		t.Fatal("pop returned on an empty mailbox")
	case <-time.After(50 * time.Millisecond):
	}

	require.True(t, mb.push(Envelope{Payload: "wake"}))
	select {
	case env := <-got:
		assert.Equal(t, "wake", env.Payload)
	case <-time.After(testTimeout):
		t.Fatal("pop was not woken by push")
	}
}

func TestMailboxPopContext(t *testing.T) {
	mb := newMailbox()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := mb.pop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMailboxClose(t *testing.T) {
	mb := newMailbox()
	mb.push(Envelope{Payload: 1})
	mb.push(Envelope{Payload: 2})

	assert.Equal(t, 2, mb.close())
	assert.Equal(t, 0, mb.close())
	assert.False(t, mb.push(Envelope{Payload: 3}))
	assert.Equal(t, 0, mb.len())

	_, err := mb.pop(context.Background())
	assert.ErrorIs(t, err, errMailboxClosed)
}

func TestMailboxDrain(t *testing.T) {
	mb := newMailbox()
	mb.push(Envelope{Payload: 1})
	mb.push(Envelope{Payload: 2})

	assert.Equal(t, 2, mb.drain())
	assert.Equal(t, 0, mb.len())
	assert.True(t, mb.push(Envelope{Payload: 3}))
}

// 两个等待者、两条几乎同时到达的消息：信号通道只能缓存一次唤醒，
// 取出一条后必须重新置位，否则第二个等待者会一直阻塞
func TestMailboxNoMissedWakeup(t *testing.T) {
	for round := 0; round < 100; round++ {
		mb := newMailbox()

		var wg sync.WaitGroup
		results := make(chan any, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
				defer cancel()
				env, err := mb.pop(ctx)
				if err == nil {
					results <- env.Payload
				}
			}()
		}

		mb.push(Envelope{Payload: "a"})
		mb.push(Envelope{Payload: "b"})
		wg.Wait()
		close(results)

		var got []any
		for v := range results {
			got = append(got, v)
		}
		require.ElementsMatch(t, []any{"a", "b"}, got, "round %d", round)
	}
}

func TestMailboxConcurrentProducers(t *testing.T) {
	mb := newMailbox()

	const producers, perProducer = 10, 100
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				mb.push(Envelope{Payload: [2]int{p, i}})
			}
		}(p)
	}
	wg.Wait()

	next := make([]int, producers)
	for i := 0; i < producers*perProducer; i++ {
		env, ok := mb.tryPop()
		require.True(t, ok)
		v := env.Payload.([2]int)
		require.Equal(t, next[v[0]], v[1], "producer %d reordered", v[0])
		next[v[0]]++
	}
}
