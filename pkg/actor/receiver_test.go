package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiverWaitBlocksUntilMessage(t *testing.T) {
	fw, _ := newTestFramework(t)
	r := NewReceiver(fw)

	got := make(chan Envelope, 1)
	go func() {
		got <- r.Wait()
	}()

	select {
	case <-got:
		t.Fatal("Wait returned with no pending message")
	case <-time.After(50 * time.Millisecond):
	}

	require.True(t, fw.Send("ping", Null, r.Address()))
	select {
	case env := <-got:
		assert.Equal(t, "ping", env.Payload)
	case <-time.After(testTimeout):
		t.Fatal("Wait was not woken")
	}
	assert.Equal(t, 0, r.Count())
}

func TestReceiverConsumesOnePerWait(t *testing.T) {
	fw, _ := newTestFramework(t)
	r := NewReceiver(fw)

	for i := 0; i < 3; i++ {
		require.True(t, fw.Send(i, Null, r.Address()))
	}
	assert.Equal(t, 3, r.Count())

	for i := 0; i < 3; i++ {
		assert.Equal(t, i, r.Wait().Payload)
		assert.Equal(t, 2-i, r.Count())
	}
}

func TestMultipleReceiversWaitIndependently(t *testing.T) {
	fw, _ := newTestFramework(t)
	r1 := NewReceiver(fw)
	r2 := NewReceiver(fw)

	got1 := make(chan Envelope, 1)
	got2 := make(chan Envelope, 1)
	go func() { got1 <- r1.Wait() }()
	go func() { got2 <- r2.Wait() }()

	require.True(t, fw.Send("for r2", Null, r2.Address()))

	select {
	case env := <-got2:
		assert.Equal(t, "for r2", env.Payload)
	case <-time.After(testTimeout):
		t.Fatal("r2 was not woken")
	}

	select {
	case <-got1:
		t.Fatal("r1 woken by a message for r2")
	case <-time.After(50 * time.Millisecond):
	}

	require.True(t, fw.Send("for r1", Null, r1.Address()))
	select {
	case env := <-got1:
		assert.Equal(t, "for r1", env.Payload)
	case <-time.After(testTimeout):
		t.Fatal("r1 was not woken")
	}
}

func TestReceiverWaitContext(t *testing.T) {
	fw, _ := newTestFramework(t)
	r := NewReceiver(fw)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.WaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, IsContextError(err))
}

func TestReceiverObservers(t *testing.T) {
	fw, _ := newTestFramework(t)
	r := NewReceiver(fw)

	var texts []string
	var numbers []int
	RegisterHandler(r, func(msg string, _ Address) { texts = append(texts, msg) })
	RegisterHandler(r, func(v int, _ Address) { numbers = append(numbers, v) })

	fw.Send("a", Null, r.Address())
	fw.Send(1, Null, r.Address())
	fw.Send(2.5, Null, r.Address()) // 没有观察者，照常取出

	r.Wait()
	r.Wait()
	env := r.Wait()

	assert.Equal(t, []string{"a"}, texts)
	assert.Equal(t, []int{1}, numbers)
	assert.Equal(t, 2.5, env.Payload)
}

func TestReceiverConsume(t *testing.T) {
	fw, _ := newTestFramework(t)
	r := NewReceiver(fw)

	count := 0
	RegisterHandler(r, func(int, Address) { count++ })

	assert.Equal(t, 0, r.Consume(10))

	for i := 0; i < 5; i++ {
		fw.Send(i, Null, r.Address())
	}
	assert.Equal(t, 3, r.Consume(3))
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, 2, r.Consume(10))
	assert.Equal(t, 5, count)
}

func TestReceiverReset(t *testing.T) {
	fw, _ := newTestFramework(t)
	r := NewReceiver(fw)

	fw.Send(1, Null, r.Address())
	fw.Send(2, Null, r.Address())
	r.Reset()
	assert.Equal(t, 0, r.Count())

	fw.Send(3, Null, r.Address())
	assert.Equal(t, 3, r.Wait().Payload)
}

func TestReceiverClose(t *testing.T) {
	fw, _ := newTestFramework(t)
	r := NewReceiver(fw)

	waitErr := make(chan error, 1)
	go func() {
		_, err := r.WaitContext(context.Background())
		waitErr <- err
	}()

	time.Sleep(10 * time.Millisecond)
	r.Close()
	r.Close()

	select {
	case err := <-waitErr:
		assert.ErrorIs(t, err, ErrReceiverClosed)
	case <-time.After(testTimeout):
		t.Fatal("Close did not release Wait")
	}

	assert.False(t, fw.Send("late", Null, r.Address()))
	assert.Nil(t, r.Wait().Payload)
	assert.Equal(t, int64(0), fw.Stats().Receivers)
}
