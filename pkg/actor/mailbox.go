package actor

import (
	"context"
	"errors"
	"sync"
)

var errMailboxClosed = errors.New("mailbox closed")

// mailbox 无界 FIFO 邮箱
//
// 多个发送者可以并发 push，pop 由所有者单独消费。
// ready 是容量为 1 的信号通道：push 后置位，pop 取出一条后若仍有剩余则重新置位，
// 这样等待者不会错过唤醒。
type mailbox struct {
	mu     sync.Mutex
	queue  []Envelope
	closed bool

	ready chan struct{}
	done  chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// push 追加到队尾，邮箱已关闭时返回 false
func (m *mailbox) push(env Envelope) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, env)
	m.mu.Unlock()

	m.signal()
	return true
}

// tryPop 非阻塞取出队首
func (m *mailbox) tryPop() (Envelope, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return Envelope{}, false
	}

	env := m.queue[0]
	m.queue[0] = Envelope{}
	m.queue = m.queue[1:]
	if len(m.queue) == 0 {
		// 释放底层数组，避免长期持有已消费的消息
		m.queue = nil
	} else {
		m.signal()
	}
	return env, true
}

// pop 取出队首，队列为空时阻塞直到有新消息、邮箱关闭或 ctx 取消
func (m *mailbox) pop(ctx context.Context) (Envelope, error) {
	for {
		if env, ok := m.tryPop(); ok {
			return env, nil
		}

		select {
		case <-m.ready:
		case <-m.done:
			return Envelope{}, errMailboxClosed
		case <-ctx.Done():
			return Envelope{}, ctx.Err()
		}
	}
}

func (m *mailbox) signal() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// len 返回待处理消息数
func (m *mailbox) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// drain 丢弃所有待处理消息，返回丢弃数量
func (m *mailbox) drain() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.queue)
	m.queue = nil
	return n
}

// close 关闭邮箱并丢弃未投递的消息，返回丢弃数量
func (m *mailbox) close() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0
	}
	m.closed = true
	n := len(m.queue)
	m.queue = nil
	close(m.done)
	return n
}
