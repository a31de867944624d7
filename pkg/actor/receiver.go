package actor

import (
	"context"
	"errors"
	"sync/atomic"
)

// Receiver 供 Actor 网络外部代码使用的可寻址端点
//
// Actor 可以向 Receiver 的地址发送回复，外部代码通过 Wait 阻塞等待，
// 从而与异步的 Actor 网络同步。注册在 Receiver 上的处理函数在 Wait
// 的调用者 goroutine 中执行，用于观察收到的消息。
type Receiver struct {
	fw      *Framework
	address Address

	mailbox *mailbox
	table   *handlerTable

	closed atomic.Bool
}

// NewReceiver 在 Framework 中创建 Receiver
func NewReceiver(fw *Framework) *Receiver {
	r := &Receiver{
		fw:    fw,
		table: newHandlerTable(),
	}

	addr, mb, err := fw.register(ownerReceiver, "")
	r.address = addr
	r.mailbox = mb
	if err != nil {
		fw.logger.Warn("receiver created on closed framework", "framework", fw.name)
		r.closed.Store(true)
	}
	return r
}

func (r *Receiver) handlers() *handlerTable {
	return r.table
}

// Address 返回 Receiver 地址
func (r *Receiver) Address() Address {
	return r.address
}

// Wait 阻塞直到至少有一条消息到达，然后取出一条
//
// 每次调用只消费一条消息，按到达顺序；已经到达的多条消息需要多次调用取出。
// 没有超时，Receiver 关闭时返回零值 Envelope。
func (r *Receiver) Wait() Envelope {
	env, _ := r.WaitContext(context.Background())
	return env
}

// WaitContext 带 context 的 Wait，ctx 取消时返回 ctx.Err()
func (r *Receiver) WaitContext(ctx context.Context) (Envelope, error) {
	env, err := r.mailbox.pop(ctx)
	if err != nil {
		if errors.Is(err, errMailboxClosed) {
			return Envelope{}, ErrReceiverClosed
		}
		return Envelope{}, err
	}
	r.observe(env)
	return env, nil
}

// Count 返回已到达但尚未被 Wait 取出的消息数
func (r *Receiver) Count() int {
	return r.mailbox.len()
}

// Consume 非阻塞地取出最多 limit 条已到达的消息，返回实际取出的数量
func (r *Receiver) Consume(limit int) int {
	n := 0
	for n < limit {
		env, ok := r.mailbox.tryPop()
		if !ok {
			break
		}
		r.observe(env)
		n++
	}
	return n
}

// Reset 丢弃所有已到达的消息
func (r *Receiver) Reset() {
	r.mailbox.drain()
}

// Close 释放 Receiver，阻塞中的 Wait 会返回
func (r *Receiver) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}
	r.fw.release(r.address)
}

// observe 执行注册的处理函数，没有匹配的处理函数时直接忽略
func (r *Receiver) observe(env Envelope) {
	if fn, _ := r.table.lookup(env.payloadType()); fn != nil {
		fn(env.Payload, env.Sender)
	}
}
