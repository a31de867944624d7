package actor

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// Props Actor 属性配置
type Props struct {
	// Name Actor 名称，仅用于日志
	Name string
}

// DefaultProps 默认属性
func DefaultProps(name string) *Props {
	return &Props{Name: name}
}

// Actor 可寻址的消息处理单元
//
// 每个 Actor 拥有自己的邮箱、处理函数表和一个处理 goroutine，
// 按到达顺序逐条处理消息：同一 Actor 的处理函数不会并发执行，
// 处理函数内可以直接修改 Actor 自身状态而无需加锁。
//
// 通常嵌入到业务类型中，在构造函数里注册处理函数：
//
//	type Pong struct {
//	    *actor.Actor
//	}
//
//	func NewPong(fw *actor.Framework) *Pong {
//	    p := &Pong{Actor: actor.NewActor(fw)}
//	    actor.RegisterHandler(p.Actor, p.onText)
//	    return p
//	}
type Actor struct {
	fw      *Framework
	address Address
	name    string

	mailbox *mailbox
	table   *handlerTable
	stats   *StatsCollector

	done   chan struct{}
	closed atomic.Bool
}

// NewActor 在 Framework 中创建 Actor
func NewActor(fw *Framework) *Actor {
	return NewActorWithProps(fw, nil)
}

// NewActorWithProps 使用属性创建 Actor
//
// Framework 已关闭时返回的 Actor 地址为 Null，不会处理任何消息。
func NewActorWithProps(fw *Framework, props *Props) *Actor {
	if props == nil {
		props = DefaultProps("")
	}

	a := &Actor{
		fw:    fw,
		name:  props.Name,
		table: newHandlerTable(),
		stats: NewStatsCollector(),
		done:  make(chan struct{}),
	}

	addr, mb, err := fw.register(ownerActor, props.Name)
	a.address = addr
	a.mailbox = mb
	if err != nil {
		fw.logger.Warn("actor created on closed framework", "framework", fw.name, "name", props.Name)
		a.closed.Store(true)
		close(a.done)
		return a
	}

	go a.run()

	return a
}

func (a *Actor) handlers() *handlerTable {
	return a.table
}

// Address 返回 Actor 地址
func (a *Actor) Address() Address {
	return a.address
}

// Name 返回 Actor 名称
func (a *Actor) Name() string {
	return a.name
}

// Framework 返回所属 Framework
func (a *Actor) Framework() *Framework {
	return a.fw
}

// Send 以自身地址为发送者向 to 发送消息，不会阻塞
func (a *Actor) Send(payload any, to Address) bool {
	return a.fw.send(payload, a.address, to, a.address)
}

// SetDefaultHandler 设置默认处理函数
// 没有匹配类型的消息会交给默认处理函数，而不是被丢弃；传 nil 取消
func (a *Actor) SetDefaultHandler(fn func(payload any, from Address)) {
	a.table.setFallback(fn)
}

// NumQueuedMessages 返回邮箱中待处理的消息数（不含正在处理的消息）
func (a *Actor) NumQueuedMessages() int {
	return a.mailbox.len()
}

// Stats 获取分发统计
func (a *Actor) Stats() ActorStats {
	return a.stats.Stats()
}

// Done 返回一个在处理循环退出后关闭的通道
func (a *Actor) Done() <-chan struct{} {
	return a.done
}

// Close 释放 Actor
//
// 地址立即失效，未处理的消息被丢弃；正在执行的处理函数会运行完毕。
// 可以在处理函数内调用。
func (a *Actor) Close() {
	if !a.closed.CompareAndSwap(false, true) {
		return
	}
	a.fw.release(a.address)
}

// run Actor 消息处理循环
func (a *Actor) run() {
	defer a.fw.wg.Done()
	defer close(a.done)

	for {
		env, err := a.mailbox.pop(context.Background())
		if err != nil {
			return
		}
		a.dispatch(env)
	}
}

// dispatch 处理单条消息
func (a *Actor) dispatch(env Envelope) {
	a.stats.RecordReceived()

	typ := env.payloadType()
	fn, _ := a.table.lookup(typ)
	if fn == nil {
		d := Diagnostic{
			Err:         ErrNoHandlerForType,
			Actor:       a.address,
			Sender:      env.Sender,
			Target:      env.Target,
			PayloadType: typeName(typ),
		}
		a.stats.RecordDropped(d)
		a.fw.report(d)
		return
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			d := Diagnostic{
				Err:         fmt.Errorf("%w: %v", ErrHandlerPanic, r),
				Actor:       a.address,
				Sender:      env.Sender,
				Target:      env.Target,
				PayloadType: typeName(typ),
			}
			a.stats.RecordPanic(d)
			a.fw.logger.Error("panic in actor handler",
				"framework", a.fw.name,
				"actor", a.address,
				"name", a.name,
				"type", d.PayloadType,
				"error", r,
				"stack", string(debug.Stack()))
			a.fw.notify(d)
			return
		}
		a.stats.RecordHandled(time.Since(start))
	}()

	fn(env.Payload, env.Sender)
}
