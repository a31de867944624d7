package actor

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Framework Actor 框架
// 负责地址分配和地址到邮箱的路由，不持有 Actor 对象本身
//
// Framework 需要显式创建并传递，同一进程内可以同时存在多个互不相干的 Framework。
type Framework struct {
	// 基本信息
	name string
	id   string

	// 路由表：地址序号 -> 邮箱
	routes   map[uint64]*route
	routesMu sync.RWMutex
	nextID   atomic.Uint64

	// 生命周期控制
	wg        sync.WaitGroup
	isRunning atomic.Bool

	// 配置
	config *FrameworkConfig

	// 统计信息
	counters frameworkCounters

	// 日志
	logger *slog.Logger
}

// FrameworkConfig Framework 配置
type FrameworkConfig struct {
	// DiagnosticLogging 是否以 Warn 级别记录诊断（丢弃的消息、无效地址）
	DiagnosticLogging bool
	// ShutdownTimeout Shutdown 等待 Actor 循环退出的最长时间
	ShutdownTimeout time.Duration
	// OnDiagnostic 诊断回调，在上报诊断的 goroutine 中同步调用，需自行保证并发安全
	OnDiagnostic func(d Diagnostic)
	// Logger 自定义日志器
	Logger *slog.Logger
}

// DefaultFrameworkConfig 默认配置
func DefaultFrameworkConfig() *FrameworkConfig {
	return &FrameworkConfig{
		DiagnosticLogging: true,
		ShutdownTimeout:   30 * time.Second,
		OnDiagnostic:      nil,
		Logger:            nil, // 使用默认 logger
	}
}

type ownerKind int

const (
	ownerActor ownerKind = iota
	ownerReceiver
)

func (k ownerKind) String() string {
	if k == ownerReceiver {
		return "receiver"
	}
	return "actor"
}

// route 路由表项
type route struct {
	mailbox *mailbox
	kind    ownerKind
	name    string
}

// NewFramework 创建 Framework
func NewFramework(name string) *Framework {
	return NewFrameworkWithConfig(name, DefaultFrameworkConfig())
}

// NewFrameworkWithConfig 使用配置创建 Framework
// name 为空时使用实例 ID 的前 8 位
func NewFrameworkWithConfig(name string, config *FrameworkConfig) *Framework {
	if config == nil {
		config = DefaultFrameworkConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.NewString()
	if name == "" {
		name = "framework-" + id[:8]
	}

	f := &Framework{
		name:     name,
		id:       id,
		routes:   make(map[uint64]*route),
		config:   config,
		logger:   logger,
		counters: frameworkCounters{startTime: time.Now()},
	}
	f.isRunning.Store(true)

	f.logger.Info("actor framework started", "framework", name, "id", id)
	return f
}

// Name 返回 Framework 名称
func (f *Framework) Name() string {
	return f.name
}

// ID 返回 Framework 实例唯一标识
func (f *Framework) ID() string {
	return f.id
}

// Logger 返回 Framework 使用的日志器
func (f *Framework) Logger() *slog.Logger {
	return f.logger
}

// IsRunning 检查 Framework 是否运行中
func (f *Framework) IsRunning() bool {
	return f.isRunning.Load()
}

// register 分配新地址并绑定到新的空邮箱
// 成功为 Actor 分配地址时 wg 已加一，调用方必须启动处理循环
func (f *Framework) register(kind ownerKind, name string) (Address, *mailbox, error) {
	mb := newMailbox()

	f.routesMu.Lock()
	defer f.routesMu.Unlock()

	if !f.isRunning.Load() {
		mb.close()
		return Null, mb, ErrFrameworkClosed
	}

	addr := Address{fw: f, id: f.nextID.Add(1)}
	f.routes[addr.id] = &route{mailbox: mb, kind: kind, name: name}

	switch kind {
	case ownerActor:
		// 处理循环在持锁时计入，Shutdown 的 Wait 不会漏掉它
		f.wg.Add(1)
		f.counters.actors.Add(1)
	case ownerReceiver:
		f.counters.receivers.Add(1)
	}

	f.logger.Debug("address allocated", "framework", f.name, "address", addr, "kind", kind, "name", name)
	return addr, mb, nil
}

// release 释放地址，丢弃未投递的消息，之后发往该地址的消息失败
func (f *Framework) release(addr Address) {
	if addr.fw != f || addr.IsNull() {
		return
	}

	f.routesMu.Lock()
	r, ok := f.routes[addr.id]
	if ok {
		delete(f.routes, addr.id)
	}
	f.routesMu.Unlock()

	if !ok {
		return
	}

	switch r.kind {
	case ownerActor:
		f.counters.actors.Add(-1)
	case ownerReceiver:
		f.counters.receivers.Add(-1)
	}

	discarded := r.mailbox.close()
	f.counters.discarded.Add(int64(discarded))
	f.logger.Debug("address released",
		"framework", f.name, "address", addr, "kind", r.kind, "name", r.name, "discarded", discarded)
}

// IsLive 检查地址是否指向存活的邮箱
func (f *Framework) IsLive(addr Address) bool {
	if addr.fw != f || addr.IsNull() {
		return false
	}
	f.routesMu.RLock()
	defer f.routesMu.RUnlock()
	_, ok := f.routes[addr.id]
	return ok
}

// Count 返回存活的地址数（Actor 与 Receiver）
func (f *Framework) Count() int {
	f.routesMu.RLock()
	defer f.routesMu.RUnlock()
	return len(f.routes)
}

// Send 从 from 向 to 发送消息
//
// 用于从 Actor 网络外部（程序启动代码、Receiver 所在的 goroutine）注入消息，
// 也可用于 Actor 之间发送。to 不是存活地址时返回 false 并上报诊断，
// 返回 true 时消息最终会被投递到目标。Send 从不阻塞。
func (f *Framework) Send(payload any, from, to Address) bool {
	return f.send(payload, from, to, Null)
}

// Deliver 与 Send 相同，但返回明确的错误而不是 bool，且不上报诊断
func (f *Framework) Deliver(payload any, from, to Address) error {
	if !f.isRunning.Load() {
		return fmt.Errorf("send to %s: %w: %w", to, ErrFrameworkClosed, ErrUnknownAddress)
	}

	env := Envelope{
		Payload: payload,
		Sender:  from,
		Target:  to,
		SentAt:  time.Now(),
	}

	if to.fw != f || to.IsNull() {
		f.counters.unknownAddress.Add(1)
		return fmt.Errorf("send %s to %s: %w", typeName(env.payloadType()), to, ErrUnknownAddress)
	}

	f.routesMu.RLock()
	r, ok := f.routes[to.id]
	f.routesMu.RUnlock()

	// 查找和入队之间地址可能被释放，此时 push 返回 false
	if !ok || !r.mailbox.push(env) {
		f.counters.unknownAddress.Add(1)
		return fmt.Errorf("send %s to %s: %w", typeName(env.payloadType()), to, ErrUnknownAddress)
	}

	f.counters.sent.Add(1)
	return nil
}

// send 内部发送，reporter 为上报诊断的 Actor 地址
func (f *Framework) send(payload any, from, to, reporter Address) bool {
	err := f.Deliver(payload, from, to)
	if err == nil {
		return true
	}

	f.report(Diagnostic{
		Err:         err,
		Actor:       reporter,
		Sender:      from,
		Target:      to,
		PayloadType: typeName(Envelope{Payload: payload}.payloadType()),
	})
	return false
}

// report 记录并分发诊断
func (f *Framework) report(d Diagnostic) {
	if f.config.DiagnosticLogging {
		f.logger.Warn("actor diagnostic",
			"framework", f.name,
			"error", d.Err,
			"actor", d.Actor,
			"sender", d.Sender,
			"target", d.Target,
			"type", d.PayloadType)
	}
	f.notify(d)
}

// notify 只计数并回调，不记录日志
func (f *Framework) notify(d Diagnostic) {
	f.counters.diagnostics.Add(1)
	if f.config.OnDiagnostic != nil {
		f.config.OnDiagnostic(d)
	}
}

// Stats 获取统计信息
func (f *Framework) Stats() FrameworkStats {
	return f.counters.snapshot()
}

// Shutdown 关闭 Framework
func (f *Framework) Shutdown() error {
	timeout := f.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultFrameworkConfig().ShutdownTimeout
	}
	return f.ShutdownWithTimeout(timeout)
}

// ShutdownWithTimeout 带超时的关闭
//
// 释放所有地址（丢弃未投递的消息），然后等待正在执行的处理函数返回。
// 不要在处理函数内部调用，否则会一直等到超时。
func (f *Framework) ShutdownWithTimeout(timeout time.Duration) error {
	if !f.isRunning.CompareAndSwap(true, false) {
		return nil
	}
	f.logger.Info("actor framework shutting down", "framework", f.name)

	f.routesMu.RLock()
	addrs := make([]Address, 0, len(f.routes))
	for id := range f.routes {
		addrs = append(addrs, Address{fw: f, id: id})
	}
	f.routesMu.RUnlock()

	for _, addr := range addrs {
		f.release(addr)
	}

	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		f.logger.Info("actor framework shutdown complete", "framework", f.name)
		return nil
	case <-time.After(timeout):
		f.logger.Warn("actor framework shutdown timeout", "framework", f.name, "timeout", timeout)
		return fmt.Errorf("shutdown framework %s: timed out after %v", f.name, timeout)
	}
}
