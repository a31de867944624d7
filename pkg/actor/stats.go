package actor

import (
	"sync"
	"sync/atomic"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// Actor 统计信息
// ═══════════════════════════════════════════════════════════════════════════

// ActorStats 单个 Actor 的分发统计
type ActorStats struct {
	// 消息计数
	Received int64 // 从邮箱取出的消息数
	Handled  int64 // 由处理函数完成处理的消息数
	Dropped  int64 // 没有匹配处理函数而丢弃的消息数
	Panics   int64 // 处理函数 panic 次数

	// 处理耗时
	TotalLatency   time.Duration
	AverageLatency time.Duration
	MaxLatency     time.Duration

	// 时间戳
	StartedAt     time.Time
	LastMessageAt time.Time

	// LastError 最近一次诊断错误
	LastError error
}

// StatsCollector 线程安全的统计收集器
// Actor 循环写入，任意 goroutine 通过 Stats 读取快照
type StatsCollector struct {
	mu    sync.RWMutex
	stats ActorStats
}

// NewStatsCollector 创建统计收集器
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		stats: ActorStats{StartedAt: time.Now()},
	}
}

// RecordReceived 记录取出一条消息
func (c *StatsCollector) RecordReceived() {
	c.mu.Lock()
	c.stats.Received++
	c.stats.LastMessageAt = time.Now()
	c.mu.Unlock()
}

// RecordHandled 记录处理完成及耗时
func (c *StatsCollector) RecordHandled(latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Handled++
	c.stats.TotalLatency += latency
	c.stats.AverageLatency = c.stats.TotalLatency / time.Duration(c.stats.Handled)
	if latency > c.stats.MaxLatency {
		c.stats.MaxLatency = latency
	}
}

// RecordDropped 记录丢弃的消息
func (c *StatsCollector) RecordDropped(err error) {
	c.mu.Lock()
	c.stats.Dropped++
	c.stats.LastError = err
	c.mu.Unlock()
}

// RecordPanic 记录处理函数 panic
func (c *StatsCollector) RecordPanic(err error) {
	c.mu.Lock()
	c.stats.Panics++
	c.stats.LastError = err
	c.mu.Unlock()
}

// Stats 获取统计快照
func (c *StatsCollector) Stats() ActorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// ═══════════════════════════════════════════════════════════════════════════
// Framework 统计信息
// ═══════════════════════════════════════════════════════════════════════════

// FrameworkStats Framework 级别统计
type FrameworkStats struct {
	Actors         int64 // 存活的 Actor 数
	Receivers      int64 // 存活的 Receiver 数
	MessagesSent   int64 // 成功入队的消息数
	UnknownAddress int64 // 因目标地址无效而失败的发送数
	Discarded      int64 // 所有者释放时丢弃的未投递消息数
	Diagnostics    int64 // 上报的诊断数
	StartTime      time.Time
}

// frameworkCounters 原子计数器
type frameworkCounters struct {
	actors         atomic.Int64
	receivers      atomic.Int64
	sent           atomic.Int64
	unknownAddress atomic.Int64
	discarded      atomic.Int64
	diagnostics    atomic.Int64
	startTime      time.Time
}

func (c *frameworkCounters) snapshot() FrameworkStats {
	return FrameworkStats{
		Actors:         c.actors.Load(),
		Receivers:      c.receivers.Load(),
		MessagesSent:   c.sent.Load(),
		UnknownAddress: c.unknownAddress.Load(),
		Discarded:      c.discarded.Load(),
		Diagnostics:    c.diagnostics.Load(),
		StartTime:      c.startTime,
	}
}
