// Package actor 提供进程内的 Actor 消息传递运行时
//
// Actor 之间只通过向地址发送带类型的消息通信，每个 Actor 按到达顺序
// 逐条处理消息，外部代码可以通过 Receiver 阻塞等待回复。
//
// # 核心组件
//
// [Framework] 分配地址并维护地址到邮箱的路由，需要显式创建：
//
//	fw := actor.NewFramework("pingpong")
//	defer fw.Shutdown()
//
// [Actor] 拥有地址、邮箱和按消息类型索引的处理函数表，通过 [RegisterHandler]
// 注册处理函数。同一 Actor 的处理函数串行执行。
//
// [Address] 是可比较的不透明地址，[Framework.Send] 与 [Actor.Send] 向地址发送消息，
// 发送从不阻塞，目标地址无效时返回 false。
//
// [Receiver] 是外部代码的同步点：[Receiver.Wait] 阻塞到至少一条消息到达，
// 然后取出一条。[Request] 和 [Ask] 基于 Receiver 实现请求-回复。
//
// # 错误处理
//
// 没有匹配处理函数的消息被丢弃，处理函数 panic 会被恢复，两者都不会影响其他消息。
// 这些情况以 [Diagnostic] 上报到 [FrameworkConfig.OnDiagnostic] 和日志，
// 不会通知发送者。
//
// 完整使用示例请参考 example_test.go 或 examples/pingpong。
package actor
