package actor

import (
	"errors"
	"fmt"
)

// 运行时错误
var (
	// ErrUnknownAddress 目标地址未分配或其所有者已释放
	ErrUnknownAddress = errors.New("unknown address")
	// ErrNoHandlerForType Actor 没有为消息类型注册处理函数
	ErrNoHandlerForType = errors.New("no handler for type")
	// ErrHandlerPanic 处理函数 panic
	ErrHandlerPanic = errors.New("handler panicked")
	// ErrFrameworkClosed Framework 已关闭
	ErrFrameworkClosed = errors.New("framework is closed")
	// ErrReceiverClosed Receiver 已关闭
	ErrReceiverClosed = errors.New("receiver is closed")
)

// Diagnostic 运行时诊断信息
//
// 非致命错误（丢弃的消息、处理函数 panic、无法投递的发送）不会返回给发送者，
// 而是通过 [FrameworkConfig.OnDiagnostic] 和日志上报。
type Diagnostic struct {
	// Err 错误，可用 errors.Is 与上面的哨兵错误比较
	Err error
	// Actor 报告诊断的 Actor 地址，外部发送时为 Null
	Actor Address
	// Sender 消息发送者
	Sender Address
	// Target 消息目标
	Target Address
	// PayloadType 消息类型名
	PayloadType string
}

// Error 实现 error 接口
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%v: payload %s from %s to %s", d.Err, d.PayloadType, d.Sender, d.Target)
}

// Unwrap 返回内部错误
func (d Diagnostic) Unwrap() error {
	return d.Err
}
