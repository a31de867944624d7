package actor

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// 请求-回复辅助函数
// ═══════════════════════════════════════════════════════════════════════════

// ResponseTimeout 响应超时错误
type ResponseTimeout struct {
	Target  Address
	Timeout time.Duration
}

// Error 实现 error 接口
func (r *ResponseTimeout) Error() string {
	return fmt.Sprintf("request to %s timed out after %v", r.Target, r.Timeout)
}

// Request 向 to 发送消息并等待第一条类型为 T 的回复
//
// 内部创建一个临时 Receiver 作为发送者地址，目标 Actor 只需向 from 回复即可。
// 其他类型的回复会被忽略。
//
// 用法示例:
//
//	reply, err := actor.Request[string](ctx, fw, "Hello", pong.Address())
func Request[T any](ctx context.Context, fw *Framework, payload any, to Address) (T, error) {
	var zero T

	r := NewReceiver(fw)
	defer r.Close()

	if err := fw.Deliver(payload, r.Address(), to); err != nil {
		return zero, err
	}

	for {
		env, err := r.WaitContext(ctx)
		if err != nil {
			return zero, err
		}
		if v, ok := env.Payload.(T); ok {
			return v, nil
		}
	}
}

// Ask 带超时的 Request，超时返回 *ResponseTimeout
func Ask[T any](fw *Framework, payload any, to Address, timeout time.Duration) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	v, err := Request[T](ctx, fw, payload, to)
	if errors.Is(err, context.DeadlineExceeded) {
		return v, &ResponseTimeout{Target: to, Timeout: timeout}
	}
	return v, err
}

// ═══════════════════════════════════════════════════════════════════════════
// 错误处理工具
// ═══════════════════════════════════════════════════════════════════════════

// IsContextError 检查错误是否为 context 相关错误
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
