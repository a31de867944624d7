package actor_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lwmacct/251216-go-pkg-actor/pkg/actor"
)

// Pong 示例 Actor，在字符串后追加后缀并回复
type Pong struct {
	*actor.Actor
}

// NewPong 创建 Pong 并注册处理函数
func NewPong(fw *actor.Framework) *Pong {
	p := &Pong{Actor: actor.NewActor(fw)}
	actor.RegisterHandler(p.Actor, p.onText)
	return p
}

func (p *Pong) onText(msg string, from actor.Address) {
	p.Send(msg+" ~ pong", from)
}

// Example_receiver 演示外部代码通过 Receiver 等待回复
func Example_receiver() {
	fw := actor.NewFramework("example")
	defer fw.Shutdown()

	pong := NewPong(fw)
	receiver := actor.NewReceiver(fw)

	// 以 Receiver 地址作为发送者，Pong 的回复会进入 Receiver 邮箱
	if !fw.Send("ping", receiver.Address(), pong.Address()) {
		fmt.Println("send failed")
		return
	}

	env := receiver.Wait()
	fmt.Println(env.Payload)

	// Output:
	// ping ~ pong
}

// Example_request 演示泛型请求-回复
func Example_request() {
	fw := actor.NewFramework("example")
	defer fw.Shutdown()

	pong := NewPong(fw)

	reply, err := actor.Ask[string](fw, "hello", pong.Address(), time.Second)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(reply)

	// Output:
	// hello ~ pong
}

// Example_diagnostics 演示没有处理函数的消息如何被上报
func Example_diagnostics() {
	reported := make(chan actor.Diagnostic, 1)

	config := actor.DefaultFrameworkConfig()
	config.DiagnosticLogging = false
	config.OnDiagnostic = func(d actor.Diagnostic) {
		reported <- d
	}

	fw := actor.NewFrameworkWithConfig("example", config)
	defer fw.Shutdown()

	pong := NewPong(fw)
	fw.Send(42, actor.Null, pong.Address())

	d := <-reported
	fmt.Println(errors.Is(d, actor.ErrNoHandlerForType), d.PayloadType)

	// 未分配的地址
	fmt.Println(fw.Send("x", actor.Null, actor.Null))
	d = <-reported
	fmt.Println(errors.Is(d, actor.ErrUnknownAddress))

	// Output:
	// true int
	// false
	// true
}

// Example_waitContext 演示带超时的等待
func Example_waitContext() {
	fw := actor.NewFramework("example")
	defer fw.Shutdown()

	receiver := actor.NewReceiver(fw)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := receiver.WaitContext(ctx)
	fmt.Println(actor.IsContextError(err))

	// Output:
	// true
}
