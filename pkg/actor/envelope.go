package actor

import (
	"reflect"
	"time"
)

// Envelope 消息信封
// 入队后不可修改，按值在邮箱间传递
type Envelope struct {
	// Payload 消息内容，任意值类型
	Payload any
	// Sender 发送者地址
	Sender Address
	// Target 目标地址
	Target Address
	// SentAt 发送时间
	SentAt time.Time
}

// payloadType 返回消息的动态类型，用于处理函数查找
func (e Envelope) payloadType() reflect.Type {
	return reflect.TypeOf(e.Payload)
}

// typeName 返回类型名，仅用于日志和诊断
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
