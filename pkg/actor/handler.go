package actor

import (
	"reflect"
	"sync"
)

// handlerFunc 类型擦除后的处理函数
type handlerFunc func(payload any, from Address)

// handlerTable 按消息类型索引的处理函数表
type handlerTable struct {
	mu       sync.RWMutex
	byType   map[reflect.Type]handlerFunc
	fallback handlerFunc
}

func newHandlerTable() *handlerTable {
	return &handlerTable{byType: make(map[reflect.Type]handlerFunc)}
}

func (t *handlerTable) set(typ reflect.Type, fn handlerFunc) {
	t.mu.Lock()
	t.byType[typ] = fn
	t.mu.Unlock()
}

func (t *handlerTable) remove(typ reflect.Type) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byType[typ]; !ok {
		return false
	}
	delete(t.byType, typ)
	return true
}

func (t *handlerTable) has(typ reflect.Type) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.byType[typ]
	return ok
}

func (t *handlerTable) setFallback(fn handlerFunc) {
	t.mu.Lock()
	t.fallback = fn
	t.mu.Unlock()
}

// lookup 返回消息类型对应的处理函数，找不到时返回默认处理函数（可能为 nil）
// 第二个返回值表示是否精确匹配
func (t *handlerTable) lookup(typ reflect.Type) (handlerFunc, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if fn, ok := t.byType[typ]; ok {
		return fn, true
	}
	return t.fallback, false
}

// HandlerHost 可以注册消息处理函数的对象，[Actor] 和 [Receiver] 实现此接口
type HandlerHost interface {
	handlers() *handlerTable
}

// RegisterHandler 为消息类型 T 注册处理函数
//
// 同一类型重复注册会替换之前的处理函数。查找按消息的动态类型精确匹配，
// 因此 T 应为具体类型（string、结构体、指针等），接口类型不会被匹配。
//
// 用法示例:
//
//	a := actor.NewActor(fw)
//	actor.RegisterHandler(a, func(msg string, from actor.Address) {
//	    a.Send(msg+"!", from)
//	})
func RegisterHandler[T any](host HandlerHost, fn func(msg T, from Address)) {
	host.handlers().set(reflect.TypeOf((*T)(nil)).Elem(), func(payload any, from Address) {
		fn(payload.(T), from)
	})
}

// DeregisterHandler 移除消息类型 T 的处理函数，返回之前是否已注册
func DeregisterHandler[T any](host HandlerHost) bool {
	return host.handlers().remove(reflect.TypeOf((*T)(nil)).Elem())
}

// IsHandlerRegistered 检查消息类型 T 是否已注册处理函数
func IsHandlerRegistered[T any](host HandlerHost) bool {
	return host.handlers().has(reflect.TypeOf((*T)(nil)).Elem())
}
