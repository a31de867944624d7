package actor

import "fmt"

// Address 邮箱所有者（Actor 或 Receiver）的不透明地址
//
// Address 是可比较的值类型：两个地址相等当且仅当它们指向同一个所有者。
// 同一个 Framework 内地址只递增分配，不会复用。零值为 [Null]。
type Address struct {
	fw *Framework
	id uint64
}

// Null 空地址，不指向任何所有者
var Null Address

// IsNull 检查是否为空地址
func (a Address) IsNull() bool {
	return a.id == 0
}

// ID 返回地址在所属 Framework 内的序号
func (a Address) ID() uint64 {
	return a.id
}

// String 返回地址的字符串表示
func (a Address) String() string {
	if a.IsNull() {
		return "<null>"
	}
	return fmt.Sprintf("%s:%d", a.fw.name, a.id)
}
