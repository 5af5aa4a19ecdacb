package dedup

import "unique"

// BuiltinInterner 使用运行时自带的 unique 包做驻留。
// unique 的表是进程级的，表项在没有任何 Handle 引用后可被回收，
// 保留多久由运行时决定。
type BuiltinInterner struct{}

func (BuiltinInterner) Intern(s string) string {
	return unique.Make(s).Value()
}
