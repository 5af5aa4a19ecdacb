package dedup

import "sync"

// SyncMapInterner 使用 sync.Map 实现的字符串驻留池，作为标准库对照组。
// 零值可直接使用。
type SyncMapInterner struct {
	pool sync.Map
}

// Intern 返回与 s 内容相同的驻留字符串。
// 先 Load 再 Store 的写法在并发下会让两个调用方各自拿到不同的副本，
// 这里用 LoadOrStore 保证只有一个代表。
func (si *SyncMapInterner) Intern(s string) string {
	if v, ok := si.pool.Load(s); ok {
		return v.(string)
	}
	v, _ := si.pool.LoadOrStore(s, s)
	return v.(string)
}

func (si *SyncMapInterner) Len() int {
	n := 0
	si.pool.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
