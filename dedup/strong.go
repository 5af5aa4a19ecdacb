package dedup

import "github.com/puzpuzpuz/xsync/v3"

// StrongMap 强引用并发表：一旦插入，代表字符串在表的生命周期内一直存活
type StrongMap struct {
	m *xsync.MapOf[string, string]
}

// NewStrongMap presize <= 0 时使用 xsync 的默认容量
func NewStrongMap(presize int) *StrongMap {
	if presize > 0 {
		return &StrongMap{m: xsync.NewMapOf[string, string](xsync.WithPresize(presize))}
	}
	return &StrongMap{m: xsync.NewMapOf[string, string]()}
}

func (sm *StrongMap) Intern(s string) string {
	actual, _ := sm.m.LoadOrStore(s, s)
	return actual
}

func (sm *StrongMap) Len() int {
	return sm.m.Size()
}
