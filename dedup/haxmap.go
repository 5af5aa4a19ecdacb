package dedup

import "github.com/alphadose/haxmap"

// HaxMapInterner 基于无锁哈希表 haxmap
type HaxMapInterner struct {
	m *haxmap.Map[string, string]
}

func NewHaxMap(presize int) *HaxMapInterner {
	if presize > 0 {
		return &HaxMapInterner{m: haxmap.New[string, string](uintptr(presize))}
	}
	return &HaxMapInterner{m: haxmap.New[string, string]()}
}

func (hi *HaxMapInterner) Intern(s string) string {
	actual, _ := hi.m.GetOrSet(s, s)
	return actual
}

func (hi *HaxMapInterner) Len() int {
	return int(hi.m.Len())
}
