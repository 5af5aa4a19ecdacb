package dedup

import (
	"runtime"
	"strings"
	"sync/atomic"
	"unsafe"
	"weak"

	"github.com/puzpuzpuz/xsync/v3"
)

// weakEntry 弱引用代表字符串的底层字节。
// 调用方只要还持有代表字符串，底层数组就不会被回收。
type weakEntry struct {
	ptr weak.Pointer[byte]
	n   int
}

type cleanupArg struct {
	key   string
	entry weakEntry
}

// WeakMap 弱引用并发表。
//
// 表里的 key 是调用方传入的字符串，value 是一份独立克隆的代表字符串的弱指针。
// 代表字符串不再被任何人引用时，GC 会回收它，随后的 cleanup 把对应表项删掉。
// 因此同一个值在回收前后可能得到不同的代表（值相等，地址不同）。
type WeakMap struct {
	m         *xsync.MapOf[string, weakEntry]
	reclaimed atomic.Int64
}

func NewWeakMap(presize int) *WeakMap {
	if presize > 0 {
		return &WeakMap{m: xsync.NewMapOf[string, weakEntry](xsync.WithPresize(presize))}
	}
	return &WeakMap{m: xsync.NewMapOf[string, weakEntry]()}
}

func (wm *WeakMap) Intern(s string) string {
	if s == "" {
		return ""
	}
	if e, ok := wm.m.Load(s); ok {
		if p := e.ptr.Value(); p != nil {
			return unsafe.String(p, e.n)
		}
	}

	var (
		rep      string
		fresh    weakEntry
		inserted bool
	)
	wm.m.Compute(s, func(old weakEntry, loaded bool) (weakEntry, bool) {
		if loaded {
			if p := old.ptr.Value(); p != nil {
				rep = unsafe.String(p, old.n)
				return old, false
			}
		}
		// 不存在或者已被回收，换上新的代表
		rep = strings.Clone(s)
		fresh = weakEntry{ptr: weak.Make(unsafe.StringData(rep)), n: len(rep)}
		inserted = true
		return fresh, false
	})
	if inserted {
		runtime.AddCleanup(unsafe.StringData(rep), wm.remove, cleanupArg{key: s, entry: fresh})
	}
	return rep
}

// remove 只删除仍指向已回收代表的表项，表项已被替换时什么也不做
func (wm *WeakMap) remove(arg cleanupArg) {
	wm.m.Compute(arg.key, func(old weakEntry, loaded bool) (weakEntry, bool) {
		if loaded && old == arg.entry {
			wm.reclaimed.Add(1)
			return old, true
		}
		return old, !loaded
	})
}

// Len 包含已被回收但 cleanup 还没执行的表项
func (wm *WeakMap) Len() int {
	return wm.m.Size()
}

// Reclaimed 返回被 GC 回收后删除的表项数量
func (wm *WeakMap) Reclaimed() int64 {
	return wm.reclaimed.Load()
}
