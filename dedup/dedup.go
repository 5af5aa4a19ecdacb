// Package dedup 提供几种字符串去重（驻留）策略。
//
// 所有策略都满足同一个约定：Intern(s) 返回一个与 s 值相等的代表字符串，
// 并发调用方对相等的输入最终拿到同一个代表。
package dedup

import (
	"errors"
	"fmt"
	"slices"
)

// 策略名称
const (
	Builtin = "intern"
	Strong  = "strong"
	Weak    = "weak"
	SyncMap = "syncmap"
	LRU     = "lru"
	HaxMap  = "haxmap"
	Sharded = "sharded"
)

// ErrUnknownStrategy 未注册的策略名
var ErrUnknownStrategy = errors.New("dedup: unknown strategy")

// Interner 插入或取回代表字符串
type Interner interface {
	Intern(s string) string
}

// Sizer 能报告当前表项数量的策略实现该接口
type Sizer interface {
	Len() int
}

// Options 构建策略时的可选参数
type Options struct {
	// Presize 预分配的表项数量，0 表示使用实现的默认值
	Presize int
	// LRUSize lru 策略的容量上限
	LRUSize int
}

// DefaultLRUSize LRUSize 未设置时的容量
const DefaultLRUSize = 60013

var registry = map[string]func(Options) (Interner, error){
	Builtin: func(Options) (Interner, error) { return BuiltinInterner{}, nil },
	Strong:  func(o Options) (Interner, error) { return NewStrongMap(o.Presize), nil },
	Weak:    func(o Options) (Interner, error) { return NewWeakMap(o.Presize), nil },
	SyncMap: func(Options) (Interner, error) { return &SyncMapInterner{}, nil },
	LRU: func(o Options) (Interner, error) {
		size := o.LRUSize
		if size <= 0 {
			size = DefaultLRUSize
		}
		return NewLRU(size)
	},
	HaxMap:  func(o Options) (Interner, error) { return NewHaxMap(o.Presize), nil },
	Sharded: func(o Options) (Interner, error) { return NewShardedMap(o.Presize), nil },
}

// New 按名称构建策略
func New(name string, opts Options) (Interner, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return build(opts)
}

// Names 返回已注册的策略名，顺序固定
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
