// Package harness 驱动字符串去重策略的基准测试：
// 参数、试验/迭代状态、计时调用以及预热+测量的运行器。
package harness

import (
	"errors"
	"fmt"
)

// ErrInvalidParams 参数不合法，具体原因包在错误信息里
var ErrInvalidParams = errors.New("harness: invalid params")

// Params 一组基准参数
type Params struct {
	// StringCount 每次计时调用处理的字符串数量
	StringCount int
	// CacheHit 为 true 时每轮迭代预先生成 StringCount 个字符串并反复使用（全部命中）；
	// 为 false 时每次访问都生成新的随机字符串（全部不命中）
	CacheHit bool
}

func (p Params) Validate() error {
	if p.StringCount <= 0 {
		return fmt.Errorf("%w: stringCount must be positive, got %d", ErrInvalidParams, p.StringCount)
	}
	return nil
}

// String 用作子基准名
func (p Params) String() string {
	return fmt.Sprintf("stringCount=%d/cacheHit=%t", p.StringCount, p.CacheHit)
}

// Grid 返回 counts × cacheHits 的全部组合
func Grid(counts []int, cacheHits []bool) []Params {
	grid := make([]Params, 0, len(counts)*len(cacheHits))
	for _, n := range counts {
		for _, hit := range cacheHits {
			grid = append(grid, Params{StringCount: n, CacheHit: hit})
		}
	}
	return grid
}
