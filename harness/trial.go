package harness

import (
	"sync/atomic"

	"internbench/dedup"
	"internbench/randstr"
)

// Trial 一次试验的共享状态。
// 去重表在试验开始时创建一次，所有 worker 共用；字符串池在每轮迭代开始前重建，
// 迭代期间只读。
type Trial struct {
	Strategy string
	Interner dedup.Interner
	Params   Params

	setup *randstr.Generator
	pool  []string
	seed  uint64
	seq   atomic.Uint64
}

func NewTrial(strategy string, in dedup.Interner, p Params, seed uint64) (*Trial, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Trial{
		Strategy: strategy,
		Interner: in,
		Params:   p,
		setup:    randstr.NewDefault(seed),
		seed:     seed,
	}, nil
}

// SetupIteration 迭代级准备：CacheHit 时重新生成字符串池。
// 必须在该轮迭代的 worker 开始之前调用。
func (t *Trial) SetupIteration() {
	if t.Params.CacheHit {
		t.pool = t.setup.Fill(t.Params.StringCount)
	}
}

// Pool 当前迭代的字符串池，CacheHit 为 false 时为空
func (t *Trial) Pool() []string {
	return t.pool
}

// PoolGenerated 为字符串池累计生成的字符串数
func (t *Trial) PoolGenerated() uint64 {
	return t.setup.Generated()
}

// NewWorker 创建一个拥有独立随机源和 sink 的 worker，可并发调用
func (t *Trial) NewWorker() *Worker {
	n := t.seq.Add(1)
	return &Worker{
		trial: t,
		gen:   randstr.NewDefault(t.seed + n*0x9e3779b97f4a7c15),
	}
}

// TableSize 返回表项数量，策略不支持时返回 -1
func (t *Trial) TableSize() int {
	if sz, ok := t.Interner.(dedup.Sizer); ok {
		return sz.Len()
	}
	return -1
}
