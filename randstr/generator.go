// Package randstr 生成长度和内容都随机的可打印 ASCII 字符串，
// 作为字符串去重基准测试的输入。
package randstr

import (
	"fmt"
	"math/rand/v2"
)

const (
	// DefaultMin 默认最小长度（包含）
	DefaultMin = 5
	// DefaultMax 默认最大长度（不包含）
	DefaultMax = 256

	// 可打印 ASCII 范围 [32, 126]
	firstPrintable = ' '
	lastPrintable  = '~'
	printableCount = lastPrintable - firstPrintable + 1
)

// Generator 随机字符串生成器。
// 持有自己的随机源，不是并发安全的，每个 worker 应各自持有一个。
type Generator struct {
	min, max  int
	rnd       *rand.Rand
	generated uint64
}

// New 创建长度范围为 [min, max) 的生成器，seed 决定随机序列
func New(min, max int, seed uint64) (*Generator, error) {
	if min < 0 || max <= min {
		return nil, fmt.Errorf("randstr: invalid length range [%d, %d)", min, max)
	}
	return &Generator{
		min: min,
		max: max,
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// NewDefault 使用默认长度范围 [5, 256)
func NewDefault(seed uint64) *Generator {
	g, _ := New(DefaultMin, DefaultMax, seed)
	return g
}

// String 返回一个新分配的随机字符串
func (g *Generator) String() string {
	n := g.min + g.rnd.IntN(g.max-g.min)
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(firstPrintable + g.rnd.IntN(printableCount))
	}
	g.generated++
	return string(buf)
}

// Fill 生成 n 个随机字符串组成的池
func (g *Generator) Fill(n int) []string {
	pool := make([]string, n)
	for i := range pool {
		pool[i] = g.String()
	}
	return pool
}

// Generated 返回累计生成的字符串数量
func (g *Generator) Generated() uint64 {
	return g.generated
}
