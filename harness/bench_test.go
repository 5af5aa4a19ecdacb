package harness

import (
	"testing"

	"internbench/dedup"
)

/*
对比三种字符串去重方式在并发访问下的开销：
  1. intern: 运行时自带的 unique 包
  2. strong: 强引用并发表（xsync.MapOf LoadOrStore）
  3. weak:   弱引用并发表（值可被 GC 回收）
以及对照组 syncmap / lru / haxmap / sharded。

执行命令:

	go test -run '^$' -bench '^Benchmark' -benchtime=3s -count=5 -benchmem ./harness/

并发度由 -cpu 控制，例如 -cpu 1,4,8。

关注指标:
  - ns/op:     一次调用（处理 stringCount 个字符串）的耗时
  - ns/string: 平摊到每个字符串的耗时
  - B/op、allocs/op: cacheHit=false 时主要来自随机字符串本身，
    cacheHit=true 时 strong 应为 0，weak 只有首次插入时分配

待验证的假设（尚未在固定机器上测得数据，跑完后用实测均值替换）:
 1. cacheHit=true 时 strong 可能最快，weak 每次命中多一次弱指针解引用
 2. cacheHit=false 时耗时可能以随机字符串生成为主；strong 表只增不减，
    weak 和 unique 的表项可被 GC 回收
*/

var benchGrid = Grid([]int{1, 100, 10000}, []bool{true, false})

func benchmarkStrategy(b *testing.B, name string) {
	for _, p := range benchGrid {
		// 试验级：表在子基准开始前创建一次，b.N 逐步放大的多次调用共用
		in, err := dedup.New(name, dedup.Options{})
		if err != nil {
			b.Fatal(err)
		}
		trial, err := NewTrial(name, in, p, 1)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(p.String(), func(b *testing.B) {
			// 迭代级：每次重建字符串池
			trial.SetupIteration()
			b.ReportAllocs()
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				w := trial.NewWorker()
				for pb.Next() {
					w.Invoke()
				}
			})
			b.ReportMetric(float64(b.Elapsed().Nanoseconds())/float64(b.N)/float64(p.StringCount), "ns/string")
		})
	}
}

func BenchmarkIntern(b *testing.B) {
	benchmarkStrategy(b, dedup.Builtin)
}

func BenchmarkStrongMap(b *testing.B) {
	benchmarkStrategy(b, dedup.Strong)
}

func BenchmarkWeakMap(b *testing.B) {
	benchmarkStrategy(b, dedup.Weak)
}

func BenchmarkSyncMap(b *testing.B) {
	benchmarkStrategy(b, dedup.SyncMap)
}

func BenchmarkLRU(b *testing.B) {
	benchmarkStrategy(b, dedup.LRU)
}

func BenchmarkHaxMap(b *testing.B) {
	benchmarkStrategy(b, dedup.HaxMap)
}

func BenchmarkShardedMap(b *testing.B) {
	benchmarkStrategy(b, dedup.Sharded)
}
