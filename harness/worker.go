package harness

import "internbench/randstr"

// Sink 吞掉每次调用的结果，避免编译器把调用当成死代码消除
type Sink struct {
	last  string
	bytes int
}

func (s *Sink) Consume(v string) {
	s.last = v
	s.bytes += len(v)
}

// Bytes 累计吞掉的字节数
func (s *Sink) Bytes() int {
	return s.bytes
}

// Worker 单个基准线程。不是并发安全的，每个 goroutine 一个。
type Worker struct {
	trial *Trial
	gen   *randstr.Generator
	sink  Sink
}

// Invoke 一次计时调用：处理 StringCount 个字符串
func (w *Worker) Invoke() {
	in := w.trial.Interner
	n := w.trial.Params.StringCount
	if w.trial.Params.CacheHit {
		pool := w.trial.pool[:n]
		for _, s := range pool {
			w.sink.Consume(in.Intern(s))
		}
		return
	}
	for i := 0; i < n; i++ {
		w.sink.Consume(in.Intern(w.gen.String()))
	}
}

// Generated 该 worker 自己生成的字符串数
func (w *Worker) Generated() uint64 {
	return w.gen.Generated()
}

func (w *Worker) Sink() *Sink {
	return &w.sink
}
