package harness

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidRunner 运行器的轮次、时长或线程数不合法
var ErrInvalidRunner = errors.New("harness: invalid runner config")

// RunnerConfig 预热与测量的轮次和时长
type RunnerConfig struct {
	Threads           int
	WarmupIterations  int
	WarmupTime        time.Duration
	MeasureIterations int
	MeasureTime       time.Duration
}

func (c RunnerConfig) Validate() error {
	switch {
	case c.Threads <= 0:
		return fmt.Errorf("%w: threads must be positive, got %d", ErrInvalidRunner, c.Threads)
	case c.WarmupIterations < 0:
		return fmt.Errorf("%w: warmup iterations must not be negative, got %d", ErrInvalidRunner, c.WarmupIterations)
	case c.WarmupIterations > 0 && c.WarmupTime <= 0:
		return fmt.Errorf("%w: warmup time must be positive, got %s", ErrInvalidRunner, c.WarmupTime)
	case c.MeasureIterations <= 0:
		return fmt.Errorf("%w: measurement iterations must be positive, got %d", ErrInvalidRunner, c.MeasureIterations)
	case c.MeasureTime <= 0:
		return fmt.Errorf("%w: measurement time must be positive, got %s", ErrInvalidRunner, c.MeasureTime)
	}
	return nil
}

// Runner 以平均时间模式运行试验：
// 每轮迭代内 Threads 个 worker 各自反复调用 Invoke 直到时间用完，
// 该轮得分是各 worker 的 耗时/调用次数 的平均值。
type Runner struct {
	cfg RunnerConfig
}

func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg}, nil
}

// Run 执行一次试验。ctx 取消后在当前调用结束时停止并返回 ctx.Err()。
func (r *Runner) Run(ctx context.Context, trial *Trial) (Result, error) {
	workers := make([]*Worker, r.cfg.Threads)
	for i := range workers {
		workers[i] = trial.NewWorker()
	}
	fields := []logx.LogField{
		logx.Field("strategy", trial.Strategy),
		logx.Field("params", trial.Params.String()),
		logx.Field("threads", r.cfg.Threads),
	}

	for i := 0; i < r.cfg.WarmupIterations; i++ {
		score, err := r.iteration(ctx, trial, workers, r.cfg.WarmupTime)
		if err != nil {
			return Result{}, err
		}
		logx.WithContext(ctx).Debugw("warmup iteration",
			append(fields, logx.Field("iteration", i+1), logx.Field("nsPerOp", score))...)
	}

	res := Result{
		Strategy:    trial.Strategy,
		StringCount: trial.Params.StringCount,
		CacheHit:    trial.Params.CacheHit,
		Threads:     r.cfg.Threads,
		Scores:      make([]float64, 0, r.cfg.MeasureIterations),
	}
	for i := 0; i < r.cfg.MeasureIterations; i++ {
		score, err := r.iteration(ctx, trial, workers, r.cfg.MeasureTime)
		if err != nil {
			return Result{}, err
		}
		res.Scores = append(res.Scores, score)
		logx.WithContext(ctx).Infow("measurement iteration",
			append(fields, logx.Field("iteration", i+1), logx.Field("nsPerOp", score))...)
	}

	if err := res.summarize(); err != nil {
		return Result{}, fmt.Errorf("summarize %s: %w", trial.Strategy, err)
	}
	res.TableSize = trial.TableSize()
	res.Timestamp = time.Now()
	return res, nil
}

// iteration 跑一轮并返回 ns/op
func (r *Runner) iteration(ctx context.Context, trial *Trial, workers []*Worker, d time.Duration) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	trial.SetupIteration()

	var stop atomic.Bool
	timer := time.AfterFunc(d, func() { stop.Store(true) })
	defer timer.Stop()
	unregister := context.AfterFunc(ctx, func() { stop.Store(true) })
	defer unregister()

	scores := make([]float64, len(workers))
	var g errgroup.Group
	for i, w := range workers {
		g.Go(func() error {
			var ops int64
			start := time.Now()
			for {
				w.Invoke()
				ops++
				if stop.Load() {
					break
				}
			}
			scores[i] = float64(time.Since(start).Nanoseconds()) / float64(ops)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return stats.Mean(scores)
}
