// internbench 比较几种字符串去重策略在并发下的平均调用耗时。
//
//	internbench run --strategy intern,strong,weak --strings 1,100 --cache-hit true,false --threads 4
//	internbench list
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zeromicro/go-zero/core/logx"

	"internbench/config"
	"internbench/dedup"
	"internbench/harness"
	"internbench/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "internbench",
		Short:         "Benchmark string deduplication strategies under concurrent access",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newListCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available strategies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range dedup.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

type runFlags struct {
	configPath string
	gops       bool
}

func newRunCmd() *cobra.Command {
	var rf runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark grid and report average time per invocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(rf.configPath)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd.Flags(), &cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SetupLog(cfg.Log); err != nil {
				return err
			}
			defer logx.Close()

			if rf.gops {
				if err := agent.Listen(agent.Options{}); err != nil {
					return fmt.Errorf("start gops agent: %w", err)
				}
				defer agent.Close()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = run(ctx, cfg, cmd.OutOrStdout())
			if err != nil {
				logx.Errorf("run failed: %v", err)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&rf.configPath, "config", "c", "", "YAML config file")
	f.BoolVar(&rf.gops, "gops", false, "start a gops agent for runtime inspection")
	f.StringSlice("strategy", nil, "strategies to run, see 'internbench list'")
	f.IntSlice("strings", nil, "stringCount values")
	f.BoolSlice("cache-hit", nil, "cacheHit values")
	f.Int("threads", 0, "concurrent benchmark workers")
	f.Uint64("seed", 0, "random seed")
	f.Int("warmup", 0, "warmup iterations")
	f.Duration("warmup-time", 0, "time per warmup iteration")
	f.Int("iterations", 0, "measurement iterations")
	f.Duration("time", 0, "time per measurement iteration")
	f.Int("lru-size", 0, "capacity of the lru strategy")
	f.String("format", "", "output format: text or json")
	f.StringP("output", "o", "", "write the report to a file instead of stdout")
	f.StringSlice("kafka-brokers", nil, "publish results to these Kafka brokers")
	f.String("kafka-topic", "", "Kafka topic for results")
	f.String("mongo-uri", "", "store results in MongoDB")
	f.String("mongo-db", "", "MongoDB database")
	f.String("mongo-collection", "", "MongoDB collection")
	f.String("log-level", "", "log level: debug, info, error, severe")
	return cmd
}

// applyFlags 显式设置的 flag 覆盖配置文件
func applyFlags(f *pflag.FlagSet, cfg *config.Config) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && f.Changed(name) {
			err = apply()
		}
	}
	set("strategy", func() (e error) { cfg.Strategies, e = f.GetStringSlice("strategy"); return })
	set("strings", func() (e error) { cfg.StringCounts, e = f.GetIntSlice("strings"); return })
	set("cache-hit", func() (e error) { cfg.CacheHits, e = f.GetBoolSlice("cache-hit"); return })
	set("threads", func() (e error) { cfg.Threads, e = f.GetInt("threads"); return })
	set("seed", func() (e error) { cfg.Seed, e = f.GetUint64("seed"); return })
	set("warmup", func() (e error) { cfg.Warmup.Iterations, e = f.GetInt("warmup"); return })
	set("warmup-time", func() (e error) { cfg.Warmup.Time, e = f.GetDuration("warmup-time"); return })
	set("iterations", func() (e error) { cfg.Measure.Iterations, e = f.GetInt("iterations"); return })
	set("time", func() (e error) { cfg.Measure.Time, e = f.GetDuration("time"); return })
	set("lru-size", func() (e error) { cfg.LRUSize, e = f.GetInt("lru-size"); return })
	set("format", func() (e error) { cfg.Report.Format, e = f.GetString("format"); return })
	set("output", func() (e error) { cfg.Report.Output, e = f.GetString("output"); return })
	set("kafka-brokers", func() (e error) { cfg.Report.Kafka.Brokers, e = f.GetStringSlice("kafka-brokers"); return })
	set("kafka-topic", func() (e error) { cfg.Report.Kafka.Topic, e = f.GetString("kafka-topic"); return })
	set("mongo-uri", func() (e error) { cfg.Report.Mongo.URI, e = f.GetString("mongo-uri"); return })
	set("mongo-db", func() (e error) { cfg.Report.Mongo.Database, e = f.GetString("mongo-db"); return })
	set("mongo-collection", func() (e error) { cfg.Report.Mongo.Collection, e = f.GetString("mongo-collection"); return })
	set("log-level", func() (e error) { cfg.Log.Level, e = f.GetString("log-level"); return })
	return err
}

func run(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	results, err := runSuite(ctx, cfg)
	if err != nil {
		return err
	}
	rep, err := report.New(ctx, cfg.Report, stdout)
	if err != nil {
		return err
	}
	if err := rep.Report(ctx, results); err != nil {
		_ = rep.Close()
		return err
	}
	return rep.Close()
}

// runSuite 对每个 策略 × 参数组合 跑一次试验，每次试验新建一张表
func runSuite(ctx context.Context, cfg config.Config) ([]harness.Result, error) {
	runner, err := harness.NewRunner(cfg.RunnerConfig())
	if err != nil {
		return nil, err
	}
	grid := cfg.Grid()
	results := make([]harness.Result, 0, len(cfg.Strategies)*len(grid))
	for _, name := range cfg.Strategies {
		for _, p := range grid {
			in, err := dedup.New(name, cfg.DedupOptions())
			if err != nil {
				return nil, err
			}
			trial, err := harness.NewTrial(name, in, p, cfg.Seed)
			if err != nil {
				return nil, err
			}
			logx.Infow("trial started",
				logx.Field("strategy", name),
				logx.Field("params", p.String()))
			res, err := runner.Run(ctx, trial)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", name, p, err)
			}
			results = append(results, res)
		}
	}
	return results, nil
}
