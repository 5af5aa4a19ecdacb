// Package config 加载基准运行配置并初始化日志。
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	"internbench/dedup"
	"internbench/harness"
	"internbench/report"
)

// Config 一次运行的全部配置，字段名即 YAML key（大小写不敏感）
type Config struct {
	Strategies   []string `json:",default=[intern,strong,weak]"`
	StringCounts []int    `json:",default=[1]"`
	CacheHits    []bool   `json:",default=[true]"`
	Threads      int      `json:",default=1"`
	Seed         uint64   `json:",default=1"`
	Presize      int      `json:",optional"`
	LRUSize      int      `json:",default=60013"`
	Warmup       Phase
	Measure      Phase
	Report       report.Conf
	Log          LogConf
}

// Phase 预热或测量阶段
type Phase struct {
	Iterations int           `json:",default=5"`
	Time       time.Duration `json:",default=1s"`
}

type LogConf struct {
	Mode     string `json:",default=console,options=console|file"`
	Path     string `json:",default=logs"`
	Encoding string `json:",default=plain,options=json|plain"`
	Level    string `json:",default=info,options=debug|info|error|severe"`
}

// rawConfig 与 Config 字段相同但没有方法，
// 避免 go-zero 在加载时调用 Validate：flag 覆盖之后才校验
type rawConfig Config

// Load 从 YAML/JSON 文件加载配置，path 为空时只填默认值。
// 不做校验，调用方在合并 flag 后调用 Validate。
func Load(path string) (Config, error) {
	var c rawConfig
	var err error
	if path == "" {
		err = conf.FillDefault(&c)
	} else {
		err = conf.Load(path, &c)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config %q: %w", path, err)
	}
	return Config(c), nil
}

// LoadBytes 从 YAML 内容加载配置，同样不做校验
func LoadBytes(content []byte) (Config, error) {
	var c rawConfig
	if err := conf.LoadFromYamlBytes(content, &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return Config(c), nil
}

func (c Config) Validate() error {
	if len(c.Strategies) == 0 {
		return fmt.Errorf("config: no strategy selected")
	}
	known := dedup.Names()
	for _, name := range c.Strategies {
		if !slices.Contains(known, name) {
			return fmt.Errorf("config: %w: %q", dedup.ErrUnknownStrategy, name)
		}
	}
	if len(c.StringCounts) == 0 || len(c.CacheHits) == 0 {
		return fmt.Errorf("config: empty parameter grid")
	}
	for _, p := range c.Grid() {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if c.LRUSize <= 0 {
		return fmt.Errorf("config: lruSize must be positive, got %d", c.LRUSize)
	}
	if err := c.RunnerConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return c.Report.Check()
}

// Grid 参数组合
func (c Config) Grid() []harness.Params {
	return harness.Grid(c.StringCounts, c.CacheHits)
}

func (c Config) RunnerConfig() harness.RunnerConfig {
	return harness.RunnerConfig{
		Threads:           c.Threads,
		WarmupIterations:  c.Warmup.Iterations,
		WarmupTime:        c.Warmup.Time,
		MeasureIterations: c.Measure.Iterations,
		MeasureTime:       c.Measure.Time,
	}
}

func (c Config) DedupOptions() dedup.Options {
	return dedup.Options{Presize: c.Presize, LRUSize: c.LRUSize}
}

// SetupLog 按配置初始化 logx，关闭统计日志
func SetupLog(c LogConf) error {
	if err := logx.SetUp(logx.LogConf{
		ServiceName: "internbench",
		Mode:        c.Mode,
		Path:        c.Path,
		Encoding:    c.Encoding,
		Level:       c.Level,
	}); err != nil {
		return fmt.Errorf("setup log: %w", err)
	}
	logx.DisableStat()
	return nil
}
