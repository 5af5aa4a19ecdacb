// Package report 把基准结果输出到终端、文件、Kafka 或 MongoDB。
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"internbench/harness"
)

// 输出格式
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Kafka/MongoDB 目标未配置时的默认值
const (
	DefaultKafkaTopic      = "internbench-results"
	DefaultMongoDatabase   = "internbench"
	DefaultMongoCollection = "results"
)

var ErrUnknownFormat = errors.New("report: unknown format")

// Conf 报告相关配置
type Conf struct {
	Format string `json:",default=text,options=text|json"`
	// Output 为空时写到标准输出
	Output string `json:",optional"`
	Kafka  KafkaConf `json:",optional"`
	Mongo  MongoConf `json:",optional"`
}

// KafkaConf Brokers 为空时不发送
type KafkaConf struct {
	Brokers []string `json:",optional"`
	Topic   string   `json:",optional"`
}

func (c KafkaConf) topic() string {
	if c.Topic == "" {
		return DefaultKafkaTopic
	}
	return c.Topic
}

// MongoConf URI 为空时不写入
type MongoConf struct {
	URI        string `json:",optional"`
	Database   string `json:",optional"`
	Collection string `json:",optional"`
}

func (c MongoConf) target() (database, collection string) {
	database, collection = c.Database, c.Collection
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}
	return database, collection
}

// Check 校验输出配置。不叫 Validate，免得 go-zero 加载时提前校验嵌套配置
func (c Conf) Check() error {
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
	for _, b := range c.Kafka.Brokers {
		if b == "" {
			return errors.New("report: empty kafka broker address")
		}
	}
	return nil
}

// Reporter 结果输出端
type Reporter interface {
	Report(ctx context.Context, results []harness.Result) error
	Close() error
}

// New 按配置组装输出端：总是有一个文本或 JSON 输出，另外按需加上 Kafka 和 MongoDB
func New(ctx context.Context, c Conf, stdout io.Writer) (Reporter, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}

	w, closer := stdout, io.Closer(nopCloser{})
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return nil, fmt.Errorf("report: create output: %w", err)
		}
		w, closer = f, f
	}

	var primary Reporter
	switch c.Format {
	case FormatJSON:
		primary = &JSONReporter{w: w, closer: closer}
	default:
		primary = &TextReporter{w: w, closer: closer}
	}
	reporters := Multi{primary}

	if len(c.Kafka.Brokers) > 0 {
		reporters = append(reporters, NewKafka(c.Kafka))
	}
	if c.Mongo.URI != "" {
		mr, err := NewMongo(ctx, c.Mongo)
		if err != nil {
			_ = reporters.Close()
			return nil, err
		}
		reporters = append(reporters, mr)
	}
	if len(reporters) == 1 {
		return primary, nil
	}
	return reporters, nil
}

// Multi 依次写到每个输出端，错误合并返回
type Multi []Reporter

func (m Multi) Report(ctx context.Context, results []harness.Result) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(ctx, results); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
