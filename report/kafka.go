package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"

	"internbench/harness"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaReporter 每个结果一条消息，key 是策略名，value 是 JSON
type KafkaReporter struct {
	w messageWriter
}

func NewKafka(c KafkaConf) *KafkaReporter {
	return &KafkaReporter{w: &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.topic(),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

func (r *KafkaReporter) Report(ctx context.Context, results []harness.Result) error {
	if len(results) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(results))
	for _, res := range results {
		value, err := sonic.Marshal(res)
		if err != nil {
			return fmt.Errorf("report: marshal kafka message: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(res.Strategy),
			Value: value,
			Headers: []kafka.Header{
				{Key: "stringCount", Value: []byte(strconv.Itoa(res.StringCount))},
				{Key: "cacheHit", Value: []byte(strconv.FormatBool(res.CacheHit))},
			},
		})
	}
	if err := r.w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("report: write kafka messages: %w", err)
	}
	return nil
}

func (r *KafkaReporter) Close() error {
	return r.w.Close()
}
