package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	evt_model "github.com/RoyceAzure/lab/shopler/internal/domain/model/event"
	"github.com/segmentio/kafka-go"
)

// IOrderEventProducer 訂單事件發布
// 事件在交易 commit 之後 best-effort 發布，失敗只記 log，不影響訂單流程
type IOrderEventProducer interface {
	ProduceOrderEvent(ctx context.Context, userID int64, evt evt_model.Event) error
	Close() error
}

// topic: 由建立時設置
// key: userID，同一用戶的訂單事件保序
type OrderEventProducer struct {
	writer *kafka.Writer
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka order event producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}
	return &OrderEventProducer{writer: writer}
}

func (p *OrderEventProducer) ProduceOrderEvent(ctx context.Context, userID int64, evt evt_model.Event) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", userID)),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(evt.Type()),
			},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)
