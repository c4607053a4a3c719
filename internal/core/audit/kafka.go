// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/taibuivan/taskly/internal/platform/constants"
)

// messageWriter is the part of [*kafka.Writer] used by the recorder.
type messageWriter interface {
	WriteMessages(ctx context.Context, messages ...kafka.Message) error
	Close() error
}

// KafkaRecorder publishes entries as JSON to a topic.
//
// The writer is asynchronous: Record only fails on encoding errors, and
// delivery failures are logged by the completion callback.
type KafkaRecorder struct {
	writer messageWriter
}

// NewKafkaRecorder creates an async producer for topic.
func NewKafkaRecorder(brokers []string, topic string, logger *slog.Logger) *KafkaRecorder {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		RequiredAcks: kafka.RequireOne,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("audit_kafka_delivery_failed",
					slog.String("topic", topic),
					slog.Int("messages", len(messages)),
					slog.Any("error", err),
				)
			}
		},
	}
	return &KafkaRecorder{writer: writer}
}

// Record implements [Recorder].
func (recorder *KafkaRecorder) Record(ctx context.Context, entry Entry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("kafka_audit_encode_failed: %w", err)
	}

	message := kafka.Message{Value: value}
	if entry.TodoID != nil {
		message.Key = []byte(strconv.FormatInt(*entry.TodoID, 10))
	}
	if entry.RequestID != "" {
		message.Headers = append(message.Headers, kafka.Header{Key: constants.HeaderXRequestID, Value: []byte(entry.RequestID)})
	}

	if err := recorder.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("kafka_audit_publish_failed: %w", err)
	}

	return nil
}

// Close flushes pending messages and closes the writer.
func (recorder *KafkaRecorder) Close() error {
	return recorder.writer.Close()
}
