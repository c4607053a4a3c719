// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package audit records the outcome of sensitive business operations.
//
// # Architecture
//
// [Run] wraps an operation explicitly at the call site. It records exactly one
// [Entry] per invocation through a [Recorder] and always hands back the
// operation's own result. Recorders write outside the caller's transaction, so
// a rolled-back operation still leaves its failure entry behind.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/taskly/internal/platform/ctxutil"
	"github.com/taibuivan/taskly/pkg/pointer"
)

// Entry statuses and messages.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	MessageSuccess = "정상 등록 완료"
	FailurePrefix  = "사유: "
)

// Audited actions.
const (
	ActionManagerSave = "manager.save"
)

// Entry is one audit log record.
type Entry struct {
	Action       string    `json:"action"`
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	ActorID      *int64    `json:"actorId,omitempty"`
	TodoID       *int64    `json:"todoId,omitempty"`
	TargetUserID *int64    `json:"targetUserId,omitempty"`
	RequestID    string    `json:"requestId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Run executes fn and records its outcome.
//
// template supplies the action and subject ids. Status, Message and CreatedAt
// are filled in by Run. A failing recorder is logged and never changes the
// value or error returned by fn. If fn panics, a failure entry is recorded and
// the panic continues.
func Run[T any](ctx context.Context, recorder Recorder, template Entry, fn func(ctx context.Context) (T, error)) (result T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			record(ctx, recorder, failureEntry(template, fmt.Errorf("panic: %v", recovered)))
			panic(recovered)
		}
	}()

	result, err = fn(ctx)
	if err != nil {
		record(ctx, recorder, failureEntry(template, err))
		return result, err
	}

	entry := template
	entry.Status = StatusSuccess
	entry.Message = MessageSuccess
	record(ctx, recorder, entry)

	return result, nil
}

func failureEntry(template Entry, err error) Entry {
	entry := template
	entry.Status = StatusFailure
	entry.Message = FailurePrefix + err.Error()
	return entry
}

// record stamps entry with the time and request id, then writes it detached
// from ctx cancellation.
func record(ctx context.Context, recorder Recorder, entry Entry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.RequestID == "" {
		entry.RequestID = ctxutil.GetRequestID(ctx)
	}

	if err := recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "audit_record_failed",
			slog.String("action", entry.Action),
			slog.String("status", entry.Status),
			slog.Int64("todo_id", pointer.Val(entry.TodoID)),
			slog.Any("error", err),
		)
	}
}

// # Composition

// Multi fans an entry out to several recorders. Every recorder is attempted.
func Multi(recorders ...Recorder) Recorder {
	return multiRecorder(recorders)
}

type multiRecorder []Recorder

func (recorders multiRecorder) Record(ctx context.Context, entry Entry) error {
	var errs []error
	for _, recorder := range recorders {
		if err := recorder.Record(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Counter receives one increment per recorded entry.
type Counter interface {
	RecordAuditEntry(status, result string)
}

// Counted reports every Record call on recorder to counter.
func Counted(recorder Recorder, counter Counter) Recorder {
	return countedRecorder{recorder: recorder, counter: counter}
}

type countedRecorder struct {
	recorder Recorder
	counter  Counter
}

func (counted countedRecorder) Record(ctx context.Context, entry Entry) error {
	err := counted.recorder.Record(ctx, entry)

	result := "ok"
	if err != nil {
		result = "error"
	}
	counted.counter.RecordAuditEntry(entry.Status, result)

	return err
}
