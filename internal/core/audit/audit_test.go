// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskly/internal/core/audit"
	"github.com/taibuivan/taskly/internal/platform/ctxutil"
	"github.com/taibuivan/taskly/pkg/pointer"
)

// memoryRecorder keeps entries in memory and can be told to fail.
type memoryRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
	err     error
}

func (recorder *memoryRecorder) Record(_ context.Context, entry audit.Entry) error {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	recorder.entries = append(recorder.entries, entry)
	return recorder.err
}

var managerTemplate = audit.Entry{
	Action:       audit.ActionManagerSave,
	ActorID:      pointer.To[int64](1),
	TodoID:       pointer.To[int64](10),
	TargetUserID: pointer.To[int64](2),
}

/*
TestRun_Success records a single success entry and returns the result.
*/
func TestRun_Success(t *testing.T) {
	recorder := &memoryRecorder{}

	ctx := ctxutil.WithRequestID(context.Background(), "req-77")
	result, err := audit.Run(ctx, recorder, managerTemplate, func(context.Context) (int64, error) {
		return 77, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(77), result)
	require.Len(t, recorder.entries, 1)

	entry := recorder.entries[0]
	assert.Equal(t, audit.ActionManagerSave, entry.Action)
	assert.Equal(t, audit.StatusSuccess, entry.Status)
	assert.Equal(t, "정상 등록 완료", entry.Message)
	assert.Equal(t, int64(10), *entry.TodoID)
	assert.Equal(t, "req-77", entry.RequestID)
	assert.False(t, entry.CreatedAt.IsZero())
}

/*
TestRun_Failure records the reason and propagates the original error.
*/
func TestRun_Failure(t *testing.T) {
	recorder := &memoryRecorder{}
	businessErr := errors.New("일정을 만든 유저가 유효하지 않습니다.")

	_, err := audit.Run(context.Background(), recorder, managerTemplate, func(context.Context) (int64, error) {
		return 0, businessErr
	})

	assert.Same(t, businessErr, err)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.StatusFailure, recorder.entries[0].Status)
	assert.Equal(t, "사유: 일정을 만든 유저가 유효하지 않습니다.", recorder.entries[0].Message)
}

/*
TestRun_RecorderFailure never changes the business outcome.
*/
func TestRun_RecorderFailure(t *testing.T) {
	recorder := &memoryRecorder{err: errors.New("audit table locked")}

	result, err := audit.Run(context.Background(), recorder, managerTemplate, func(context.Context) (string, error) {
		return "saved", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "saved", result)

	businessErr := errors.New("duplicate manager")
	_, err = audit.Run(context.Background(), recorder, managerTemplate, func(context.Context) (string, error) {
		return "", businessErr
	})
	assert.Same(t, businessErr, err)
	assert.Len(t, recorder.entries, 2)
}

/*
TestRun_Panic records a failure and re-raises.
*/
func TestRun_Panic(t *testing.T) {
	recorder := &memoryRecorder{}

	assert.PanicsWithValue(t, "nil todo", func() {
		_, _ = audit.Run(context.Background(), recorder, managerTemplate, func(context.Context) (int, error) {
			panic("nil todo")
		})
	})

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.StatusFailure, recorder.entries[0].Status)
	assert.Equal(t, "사유: panic: nil todo", recorder.entries[0].Message)
}

/*
TestRun_CancelledContext still records the entry.
*/
func TestRun_CancelledContext(t *testing.T) {
	recorder := &memoryRecorder{}
	ctx, cancel := context.WithCancel(context.Background())

	_, err := audit.Run(ctx, recorder, managerTemplate, func(context.Context) (int, error) {
		cancel()
		return 0, context.Canceled
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, recorder.entries, 1)
}

// counterStub counts audit entries by status and result.
type counterStub struct {
	counts map[string]int
}

func (counter *counterStub) RecordAuditEntry(status, result string) {
	counter.counts[status+"/"+result]++
}

/*
TestMulti_Counted fans out to every recorder and joins their errors.
*/
func TestMulti_Counted(t *testing.T) {
	healthy := &memoryRecorder{}
	broken := &memoryRecorder{err: errors.New("broker down")}
	counter := &counterStub{counts: make(map[string]int)}

	recorder := audit.Counted(audit.Multi(broken, healthy), counter)
	err := recorder.Record(context.Background(), audit.Entry{Action: audit.ActionManagerSave, Status: audit.StatusSuccess})

	assert.ErrorContains(t, err, "broker down")
	assert.Len(t, healthy.entries, 1)
	assert.Len(t, broken.entries, 1)
	assert.Equal(t, 1, counter.counts["success/error"])
}
