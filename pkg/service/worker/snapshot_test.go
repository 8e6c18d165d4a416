package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/service/worker"
)

type exporterMock struct {
	mu    sync.Mutex
	calls map[types.ProjectID]int
	fail  map[types.ProjectID]bool
}

func newExporterMock() *exporterMock {
	return &exporterMock{
		calls: map[types.ProjectID]int{},
		fail:  map[types.ProjectID]bool{},
	}
}

func (m *exporterMock) Export(ctx context.Context, projectID types.ProjectID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[projectID]++
	if m.fail[projectID] {
		return "", errors.New("export failed")
	}
	return "mock://" + projectID.String(), nil
}

func (m *exporterMock) count(projectID types.ProjectID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[projectID]
}

func TestSnapshotWorker_ImmediateInitialExport(t *testing.T) {
	mock := newExporterMock()
	w := worker.NewSnapshotWorker(mock, []types.ProjectID{"p1", "p2"}, 10*time.Minute)

	gt.NoError(t, w.Start(context.Background())).Required()
	time.Sleep(50 * time.Millisecond)
	w.Stop()

	gt.Value(t, mock.count("p1")).Equal(1)
	gt.Value(t, mock.count("p2")).Equal(1)
}

func TestSnapshotWorker_PeriodicExport(t *testing.T) {
	mock := newExporterMock()
	w := worker.NewSnapshotWorker(mock, []types.ProjectID{"p1"}, 50*time.Millisecond)

	gt.NoError(t, w.Start(context.Background())).Required()
	time.Sleep(180 * time.Millisecond)
	w.Stop()

	gt.Bool(t, mock.count("p1") >= 2).True()
}

func TestSnapshotWorker_ContinuesAfterFailure(t *testing.T) {
	mock := newExporterMock()
	mock.fail["broken"] = true
	w := worker.NewSnapshotWorker(mock, []types.ProjectID{"broken", "p1"}, 10*time.Minute)

	gt.NoError(t, w.Start(context.Background())).Required()
	time.Sleep(50 * time.Millisecond)
	w.Stop()

	gt.Value(t, mock.count("broken")).Equal(1)
	gt.Value(t, mock.count("p1")).Equal(1)
}

func TestSnapshotWorker_StopsCleanly(t *testing.T) {
	w := worker.NewSnapshotWorker(newExporterMock(), []types.ProjectID{"p1"}, 100*time.Millisecond)
	gt.NoError(t, w.Start(context.Background())).Required()
	time.Sleep(20 * time.Millisecond)

	stopStart := time.Now()
	w.Stop()
	gt.Bool(t, time.Since(stopStart) < time.Second).True()
}

func TestSnapshotWorker_RejectsNonPositiveInterval(t *testing.T) {
	w := worker.NewSnapshotWorker(newExporterMock(), nil, 0)
	gt.Value(t, w.Start(context.Background())).NotNil()
}
