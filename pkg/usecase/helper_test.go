package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskstage/catalog"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/repository/memory"
	"github.com/secmon-lab/riskstage/pkg/usecase"
)

const testProject types.ProjectID = "test-project"

var fixedTime = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func newUseCases(t *testing.T, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	catalogs, err := catalog.Default()
	gt.NoError(t, err).Required()

	opts = append([]usecase.Option{usecase.WithClock(func() time.Time { return fixedTime })}, opts...)
	return usecase.New(memory.New(), catalogs, opts...)
}

func fill(n int, v float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return values
}

func analyze(t *testing.T, uc *usecase.UseCases, riskID types.RiskID, probability, loss float64) *model.AnalyzedRisk {
	t.Helper()
	risk, err := uc.Analysis.AnalyzeRisk(context.Background(), testProject, usecase.AnalyzeInput{
		RiskID:              riskID,
		ExpertProbabilities: fill(10, probability),
		ExpertLosses:        fill(10, loss),
	})
	gt.NoError(t, err).Required()
	return risk
}

type notifierMock struct {
	mu      sync.Mutex
	results []*model.MonitoringResult
	called  chan struct{}
}

func newNotifierMock() *notifierMock {
	return &notifierMock{called: make(chan struct{}, 10)}
}

func (m *notifierMock) NotifyMonitoring(ctx context.Context, projectID types.ProjectID, result *model.MonitoringResult) error {
	m.mu.Lock()
	m.results = append(m.results, result)
	m.mu.Unlock()
	m.called <- struct{}{}
	return nil
}

type exporterMock struct {
	snapshots []*model.ProjectSnapshot
}

func (m *exporterMock) Export(ctx context.Context, snapshot *model.ProjectSnapshot) (string, error) {
	m.snapshots = append(m.snapshots, snapshot)
	return "mock://" + snapshot.ProjectID.String(), nil
}
