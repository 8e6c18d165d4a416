package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

type monitoringRepository struct {
	m *Memory
}

func copyMonitoringResult(res *model.MonitoringResult) *model.MonitoringResult {
	copied := *res
	copied.MitigationMeasure = copyPlan(res.MitigationMeasure)
	return &copied
}

func (r *monitoringRepository) Put(ctx context.Context, projectID types.ProjectID, result *model.MonitoringResult) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.project(projectID).monitoring.put(result.RiskID, copyMonitoringResult(result))
	return nil
}

func (r *monitoringRepository) Get(ctx context.Context, projectID types.ProjectID, riskID types.RiskID) (*model.MonitoringResult, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	if p := r.m.lookup(projectID); p != nil {
		if res, ok := p.monitoring.get(riskID); ok {
			return copyMonitoringResult(res), nil
		}
	}
	return nil, goerr.Wrap(model.ErrNotFound, "monitoring result not found",
		goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
}

func (r *monitoringRepository) List(ctx context.Context, projectID types.ProjectID) ([]*model.MonitoringResult, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	p := r.m.lookup(projectID)
	if p == nil {
		return []*model.MonitoringResult{}, nil
	}

	results := p.monitoring.list()
	for i, res := range results {
		results[i] = copyMonitoringResult(res)
	}
	return results, nil
}
