package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

type planRepository struct {
	m *Memory
}

func copyPlan(p *model.MitigationPlan) *model.MitigationPlan {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func (r *planRepository) Put(ctx context.Context, projectID types.ProjectID, plan *model.MitigationPlan) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.project(projectID).plans.put(plan.RiskID, copyPlan(plan))
	return nil
}

func (r *planRepository) Get(ctx context.Context, projectID types.ProjectID, riskID types.RiskID) (*model.MitigationPlan, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	if p := r.m.lookup(projectID); p != nil {
		if plan, ok := p.plans.get(riskID); ok {
			return copyPlan(plan), nil
		}
	}
	return nil, goerr.Wrap(model.ErrNotFound, "mitigation plan not found",
		goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
}

func (r *planRepository) List(ctx context.Context, projectID types.ProjectID) ([]*model.MitigationPlan, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	p := r.m.lookup(projectID)
	if p == nil {
		return []*model.MitigationPlan{}, nil
	}

	plans := p.plans.list()
	for i, plan := range plans {
		plans[i] = copyPlan(plan)
	}
	return plans, nil
}
