package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

type analysisRepository struct {
	m *Memory
}

func (r *analysisRepository) Put(ctx context.Context, projectID types.ProjectID, risk *model.AnalyzedRisk) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.project(projectID).analyses.put(risk.RiskID, risk.Clone())
	return nil
}

func (r *analysisRepository) Get(ctx context.Context, projectID types.ProjectID, riskID types.RiskID) (*model.AnalyzedRisk, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	if p := r.m.lookup(projectID); p != nil {
		if risk, ok := p.analyses.get(riskID); ok {
			return risk.Clone(), nil
		}
	}
	return nil, goerr.Wrap(model.ErrNotFound, "analyzed risk not found",
		goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
}

func (r *analysisRepository) List(ctx context.Context, projectID types.ProjectID) ([]*model.AnalyzedRisk, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	p := r.m.lookup(projectID)
	if p == nil {
		return []*model.AnalyzedRisk{}, nil
	}

	risks := p.analyses.list()
	for i, risk := range risks {
		risks[i] = risk.Clone()
	}
	return risks, nil
}
