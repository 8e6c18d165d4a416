package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

type sourceRepository struct {
	m *Memory
}

func (r *sourceRepository) Get(ctx context.Context, projectID types.ProjectID) (*model.RiskSourceCatalog, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	p := r.m.lookup(projectID)
	if p == nil || p.sources == nil {
		return nil, goerr.Wrap(model.ErrNotFound, "risk sources not found", goerr.V(model.ProjectIDKey, projectID))
	}

	// Return a copy to prevent external modification
	return p.sources.Clone(), nil
}

func (r *sourceRepository) Put(ctx context.Context, projectID types.ProjectID, catalog *model.RiskSourceCatalog) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.project(projectID).sources = catalog.Clone()
	return nil
}

type selectionRepository struct {
	m *Memory
}

func (r *selectionRepository) Get(ctx context.Context, projectID types.ProjectID) ([]types.RiskID, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	p := r.m.lookup(projectID)
	if p == nil {
		return []types.RiskID{}, nil
	}

	ids := make([]types.RiskID, len(p.selected))
	copy(ids, p.selected)
	return ids, nil
}

func (r *selectionRepository) Put(ctx context.Context, projectID types.ProjectID, ids []types.RiskID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	selected := make([]types.RiskID, len(ids))
	copy(selected, ids)
	r.m.project(projectID).selected = selected
	return nil
}
