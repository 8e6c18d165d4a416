package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

type EventUseCase struct {
	uc *UseCases
}

// Catalog returns the risk event catalog
func (e *EventUseCase) Catalog() *model.RiskEventCatalog {
	return e.uc.catalogs.Events
}

// SelectEvents replaces the project's selected risk events. Every ID must exist in the
// event catalog; duplicates are collapsed keeping the first occurrence.
func (e *EventUseCase) SelectEvents(ctx context.Context, projectID types.ProjectID, ids []types.RiskID) (*model.EventSelection, error) {
	if ids == nil {
		return nil, goerr.Wrap(model.ErrMissingParameter, "selectedEvents is required", goerr.V(model.FieldKey, "selectedEvents"))
	}

	selected := make([]types.RiskID, 0, len(ids))
	seen := make(map[types.RiskID]bool, len(ids))
	for _, id := range ids {
		if !e.uc.catalogs.Events.Contains(id) {
			return nil, goerr.Wrap(model.ErrNotFound, "risk event not found in catalog",
				goerr.V(model.EventIDKey, id), goerr.V(model.ProjectIDKey, projectID))
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		selected = append(selected, id)
	}

	unlock := e.uc.locks.lock(projectID)
	defer unlock()

	if err := e.uc.repo.Selection().Put(ctx, projectID, selected); err != nil {
		return nil, goerr.Wrap(err, "failed to save selected events", goerr.V(model.ProjectIDKey, projectID))
	}

	return &model.EventSelection{SelectedEvents: selected, Count: len(selected)}, nil
}

// Selected returns the project's selected risk events
func (e *EventUseCase) Selected(ctx context.Context, projectID types.ProjectID) (*model.EventSelection, error) {
	ids, err := e.uc.repo.Selection().Get(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get selected events", goerr.V(model.ProjectIDKey, projectID))
	}
	return &model.EventSelection{SelectedEvents: ids, Count: len(ids)}, nil
}
