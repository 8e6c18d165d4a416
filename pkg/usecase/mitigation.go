package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
)

type MitigationUseCase struct {
	uc *UseCases
}

// Measures returns the mitigation measure catalog
func (m *MitigationUseCase) Measures() []model.MitigationMeasure {
	return m.uc.catalogs.Measures.Measures
}

// AssignMitigation attaches a measure to an analyzed risk, replacing any earlier assignment
func (m *MitigationUseCase) AssignMitigation(ctx context.Context, projectID types.ProjectID, riskID types.RiskID, measureID types.MeasureID) (*model.MitigationPlan, error) {
	if riskID == "" {
		return nil, goerr.Wrap(model.ErrMissingParameter, "riskId is required", goerr.V(model.FieldKey, "riskId"))
	}
	if measureID == "" {
		return nil, goerr.Wrap(model.ErrMissingParameter, "measureId is required", goerr.V(model.FieldKey, "measureId"))
	}

	unlock := m.uc.locks.lock(projectID)
	defer unlock()

	if _, err := m.uc.repo.Analysis().Get(ctx, projectID, riskID); err != nil {
		return nil, goerr.Wrap(err, "risk must be analyzed before assigning a mitigation",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
	}

	measure, ok := m.uc.catalogs.Measures.Find(measureID)
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "mitigation measure not found",
			goerr.V(model.MeasureIDKey, measureID))
	}

	plan := &model.MitigationPlan{
		RiskID:      riskID,
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		AssignedAt:  m.uc.timestamp(),
	}
	if err := m.uc.repo.Plan().Put(ctx, projectID, plan); err != nil {
		return nil, goerr.Wrap(err, "failed to save mitigation plan",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
	}

	logging.From(ctx).Info("mitigation assigned",
		"project_id", projectID,
		"risk_id", riskID,
		"measure_id", measureID,
	)

	return plan, nil
}

// ListPlans returns every mitigation plan of the project
func (m *MitigationUseCase) ListPlans(ctx context.Context, projectID types.ProjectID) ([]*model.MitigationPlan, error) {
	plans, err := m.uc.repo.Plan().List(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list mitigation plans", goerr.V(model.ProjectIDKey, projectID))
	}
	return plans, nil
}
