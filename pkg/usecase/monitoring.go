package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/metrics"
	"github.com/secmon-lab/riskstage/pkg/scoring"
	"github.com/secmon-lab/riskstage/pkg/utils/async"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
)

type MonitoringUseCase struct {
	uc *UseCases
}

// MonitorRisk re-evaluates an analyzed risk with post-mitigation estimates and stores
// the before/after comparison. The original analysis is left untouched.
func (m *MonitoringUseCase) MonitorRisk(ctx context.Context, projectID types.ProjectID, input MonitorInput) (*model.MonitoringResult, error) {
	// Missing parameters are reported before an unknown risk, range and cardinality after it
	inputErr := validateInput(input)
	if errors.Is(inputErr, model.ErrMissingParameter) {
		return nil, goerr.Wrap(inputErr, "invalid monitoring input", goerr.V(model.RiskIDKey, input.RiskID))
	}

	unlock := m.uc.locks.lock(projectID)
	defer unlock()

	before, err := m.uc.repo.Analysis().Get(ctx, projectID, input.RiskID)
	if err != nil {
		return nil, goerr.Wrap(err, "risk must be analyzed before monitoring",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, input.RiskID))
	}

	if inputErr != nil {
		return nil, goerr.Wrap(inputErr, "invalid monitoring input", goerr.V(model.RiskIDKey, input.RiskID))
	}
	if err := scoring.ValidateEstimates(input.NewExpertProbabilities, input.NewExpertLosses, input.ExpertWeights); err != nil {
		return nil, goerr.Wrap(err, "invalid monitoring input", goerr.V(model.RiskIDKey, input.RiskID))
	}

	plan, err := m.uc.repo.Plan().Get(ctx, projectID, input.RiskID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to get mitigation plan",
				goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, input.RiskID))
		}
		plan = nil
	}

	comparison := scoring.Compare(before, input.NewExpertProbabilities, input.NewExpertLosses, input.ExpertWeights)
	result := &model.MonitoringResult{
		RiskID:            input.RiskID,
		Comparison:        *comparison,
		MitigationMeasure: plan,
		EvaluatedAt:       m.uc.timestamp(),
	}

	if err := m.uc.repo.Monitoring().Put(ctx, projectID, result); err != nil {
		return nil, goerr.Wrap(err, "failed to save monitoring result",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, input.RiskID))
	}

	metrics.ObserveMonitoring(comparison.Improved)
	logging.From(ctx).Info("risk monitored",
		"project_id", projectID,
		"risk_id", input.RiskID,
		"reduction", comparison.Reduction,
		"improved", comparison.Improved,
	)

	if m.uc.notifier != nil {
		notified := *result
		async.Dispatch(ctx, func(ctx context.Context) error {
			return m.uc.notifier.NotifyMonitoring(ctx, projectID, &notified)
		})
	}

	return result, nil
}

// ListResults returns every monitoring result of the project
func (m *MonitoringUseCase) ListResults(ctx context.Context, projectID types.ProjectID) ([]*model.MonitoringResult, error) {
	results, err := m.uc.repo.Monitoring().List(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list monitoring results", goerr.V(model.ProjectIDKey, projectID))
	}
	return results, nil
}

// GetResult returns the monitoring result of one risk
func (m *MonitoringUseCase) GetResult(ctx context.Context, projectID types.ProjectID, riskID types.RiskID) (*model.MonitoringResult, error) {
	result, err := m.uc.repo.Monitoring().Get(ctx, projectID, riskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get monitoring result",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
	}
	return result, nil
}
