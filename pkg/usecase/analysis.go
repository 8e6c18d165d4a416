package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/metrics"
	"github.com/secmon-lab/riskstage/pkg/scoring"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
)

type AnalysisUseCase struct {
	uc *UseCases
}

// AnalyzeRisk aggregates the expert panel and stores the analysis, replacing any
// earlier analysis of the same risk.
func (a *AnalysisUseCase) AnalyzeRisk(ctx context.Context, projectID types.ProjectID, input AnalyzeInput) (*model.AnalyzedRisk, error) {
	if err := validateInput(input); err != nil {
		return nil, goerr.Wrap(err, "invalid analysis input", goerr.V(model.RiskIDKey, input.RiskID))
	}
	if err := scoring.ValidateEstimates(input.ExpertProbabilities, input.ExpertLosses, input.ExpertWeights); err != nil {
		return nil, goerr.Wrap(err, "invalid analysis input", goerr.V(model.RiskIDKey, input.RiskID))
	}

	risk := scoring.Analyze(input.RiskID, input.ExpertProbabilities, input.ExpertLosses, input.ExpertWeights)
	risk.AnalyzedAt = a.uc.timestamp()

	unlock := a.uc.locks.lock(projectID)
	defer unlock()

	if err := a.uc.repo.Analysis().Put(ctx, projectID, risk); err != nil {
		return nil, goerr.Wrap(err, "failed to save analyzed risk",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, risk.RiskID))
	}

	metrics.ObserveAnalysis(risk.Classification, risk.Magnitude)
	logging.From(ctx).Info("risk analyzed",
		"project_id", projectID,
		"risk_id", risk.RiskID,
		"magnitude", risk.Magnitude,
		"classification", risk.Classification,
	)

	return risk, nil
}

// ListAnalyzedRisks returns every analysis of the project
func (a *AnalysisUseCase) ListAnalyzedRisks(ctx context.Context, projectID types.ProjectID) ([]*model.AnalyzedRisk, error) {
	risks, err := a.uc.repo.Analysis().List(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list analyzed risks", goerr.V(model.ProjectIDKey, projectID))
	}
	return risks, nil
}

// PrioritizeRisks ranks every analysis of the project into priority bands
func (a *AnalysisUseCase) PrioritizeRisks(ctx context.Context, projectID types.ProjectID) ([]*model.PrioritizedRisk, error) {
	risks, err := a.ListAnalyzedRisks(ctx, projectID)
	if err != nil {
		return nil, err
	}

	prioritized := scoring.Prioritize(risks)
	for _, r := range prioritized {
		metrics.ObservePriority(r.Priority)
	}
	return prioritized, nil
}
