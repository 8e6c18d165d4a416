package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/scoring"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
)

type ProjectUseCase struct {
	uc *UseCases
}

// Create starts a new worksheet seeded with the catalog's risk sources
func (p *ProjectUseCase) Create(ctx context.Context) (types.ProjectID, error) {
	projectID := types.NewProjectID()
	if err := p.uc.repo.Source().Put(ctx, projectID, p.uc.catalogs.Sources); err != nil {
		return "", goerr.Wrap(err, "failed to create project", goerr.V(model.ProjectIDKey, projectID))
	}

	logging.From(ctx).Info("project created", "project_id", projectID)
	return projectID, nil
}

// Status summarizes the progress of the project
func (p *ProjectUseCase) Status(ctx context.Context, projectID types.ProjectID) (*model.ProjectStatus, error) {
	scores, err := p.uc.Source.Scores(ctx, projectID)
	if err != nil {
		return nil, err
	}
	selected, err := p.uc.Event.Selected(ctx, projectID)
	if err != nil {
		return nil, err
	}
	risks, err := p.uc.Analysis.ListAnalyzedRisks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	plans, err := p.uc.Mitigation.ListPlans(ctx, projectID)
	if err != nil {
		return nil, err
	}
	results, err := p.uc.Monitoring.ListResults(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &model.ProjectStatus{
		ProjectID:            projectID,
		SourceScores:         scores,
		SelectedEventsCount:  selected.Count,
		AnalyzedRisksCount:   len(risks),
		MitigationPlansCount: len(plans),
		MonitoredRisksCount:  len(results),
	}, nil
}

// Reset discards every record of the project. The risk sources fall back to the catalog defaults.
func (p *ProjectUseCase) Reset(ctx context.Context, projectID types.ProjectID) error {
	unlock := p.uc.locks.lock(projectID)
	defer unlock()

	if err := p.uc.repo.Reset(ctx, projectID); err != nil {
		return goerr.Wrap(err, "failed to reset project", goerr.V(model.ProjectIDKey, projectID))
	}

	logging.From(ctx).Info("project reset", "project_id", projectID)
	return nil
}

// Snapshot captures the complete state of the project
func (p *ProjectUseCase) Snapshot(ctx context.Context, projectID types.ProjectID) (*model.ProjectSnapshot, error) {
	unlock := p.uc.locks.lock(projectID)
	defer unlock()

	sources, err := p.uc.Source.Sources(ctx, projectID)
	if err != nil {
		return nil, err
	}
	selected, err := p.uc.Event.Selected(ctx, projectID)
	if err != nil {
		return nil, err
	}
	risks, err := p.uc.Analysis.ListAnalyzedRisks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	plans, err := p.uc.Mitigation.ListPlans(ctx, projectID)
	if err != nil {
		return nil, err
	}
	results, err := p.uc.Monitoring.ListResults(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &model.ProjectSnapshot{
		ProjectID:         projectID,
		CapturedAt:        p.uc.timestamp(),
		Sources:           sources,
		SourceScores:      scoring.AggregateSources(sources),
		SelectedEvents:    selected.SelectedEvents,
		AnalyzedRisks:     risks,
		PrioritizedRisks:  scoring.Prioritize(risks),
		MitigationPlans:   plans,
		MonitoringResults: results,
	}, nil
}

// Export writes a snapshot of the project with the configured exporter and returns its location
func (p *ProjectUseCase) Export(ctx context.Context, projectID types.ProjectID) (string, error) {
	if p.uc.exporter == nil {
		return "", goerr.New("snapshot exporter is not configured", goerr.V(model.ProjectIDKey, projectID))
	}

	snapshot, err := p.Snapshot(ctx, projectID)
	if err != nil {
		return "", err
	}

	location, err := p.uc.exporter.Export(ctx, snapshot)
	if err != nil {
		return "", goerr.Wrap(err, "failed to export snapshot", goerr.V(model.ProjectIDKey, projectID))
	}

	logging.From(ctx).Info("snapshot exported", "project_id", projectID, "location", location)
	return location, nil
}
