package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/scoring"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
)

type SourceUseCase struct {
	uc *UseCases
}

// SourcesResult is the project's risk source indicators with their category probabilities
type SourcesResult struct {
	Sources       *model.RiskSourceCatalog `json:"riskSources"`
	Probabilities model.SourceScores       `json:"probabilities"`
}

// Catalog returns a copy of the built-in risk source catalog
func (s *SourceUseCase) Catalog() *model.RiskSourceCatalog {
	return s.uc.catalogs.Sources.Clone()
}

// Sources returns the project's indicators, or the catalog defaults if none were stored
func (s *SourceUseCase) Sources(ctx context.Context, projectID types.ProjectID) (*model.RiskSourceCatalog, error) {
	sources, err := s.uc.repo.Source().Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return s.Catalog(), nil
		}
		return nil, goerr.Wrap(err, "failed to get risk sources", goerr.V(model.ProjectIDKey, projectID))
	}
	return sources, nil
}

// UpdateSources replaces the project's indicators and returns the derived probabilities
func (s *SourceUseCase) UpdateSources(ctx context.Context, projectID types.ProjectID, sources *model.RiskSourceCatalog) (*SourcesResult, error) {
	if sources == nil {
		return nil, goerr.Wrap(model.ErrMissingParameter, "risk sources are required")
	}
	if err := sources.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid risk sources", goerr.V(model.ProjectIDKey, projectID))
	}

	unlock := s.uc.locks.lock(projectID)
	defer unlock()

	if err := s.uc.repo.Source().Put(ctx, projectID, sources); err != nil {
		return nil, goerr.Wrap(err, "failed to save risk sources", goerr.V(model.ProjectIDKey, projectID))
	}

	scores := scoring.AggregateSources(sources)
	logging.From(ctx).Info("risk sources updated",
		"project_id", projectID,
		"total_score", scores.Total,
	)

	return &SourcesResult{Sources: sources.Clone(), Probabilities: scores}, nil
}

// SetIndicator toggles a single indicator of the project's sources
func (s *SourceUseCase) SetIndicator(ctx context.Context, projectID types.ProjectID, category types.Category, id types.IndicatorID, active bool) (*SourcesResult, error) {
	unlock := s.uc.locks.lock(projectID)
	defer unlock()

	sources, err := s.Sources(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := sources.SetIndicator(category, id, active); err != nil {
		return nil, goerr.Wrap(err, "failed to set indicator", goerr.V(model.ProjectIDKey, projectID))
	}
	if err := s.uc.repo.Source().Put(ctx, projectID, sources); err != nil {
		return nil, goerr.Wrap(err, "failed to save risk sources", goerr.V(model.ProjectIDKey, projectID))
	}

	return &SourcesResult{Sources: sources, Probabilities: scoring.AggregateSources(sources)}, nil
}

// Scores returns the category probabilities of the project's current indicators
func (s *SourceUseCase) Scores(ctx context.Context, projectID types.ProjectID) (model.SourceScores, error) {
	sources, err := s.Sources(ctx, projectID)
	if err != nil {
		return model.SourceScores{}, err
	}
	return scoring.AggregateSources(sources), nil
}
