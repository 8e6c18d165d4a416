package interfaces

import (
	"context"

	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// Repository defines the interface for project state persistence.
// All records are keyed by project ID; records keyed by risk ID are last-write-wins.
type Repository interface {
	Source() SourceRepository
	Selection() SelectionRepository
	Analysis() AnalysisRepository
	Plan() MitigationPlanRepository
	Monitoring() MonitoringRepository

	// Reset removes every record of the project
	Reset(ctx context.Context, projectID types.ProjectID) error

	// Close releases backend resources
	Close() error
}

type SourceRepository interface {
	// Get retrieves the project's risk source indicators. Returns model.ErrNotFound if none were stored.
	Get(ctx context.Context, projectID types.ProjectID) (*model.RiskSourceCatalog, error)

	// Put replaces the project's risk source indicators
	Put(ctx context.Context, projectID types.ProjectID, catalog *model.RiskSourceCatalog) error
}

type SelectionRepository interface {
	// Get retrieves the selected risk event IDs. Returns an empty slice if nothing was selected.
	Get(ctx context.Context, projectID types.ProjectID) ([]types.RiskID, error)

	// Put replaces the selected risk event IDs
	Put(ctx context.Context, projectID types.ProjectID, ids []types.RiskID) error
}

type AnalysisRepository interface {
	// Put stores the analysis, overwriting any previous analysis of the same risk
	Put(ctx context.Context, projectID types.ProjectID, risk *model.AnalyzedRisk) error

	// Get retrieves the analysis of a risk. Returns model.ErrNotFound if the risk was never analyzed.
	Get(ctx context.Context, projectID types.ProjectID, riskID types.RiskID) (*model.AnalyzedRisk, error)

	// List retrieves all analyses of the project
	List(ctx context.Context, projectID types.ProjectID) ([]*model.AnalyzedRisk, error)
}

type MitigationPlanRepository interface {
	// Put stores the plan, overwriting any previous plan of the same risk
	Put(ctx context.Context, projectID types.ProjectID, plan *model.MitigationPlan) error

	// Get retrieves the plan of a risk. Returns model.ErrNotFound if none was assigned.
	Get(ctx context.Context, projectID types.ProjectID, riskID types.RiskID) (*model.MitigationPlan, error)

	// List retrieves all plans of the project
	List(ctx context.Context, projectID types.ProjectID) ([]*model.MitigationPlan, error)
}

type MonitoringRepository interface {
	// Put stores the result, overwriting any previous result of the same risk
	Put(ctx context.Context, projectID types.ProjectID, result *model.MonitoringResult) error

	// Get retrieves the result of a risk. Returns model.ErrNotFound if the risk was never monitored.
	Get(ctx context.Context, projectID types.ProjectID, riskID types.RiskID) (*model.MonitoringResult, error)

	// List retrieves all monitoring results of the project
	List(ctx context.Context, projectID types.ProjectID) ([]*model.MonitoringResult, error)
}
