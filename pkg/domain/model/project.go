package model

import (
	"time"

	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// ProjectStatus summarizes the progress of a worksheet
type ProjectStatus struct {
	ProjectID            types.ProjectID `json:"projectId"`
	SourceScores         SourceScores    `json:"riskSourcesProbabilities"`
	SelectedEventsCount  int             `json:"selectedEventsCount"`
	AnalyzedRisksCount   int             `json:"analyzedRisksCount"`
	MitigationPlansCount int             `json:"mitigationPlansCount"`
	MonitoredRisksCount  int             `json:"monitoredRisksCount"`
}

// ProjectSnapshot is the complete state of a worksheet at one point in time
type ProjectSnapshot struct {
	ProjectID         types.ProjectID     `json:"projectId"`
	CapturedAt        time.Time           `json:"capturedAt"`
	Sources           *RiskSourceCatalog  `json:"riskSources"`
	SourceScores      SourceScores        `json:"riskSourcesProbabilities"`
	SelectedEvents    []types.RiskID      `json:"selectedEvents"`
	AnalyzedRisks     []*AnalyzedRisk     `json:"analyzedRisks"`
	PrioritizedRisks  []*PrioritizedRisk  `json:"prioritizedRisks"`
	MitigationPlans   []*MitigationPlan   `json:"mitigationPlans"`
	MonitoringResults []*MonitoringResult `json:"monitoringResults"`
}

// EventSelection is the set of risk events chosen for a project
type EventSelection struct {
	SelectedEvents []types.RiskID `json:"selectedEvents"`
	Count          int            `json:"count"`
}
