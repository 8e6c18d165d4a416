package model

import (
	"time"

	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// ExpertPanelSize is the number of experts whose estimates are aggregated for every risk
const ExpertPanelSize = 10

// SourceScores holds the category probabilities derived from the risk source catalog.
// Total is the plain sum of the four scores and can exceed 1.
type SourceScores struct {
	Technical  float64 `json:"technicalScore"`
	Cost       float64 `json:"costScore"`
	Schedule   float64 `json:"scheduleScore"`
	Management float64 `json:"managementScore"`
	Total      float64 `json:"totalScore"`
}

// AnalyzedRisk is the aggregated result of one expert panel for a risk event
type AnalyzedRisk struct {
	RiskID              types.RiskID         `json:"riskId"`
	Probability         float64              `json:"probability"`
	Loss                float64              `json:"loss"`
	Magnitude           float64              `json:"magnitude"`
	Classification      types.Classification `json:"classification"`
	ExpertProbabilities []float64            `json:"expertProbabilities"`
	ExpertLosses        []float64            `json:"expertLosses"`
	ExpertWeights       []float64            `json:"expertWeights,omitempty"`
	AnalyzedAt          time.Time            `json:"analyzedAt"`
}

// Snapshot returns the scalar part of the analysis
func (r *AnalyzedRisk) Snapshot() RiskSnapshot {
	return RiskSnapshot{
		Probability:    r.Probability,
		Loss:           r.Loss,
		Magnitude:      r.Magnitude,
		Classification: r.Classification,
	}
}

// Clone returns a deep copy of the analysis
func (r *AnalyzedRisk) Clone() *AnalyzedRisk {
	if r == nil {
		return nil
	}
	cloned := *r
	cloned.ExpertProbabilities = cloneFloats(r.ExpertProbabilities)
	cloned.ExpertLosses = cloneFloats(r.ExpertLosses)
	cloned.ExpertWeights = cloneFloats(r.ExpertWeights)
	return &cloned
}

// PriorityThresholds are the band boundaries computed over one prioritization run
type PriorityThresholds struct {
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	MPR           float64 `json:"mpr"`
	LowThreshold  float64 `json:"lowThreshold"`
	HighThreshold float64 `json:"highThreshold"`
}

// PrioritizedRisk is an analyzed risk with its assigned priority band
type PrioritizedRisk struct {
	AnalyzedRisk
	Priority   types.Priority     `json:"priority"`
	Thresholds PriorityThresholds `json:"priorityThresholds"`
}

func cloneFloats(src []float64) []float64 {
	if src == nil {
		return nil
	}
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}
