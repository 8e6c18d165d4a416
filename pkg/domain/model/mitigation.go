package model

import (
	"encoding/json"
	"math"
	"time"

	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// MitigationPlan records the measure assigned to an analyzed risk
type MitigationPlan struct {
	RiskID      types.RiskID    `json:"riskId"`
	MeasureID   types.MeasureID `json:"measureId"`
	MeasureName string          `json:"measureName"`
	AssignedAt  time.Time       `json:"assignedAt"`
}

// RiskSnapshot is the scalar state of a risk at one point in time
type RiskSnapshot struct {
	Probability    float64              `json:"probability"`
	Loss           float64              `json:"loss"`
	Magnitude      float64              `json:"magnitude"`
	Classification types.Classification `json:"classification"`
}

// Comparison is the before/after delta of a risk re-evaluated after mitigation.
// ReductionPercentage is non-finite when the original magnitude is zero.
type Comparison struct {
	Before              RiskSnapshot `json:"before"`
	After               RiskSnapshot `json:"after"`
	Reduction           float64      `json:"reduction"`
	ReductionPercentage float64      `json:"reductionPercentage"`
	Improved            bool         `json:"improved"`
}

// HasReductionPercentage reports whether ReductionPercentage is a finite number
func (c *Comparison) HasReductionPercentage() bool {
	return !math.IsNaN(c.ReductionPercentage) && !math.IsInf(c.ReductionPercentage, 0)
}

type comparisonJSON struct {
	Before              RiskSnapshot `json:"before"`
	After               RiskSnapshot `json:"after"`
	Reduction           float64      `json:"reduction"`
	ReductionPercentage *float64     `json:"reductionPercentage"`
	Improved            bool         `json:"improved"`
}

// MarshalJSON encodes a non-finite ReductionPercentage as null
func (c Comparison) MarshalJSON() ([]byte, error) {
	out := comparisonJSON{
		Before:    c.Before,
		After:     c.After,
		Reduction: c.Reduction,
		Improved:  c.Improved,
	}
	if c.HasReductionPercentage() {
		pct := c.ReductionPercentage
		out.ReductionPercentage = &pct
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a null ReductionPercentage as NaN
func (c *Comparison) UnmarshalJSON(data []byte) error {
	var in comparisonJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.Before = in.Before
	c.After = in.After
	c.Reduction = in.Reduction
	c.Improved = in.Improved
	c.ReductionPercentage = math.NaN()
	if in.ReductionPercentage != nil {
		c.ReductionPercentage = *in.ReductionPercentage
	}
	return nil
}

// MonitoringResult is the post-mitigation evaluation of a risk
type MonitoringResult struct {
	RiskID            types.RiskID    `json:"riskId"`
	Comparison        Comparison      `json:"comparison"`
	MitigationMeasure *MitigationPlan `json:"mitigationMeasure"`
	EvaluatedAt       time.Time       `json:"evaluatedAt"`
}
