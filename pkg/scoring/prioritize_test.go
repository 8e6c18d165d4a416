package scoring_test

import (
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/scoring"
)

func risksWithMagnitudes(magnitudes ...float64) []*model.AnalyzedRisk {
	risks := make([]*model.AnalyzedRisk, len(magnitudes))
	for i, m := range magnitudes {
		risks[i] = &model.AnalyzedRisk{
			RiskID:    types.RiskID(fmt.Sprintf("r%d", i+1)),
			Magnitude: m,
		}
	}
	return risks
}

func TestPrioritize(t *testing.T) {
	t.Run("three bands", func(t *testing.T) {
		result := scoring.Prioritize(risksWithMagnitudes(10, 20, 30))
		gt.Array(t, result).Length(3)

		gt.Value(t, result[0].Magnitude).Equal(30.0)
		gt.Value(t, result[0].Priority).Equal(types.PriorityHigh)
		gt.Value(t, result[1].Magnitude).Equal(20.0)
		gt.Value(t, result[1].Priority).Equal(types.PriorityMedium)
		gt.Value(t, result[2].Magnitude).Equal(10.0)
		gt.Value(t, result[2].Priority).Equal(types.PriorityLow)

		th := result[0].Thresholds
		gt.Value(t, th.Min).Equal(10.0)
		gt.Value(t, th.Max).Equal(30.0)
		assertApprox(t, th.MPR, 20.0/3)
		assertApprox(t, th.LowThreshold, 10+20.0/3)
		assertApprox(t, th.HighThreshold, 10+40.0/3)
		for _, r := range result {
			gt.Value(t, r.Thresholds).Equal(th)
		}
	})

	t.Run("single risk is high", func(t *testing.T) {
		result := scoring.Prioritize(risksWithMagnitudes(0.42))
		gt.Array(t, result).Length(1)
		gt.Value(t, result[0].Priority).Equal(types.PriorityHigh)
		gt.Value(t, result[0].Thresholds.Min).Equal(0.42)
		gt.Value(t, result[0].Thresholds.Max).Equal(0.42)
		gt.Value(t, result[0].Thresholds.MPR).Equal(0.0)
	})

	t.Run("all equal magnitudes are high", func(t *testing.T) {
		// literal boundary behavior: mpr is zero so magnitude >= min+2*mpr holds for every risk
		result := scoring.Prioritize(risksWithMagnitudes(0.3, 0.3, 0.3))
		for _, r := range result {
			gt.Value(t, r.Priority).Equal(types.PriorityHigh)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		result := scoring.Prioritize(nil)
		gt.Value(t, result).NotNil()
		gt.Array(t, result).Length(0)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		result := scoring.Prioritize(risksWithMagnitudes(0.1, 0.5, 0.1, 0.5))
		ids := make([]types.RiskID, len(result))
		for i, r := range result {
			ids[i] = r.RiskID
		}
		gt.Value(t, ids).Equal([]types.RiskID{"r2", "r4", "r1", "r3"})
	})

	t.Run("boundary values fall into the upper band", func(t *testing.T) {
		// min=0, max=3, mpr=1: magnitude 1 is exactly min+mpr, 2 is exactly min+2*mpr
		result := scoring.Prioritize(risksWithMagnitudes(0, 1, 2, 3))
		priorities := map[float64]types.Priority{}
		for _, r := range result {
			priorities[r.Magnitude] = r.Priority
		}
		gt.Value(t, priorities[0]).Equal(types.PriorityLow)
		gt.Value(t, priorities[1]).Equal(types.PriorityMedium)
		gt.Value(t, priorities[2]).Equal(types.PriorityHigh)
		gt.Value(t, priorities[3]).Equal(types.PriorityHigh)
	})

	t.Run("does not modify input", func(t *testing.T) {
		risks := risksWithMagnitudes(3, 1, 2)
		_ = scoring.Prioritize(risks)
		gt.Value(t, risks[0].RiskID).Equal(types.RiskID("r1"))
		gt.Value(t, risks[0].Magnitude).Equal(3.0)
	})
}
