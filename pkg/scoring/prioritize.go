package scoring

import (
	"slices"

	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// Prioritize splits the magnitude range [min, max] of the given risks into three
// equal intervals and assigns each risk to a band:
//
//	magnitude <  min+mpr           -> low
//	magnitude <  min+2*mpr         -> medium
//	otherwise                      -> high
//
// where mpr = (max-min)/3. When every magnitude is equal (including a single risk)
// mpr is zero and every risk lands in the high band. The result is sorted by
// magnitude in descending order; equal magnitudes keep their input order.
func Prioritize(risks []*model.AnalyzedRisk) []*model.PrioritizedRisk {
	result := make([]*model.PrioritizedRisk, 0, len(risks))
	if len(risks) == 0 {
		return result
	}

	minMag, maxMag := risks[0].Magnitude, risks[0].Magnitude
	for _, r := range risks[1:] {
		minMag = min(minMag, r.Magnitude)
		maxMag = max(maxMag, r.Magnitude)
	}

	mpr := (maxMag - minMag) / 3
	thresholds := model.PriorityThresholds{
		Min:           minMag,
		Max:           maxMag,
		MPR:           mpr,
		LowThreshold:  minMag + mpr,
		HighThreshold: minMag + 2*mpr,
	}

	for _, r := range risks {
		result = append(result, &model.PrioritizedRisk{
			AnalyzedRisk: *r.Clone(),
			Priority:     band(r.Magnitude, thresholds),
			Thresholds:   thresholds,
		})
	}

	slices.SortStableFunc(result, func(a, b *model.PrioritizedRisk) int {
		switch {
		case a.Magnitude > b.Magnitude:
			return -1
		case a.Magnitude < b.Magnitude:
			return 1
		default:
			return 0
		}
	})

	return result
}

func band(magnitude float64, t model.PriorityThresholds) types.Priority {
	switch {
	case magnitude < t.LowThreshold:
		return types.PriorityLow
	case magnitude < t.HighThreshold:
		return types.PriorityMedium
	default:
		return types.PriorityHigh
	}
}
