package scoring

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// Classification thresholds over aggregated probability (half-open, lower bound inclusive)
const (
	thresholdLow      = 0.10
	thresholdMedium   = 0.25
	thresholdHigh     = 0.50
	thresholdVeryHigh = 0.75
)

// Aggregate combines expert values. Without weights it returns the arithmetic mean,
// otherwise sum(v*w)/sum(w). A zero weight sum yields a non-finite result; callers
// must reject all-zero weights before calling.
func Aggregate(values []float64, weights []float64) float64 {
	if len(weights) == 0 {
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}

	var weightedSum, weightSum float64
	for i, v := range values {
		weightedSum += v * weights[i]
		weightSum += weights[i]
	}
	return weightedSum / weightSum
}

// Magnitude is the scalar risk score used for ranking
func Magnitude(probability, loss float64) float64 {
	return probability * loss
}

// Classify maps a probability to its qualitative label
func Classify(probability float64) types.Classification {
	switch {
	case probability < thresholdLow:
		return types.ClassificationVeryLow
	case probability < thresholdMedium:
		return types.ClassificationLow
	case probability < thresholdHigh:
		return types.ClassificationMedium
	case probability < thresholdVeryHigh:
		return types.ClassificationHigh
	default:
		return types.ClassificationVeryHigh
	}
}

// Analyze aggregates one expert panel into an AnalyzedRisk. Weights, when given,
// apply positionally to both arrays. Array lengths must have been checked with
// ValidateEstimates.
func Analyze(riskID types.RiskID, probabilities, losses, weights []float64) *model.AnalyzedRisk {
	probability := Aggregate(probabilities, weights)
	loss := Aggregate(losses, weights)

	return &model.AnalyzedRisk{
		RiskID:              riskID,
		Probability:         probability,
		Loss:                loss,
		Magnitude:           Magnitude(probability, loss),
		Classification:      Classify(probability),
		ExpertProbabilities: copyValues(probabilities),
		ExpertLosses:        copyValues(losses),
		ExpertWeights:       copyValues(weights),
	}
}

// ValidateEstimates checks panel cardinality: exactly 10 probabilities and losses,
// and weights either absent or exactly 10 with a non-zero sum.
func ValidateEstimates(probabilities, losses, weights []float64) error {
	if probabilities == nil {
		return goerr.Wrap(model.ErrMissingParameter, "expert probabilities are required", goerr.V(model.FieldKey, "expertProbabilities"))
	}
	if losses == nil {
		return goerr.Wrap(model.ErrMissingParameter, "expert losses are required", goerr.V(model.FieldKey, "expertLosses"))
	}
	if len(probabilities) != model.ExpertPanelSize {
		return goerr.Wrap(model.ErrInvalidCardinality, "exactly 10 expert probabilities are required",
			goerr.V(model.FieldKey, "expertProbabilities"), goerr.V("count", len(probabilities)))
	}
	if len(losses) != model.ExpertPanelSize {
		return goerr.Wrap(model.ErrInvalidCardinality, "exactly 10 expert losses are required",
			goerr.V(model.FieldKey, "expertLosses"), goerr.V("count", len(losses)))
	}
	if len(weights) == 0 {
		return nil
	}
	if len(weights) != model.ExpertPanelSize {
		return goerr.Wrap(model.ErrInvalidCardinality, "expert weights must be omitted or number exactly 10",
			goerr.V(model.FieldKey, "expertWeights"), goerr.V("count", len(weights)))
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return goerr.Wrap(model.ErrDegenerateWeights, "expert weights must not all be zero")
	}
	return nil
}

func copyValues(src []float64) []float64 {
	if len(src) == 0 {
		return nil
	}
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}
