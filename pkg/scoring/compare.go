package scoring

import "github.com/secmon-lab/riskstage/pkg/domain/model"

// Compare re-analyzes a risk with post-mitigation estimates and reports the change
// against the original analysis. Weights apply to both new arrays. The reduction
// percentage is non-finite when the original magnitude is zero. Improved requires
// a strictly smaller magnitude. before is not modified.
func Compare(before *model.AnalyzedRisk, probabilities, losses, weights []float64) *model.Comparison {
	after := Analyze(before.RiskID, probabilities, losses, weights)

	reduction := before.Magnitude - after.Magnitude
	return &model.Comparison{
		Before:              before.Snapshot(),
		After:               after.Snapshot(),
		Reduction:           reduction,
		ReductionPercentage: reduction / before.Magnitude * 100,
		Improved:            after.Magnitude < before.Magnitude,
	}
}
