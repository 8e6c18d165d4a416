package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
)

func TestComparison_JSON(t *testing.T) {
	t.Run("finite percentage", func(t *testing.T) {
		cmp := model.Comparison{Reduction: 0.25, ReductionPercentage: 50, Improved: true}
		data, err := json.Marshal(cmp)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains(`"reductionPercentage":50`)

		var decoded model.Comparison
		gt.NoError(t, json.Unmarshal(data, &decoded)).Required()
		gt.Value(t, decoded.ReductionPercentage).Equal(50.0)
		gt.Bool(t, decoded.Improved).True()
	})

	t.Run("non-finite percentage is null", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			cmp := model.Comparison{ReductionPercentage: v}
			data, err := json.Marshal(cmp)
			gt.NoError(t, err).Required()
			gt.String(t, string(data)).Contains(`"reductionPercentage":null`)

			var decoded model.Comparison
			gt.NoError(t, json.Unmarshal(data, &decoded)).Required()
			gt.Bool(t, decoded.HasReductionPercentage()).False()
		}
	})

	t.Run("embedded in monitoring result", func(t *testing.T) {
		result := model.MonitoringResult{RiskID: "tr1", Comparison: model.Comparison{ReductionPercentage: math.NaN()}}
		data, err := json.Marshal(result)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains(`"mitigationMeasure":null`)
	})
}

func TestAnalyzedRisk_Clone(t *testing.T) {
	r := &model.AnalyzedRisk{RiskID: "tr1", ExpertProbabilities: []float64{0.1, 0.2}}
	cloned := r.Clone()
	cloned.ExpertProbabilities[0] = 0.9
	gt.Value(t, r.ExpertProbabilities[0]).Equal(0.1)

	var nilRisk *model.AnalyzedRisk
	gt.Value(t, nilRisk.Clone()).Nil()
}
