package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/usecase"
)

func TestAnalysisUseCase_AnalyzeRisk(t *testing.T) {
	ctx := context.Background()

	t.Run("stores aggregated analysis", func(t *testing.T) {
		uc := newUseCases(t)
		risk, err := uc.Analysis.AnalyzeRisk(ctx, testProject, usecase.AnalyzeInput{
			RiskID:              "tr1",
			ExpertProbabilities: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.5, 0.4, 0.3, 0.2, 0.1},
			ExpertLosses:        fill(10, 0.5),
		})
		gt.NoError(t, err).Required()

		gt.Value(t, risk.RiskID).Equal(types.RiskID("tr1"))
		gt.Value(t, risk.Classification).Equal(types.ClassificationMedium)
		gt.Value(t, risk.AnalyzedAt).Equal(fixedTime)
		gt.Array(t, risk.ExpertProbabilities).Length(10)
		gt.Value(t, risk.ExpertWeights).Nil()

		stored, err := uc.Analysis.ListAnalyzedRisks(ctx, testProject)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1)
		gt.Value(t, stored[0].Magnitude).Equal(risk.Magnitude)
	})

	t.Run("weighted panel", func(t *testing.T) {
		uc := newUseCases(t)
		weights := fill(10, 0)
		weights[0] = 1
		risk, err := uc.Analysis.AnalyzeRisk(ctx, testProject, usecase.AnalyzeInput{
			RiskID:              "tr2",
			ExpertProbabilities: []float64{0.9, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			ExpertLosses:        []float64{0.5, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			ExpertWeights:       weights,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, risk.Probability).Equal(0.9)
		gt.Value(t, risk.Loss).Equal(0.5)
		gt.Value(t, risk.Classification).Equal(types.ClassificationVeryHigh)
		gt.Array(t, risk.ExpertWeights).Length(10)
	})

	t.Run("re-analysis replaces previous result", func(t *testing.T) {
		uc := newUseCases(t)
		analyze(t, uc, "tr1", 0.2, 0.5)
		latest := analyze(t, uc, "tr1", 0.8, 0.5)

		stored, err := uc.Analysis.ListAnalyzedRisks(ctx, testProject)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1)
		gt.Value(t, stored[0].Probability).Equal(latest.Probability)
	})

	t.Run("invalid input", func(t *testing.T) {
		tests := []struct {
			name  string
			input usecase.AnalyzeInput
			want  error
		}{
			{
				name:  "missing risk ID",
				input: usecase.AnalyzeInput{ExpertProbabilities: fill(10, 0.1), ExpertLosses: fill(10, 0.1)},
				want:  model.ErrMissingParameter,
			},
			{
				name:  "missing probabilities",
				input: usecase.AnalyzeInput{RiskID: "tr1", ExpertLosses: fill(10, 0.1)},
				want:  model.ErrMissingParameter,
			},
			{
				name:  "missing losses with short probabilities",
				input: usecase.AnalyzeInput{RiskID: "tr1", ExpertProbabilities: fill(3, 0.1)},
				want:  model.ErrMissingParameter,
			},
			{
				name:  "nine probabilities",
				input: usecase.AnalyzeInput{RiskID: "tr1", ExpertProbabilities: fill(9, 0.1), ExpertLosses: fill(10, 0.1)},
				want:  model.ErrInvalidCardinality,
			},
			{
				name:  "empty losses",
				input: usecase.AnalyzeInput{RiskID: "tr1", ExpertProbabilities: fill(10, 0.1), ExpertLosses: []float64{}},
				want:  model.ErrInvalidCardinality,
			},
			{
				name: "five weights",
				input: usecase.AnalyzeInput{RiskID: "tr1", ExpertProbabilities: fill(10, 0.1), ExpertLosses: fill(10, 0.1),
					ExpertWeights: fill(5, 1)},
				want: model.ErrInvalidCardinality,
			},
			{
				name:  "probability above one",
				input: usecase.AnalyzeInput{RiskID: "tr1", ExpertProbabilities: append(fill(9, 0.1), 1.5), ExpertLosses: fill(10, 0.1)},
				want:  model.ErrInvalidEstimate,
			},
			{
				name:  "negative loss",
				input: usecase.AnalyzeInput{RiskID: "tr1", ExpertProbabilities: fill(10, 0.1), ExpertLosses: append(fill(9, 0.1), -0.1)},
				want:  model.ErrInvalidEstimate,
			},
			{
				name: "negative weight",
				input: usecase.AnalyzeInput{RiskID: "tr1", ExpertProbabilities: fill(10, 0.1), ExpertLosses: fill(10, 0.1),
					ExpertWeights: append(fill(9, 1), -1)},
				want: model.ErrInvalidEstimate,
			},
			{
				name: "all-zero weights",
				input: usecase.AnalyzeInput{RiskID: "tr1", ExpertProbabilities: fill(10, 0.1), ExpertLosses: fill(10, 0.1),
					ExpertWeights: fill(10, 0)},
				want: model.ErrDegenerateWeights,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := newUseCases(t)
				_, err := uc.Analysis.AnalyzeRisk(ctx, testProject, tt.input)
				gt.Error(t, err).Is(tt.want)

				stored, err := uc.Analysis.ListAnalyzedRisks(ctx, testProject)
				gt.NoError(t, err).Required()
				gt.Array(t, stored).Length(0)
			})
		}
	})

	t.Run("empty weights are treated as unweighted", func(t *testing.T) {
		uc := newUseCases(t)
		risk, err := uc.Analysis.AnalyzeRisk(ctx, testProject, usecase.AnalyzeInput{
			RiskID:              "tr1",
			ExpertProbabilities: fill(10, 0.3),
			ExpertLosses:        fill(10, 0.3),
			ExpertWeights:       []float64{},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, risk.Classification).Equal(types.ClassificationMedium)
	})

	t.Run("concurrent analyses of one risk keep a single record", func(t *testing.T) {
		uc := newUseCases(t)

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.Analysis.AnalyzeRisk(ctx, testProject, usecase.AnalyzeInput{
					RiskID:              "tr1",
					ExpertProbabilities: fill(10, float64(i)/20),
					ExpertLosses:        fill(10, 0.5),
				})
				gt.NoError(t, err)
			}()
		}
		wg.Wait()

		stored, err := uc.Analysis.ListAnalyzedRisks(ctx, testProject)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1)
	})
}

func TestAnalysisUseCase_PrioritizeRisks(t *testing.T) {
	ctx := context.Background()

	t.Run("no analyses yields empty ranking", func(t *testing.T) {
		uc := newUseCases(t)
		ranked, err := uc.Analysis.PrioritizeRisks(ctx, testProject)
		gt.NoError(t, err).Required()
		gt.Value(t, ranked).NotNil()
		gt.Array(t, ranked).Length(0)
	})

	t.Run("three bands sorted by magnitude", func(t *testing.T) {
		uc := newUseCases(t)
		analyze(t, uc, "tr1", 1, 0.1)
		analyze(t, uc, "tr3", 1, 0.3)
		analyze(t, uc, "tr2", 1, 0.2)

		ranked, err := uc.Analysis.PrioritizeRisks(ctx, testProject)
		gt.NoError(t, err).Required()
		gt.Array(t, ranked).Length(3).Required()

		gt.Value(t, ranked[0].RiskID).Equal(types.RiskID("tr3"))
		gt.Value(t, ranked[0].Priority).Equal(types.PriorityHigh)
		gt.Value(t, ranked[1].RiskID).Equal(types.RiskID("tr2"))
		gt.Value(t, ranked[1].Priority).Equal(types.PriorityMedium)
		gt.Value(t, ranked[2].RiskID).Equal(types.RiskID("tr1"))
		gt.Value(t, ranked[2].Priority).Equal(types.PriorityLow)
	})

	t.Run("single analysis is high priority", func(t *testing.T) {
		uc := newUseCases(t)
		analyze(t, uc, "tr1", 0.05, 0.05)

		ranked, err := uc.Analysis.PrioritizeRisks(ctx, testProject)
		gt.NoError(t, err).Required()
		gt.Array(t, ranked).Length(1).Required()
		gt.Value(t, ranked[0].Priority).Equal(types.PriorityHigh)
	})
}
