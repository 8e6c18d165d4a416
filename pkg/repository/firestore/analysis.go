package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type analyzedRiskDocument struct {
	RiskID              string    `firestore:"risk_id"`
	Probability         float64   `firestore:"probability"`
	Loss                float64   `firestore:"loss"`
	Magnitude           float64   `firestore:"magnitude"`
	Classification      string    `firestore:"classification"`
	ExpertProbabilities []float64 `firestore:"expert_probabilities"`
	ExpertLosses        []float64 `firestore:"expert_losses"`
	ExpertWeights       []float64 `firestore:"expert_weights,omitempty"`
	AnalyzedAt          time.Time `firestore:"analyzed_at"`
}

func toAnalyzedRiskDocument(r *model.AnalyzedRisk) *analyzedRiskDocument {
	return &analyzedRiskDocument{
		RiskID:              r.RiskID.String(),
		Probability:         r.Probability,
		Loss:                r.Loss,
		Magnitude:           r.Magnitude,
		Classification:      r.Classification.String(),
		ExpertProbabilities: r.ExpertProbabilities,
		ExpertLosses:        r.ExpertLosses,
		ExpertWeights:       r.ExpertWeights,
		AnalyzedAt:          r.AnalyzedAt,
	}
}

func (d *analyzedRiskDocument) toModel() *model.AnalyzedRisk {
	return &model.AnalyzedRisk{
		RiskID:              types.RiskID(d.RiskID),
		Probability:         d.Probability,
		Loss:                d.Loss,
		Magnitude:           d.Magnitude,
		Classification:      types.Classification(d.Classification),
		ExpertProbabilities: d.ExpertProbabilities,
		ExpertLosses:        d.ExpertLosses,
		ExpertWeights:       d.ExpertWeights,
		AnalyzedAt:          d.AnalyzedAt,
	}
}

type analysisRepository struct {
	f *Firestore
}

func (r *analysisRepository) Put(ctx context.Context, projectID types.ProjectID, risk *model.AnalyzedRisk) error {
	docRef := r.f.riskDoc(projectID, analyzedRisksCollection, risk.RiskID)
	if _, err := docRef.Set(ctx, toAnalyzedRiskDocument(risk)); err != nil {
		return goerr.Wrap(err, "failed to save analyzed risk",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, risk.RiskID))
	}
	return nil
}

func (r *analysisRepository) Get(ctx context.Context, projectID types.ProjectID, riskID types.RiskID) (*model.AnalyzedRisk, error) {
	doc, err := r.f.riskDoc(projectID, analyzedRisksCollection, riskID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "analyzed risk not found",
				goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
		}
		return nil, goerr.Wrap(err, "failed to get analyzed risk",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
	}

	var riskDoc analyzedRiskDocument
	if err := doc.DataTo(&riskDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal analyzed risk", goerr.V(model.RiskIDKey, riskID))
	}
	return riskDoc.toModel(), nil
}

func (r *analysisRepository) List(ctx context.Context, projectID types.ProjectID) ([]*model.AnalyzedRisk, error) {
	iter := r.f.projectDoc(projectID).Collection(analyzedRisksCollection).OrderBy("risk_id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	risks := []*model.AnalyzedRisk{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate analyzed risks", goerr.V(model.ProjectIDKey, projectID))
		}

		var riskDoc analyzedRiskDocument
		if err := doc.DataTo(&riskDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal analyzed risk", goerr.V("doc_id", doc.Ref.ID))
		}
		risks = append(risks, riskDoc.toModel())
	}

	return risks, nil
}
