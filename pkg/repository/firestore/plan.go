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

type mitigationPlanDocument struct {
	RiskID      string    `firestore:"risk_id"`
	MeasureID   string    `firestore:"measure_id"`
	MeasureName string    `firestore:"measure_name"`
	AssignedAt  time.Time `firestore:"assigned_at"`
}

func toMitigationPlanDocument(p *model.MitigationPlan) *mitigationPlanDocument {
	return &mitigationPlanDocument{
		RiskID:      p.RiskID.String(),
		MeasureID:   p.MeasureID.String(),
		MeasureName: p.MeasureName,
		AssignedAt:  p.AssignedAt,
	}
}

func (d *mitigationPlanDocument) toModel() *model.MitigationPlan {
	return &model.MitigationPlan{
		RiskID:      types.RiskID(d.RiskID),
		MeasureID:   types.MeasureID(d.MeasureID),
		MeasureName: d.MeasureName,
		AssignedAt:  d.AssignedAt,
	}
}

type planRepository struct {
	f *Firestore
}

func (r *planRepository) Put(ctx context.Context, projectID types.ProjectID, plan *model.MitigationPlan) error {
	docRef := r.f.riskDoc(projectID, mitigationPlansCollection, plan.RiskID)
	if _, err := docRef.Set(ctx, toMitigationPlanDocument(plan)); err != nil {
		return goerr.Wrap(err, "failed to save mitigation plan",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, plan.RiskID))
	}
	return nil
}

func (r *planRepository) Get(ctx context.Context, projectID types.ProjectID, riskID types.RiskID) (*model.MitigationPlan, error) {
	doc, err := r.f.riskDoc(projectID, mitigationPlansCollection, riskID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "mitigation plan not found",
				goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
		}
		return nil, goerr.Wrap(err, "failed to get mitigation plan",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
	}

	var planDoc mitigationPlanDocument
	if err := doc.DataTo(&planDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal mitigation plan", goerr.V(model.RiskIDKey, riskID))
	}
	return planDoc.toModel(), nil
}

func (r *planRepository) List(ctx context.Context, projectID types.ProjectID) ([]*model.MitigationPlan, error) {
	iter := r.f.projectDoc(projectID).Collection(mitigationPlansCollection).OrderBy("risk_id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	plans := []*model.MitigationPlan{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate mitigation plans", goerr.V(model.ProjectIDKey, projectID))
		}

		var planDoc mitigationPlanDocument
		if err := doc.DataTo(&planDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal mitigation plan", goerr.V("doc_id", doc.Ref.ID))
		}
		plans = append(plans, planDoc.toModel())
	}

	return plans, nil
}
