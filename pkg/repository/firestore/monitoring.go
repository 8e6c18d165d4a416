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

type snapshotDocument struct {
	Probability    float64 `firestore:"probability"`
	Loss           float64 `firestore:"loss"`
	Magnitude      float64 `firestore:"magnitude"`
	Classification string  `firestore:"classification"`
}

type monitoringResultDocument struct {
	RiskID              string                  `firestore:"risk_id"`
	Before              snapshotDocument        `firestore:"before"`
	After               snapshotDocument        `firestore:"after"`
	Reduction           float64                 `firestore:"reduction"`
	ReductionPercentage float64                 `firestore:"reduction_percentage"`
	Improved            bool                    `firestore:"improved"`
	MitigationPlan      *mitigationPlanDocument `firestore:"mitigation_plan"`
	EvaluatedAt         time.Time               `firestore:"evaluated_at"`
}

func toSnapshotDocument(s model.RiskSnapshot) snapshotDocument {
	return snapshotDocument{
		Probability:    s.Probability,
		Loss:           s.Loss,
		Magnitude:      s.Magnitude,
		Classification: s.Classification.String(),
	}
}

func (d snapshotDocument) toModel() model.RiskSnapshot {
	return model.RiskSnapshot{
		Probability:    d.Probability,
		Loss:           d.Loss,
		Magnitude:      d.Magnitude,
		Classification: types.Classification(d.Classification),
	}
}

func toMonitoringResultDocument(res *model.MonitoringResult) *monitoringResultDocument {
	doc := &monitoringResultDocument{
		RiskID:              res.RiskID.String(),
		Before:              toSnapshotDocument(res.Comparison.Before),
		After:               toSnapshotDocument(res.Comparison.After),
		Reduction:           res.Comparison.Reduction,
		ReductionPercentage: res.Comparison.ReductionPercentage,
		Improved:            res.Comparison.Improved,
		EvaluatedAt:         res.EvaluatedAt,
	}
	if res.MitigationMeasure != nil {
		doc.MitigationPlan = toMitigationPlanDocument(res.MitigationMeasure)
	}
	return doc
}

func (d *monitoringResultDocument) toModel() *model.MonitoringResult {
	res := &model.MonitoringResult{
		RiskID: types.RiskID(d.RiskID),
		Comparison: model.Comparison{
			Before:              d.Before.toModel(),
			After:               d.After.toModel(),
			Reduction:           d.Reduction,
			ReductionPercentage: d.ReductionPercentage,
			Improved:            d.Improved,
		},
		EvaluatedAt: d.EvaluatedAt,
	}
	if d.MitigationPlan != nil {
		res.MitigationMeasure = d.MitigationPlan.toModel()
	}
	return res
}

type monitoringRepository struct {
	f *Firestore
}

func (r *monitoringRepository) Put(ctx context.Context, projectID types.ProjectID, result *model.MonitoringResult) error {
	docRef := r.f.riskDoc(projectID, monitoringResultsCollection, result.RiskID)
	if _, err := docRef.Set(ctx, toMonitoringResultDocument(result)); err != nil {
		return goerr.Wrap(err, "failed to save monitoring result",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, result.RiskID))
	}
	return nil
}

func (r *monitoringRepository) Get(ctx context.Context, projectID types.ProjectID, riskID types.RiskID) (*model.MonitoringResult, error) {
	doc, err := r.f.riskDoc(projectID, monitoringResultsCollection, riskID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "monitoring result not found",
				goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
		}
		return nil, goerr.Wrap(err, "failed to get monitoring result",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, riskID))
	}

	var resDoc monitoringResultDocument
	if err := doc.DataTo(&resDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal monitoring result", goerr.V(model.RiskIDKey, riskID))
	}
	return resDoc.toModel(), nil
}

func (r *monitoringRepository) List(ctx context.Context, projectID types.ProjectID) ([]*model.MonitoringResult, error) {
	iter := r.f.projectDoc(projectID).Collection(monitoringResultsCollection).OrderBy("risk_id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	results := []*model.MonitoringResult{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate monitoring results", goerr.V(model.ProjectIDKey, projectID))
		}

		var resDoc monitoringResultDocument
		if err := doc.DataTo(&resDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal monitoring result", goerr.V("doc_id", doc.Ref.ID))
		}
		results = append(results, resDoc.toModel())
	}

	return results, nil
}
