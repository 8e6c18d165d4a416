package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/interfaces"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"google.golang.org/api/iterator"
)

// Sub-collection names under each project document
const (
	analyzedRisksCollection     = "analyzed_risks"
	mitigationPlansCollection   = "mitigation_plans"
	monitoringResultsCollection = "monitoring_results"
)

type Firestore struct {
	client           *firestore.Client
	collectionPrefix string

	source     *sourceRepository
	selection  *selectionRepository
	analysis   *analysisRepository
	plan       *planRepository
	monitoring *monitoringRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{client: client}
	for _, opt := range opts {
		opt(f)
	}

	f.source = &sourceRepository{f: f}
	f.selection = &selectionRepository{f: f}
	f.analysis = &analysisRepository{f: f}
	f.plan = &planRepository{f: f}
	f.monitoring = &monitoringRepository{f: f}

	return f, nil
}

func (f *Firestore) projectsCollection() string {
	if f.collectionPrefix != "" {
		return f.collectionPrefix + "_projects"
	}
	return "projects"
}

func (f *Firestore) projectDoc(projectID types.ProjectID) *firestore.DocumentRef {
	return f.client.Collection(f.projectsCollection()).Doc(projectID.String())
}

func (f *Firestore) riskDoc(projectID types.ProjectID, collection string, riskID types.RiskID) *firestore.DocumentRef {
	return f.projectDoc(projectID).Collection(collection).Doc(riskID.String())
}

func (f *Firestore) Source() interfaces.SourceRepository {
	return f.source
}

func (f *Firestore) Selection() interfaces.SelectionRepository {
	return f.selection
}

func (f *Firestore) Analysis() interfaces.AnalysisRepository {
	return f.analysis
}

func (f *Firestore) Plan() interfaces.MitigationPlanRepository {
	return f.plan
}

func (f *Firestore) Monitoring() interfaces.MonitoringRepository {
	return f.monitoring
}

// Reset deletes all risk records of the project and then the project document itself
func (f *Firestore) Reset(ctx context.Context, projectID types.ProjectID) error {
	bw := f.client.BulkWriter(ctx)

	for _, collection := range []string{analyzedRisksCollection, mitigationPlansCollection, monitoringResultsCollection} {
		iter := f.projectDoc(projectID).Collection(collection).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				bw.End()
				return goerr.Wrap(err, "failed to iterate project records",
					goerr.V(model.ProjectIDKey, projectID), goerr.V("collection", collection))
			}
			if _, err := bw.Delete(doc.Ref); err != nil {
				iter.Stop()
				bw.End()
				return goerr.Wrap(err, "failed to enqueue record deletion",
					goerr.V(model.ProjectIDKey, projectID), goerr.V("collection", collection))
			}
		}
		iter.Stop()
	}

	if _, err := bw.Delete(f.projectDoc(projectID)); err != nil {
		bw.End()
		return goerr.Wrap(err, "failed to enqueue project deletion", goerr.V(model.ProjectIDKey, projectID))
	}
	bw.End()

	return nil
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
