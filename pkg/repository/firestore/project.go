package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type projectDocument struct {
	Sources        *model.RiskSourceCatalog `firestore:"sources,omitempty"`
	SelectedEvents []string                 `firestore:"selected_events"`
	UpdatedAt      time.Time                `firestore:"updated_at"`
}

func (f *Firestore) getProject(ctx context.Context, projectID types.ProjectID) (*projectDocument, error) {
	doc, err := f.projectDoc(projectID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V(model.ProjectIDKey, projectID))
	}

	var projectDoc projectDocument
	if err := doc.DataTo(&projectDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal project", goerr.V(model.ProjectIDKey, projectID))
	}
	return &projectDoc, nil
}

type sourceRepository struct {
	f *Firestore
}

func (r *sourceRepository) Get(ctx context.Context, projectID types.ProjectID) (*model.RiskSourceCatalog, error) {
	projectDoc, err := r.f.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if projectDoc == nil || projectDoc.Sources == nil {
		return nil, goerr.Wrap(model.ErrNotFound, "risk sources not found", goerr.V(model.ProjectIDKey, projectID))
	}
	return projectDoc.Sources, nil
}

func (r *sourceRepository) Put(ctx context.Context, projectID types.ProjectID, catalog *model.RiskSourceCatalog) error {
	_, err := r.f.projectDoc(projectID).Set(ctx, map[string]any{
		"sources":    catalog,
		"updated_at": time.Now().UTC(),
	}, firestore.MergeAll)
	if err != nil {
		return goerr.Wrap(err, "failed to save risk sources", goerr.V(model.ProjectIDKey, projectID))
	}
	return nil
}

type selectionRepository struct {
	f *Firestore
}

func (r *selectionRepository) Get(ctx context.Context, projectID types.ProjectID) ([]types.RiskID, error) {
	projectDoc, err := r.f.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ids := []types.RiskID{}
	if projectDoc == nil {
		return ids, nil
	}
	for _, id := range projectDoc.SelectedEvents {
		ids = append(ids, types.RiskID(id))
	}
	return ids, nil
}

func (r *selectionRepository) Put(ctx context.Context, projectID types.ProjectID, ids []types.RiskID) error {
	selected := make([]string, len(ids))
	for i, id := range ids {
		selected[i] = id.String()
	}

	_, err := r.f.projectDoc(projectID).Set(ctx, map[string]any{
		"selected_events": selected,
		"updated_at":      time.Now().UTC(),
	}, firestore.MergeAll)
	if err != nil {
		return goerr.Wrap(err, "failed to save selected events", goerr.V(model.ProjectIDKey, projectID))
	}
	return nil
}
