package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskstage/catalog"
	"github.com/secmon-lab/riskstage/pkg/domain/interfaces"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/repository/firestore"
	"github.com/secmon-lab/riskstage/pkg/repository/memory"
)

type repoFactory func(t *testing.T) interfaces.Repository

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

// forEachBackend runs the suite against every repository implementation
func forEachBackend(t *testing.T, suite func(t *testing.T, newRepo repoFactory)) {
	t.Run("memory", func(t *testing.T) {
		suite(t, newMemoryRepository)
	})
	t.Run("firestore", func(t *testing.T) {
		suite(t, newFirestoreRepository)
	})
}

func newSources(t *testing.T) *model.RiskSourceCatalog {
	t.Helper()
	sources, err := catalog.ParseSources(catalog.DefaultSources())
	gt.NoError(t, err).Required()
	return sources
}

func newAnalyzedRisk(riskID types.RiskID, probability, loss float64) *model.AnalyzedRisk {
	probabilities := make([]float64, model.ExpertPanelSize)
	losses := make([]float64, model.ExpertPanelSize)
	for i := range probabilities {
		probabilities[i] = probability
		losses[i] = loss
	}
	return &model.AnalyzedRisk{
		RiskID:              riskID,
		Probability:         probability,
		Loss:                loss,
		Magnitude:           probability * loss,
		Classification:      types.ClassificationMedium,
		ExpertProbabilities: probabilities,
		ExpertLosses:        losses,
		AnalyzedAt:          time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}
