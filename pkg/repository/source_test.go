package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

func runSourceRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Helper()

	t.Run("Get returns ErrNotFound before Put", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Source().Get(context.Background(), types.NewProjectID())
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	t.Run("Put then Get round trips indicators", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		pid := types.NewProjectID()

		sources := newSources(t)
		sources.Cost.Risks[4].Value = 1
		gt.NoError(t, repo.Source().Put(ctx, pid, sources)).Required()

		// Mutating the caller's copy after Put must not leak into storage
		sources.Cost.Risks[5].Value = 1

		got, err := repo.Source().Get(ctx, pid)
		gt.NoError(t, err).Required()
		gt.Array(t, got.Cost.Risks).Length(model.IndicatorsPerCategory).Required()
		gt.Value(t, got.Cost.Risks[4].Value).Equal(1)
		gt.Value(t, got.Cost.Risks[5].Value).Equal(0)
		gt.Value(t, got.Cost.Risks[4].ID).Equal(sources.Cost.Risks[4].ID)
	})

	t.Run("Put replaces previous indicators", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		pid := types.NewProjectID()

		first := newSources(t)
		first.Technical.Risks[0].Value = 1
		gt.NoError(t, repo.Source().Put(ctx, pid, first)).Required()

		second := newSources(t)
		second.Management.Risks[0].Value = 1
		gt.NoError(t, repo.Source().Put(ctx, pid, second)).Required()

		got, err := repo.Source().Get(ctx, pid)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Technical.Risks[0].Value).Equal(0)
		gt.Value(t, got.Management.Risks[0].Value).Equal(1)
	})
}

func runSelectionRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Helper()

	t.Run("Get returns empty selection for new project", func(t *testing.T) {
		repo := newRepo(t)
		ids, err := repo.Selection().Get(context.Background(), types.NewProjectID())
		gt.NoError(t, err).Required()
		gt.Value(t, ids).NotNil()
		gt.Array(t, ids).Length(0)
	})

	t.Run("Put replaces selection and keeps order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		pid := types.NewProjectID()

		gt.NoError(t, repo.Selection().Put(ctx, pid, []types.RiskID{"tr1", "tr2"})).Required()
		gt.NoError(t, repo.Selection().Put(ctx, pid, []types.RiskID{"mr3", "cr1"})).Required()

		ids, err := repo.Selection().Get(ctx, pid)
		gt.NoError(t, err).Required()
		gt.Value(t, ids).Equal([]types.RiskID{"mr3", "cr1"})
	})

	t.Run("selection and sources are stored independently", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		pid := types.NewProjectID()

		sources := newSources(t)
		sources.Schedule.Risks[2].Value = 1
		gt.NoError(t, repo.Source().Put(ctx, pid, sources)).Required()
		gt.NoError(t, repo.Selection().Put(ctx, pid, []types.RiskID{"pr1"})).Required()

		got, err := repo.Source().Get(ctx, pid)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Schedule.Risks[2].Value).Equal(1)
	})
}

func TestSourceRepository(t *testing.T) {
	forEachBackend(t, runSourceRepositoryTest)
}

func TestSelectionRepository(t *testing.T) {
	forEachBackend(t, runSelectionRepositoryTest)
}
