package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

func TestEventUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("catalog lists all categories", func(t *testing.T) {
		uc := newUseCases(t)
		gt.Value(t, uc.Event.Catalog().Len()).Equal(26)
	})

	t.Run("select and read back", func(t *testing.T) {
		uc := newUseCases(t)
		selection, err := uc.Event.SelectEvents(ctx, testProject, []types.RiskID{"tr1", "cr2", "tr1"})
		gt.NoError(t, err).Required()
		gt.Value(t, selection.Count).Equal(2)
		gt.Value(t, selection.SelectedEvents).Equal([]types.RiskID{"tr1", "cr2"})

		selected, err := uc.Event.Selected(ctx, testProject)
		gt.NoError(t, err).Required()
		gt.Value(t, selected.Count).Equal(2)
	})

	t.Run("nothing selected", func(t *testing.T) {
		uc := newUseCases(t)
		selected, err := uc.Event.Selected(ctx, testProject)
		gt.NoError(t, err).Required()
		gt.Value(t, selected.Count).Equal(0)
		gt.Value(t, selected.SelectedEvents).NotNil()
	})

	t.Run("unknown event is rejected", func(t *testing.T) {
		uc := newUseCases(t)
		_, err := uc.Event.SelectEvents(ctx, testProject, []types.RiskID{"tr1", "zz9"})
		gt.Error(t, err).Is(model.ErrNotFound)

		_, err = uc.Event.SelectEvents(ctx, testProject, nil)
		gt.Error(t, err).Is(model.ErrMissingParameter)
	})
}
