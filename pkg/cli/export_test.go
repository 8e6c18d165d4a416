package cli

import (
	"context"

	"github.com/secmon-lab/riskstage/pkg/domain/model"
)

var RenderReport = renderReport

func ScoreWorksheetFile(ctx context.Context, catalogs *model.Catalogs, path string) (*model.ProjectSnapshot, error) {
	ws, err := loadWorksheet(path)
	if err != nil {
		return nil, err
	}
	return scoreWorksheet(ctx, catalogs, ws)
}
