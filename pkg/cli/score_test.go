package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskstage/catalog"
	"github.com/secmon-lab/riskstage/pkg/cli"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

const worksheetContent = `
selected_events = ["tr1", "cr1"]

[sources]
technical = ["ts1", "ts2", "ts3"]
cost = ["cs1"]

[[risk]]
id = "tr1"
probabilities = [0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5]
losses = [1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0]
measure = "m1"

  [risk.monitor]
  probabilities = [0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2]
  losses = [1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0]

[[risk]]
id = "cr1"
probabilities = [0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1]
losses = [0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5]
`

func writeWorksheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worksheet.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestScoreWorksheet(t *testing.T) {
	catalogs, err := catalog.Default()
	gt.NoError(t, err).Required()

	snapshot, err := cli.ScoreWorksheetFile(context.Background(), catalogs, writeWorksheet(t, worksheetContent))
	gt.NoError(t, err).Required()

	gt.Value(t, snapshot.SourceScores.Technical).Equal(3.0 / 18.0)
	gt.Value(t, snapshot.SourceScores.Cost).Equal(1.0 / 18.0)
	gt.Value(t, snapshot.SelectedEvents).Equal([]types.RiskID{"tr1", "cr1"})
	gt.Array(t, snapshot.PrioritizedRisks).Length(2).Required()
	gt.Value(t, snapshot.PrioritizedRisks[0].RiskID).Equal(types.RiskID("tr1"))
	gt.Value(t, snapshot.PrioritizedRisks[0].Priority).Equal(types.PriorityHigh)
	gt.Array(t, snapshot.MitigationPlans).Length(1)
	gt.Array(t, snapshot.MonitoringResults).Length(1).Required()
	gt.Bool(t, snapshot.MonitoringResults[0].Comparison.Improved).True()
	gt.Value(t, snapshot.MonitoringResults[0].MitigationMeasure).NotNil()

	t.Run("report", func(t *testing.T) {
		color.NoColor = true
		var buf bytes.Buffer
		cli.RenderReport(&buf, snapshot)

		gt.String(t, buf.String()).Contains("Prioritized risks")
		gt.String(t, buf.String()).Contains("Additional code review and static analysis")
		gt.String(t, buf.String()).Contains("60.0%")
		gt.String(t, buf.String()).Contains("improved")
	})
}

func TestScoreWorksheet_Errors(t *testing.T) {
	catalogs, err := catalog.Default()
	gt.NoError(t, err).Required()
	ctx := context.Background()

	t.Run("unknown category", func(t *testing.T) {
		path := writeWorksheet(t, "[sources]\nquality = [\"ts1\"]\n")
		_, err := cli.ScoreWorksheetFile(ctx, catalogs, path)
		gt.Error(t, err).Is(model.ErrInvalidParameter)
	})

	t.Run("wrong number of estimates", func(t *testing.T) {
		path := writeWorksheet(t, "[[risk]]\nid = \"tr1\"\nprobabilities = [0.5]\nlosses = [0.5]\n")
		_, err := cli.ScoreWorksheetFile(ctx, catalogs, path)
		gt.Error(t, err).Is(model.ErrInvalidCardinality)
	})

	t.Run("measure for unknown catalog entry", func(t *testing.T) {
		path := writeWorksheet(t, `
[[risk]]
id = "tr1"
probabilities = [0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5]
losses = [0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5]
measure = "m999"
`)
		_, err := cli.ScoreWorksheetFile(ctx, catalogs, path)
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		_, err := cli.ScoreWorksheetFile(ctx, catalogs, writeWorksheet(t, "[[risk"))
		gt.Error(t, err).Is(model.ErrInvalidParameter)
	})
}
