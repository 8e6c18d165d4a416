package cli

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskstage/pkg/cli/config"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/repository/memory"
	"github.com/secmon-lab/riskstage/pkg/service/export"
	"github.com/secmon-lab/riskstage/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// worksheet is an offline description of a whole project: active risk source
// indicators, selected events, expert estimates, mitigation and re-estimation
type worksheet struct {
	Sources        map[string][]types.IndicatorID `toml:"sources"`
	SelectedEvents []types.RiskID                 `toml:"selected_events"`
	Risks          []worksheetRisk                `toml:"risk"`
}

type worksheetRisk struct {
	RiskID        types.RiskID      `toml:"id"`
	Probabilities []float64         `toml:"probabilities"`
	Losses        []float64         `toml:"losses"`
	Weights       []float64         `toml:"weights"`
	Measure       types.MeasureID   `toml:"measure"`
	Monitor       *worksheetMonitor `toml:"monitor"`
}

type worksheetMonitor struct {
	Probabilities []float64 `toml:"probabilities"`
	Losses        []float64 `toml:"losses"`
}

func loadWorksheet(path string) (*worksheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read worksheet", goerr.V("path", path))
	}

	var ws worksheet
	if err := toml.Unmarshal(data, &ws); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidParameter, "failed to parse worksheet",
			goerr.V("path", path), goerr.V("error", err.Error()))
	}
	return &ws, nil
}

func cmdScore() *cli.Command {
	var worksheetPath string
	var asJSON bool
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "worksheet",
			Aliases:     []string{"w"},
			Usage:       "Worksheet TOML file",
			Required:    true,
			Sources:     cli.EnvVars("RISKSTAGE_WORKSHEET"),
			Destination: &worksheetPath,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the resulting project snapshot as JSON instead of a report",
			Destination: &asJSON,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "score",
		Usage: "Run a worksheet through all four stages and print the result",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ws, err := loadWorksheet(worksheetPath)
			if err != nil {
				return err
			}

			catalogs, err := catalogCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load catalogs")
			}

			snapshot, err := scoreWorksheet(ctx, catalogs, ws)
			if err != nil {
				return err
			}

			return writeScore(ctx, c.Root().Writer, snapshot, asJSON)
		},
	}
}

func writeScore(ctx context.Context, w io.Writer, snapshot *model.ProjectSnapshot, asJSON bool) error {
	if w == nil {
		w = os.Stdout
	}
	if asJSON {
		_, err := export.NewWriterExporter(w, "stdout").Export(ctx, snapshot)
		return err
	}
	renderReport(w, snapshot)
	return nil
}

// scoreWorksheet runs every stage of the worksheet on a throwaway in-memory project
func scoreWorksheet(ctx context.Context, catalogs *model.Catalogs, ws *worksheet) (*model.ProjectSnapshot, error) {
	uc := usecase.New(memory.New(), catalogs)
	projectID := types.DefaultProjectID

	// Stage 1: identification
	for name, ids := range ws.Sources {
		category, err := types.ParseCategory(name)
		if err != nil {
			return nil, goerr.Wrap(model.ErrInvalidParameter, err.Error(), goerr.V(model.CategoryKey, name))
		}
		for _, id := range ids {
			if _, err := uc.Source.SetIndicator(ctx, projectID, category, id, true); err != nil {
				return nil, goerr.Wrap(err, "failed to activate indicator", goerr.V(model.IndicatorIDKey, id))
			}
		}
	}
	if len(ws.SelectedEvents) > 0 {
		if _, err := uc.Event.SelectEvents(ctx, projectID, ws.SelectedEvents); err != nil {
			return nil, goerr.Wrap(err, "failed to select events")
		}
	}

	// Stage 2: analysis
	for _, r := range ws.Risks {
		input := usecase.AnalyzeInput{
			RiskID:              r.RiskID,
			ExpertProbabilities: r.Probabilities,
			ExpertLosses:        r.Losses,
			ExpertWeights:       r.Weights,
		}
		if _, err := uc.Analysis.AnalyzeRisk(ctx, projectID, input); err != nil {
			return nil, goerr.Wrap(err, "failed to analyze risk", goerr.V(model.RiskIDKey, r.RiskID))
		}
	}

	// Stage 3: planning
	for _, r := range ws.Risks {
		if r.Measure == "" {
			continue
		}
		if _, err := uc.Mitigation.AssignMitigation(ctx, projectID, r.RiskID, r.Measure); err != nil {
			return nil, goerr.Wrap(err, "failed to assign mitigation", goerr.V(model.RiskIDKey, r.RiskID))
		}
	}

	// Stage 4: monitoring
	for _, r := range ws.Risks {
		if r.Monitor == nil {
			continue
		}
		input := usecase.MonitorInput{
			RiskID:                 r.RiskID,
			NewExpertProbabilities: r.Monitor.Probabilities,
			NewExpertLosses:        r.Monitor.Losses,
			ExpertWeights:          r.Weights,
		}
		if _, err := uc.Monitoring.MonitorRisk(ctx, projectID, input); err != nil {
			return nil, goerr.Wrap(err, "failed to monitor risk", goerr.V(model.RiskIDKey, r.RiskID))
		}
	}

	return uc.Project.Snapshot(ctx, projectID)
}
