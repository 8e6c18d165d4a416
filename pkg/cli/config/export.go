package config

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/interfaces"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/service/export"
	"github.com/secmon-lab/riskstage/pkg/service/gcs"
	"github.com/urfave/cli/v3"
)

// stdoutLocation selects the stdout exporter
const stdoutLocation = "-"

// Export configures where project snapshots are written and how often
type Export struct {
	location string
	interval time.Duration
	projects []string
}

func (x *Export) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "export-location",
			Usage:       "Snapshot destination: gs://bucket/prefix or - for stdout (export disabled if empty)",
			Category:    "Export",
			Destination: &x.location,
			Sources:     cli.EnvVars("RISKSTAGE_EXPORT_LOCATION"),
		},
		&cli.DurationFlag{
			Name:        "export-interval",
			Usage:       "Interval of periodic snapshot export (disabled if zero)",
			Category:    "Export",
			Destination: &x.interval,
			Sources:     cli.EnvVars("RISKSTAGE_EXPORT_INTERVAL"),
		},
		&cli.StringSliceFlag{
			Name:        "export-project",
			Usage:       "Project ID exported periodically (repeatable)",
			Category:    "Export",
			Destination: &x.projects,
			Sources:     cli.EnvVars("RISKSTAGE_EXPORT_PROJECTS"),
		},
	}
}

func (x Export) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("location", x.location),
		slog.String("interval", x.interval.String()),
		slog.Any("projects", x.projects),
	)
}

// IsConfigured reports whether a snapshot destination is set
func (x *Export) IsConfigured() bool {
	return x.location != ""
}

// Interval returns the periodic export interval; zero disables the worker
func (x *Export) Interval() time.Duration {
	return x.interval
}

// Projects returns the projects exported periodically, the default project if none were named
func (x *Export) Projects() ([]types.ProjectID, error) {
	if len(x.projects) == 0 {
		return []types.ProjectID{types.DefaultProjectID}, nil
	}

	ids := make([]types.ProjectID, 0, len(x.projects))
	for _, p := range x.projects {
		id := types.ProjectID(p)
		if err := id.Validate(); err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V("project", p))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Configure returns the snapshot exporter and a function releasing its resources.
// It returns a nil exporter when export is not configured.
func (x *Export) Configure(ctx context.Context) (interfaces.SnapshotExporter, func(), error) {
	switch {
	case x.location == "":
		return nil, func() {}, nil

	case x.location == stdoutLocation:
		return export.NewWriterExporter(os.Stdout, "stdout"), func() {}, nil

	case gcs.IsURL(x.location):
		client, err := gcs.New(ctx)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize GCS client for export")
		}
		exporter, err := export.NewGCSExporter(client, x.location)
		if err != nil {
			_ = client.Close()
			return nil, nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V("location", x.location))
		}
		return exporter, func() { _ = client.Close() }, nil

	default:
		return nil, nil, goerr.Wrap(ErrInvalidConfig, "export location must be gs://bucket/prefix or -",
			goerr.V("location", x.location))
	}
}
