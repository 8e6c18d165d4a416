package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/cli/config"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/usecase"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var project string
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var exportCfg config.Export

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Project ID to export",
			Value:       types.DefaultProjectID.String(),
			Sources:     cli.EnvVars("RISKSTAGE_PROJECT"),
			Destination: &project,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, exportCfg.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Write a snapshot of a project to Cloud Storage or stdout",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			projectID := types.ProjectID(project)
			if err := projectID.Validate(); err != nil {
				return goerr.Wrap(err, "invalid project ID")
			}
			if !exportCfg.IsConfigured() {
				return goerr.Wrap(config.ErrInvalidConfig, "--export-location is required")
			}

			catalogs, err := catalogCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load catalogs")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			exporter, closeExporter, err := exportCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure snapshot export")
			}
			defer closeExporter()

			uc := usecase.New(repo, catalogs, usecase.WithExporter(exporter))
			location, err := uc.Project.Export(ctx, projectID)
			if err != nil {
				return err
			}

			logging.Default().Info("Snapshot written", "project_id", projectID, "location", location)
			return nil
		},
	}
}
