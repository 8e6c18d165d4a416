package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/cli/config"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Load and validate the risk source, risk event and mitigation catalogs",
		Flags:   catalogCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			catalogs, err := catalogCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			for _, category := range types.AllCategories() {
				logger.Info("Category validated",
					"category", category,
					"indicators", len(catalogs.Sources.Group(category).Risks),
					"events", len(catalogs.Events.Events(category)),
				)
			}
			logger.Info("Catalog validation passed",
				"events", catalogs.Events.Len(),
				"measures", len(catalogs.Measures.Measures),
			)
			return nil
		},
	}
}
