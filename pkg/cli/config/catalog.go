package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/catalog"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/service/gcs"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// Catalog holds the locations of the three static catalogs. An empty location
// selects the built-in catalog; gs:// locations are read from Cloud Storage.
type Catalog struct {
	sourcesPath  string
	eventsPath   string
	measuresPath string
}

func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "risk-sources",
			Usage:       "Risk source catalog (TOML file path or gs://bucket/object, built-in if empty)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("RISKSTAGE_RISK_SOURCES"),
			Destination: &x.sourcesPath,
		},
		&cli.StringFlag{
			Name:        "risk-events",
			Usage:       "Risk event catalog (TOML file path or gs://bucket/object, built-in if empty)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("RISKSTAGE_RISK_EVENTS"),
			Destination: &x.eventsPath,
		},
		&cli.StringFlag{
			Name:        "mitigation-measures",
			Usage:       "Mitigation measure catalog (TOML file path or gs://bucket/object, built-in if empty)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("RISKSTAGE_MITIGATION_MEASURES"),
			Destination: &x.measuresPath,
		},
	}
}

func (x Catalog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("risk-sources", x.sourcesPath),
		slog.String("risk-events", x.eventsPath),
		slog.String("mitigation-measures", x.measuresPath),
	)
}

// Configure loads the three catalogs concurrently and validates them
func (x *Catalog) Configure(ctx context.Context) (*model.Catalogs, error) {
	loader := &catalogLoader{}
	defer loader.close(ctx)

	var catalogs model.Catalogs
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		data, err := loader.load(ctx, "risk-sources", x.sourcesPath, catalog.DefaultSources())
		if err != nil {
			return err
		}
		c, err := catalog.ParseSources(data)
		if err != nil {
			return goerr.Wrap(err, "failed to load risk source catalog", goerr.V(CatalogPathKey, x.sourcesPath))
		}
		catalogs.Sources = c
		return nil
	})

	eg.Go(func() error {
		data, err := loader.load(ctx, "risk-events", x.eventsPath, catalog.DefaultEvents())
		if err != nil {
			return err
		}
		c, err := catalog.ParseEvents(data)
		if err != nil {
			return goerr.Wrap(err, "failed to load risk event catalog", goerr.V(CatalogPathKey, x.eventsPath))
		}
		catalogs.Events = c
		return nil
	})

	eg.Go(func() error {
		data, err := loader.load(ctx, "mitigation-measures", x.measuresPath, catalog.DefaultMeasures())
		if err != nil {
			return err
		}
		c, err := catalog.ParseMeasures(data)
		if err != nil {
			return goerr.Wrap(err, "failed to load mitigation catalog", goerr.V(CatalogPathKey, x.measuresPath))
		}
		catalogs.Measures = c
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := catalogs.Validate(); err != nil {
		return nil, err
	}

	logging.Default().Info("Catalogs loaded",
		"catalog", x,
		"events", catalogs.Events.Len(),
		"measures", len(catalogs.Measures.Measures),
	)
	return &catalogs, nil
}

// catalogLoader shares one GCS client between concurrent loads
type catalogLoader struct {
	mu     sync.Mutex
	client *gcs.Client
}

func (l *catalogLoader) gcsClient(ctx context.Context) (*gcs.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client == nil {
		client, err := gcs.New(ctx)
		if err != nil {
			return nil, err
		}
		l.client = client
	}
	return l.client, nil
}

func (l *catalogLoader) close(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client != nil {
		if err := l.client.Close(); err != nil {
			logging.From(ctx).Warn("failed to close GCS client", "error", err.Error())
		}
	}
}

func (l *catalogLoader) load(ctx context.Context, kind, location string, fallback []byte) ([]byte, error) {
	switch {
	case location == "":
		return fallback, nil

	case gcs.IsURL(location):
		bucket, object, err := gcs.ParseURL(location)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(CatalogKindKey, kind))
		}
		client, err := l.gcsClient(ctx)
		if err != nil {
			return nil, err
		}
		data, err := client.Read(ctx, bucket, object)
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(ErrCatalogNotFound, "catalog object does not exist",
				goerr.V(CatalogKindKey, kind), goerr.V(CatalogPathKey, location))
		}
		return data, err

	default:
		data, err := os.ReadFile(location)
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(ErrCatalogNotFound, "catalog file does not exist",
				goerr.V(CatalogKindKey, kind), goerr.V(CatalogPathKey, location))
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read catalog file",
				goerr.V(CatalogKindKey, kind), goerr.V(CatalogPathKey, location))
		}
		return data, nil
	}
}
