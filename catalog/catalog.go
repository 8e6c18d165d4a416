// Package catalog provides the built-in risk source, risk event and mitigation
// measure catalogs and the TOML decoders shared with user-supplied catalogs.
package catalog

import (
	_ "embed"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
)

//go:embed sources.toml
var defaultSources []byte

//go:embed events.toml
var defaultEvents []byte

//go:embed measures.toml
var defaultMeasures []byte

// ParseSources decodes and validates a risk source catalog
func ParseSources(data []byte) (*model.RiskSourceCatalog, error) {
	var c model.RiskSourceCatalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidCatalog, "failed to parse risk source catalog", goerr.V("error", err.Error()))
	}
	if err := c.Validate(); err != nil {
		return nil, goerr.Wrap(err, "risk source catalog validation failed")
	}
	return &c, nil
}

// ParseEvents decodes and validates a risk event catalog
func ParseEvents(data []byte) (*model.RiskEventCatalog, error) {
	var c model.RiskEventCatalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidCatalog, "failed to parse risk event catalog", goerr.V("error", err.Error()))
	}
	if err := c.Validate(); err != nil {
		return nil, goerr.Wrap(err, "risk event catalog validation failed")
	}
	return &c, nil
}

// ParseMeasures decodes and validates a mitigation measure catalog
func ParseMeasures(data []byte) (*model.MitigationCatalog, error) {
	var c model.MitigationCatalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidCatalog, "failed to parse mitigation catalog", goerr.V("error", err.Error()))
	}
	if err := c.Validate(); err != nil {
		return nil, goerr.Wrap(err, "mitigation catalog validation failed")
	}
	return &c, nil
}

// Default returns freshly decoded copies of the built-in catalogs
func Default() (*model.Catalogs, error) {
	sources, err := ParseSources(defaultSources)
	if err != nil {
		return nil, err
	}
	events, err := ParseEvents(defaultEvents)
	if err != nil {
		return nil, err
	}
	measures, err := ParseMeasures(defaultMeasures)
	if err != nil {
		return nil, err
	}

	return &model.Catalogs{
		Sources:  sources,
		Events:   events,
		Measures: measures,
	}, nil
}

// DefaultSources returns the raw built-in risk source catalog
func DefaultSources() []byte { return defaultSources }

// DefaultEvents returns the raw built-in risk event catalog
func DefaultEvents() []byte { return defaultEvents }

// DefaultMeasures returns the raw built-in mitigation catalog
func DefaultMeasures() []byte { return defaultMeasures }
