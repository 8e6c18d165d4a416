package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by the use case and controller layers
var (
	ErrMissingParameter   = goerr.New("required parameter is missing")
	ErrInvalidParameter   = goerr.New("invalid parameter")
	ErrInvalidCardinality = goerr.New("invalid number of expert estimates")
	ErrInvalidEstimate    = goerr.New("expert estimate out of range")
	ErrDegenerateWeights  = goerr.New("expert weights sum to zero")
	ErrInvalidCatalog     = goerr.New("invalid catalog")
	ErrNotFound           = goerr.New("not found")
)

// Context keys for error values
const (
	ProjectIDKey   = "project_id"
	RiskIDKey      = "risk_id"
	MeasureIDKey   = "measure_id"
	EventIDKey     = "event_id"
	CategoryKey    = "category"
	IndicatorIDKey = "indicator_id"
	FieldKey       = "field"
)
