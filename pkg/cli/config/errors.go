package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrCatalogNotFound = goerr.New("catalog file not found")
)

// Context keys for error values
const (
	CatalogPathKey = "catalog_path"
	CatalogKindKey = "catalog_kind"
)
