package types

import "github.com/google/uuid"

// RiskID identifies a risk event throughout analysis, mitigation and monitoring
type RiskID string

// Validate checks if the RiskID is valid
func (id RiskID) Validate() error {
	return validateID("risk", string(id))
}

// String returns the string representation of RiskID
func (id RiskID) String() string {
	return string(id)
}

// MeasureID identifies a mitigation measure in the catalog
type MeasureID string

// Validate checks if the MeasureID is valid
func (id MeasureID) Validate() error {
	return validateID("measure", string(id))
}

// String returns the string representation of MeasureID
func (id MeasureID) String() string {
	return string(id)
}

// IndicatorID identifies a risk source indicator in the catalog
type IndicatorID string

// Validate checks if the IndicatorID is valid
func (id IndicatorID) Validate() error {
	return validateID("indicator", string(id))
}

// String returns the string representation of IndicatorID
func (id IndicatorID) String() string {
	return string(id)
}

// ProjectID identifies one worksheet; all project state is keyed by it
type ProjectID string

// DefaultProjectID is the project served by the unscoped API routes
const DefaultProjectID ProjectID = "default"

// NewProjectID generates a random project ID
func NewProjectID() ProjectID {
	return ProjectID(uuid.NewString())
}

// Validate checks if the ProjectID is valid
func (id ProjectID) Validate() error {
	return validateID("project", string(id))
}

// String returns the string representation of ProjectID
func (id ProjectID) String() string {
	return string(id)
}
