package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// IndicatorsPerCategory is the fixed number of indicators in each risk source category.
// Source scores divide by this value regardless of the actual list length.
const IndicatorsPerCategory = 18

// RiskSourceIndicator is a binary contributing factor of a risk source category
type RiskSourceIndicator struct {
	ID    types.IndicatorID `json:"id" toml:"id" firestore:"id"`
	Name  string            `json:"name" toml:"name" firestore:"name"`
	Value int               `json:"value" toml:"value" firestore:"value"`
}

// RiskSourceGroup holds the ordered indicators of one category
type RiskSourceGroup struct {
	Risks []RiskSourceIndicator `json:"risks" toml:"risks" firestore:"risks"`
}

// RiskSourceCatalog is the per-project set of risk source indicators
type RiskSourceCatalog struct {
	Technical  RiskSourceGroup `json:"technical" toml:"technical" firestore:"technical"`
	Cost       RiskSourceGroup `json:"cost" toml:"cost" firestore:"cost"`
	Schedule   RiskSourceGroup `json:"schedule" toml:"schedule" firestore:"schedule"`
	Management RiskSourceGroup `json:"management" toml:"management" firestore:"management"`
}

// Group returns the indicator group of the category, or nil for an unknown category
func (c *RiskSourceCatalog) Group(category types.Category) *RiskSourceGroup {
	switch category {
	case types.CategoryTechnical:
		return &c.Technical
	case types.CategoryCost:
		return &c.Cost
	case types.CategorySchedule:
		return &c.Schedule
	case types.CategoryManagement:
		return &c.Management
	default:
		return nil
	}
}

// Clone returns a deep copy of the catalog
func (c *RiskSourceCatalog) Clone() *RiskSourceCatalog {
	if c == nil {
		return nil
	}
	cloned := &RiskSourceCatalog{}
	for _, category := range types.AllCategories() {
		src := c.Group(category)
		dst := cloned.Group(category)
		dst.Risks = make([]RiskSourceIndicator, len(src.Risks))
		copy(dst.Risks, src.Risks)
	}
	return cloned
}

// SetIndicator toggles one indicator. It returns ErrNotFound if the indicator does not exist.
func (c *RiskSourceCatalog) SetIndicator(category types.Category, id types.IndicatorID, active bool) error {
	group := c.Group(category)
	if group == nil {
		return goerr.Wrap(ErrInvalidCatalog, "unknown category", goerr.V(CategoryKey, category))
	}
	for i := range group.Risks {
		if group.Risks[i].ID == id {
			if active {
				group.Risks[i].Value = 1
			} else {
				group.Risks[i].Value = 0
			}
			return nil
		}
	}
	return goerr.Wrap(ErrNotFound, "indicator not found", goerr.V(CategoryKey, category), goerr.V(IndicatorIDKey, id))
}

// Validate checks the catalog shape: 18 binary indicators per category with unique IDs
func (c *RiskSourceCatalog) Validate() error {
	seen := make(map[types.IndicatorID]bool)
	for _, category := range types.AllCategories() {
		group := c.Group(category)
		if len(group.Risks) != IndicatorsPerCategory {
			return goerr.Wrap(ErrInvalidCatalog, "category must contain exactly 18 indicators",
				goerr.V(CategoryKey, category), goerr.V("count", len(group.Risks)))
		}
		for _, ind := range group.Risks {
			if err := ind.ID.Validate(); err != nil {
				return goerr.Wrap(ErrInvalidCatalog, err.Error(), goerr.V(CategoryKey, category))
			}
			if ind.Value != 0 && ind.Value != 1 {
				return goerr.Wrap(ErrInvalidCatalog, "indicator value must be 0 or 1",
					goerr.V(CategoryKey, category), goerr.V(IndicatorIDKey, ind.ID), goerr.V("value", ind.Value))
			}
			if seen[ind.ID] {
				return goerr.Wrap(ErrInvalidCatalog, "duplicate indicator ID", goerr.V(IndicatorIDKey, ind.ID))
			}
			seen[ind.ID] = true
		}
	}
	return nil
}

// RiskEvent is a descriptive entry of the event catalog
type RiskEvent struct {
	ID   types.RiskID `json:"id" toml:"id"`
	Name string       `json:"name" toml:"name"`
}

// RiskEventCatalog lists the identifiable risk events per category
type RiskEventCatalog struct {
	Technical  []RiskEvent `json:"technical" toml:"technical"`
	Cost       []RiskEvent `json:"cost" toml:"cost"`
	Schedule   []RiskEvent `json:"schedule" toml:"schedule"`
	Management []RiskEvent `json:"management" toml:"management"`
}

// Events returns the events of the category
func (c *RiskEventCatalog) Events(category types.Category) []RiskEvent {
	switch category {
	case types.CategoryTechnical:
		return c.Technical
	case types.CategoryCost:
		return c.Cost
	case types.CategorySchedule:
		return c.Schedule
	case types.CategoryManagement:
		return c.Management
	default:
		return nil
	}
}

// Lookup finds an event by ID across all categories
func (c *RiskEventCatalog) Lookup(id types.RiskID) (*RiskEvent, types.Category, bool) {
	for _, category := range types.AllCategories() {
		for _, ev := range c.Events(category) {
			if ev.ID == id {
				found := ev
				return &found, category, true
			}
		}
	}
	return nil, "", false
}

// Contains reports whether the event exists in any category
func (c *RiskEventCatalog) Contains(id types.RiskID) bool {
	_, _, ok := c.Lookup(id)
	return ok
}

// Len returns the total number of events
func (c *RiskEventCatalog) Len() int {
	n := 0
	for _, category := range types.AllCategories() {
		n += len(c.Events(category))
	}
	return n
}

// Validate checks event IDs are well-formed and unique
func (c *RiskEventCatalog) Validate() error {
	seen := make(map[types.RiskID]bool)
	for _, category := range types.AllCategories() {
		for _, ev := range c.Events(category) {
			if err := ev.ID.Validate(); err != nil {
				return goerr.Wrap(ErrInvalidCatalog, err.Error(), goerr.V(CategoryKey, category))
			}
			if ev.Name == "" {
				return goerr.Wrap(ErrInvalidCatalog, "event name is required", goerr.V(EventIDKey, ev.ID))
			}
			if seen[ev.ID] {
				return goerr.Wrap(ErrInvalidCatalog, "duplicate event ID", goerr.V(EventIDKey, ev.ID))
			}
			seen[ev.ID] = true
		}
	}
	return nil
}

// MitigationMeasure is an action that can be assigned to a risk to reduce its magnitude
type MitigationMeasure struct {
	ID          types.MeasureID `json:"id" toml:"id"`
	Name        string          `json:"name" toml:"name"`
	Description string          `json:"description,omitempty" toml:"description"`
	Cost        string          `json:"cost,omitempty" toml:"cost"`
	Effect      string          `json:"effect,omitempty" toml:"effect"`
}

// MitigationCatalog is the static list of mitigation measures
type MitigationCatalog struct {
	Measures []MitigationMeasure `json:"measures" toml:"measure"`
}

// Find returns the measure with the given ID
func (c *MitigationCatalog) Find(id types.MeasureID) (*MitigationMeasure, bool) {
	for _, m := range c.Measures {
		if m.ID == id {
			found := m
			return &found, true
		}
	}
	return nil, false
}

// Validate checks measure IDs are well-formed and unique
func (c *MitigationCatalog) Validate() error {
	seen := make(map[types.MeasureID]bool)
	for _, m := range c.Measures {
		if err := m.ID.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidCatalog, err.Error())
		}
		if m.Name == "" {
			return goerr.Wrap(ErrInvalidCatalog, "measure name is required", goerr.V(MeasureIDKey, m.ID))
		}
		if seen[m.ID] {
			return goerr.Wrap(ErrInvalidCatalog, "duplicate measure ID", goerr.V(MeasureIDKey, m.ID))
		}
		seen[m.ID] = true
	}
	return nil
}

// Catalogs bundles the three static catalogs
type Catalogs struct {
	Sources  *RiskSourceCatalog
	Events   *RiskEventCatalog
	Measures *MitigationCatalog
}

// Validate validates all catalogs
func (c *Catalogs) Validate() error {
	if c.Sources == nil || c.Events == nil || c.Measures == nil {
		return goerr.Wrap(ErrInvalidCatalog, "all catalogs are required")
	}
	if err := c.Sources.Validate(); err != nil {
		return goerr.Wrap(err, "invalid risk source catalog")
	}
	if err := c.Events.Validate(); err != nil {
		return goerr.Wrap(err, "invalid risk event catalog")
	}
	if err := c.Measures.Validate(); err != nil {
		return goerr.Wrap(err, "invalid mitigation catalog")
	}
	return nil
}
