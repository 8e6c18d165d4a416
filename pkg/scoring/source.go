package scoring

import (
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// AggregateSources converts the risk source indicators into one probability per
// category (active indicators / 18) and their total. The total is a plain sum and
// may exceed 1. Catalog shape is not re-validated here.
func AggregateSources(catalog *model.RiskSourceCatalog) model.SourceScores {
	score := func(category types.Category) float64 {
		var sum int
		for _, ind := range catalog.Group(category).Risks {
			sum += ind.Value
		}
		return float64(sum) / model.IndicatorsPerCategory
	}

	scores := model.SourceScores{
		Technical:  score(types.CategoryTechnical),
		Cost:       score(types.CategoryCost),
		Schedule:   score(types.CategorySchedule),
		Management: score(types.CategoryManagement),
	}
	scores.Total = scores.Technical + scores.Cost + scores.Schedule + scores.Management
	return scores
}
