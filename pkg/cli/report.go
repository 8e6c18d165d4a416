package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

var (
	headerColor   = color.New(color.FgCyan, color.Bold)
	labelColor    = color.New(color.FgHiWhite)
	improvedColor = color.New(color.FgGreen)
	worsenedColor = color.New(color.FgRed)

	priorityColors = map[types.Priority]*color.Color{
		types.PriorityHigh:   color.New(color.FgRed, color.Bold),
		types.PriorityMedium: color.New(color.FgYellow),
		types.PriorityLow:    color.New(color.FgGreen),
	}
)

// renderReport prints a human readable summary of the four stages
func renderReport(w io.Writer, s *model.ProjectSnapshot) {
	headerColor.Fprintln(w, "== Risk sources ==")
	scores := []struct {
		name  string
		value float64
	}{
		{"technical", s.SourceScores.Technical},
		{"cost", s.SourceScores.Cost},
		{"schedule", s.SourceScores.Schedule},
		{"management", s.SourceScores.Management},
		{"total", s.SourceScores.Total},
	}
	for _, sc := range scores {
		fmt.Fprintf(w, "  %s %.3f\n", labelColor.Sprintf("%-12s", sc.name), sc.value)
	}
	fmt.Fprintf(w, "  %s %d\n", labelColor.Sprintf("%-12s", "events"), len(s.SelectedEvents))

	fmt.Fprintln(w)
	headerColor.Fprintln(w, "== Prioritized risks ==")
	if len(s.PrioritizedRisks) == 0 {
		fmt.Fprintln(w, "  (no analyzed risks)")
	}
	for _, r := range s.PrioritizedRisks {
		fmt.Fprintf(w, "  %-8s p=%.3f l=%.3f m=%.4f %-10s %s\n",
			r.RiskID, r.Probability, r.Loss, r.Magnitude, r.Classification, colorPriority(r.Priority))
	}

	if len(s.MitigationPlans) > 0 {
		fmt.Fprintln(w)
		headerColor.Fprintln(w, "== Mitigation plans ==")
		for _, p := range s.MitigationPlans {
			fmt.Fprintf(w, "  %-8s %s (%s)\n", p.RiskID, p.MeasureName, p.MeasureID)
		}
	}

	if len(s.MonitoringResults) > 0 {
		fmt.Fprintln(w)
		headerColor.Fprintln(w, "== Monitoring ==")
		for _, m := range s.MonitoringResults {
			outcome := worsenedColor.Sprint("not improved")
			if m.Comparison.Improved {
				outcome = improvedColor.Sprint("improved")
			}
			fmt.Fprintf(w, "  %-8s m=%.4f -> %.4f reduction=%s %s\n",
				m.RiskID, m.Comparison.Before.Magnitude, m.Comparison.After.Magnitude,
				formatPercentage(m.Comparison.ReductionPercentage), outcome)
		}
	}
}

func colorPriority(p types.Priority) string {
	c, ok := priorityColors[p]
	if !ok {
		return string(p)
	}
	return c.Sprint(p)
}

func formatPercentage(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v)
}
