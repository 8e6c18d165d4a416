package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/interfaces"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// Notifier posts post-mitigation evaluations to a Slack channel
type Notifier struct {
	svc       Service
	channelID string
}

var _ interfaces.MonitoringNotifier = &Notifier{}

// NewNotifier creates a notifier posting to channelID
func NewNotifier(svc Service, channelID string) *Notifier {
	return &Notifier{svc: svc, channelID: channelID}
}

func (n *Notifier) NotifyMonitoring(ctx context.Context, projectID types.ProjectID, result *model.MonitoringResult) error {
	blocks := buildMonitoringBlocks(projectID, result)
	text := monitoringSummary(result)

	ts, err := n.svc.PostMessage(ctx, n.channelID, blocks, text)
	if err != nil {
		return goerr.Wrap(err, "failed to notify monitoring result",
			goerr.V(model.ProjectIDKey, projectID), goerr.V(model.RiskIDKey, result.RiskID))
	}

	logging.From(ctx).Info("monitoring result notified",
		"project_id", projectID,
		"risk_id", result.RiskID,
		"channel_id", n.channelID,
		"ts", ts,
	)
	return nil
}

func monitoringSummary(result *model.MonitoringResult) string {
	verdict := "not improved"
	if result.Comparison.Improved {
		verdict = "improved"
	}
	return fmt.Sprintf("Risk %s re-evaluated: %s (magnitude %.4f -> %.4f)",
		result.RiskID, verdict, result.Comparison.Before.Magnitude, result.Comparison.After.Magnitude)
}

func formatPercentage(c *model.Comparison) string {
	if !c.HasReductionPercentage() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", c.ReductionPercentage)
}

func buildMonitoringBlocks(projectID types.ProjectID, result *model.MonitoringResult) []slack.Block {
	cmp := result.Comparison

	icon := ":warning:"
	if cmp.Improved {
		icon = ":white_check_mark:"
	}

	header := slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType,
		fmt.Sprintf("Risk %s re-evaluated", result.RiskID), false, false))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Before*\n%.4f (%s)", cmp.Before.Magnitude, cmp.Before.Classification), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*After*\n%.4f (%s)", cmp.After.Magnitude, cmp.After.Classification), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Reduction*\n%.4f", cmp.Reduction), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Reduction %%*\n%s", formatPercentage(&cmp)), false, false),
	}
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, icon+" "+monitoringSummary(result), false, false),
		fields, nil)

	measure := "No mitigation measure assigned"
	if result.MitigationMeasure != nil {
		measure = fmt.Sprintf("Measure: %s (%s)", result.MitigationMeasure.MeasureName, result.MitigationMeasure.MeasureID)
	}
	footer := slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, measure, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "Project: "+projectID.String(), false, false),
	)

	return []slack.Block{header, body, footer}
}
