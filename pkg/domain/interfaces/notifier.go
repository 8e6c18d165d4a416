package interfaces

import (
	"context"

	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// MonitoringNotifier publishes post-mitigation evaluations to an external channel
type MonitoringNotifier interface {
	NotifyMonitoring(ctx context.Context, projectID types.ProjectID, result *model.MonitoringResult) error
}

// SnapshotExporter writes project snapshots to external storage
type SnapshotExporter interface {
	// Export writes the snapshot and returns a locator of the written object
	Export(ctx context.Context, snapshot *model.ProjectSnapshot) (string, error)
}
