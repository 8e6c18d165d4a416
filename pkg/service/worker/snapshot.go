package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/metrics"
	"github.com/secmon-lab/riskstage/pkg/utils/logging"
)

// ProjectExporter writes a snapshot of one project and returns its location
type ProjectExporter interface {
	Export(ctx context.Context, projectID types.ProjectID) (string, error)
}

// SnapshotWorker periodically exports snapshots of a fixed set of projects
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - A failed export is retried on the next tick only
type SnapshotWorker struct {
	exporter   ProjectExporter
	projectIDs []types.ProjectID
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewSnapshotWorker creates a worker exporting projectIDs every interval
func NewSnapshotWorker(exporter ProjectExporter, projectIDs []types.ProjectID, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		exporter:   exporter,
		projectIDs: projectIDs,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the export loop in a background goroutine. The first export runs immediately.
func (w *SnapshotWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("snapshot interval must be positive", goerr.V("interval", w.interval))
	}

	logging.Default().Info("Snapshot worker starting",
		"interval", w.interval.String(),
		"projects", len(w.projectIDs))

	go w.run(ctx)
	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *SnapshotWorker) Stop() {
	logging.Default().Info("Snapshot worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Snapshot worker stopped")
}

func (w *SnapshotWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.exportAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.exportAll(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Snapshot worker context cancelled")
			return
		}
	}
}

// exportAll exports every project; one failing project does not stop the others
func (w *SnapshotWorker) exportAll(ctx context.Context) {
	startTime := time.Now()
	exported := 0

	for _, projectID := range w.projectIDs {
		select {
		case <-w.stopCh:
			return
		default:
		}

		location, err := w.exporter.Export(ctx, projectID)
		if err != nil {
			metrics.ObserveError("snapshot_export")
			logging.Default().Error("Snapshot export failed (will retry next interval)",
				"error", goerr.Wrap(err, "failed to export snapshot", goerr.V(model.ProjectIDKey, projectID)).Error(),
				"project_id", projectID)
			continue
		}

		exported++
		logging.Default().Debug("Snapshot exported", "project_id", projectID, "location", location)
	}

	logging.Default().Info("Snapshot export completed",
		"exported", exported,
		"projects", len(w.projectIDs),
		"duration", time.Since(startTime).String())
}
