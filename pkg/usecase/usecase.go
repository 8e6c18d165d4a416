package usecase

import (
	"time"

	"github.com/secmon-lab/riskstage/pkg/domain/interfaces"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
)

type UseCases struct {
	repo     interfaces.Repository
	catalogs *model.Catalogs
	notifier interfaces.MonitoringNotifier
	exporter interfaces.SnapshotExporter
	locks    *projectLocks
	now      func() time.Time

	Source     *SourceUseCase
	Event      *EventUseCase
	Analysis   *AnalysisUseCase
	Mitigation *MitigationUseCase
	Monitoring *MonitoringUseCase
	Project    *ProjectUseCase
}

type Option func(*UseCases)

// WithNotifier enables asynchronous notification of monitoring results
func WithNotifier(notifier interfaces.MonitoringNotifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

// WithExporter enables snapshot export
func WithExporter(exporter interfaces.SnapshotExporter) Option {
	return func(uc *UseCases) {
		uc.exporter = exporter
	}
}

// WithClock replaces the time source used for record timestamps
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// New builds the use cases over a repository and validated catalogs
func New(repo interfaces.Repository, catalogs *model.Catalogs, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		catalogs: catalogs,
		locks:    newProjectLocks(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Source = &SourceUseCase{uc: uc}
	uc.Event = &EventUseCase{uc: uc}
	uc.Analysis = &AnalysisUseCase{uc: uc}
	uc.Mitigation = &MitigationUseCase{uc: uc}
	uc.Monitoring = &MonitoringUseCase{uc: uc}
	uc.Project = &ProjectUseCase{uc: uc}

	return uc
}

func (uc *UseCases) timestamp() time.Time {
	return uc.now().UTC()
}
