package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/riskstage/pkg/domain/interfaces"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

// keyed keeps records by risk ID in first-insertion order. Overwriting a record keeps its position.
type keyed[T any] struct {
	order []types.RiskID
	items map[types.RiskID]T
}

func newKeyed[T any]() *keyed[T] {
	return &keyed[T]{items: make(map[types.RiskID]T)}
}

func (k *keyed[T]) put(id types.RiskID, v T) {
	if _, exists := k.items[id]; !exists {
		k.order = append(k.order, id)
	}
	k.items[id] = v
}

func (k *keyed[T]) get(id types.RiskID) (T, bool) {
	v, ok := k.items[id]
	return v, ok
}

func (k *keyed[T]) list() []T {
	out := make([]T, 0, len(k.order))
	for _, id := range k.order {
		out = append(out, k.items[id])
	}
	return out
}

type projectState struct {
	sources    *model.RiskSourceCatalog
	selected   []types.RiskID
	analyses   *keyed[*model.AnalyzedRisk]
	plans      *keyed[*model.MitigationPlan]
	monitoring *keyed[*model.MonitoringResult]
}

func newProjectState() *projectState {
	return &projectState{
		analyses:   newKeyed[*model.AnalyzedRisk](),
		plans:      newKeyed[*model.MitigationPlan](),
		monitoring: newKeyed[*model.MonitoringResult](),
	}
}

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	mu       sync.RWMutex
	projects map[types.ProjectID]*projectState

	source     *sourceRepository
	selection  *selectionRepository
	analysis   *analysisRepository
	plan       *planRepository
	monitoring *monitoringRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	m := &Memory{
		projects: make(map[types.ProjectID]*projectState),
	}
	m.source = &sourceRepository{m: m}
	m.selection = &selectionRepository{m: m}
	m.analysis = &analysisRepository{m: m}
	m.plan = &planRepository{m: m}
	m.monitoring = &monitoringRepository{m: m}
	return m
}

// project returns the state of the project, creating it if needed. Caller must hold the write lock.
func (m *Memory) project(id types.ProjectID) *projectState {
	p, ok := m.projects[id]
	if !ok {
		p = newProjectState()
		m.projects[id] = p
	}
	return p
}

// lookup returns the state of the project or nil. Caller must hold the read lock.
func (m *Memory) lookup(id types.ProjectID) *projectState {
	return m.projects[id]
}

func (m *Memory) Source() interfaces.SourceRepository {
	return m.source
}

func (m *Memory) Selection() interfaces.SelectionRepository {
	return m.selection
}

func (m *Memory) Analysis() interfaces.AnalysisRepository {
	return m.analysis
}

func (m *Memory) Plan() interfaces.MitigationPlanRepository {
	return m.plan
}

func (m *Memory) Monitoring() interfaces.MonitoringRepository {
	return m.monitoring
}

func (m *Memory) Reset(ctx context.Context, projectID types.ProjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.projects, projectID)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
